// Package notify транспортно-нейтральная модель исходящих сообщений.
// Ядро формирует текст и набор действий; как именно они превращаются в
// кнопки — дело транспортного адаптера.
package notify

import "errors"

// ErrOperatorChannelUnset возвращается отправителем, когда канал оператора
// не настроен. Единственная ошибка, которую ядру важно различать: все
// прочие сбои доставки гасятся и логируются на границе транспорта.
var ErrOperatorChannelUnset = errors.New("notify: operator channel is not configured")

// Button одно действие в сообщении. Либо Data (callback), либо URL.
type Button struct {
	Label string
	Data  string
	URL   string
}

// Message исходящее сообщение с опциональной клавиатурой
type Message struct {
	Text     string
	Keyboard [][]Button

	// RequestContact просит транспорт показать кнопку "поделиться контактом";
	// ContactButton — её подпись
	RequestContact bool
	ContactButton  string
}

// Row собирает ряд кнопок
func Row(buttons ...Button) []Button {
	return buttons
}

// Sender исходящий канал ядра. Доставка fire-and-forget: сбой отправки не
// должен откатывать уже применённые изменения журнала.
type Sender interface {
	// ToRequester отправляет сообщение инициатору заявки
	ToRequester(requesterID int64, m Message)

	// ToOperator отправляет сообщение в канал оператора
	ToOperator(m Message) error
}
