package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mcompany-dev/consult-booking-bot/internal/service/notify"
	"github.com/mcompany-dev/consult-booking-bot/pkg/metrics"
)

// Sender превращает транспортно-нейтральные сообщения ядра в вызовы
// Telegram API. Сбои доставки пользователю гасятся на этой границе:
// журнал уже изменён, и откатывать его из-за упавшей отправки нельзя.
type Sender struct {
	api          *tgbotapi.BotAPI
	adminGroupID int64
	metrics      *metrics.Metrics
	logger       Logger
}

// NewSender создает отправитель. adminGroupID == 0 означает, что канал
// оператора не настроен.
func NewSender(api *tgbotapi.BotAPI, adminGroupID int64, m *metrics.Metrics, logger Logger) *Sender {
	return &Sender{
		api:          api,
		adminGroupID: adminGroupID,
		metrics:      m,
		logger:       logger,
	}
}

// ToRequester отправляет сообщение пользователю. Fire-and-forget.
func (s *Sender) ToRequester(requesterID int64, m notify.Message) {
	if err := s.send(requesterID, m); err != nil {
		if s.metrics != nil {
			s.metrics.SendFailures.Inc()
		}
		s.logger.Error("telegram: send to requester=%d failed: %v", requesterID, err)
	}
}

// ToOperator отправляет сообщение в канал оператора
func (s *Sender) ToOperator(m notify.Message) error {
	if s.adminGroupID == 0 {
		return notify.ErrOperatorChannelUnset
	}
	if err := s.send(s.adminGroupID, m); err != nil {
		if s.metrics != nil {
			s.metrics.SendFailures.Inc()
		}
		return err
	}
	return nil
}

func (s *Sender) send(chatID int64, m notify.Message) error {
	msg := tgbotapi.NewMessage(chatID, m.Text)
	msg.ParseMode = tgbotapi.ModeHTML

	switch {
	case m.RequestContact:
		kb := tgbotapi.NewOneTimeReplyKeyboard(
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButtonContact(m.ContactButton),
			),
		)
		kb.ResizeKeyboard = true
		msg.ReplyMarkup = kb
	case len(m.Keyboard) > 0:
		msg.ReplyMarkup = inlineMarkup(m.Keyboard)
	}

	_, err := s.api.Send(msg)
	return err
}

func inlineMarkup(rows [][]notify.Button) tgbotapi.InlineKeyboardMarkup {
	kb := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			if b.URL != "" {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonURL(b.Label, b.URL))
				continue
			}
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Data))
		}
		kb = append(kb, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(kb...)
}
