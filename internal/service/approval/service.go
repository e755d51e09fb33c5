package approval

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/mcompany-dev/consult-booking-bot/internal/domain"
	bookingRepo "github.com/mcompany-dev/consult-booking-bot/internal/infra/storage/booking"
	"github.com/mcompany-dev/consult-booking-bot/internal/locale"
	"github.com/mcompany-dev/consult-booking-bot/internal/service/notify"
	"github.com/mcompany-dev/consult-booking-bot/pkg/metrics"
	"github.com/mcompany-dev/consult-booking-bot/pkg/timeparse"
)

// CallbackPrefix общий префикс callback-данных кнопок оператора
const CallbackPrefix = "audadmin:"

// Язык карточек и алертов в канале оператора
const operatorLang = "ru"

// Result итог действия оператора; транспорт решает по нему, что делать с
// карточкой и каким алертом ответить
type Result int

const (
	// ResultOK действие применено, контролы карточки снимаются
	ResultOK Result = iota
	// ResultNotFound запись не найдена, контролы снимаются
	ResultNotFound
	// ResultSlotTaken слот успели занять; контролы остаются, оператор
	// может запросить другое время или отменить
	ResultSlotTaken
)

// Service координатор согласования: доставляет карточку заявки оператору,
// применяет его решения к журналу и ведёт ожидания нового времени.
type Service struct {
	mu     sync.Mutex
	retime map[int64]int64 // requester id -> booking id, ждущий нового времени

	ledger    Ledger
	slotIndex SlotIndex
	sender    notify.Sender
	metrics   *metrics.Metrics
	logger    Logger
}

// NewService создает координатор согласования
func NewService(ledger Ledger, slotIndex SlotIndex, sender notify.Sender, m *metrics.Metrics, logger Logger) *Service {
	return &Service{
		retime:    make(map[int64]int64),
		ledger:    ledger,
		slotIndex: slotIndex,
		sender:    sender,
		metrics:   m,
		logger:    logger,
	}
}

// Submit доставляет карточку новой заявки в канал оператора. Запись уже в
// журнале; сбой доставки её не откатывает — пользователь получает мягкое
// предупреждение, а заявка остаётся pending.
func (s *Service) Submit(ctx context.Context, b *domain.Booking) {
	err := s.sender.ToOperator(notify.Message{
		Text:     cardText(b),
		Keyboard: cardKeyboard(b.ID),
	})
	if err == nil {
		s.logger.Info("approval: card delivered booking=%d", b.ID)
		return
	}

	if s.metrics != nil {
		s.metrics.SendFailures.Inc()
	}
	s.logger.Error("approval: card delivery failed booking=%d: %v", b.ID, err)

	t := locale.T(b.Lang)
	s.sender.ToRequester(b.RequesterID, notify.Message{Text: t.Get("aud_route_failed")})
}

// OnOperatorAction применяет нажатие кнопки на карточке. Возвращает итог и
// признак того, что callback принадлежит этому координатору.
func (s *Service) OnOperatorAction(ctx context.Context, data string) (Result, bool) {
	if !strings.HasPrefix(data, CallbackPrefix) {
		return ResultOK, false
	}

	verb, id, ok := parseAction(strings.TrimPrefix(data, CallbackPrefix))
	if !ok {
		return ResultOK, false
	}

	b, err := s.ledger.GetByID(id)
	if err != nil {
		s.logger.Warn("approval: action %q on unknown booking=%d", verb, id)
		return ResultNotFound, true
	}

	t := locale.T(b.Lang)

	switch verb {
	case "ok":
		return s.approve(b, t), true

	case "re":
		if err := s.ledger.UpdateStatus(id, domain.StatusRetimeRequested); err != nil {
			return ResultNotFound, true
		}
		s.mu.Lock()
		// Повторный запрос перезаписывает предыдущий: нового времени ждёт
		// только последняя заявка пользователя.
		s.retime[b.RequesterID] = id
		s.mu.Unlock()

		if s.metrics != nil {
			s.metrics.RetimeRequested.Inc()
		}
		s.logger.Info("approval: retime requested booking=%d requester=%d", id, b.RequesterID)
		s.sender.ToRequester(b.RequesterID, notify.Message{Text: t.Get("aud_user_retime")})
		return ResultOK, true

	case "no":
		if err := s.ledger.UpdateStatus(id, domain.StatusCanceled); err != nil {
			return ResultNotFound, true
		}
		s.mu.Lock()
		if pending, ok := s.retime[b.RequesterID]; ok && pending == id {
			delete(s.retime, b.RequesterID)
		}
		s.mu.Unlock()

		if s.metrics != nil {
			s.metrics.BookingsCanceled.Inc()
		}
		s.logger.Info("approval: canceled booking=%d", id)
		s.sender.ToRequester(b.RequesterID, notify.Message{Text: t.Get("aud_user_canceled")})
		return ResultOK, true
	}

	return ResultOK, false
}

// approve подтверждает заявку. Занятость слота проверяется атомарно в
// журнале: между отрисовкой карточки и нажатием слот могли занять.
func (s *Service) approve(b *domain.Booking, t locale.Table) Result {
	err := s.ledger.Approve(b.ID)
	if errors.Is(err, bookingRepo.ErrSlotAlreadyApproved) {
		if s.metrics != nil {
			s.metrics.SlotConflicts.Inc()
		}
		s.logger.Warn("approval: slot conflict booking=%d slot=%d-%02d-%02d %s",
			b.ID, b.Year, b.Month, b.Day, b.Time)
		return ResultSlotTaken
	}
	if err != nil {
		s.logger.Error("approval: approve failed booking=%d: %v", b.ID, err)
		return ResultNotFound
	}

	if s.metrics != nil {
		s.metrics.BookingsApproved.Inc()
	}
	s.logger.Info("approval: approved booking=%d", b.ID)
	s.sender.ToRequester(b.RequesterID, notify.Message{Text: t.Get("aud_user_approved")})
	return ResultOK
}

// AwaitingRetime сообщает, ждёт ли координатор от пользователя новое время
func (s *Service) AwaitingRetime(requesterID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.retime[requesterID]
	return ok
}

// HandleRetimeReply обрабатывает текст пользователя как новое время для
// заявки в ожидании. Возвращает true, если текст потреблён. Ошибка разбора
// или занятый слот не сбрасывают ожидание: пользователь просто пробует ещё раз.
func (s *Service) HandleRetimeReply(ctx context.Context, requesterID int64, text string) bool {
	s.mu.Lock()
	id, ok := s.retime[requesterID]
	s.mu.Unlock()
	if !ok {
		return false
	}

	b, err := s.ledger.GetByID(id)
	if err != nil {
		// Запись исчезнуть не может, но на всякий случай снимаем ожидание.
		s.mu.Lock()
		delete(s.retime, requesterID)
		s.mu.Unlock()
		s.logger.Error("approval: retime target vanished booking=%d: %v", id, err)
		return false
	}

	t := locale.T(b.Lang)

	hhmm, err := timeparse.Parse(text)
	if err != nil {
		s.sender.ToRequester(requesterID, notify.Message{Text: t.Get("aud_time_invalid")})
		return true
	}
	if !domain.WithinBusinessHours(hhmm) {
		s.sender.ToRequester(requesterID, notify.Message{Text: t.Get("aud_time_out_of_hours")})
		return true
	}
	if s.slotIndex.IsTaken(b.Year, b.Month, b.Day, hhmm) {
		if s.metrics != nil {
			s.metrics.SlotConflicts.Inc()
		}
		s.sender.ToRequester(requesterID, notify.Message{Text: t.Get("aud_slot_taken")})
		return true
	}

	if err := s.ledger.UpdateTime(id, hhmm); err != nil {
		s.logger.Error("approval: retime update failed booking=%d: %v", id, err)
		return true
	}
	if err := s.ledger.UpdateStatus(id, domain.StatusPending); err != nil {
		s.logger.Error("approval: retime status reset failed booking=%d: %v", id, err)
		return true
	}

	s.mu.Lock()
	delete(s.retime, requesterID)
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RetimeCompleted.Inc()
	}
	s.logger.Info("approval: retime completed booking=%d time=%s", id, hhmm)

	s.sender.ToRequester(requesterID, notify.Message{Text: t.Get("aud_retime_accepted")})

	// Карточка переотправляется со свежими контролами: новое время снова
	// ждёт решения оператора.
	updated, err := s.ledger.GetByID(id)
	if err == nil {
		s.Submit(ctx, updated)
	}
	return true
}

func parseAction(rest string) (verb string, id int64, ok bool) {
	parts := strings.SplitN(rest, ":", 2)
	if len(parts) != 2 {
		return "", 0, false
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || id <= 0 {
		return "", 0, false
	}
	return parts[0], id, true
}

func cardKeyboard(id int64) [][]notify.Button {
	t := locale.T(operatorLang)
	return [][]notify.Button{
		notify.Row(notify.Button{
			Label: t.Get("aud_admin_approve"),
			Data:  fmt.Sprintf("%sok:%d", CallbackPrefix, id),
		}),
		notify.Row(
			notify.Button{
				Label: t.Get("aud_admin_retime"),
				Data:  fmt.Sprintf("%sre:%d", CallbackPrefix, id),
			},
			notify.Button{
				Label: t.Get("aud_admin_cancel"),
				Data:  fmt.Sprintf("%sno:%d", CallbackPrefix, id),
			},
		),
	}
}

func cardText(b *domain.Booking) string {
	t := locale.T(operatorLang)

	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>%s #%d</b>\n\n", t.Get("aud_admin_title"), b.ID)
	fmt.Fprintf(&sb, "🏢 %s\n", b.BizName)
	fmt.Fprintf(&sb, "📝 %s\n", b.BizDesc)
	fmt.Fprintf(&sb, "💰 %s\n", locale.RevenueDisplay(operatorLang, b.Revenue))
	fmt.Fprintf(&sb, "📅 %04d-%02d-%02d %s\n\n", b.Year, b.Month, b.Day, b.Time)
	username := domain.ProfilePlaceholder
	if b.Profile.Username != "" {
		username = "@" + b.Profile.Username
	}

	fmt.Fprintf(&sb, "👤 %s\n", orDash(b.Profile.Name))
	fmt.Fprintf(&sb, "🔗 %s\n", username)
	fmt.Fprintf(&sb, "📞 %s", orDash(b.Profile.Phone))
	return sb.String()
}

func orDash(s string) string {
	if s == "" {
		return domain.ProfilePlaceholder
	}
	return s
}
