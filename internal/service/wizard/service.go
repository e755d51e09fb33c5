package wizard

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/mcompany-dev/consult-booking-bot/internal/domain"
	"github.com/mcompany-dev/consult-booking-bot/internal/locale"
	"github.com/mcompany-dev/consult-booking-bot/internal/service/notify"
	"github.com/mcompany-dev/consult-booking-bot/pkg/metrics"
	"github.com/mcompany-dev/consult-booking-bot/pkg/timeparse"
)

// CallbackPrefix общий префикс callback-данных шагов мастера
const CallbackPrefix = "aud:"

// Service мастер бронирования: пошагово собирает заявку в черновик,
// показывает ревью и коммитит запись в журнал. Черновики живут в памяти,
// по одному на пользователя; между шагами поток не удерживается — очередной
// апдейт продолжает ровно с сохранённого состояния.
type Service struct {
	mu     sync.Mutex
	drafts map[int64]*domain.Draft

	ledger    Ledger
	slotIndex SlotIndex
	profiles  ProfileStore
	approvals Approvals
	sender    notify.Sender
	clock     TimeProvider
	metrics   *metrics.Metrics
	logger    Logger
}

// NewService создает мастер бронирования
func NewService(
	ledger Ledger,
	slotIndex SlotIndex,
	profiles ProfileStore,
	approvals Approvals,
	sender notify.Sender,
	m *metrics.Metrics,
	logger Logger,
) *Service {
	return &Service{
		drafts:    make(map[int64]*domain.Draft),
		ledger:    ledger,
		slotIndex: slotIndex,
		profiles:  profiles,
		approvals: approvals,
		sender:    sender,
		clock:     &RealTimeProvider{},
		metrics:   m,
		logger:    logger,
	}
}

// WithClock подменяет провайдер времени (для тестов)
func (s *Service) WithClock(clock TimeProvider) *Service {
	s.clock = clock
	return s
}

// Start начинает новый черновик для пользователя. Существующий черновик
// отбрасывается: вход в поток всегда стартует с чистого листа.
func (s *Service) Start(ctx context.Context, requesterID int64, lang string) {
	s.mu.Lock()
	s.drafts[requesterID] = &domain.Draft{
		RequesterID: requesterID,
		State:       domain.StateBizName,
		Lang:        lang,
	}
	s.mu.Unlock()

	s.logger.Info("wizard: start requester=%d lang=%s", requesterID, lang)

	t := locale.T(lang)
	s.sender.ToRequester(requesterID, notify.Message{Text: t.Get("aud_ask_biz_name")})
}

// Active сообщает, есть ли у пользователя черновик в работе
func (s *Service) Active(requesterID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.drafts[requesterID]
	return ok
}

// Draft возвращает копию черновика (для тестов и диагностики)
func (s *Service) Draft(requesterID int64) (domain.Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[requesterID]
	if !ok {
		return domain.Draft{}, false
	}
	return *d, true
}

// HandleText обрабатывает свободный текст пользователя. Возвращает true,
// если текст потреблён шагом мастера.
func (s *Service) HandleText(ctx context.Context, requesterID int64, text string) bool {
	s.mu.Lock()
	d, ok := s.drafts[requesterID]
	s.mu.Unlock()
	if !ok {
		return false
	}

	t := locale.T(d.Lang)
	text = strings.TrimSpace(text)

	switch d.State {
	case domain.StateBizName:
		if text == "" {
			s.sender.ToRequester(requesterID, notify.Message{Text: t.Get("aud_ask_biz_name")})
			return true
		}
		d.BizName = text
		s.afterField(d, t, domain.StateBizDesc, notify.Message{Text: t.Get("aud_ask_biz_desc")})
		return true

	case domain.StateBizDesc:
		if text == "" {
			s.sender.ToRequester(requesterID, notify.Message{Text: t.Get("aud_ask_biz_desc")})
			return true
		}
		d.BizDesc = text
		s.afterField(d, t, domain.StateRevenue, notify.Message{
			Text:     t.Get("aud_ask_revenue"),
			Keyboard: revenueKeyboard(t),
		})
		return true

	case domain.StateTimeManual:
		s.handleManualTime(d, t, text)
		return true
	}

	return false
}

// afterField продвигает поток после принятого поля: при точечном
// редактировании возвращаемся сразу на ревью, иначе идём на следующий шаг
func (s *Service) afterField(d *domain.Draft, t locale.Table, next domain.WizardState, prompt notify.Message) {
	if d.Editing {
		d.Editing = false
		s.showReview(d, t)
		return
	}
	d.State = next
	s.sender.ToRequester(d.RequesterID, prompt)
}

func (s *Service) handleManualTime(d *domain.Draft, t locale.Table, text string) {
	hhmm, err := timeparse.Parse(text)
	if err != nil {
		s.sender.ToRequester(d.RequesterID, notify.Message{Text: t.Get("aud_time_invalid")})
		return
	}

	if !domain.WithinBusinessHours(hhmm) {
		s.sender.ToRequester(d.RequesterID, notify.Message{Text: t.Get("aud_time_out_of_hours")})
		return
	}

	if s.slotIndex.IsTaken(d.Year, d.Month, d.Day, hhmm) {
		if s.metrics != nil {
			s.metrics.SlotConflicts.Inc()
		}
		s.sender.ToRequester(d.RequesterID, notify.Message{Text: t.Get("aud_slot_taken")})
		return
	}

	d.Time = hhmm
	d.Editing = false
	s.showReview(d, t)
}

// HandleCallback обрабатывает нажатие кнопки шага мастера. Возвращает true,
// если callback потреблён. Нажатия, не соответствующие текущему шагу
// (устаревшие клавиатуры), молча игнорируются.
func (s *Service) HandleCallback(ctx context.Context, requesterID int64, data string) bool {
	if !strings.HasPrefix(data, CallbackPrefix) {
		return false
	}

	s.mu.Lock()
	d, ok := s.drafts[requesterID]
	s.mu.Unlock()
	if !ok {
		return false
	}

	t := locale.T(d.Lang)
	rest := strings.TrimPrefix(data, CallbackPrefix)

	switch {
	case rest == "noop":
		return true

	case strings.HasPrefix(rest, "rev:"):
		if d.State != domain.StateRevenue {
			return true
		}
		band, valid := domain.ValidRevenueBand(strings.TrimPrefix(rest, "rev:"))
		if !valid {
			s.sender.ToRequester(requesterID, notify.Message{
				Text:     t.Get("aud_ask_revenue"),
				Keyboard: revenueKeyboard(t),
			})
			return true
		}
		d.Revenue = band
		s.afterField(d, t, domain.StateMonth, notify.Message{
			Text:     t.Get("aud_pick_month"),
			Keyboard: monthKeyboard(d.Lang),
		})
		return true

	case strings.HasPrefix(rest, "mo:"):
		if d.State != domain.StateMonth {
			return true
		}
		month, err := strconv.Atoi(strings.TrimPrefix(rest, "mo:"))
		if err != nil || month < 1 || month > 12 {
			return true
		}
		d.Month = month
		d.Year = s.clock.Now().Year()
		d.State = domain.StateDay
		s.sender.ToRequester(requesterID, notify.Message{
			Text:     t.Get("aud_pick_day"),
			Keyboard: dayKeyboard(d.Year, d.Month),
		})
		return true

	case strings.HasPrefix(rest, "day:"):
		if d.State != domain.StateDay {
			return true
		}
		day, err := strconv.Atoi(strings.TrimPrefix(rest, "day:"))
		if err != nil || day < 1 || day > domain.DaysInMonth(d.Year, d.Month) {
			return true
		}
		d.Day = day
		d.State = domain.StateTime
		s.sendTimeGrid(d, t)
		return true

	case rest == "time:manual":
		if d.State != domain.StateTime {
			return true
		}
		d.State = domain.StateTimeManual
		s.sender.ToRequester(requesterID, notify.Message{Text: t.Get("aud_enter_time_prompt")})
		return true

	case strings.HasPrefix(rest, "time:"):
		if d.State != domain.StateTime {
			return true
		}
		hhmm := strings.TrimPrefix(rest, "time:")
		if !domain.WithinBusinessHours(hhmm) {
			return true
		}
		// Клавиатура могла устареть: слот перепроверяется на выборе.
		if s.slotIndex.IsTaken(d.Year, d.Month, d.Day, hhmm) {
			if s.metrics != nil {
				s.metrics.SlotConflicts.Inc()
			}
			s.sender.ToRequester(requesterID, notify.Message{Text: t.Get("aud_slot_taken")})
			s.sendTimeGrid(d, t)
			return true
		}
		d.Time = hhmm
		d.Editing = false
		s.showReview(d, t)
		return true

	case rest == "confirm":
		if d.State != domain.StateReview {
			return true
		}
		s.confirm(ctx, d, t)
		return true

	case rest == "cancel":
		if d.State != domain.StateReview {
			return true
		}
		s.mu.Lock()
		delete(s.drafts, requesterID)
		s.mu.Unlock()
		s.logger.Info("wizard: canceled requester=%d", requesterID)
		s.sender.ToRequester(requesterID, notify.Message{Text: t.Get("aud_canceled")})
		return true

	case rest == "edit":
		if d.State != domain.StateReview {
			return true
		}
		s.sender.ToRequester(requesterID, notify.Message{
			Text:     t.Get("aud_edit_which"),
			Keyboard: editKeyboard(t),
		})
		return true

	case strings.HasPrefix(rest, "edit:"):
		if d.State != domain.StateReview {
			return true
		}
		s.startEdit(d, t, strings.TrimPrefix(rest, "edit:"))
		return true
	}

	return false
}

// startEdit переводит машину на шаг редактируемого поля, не трогая
// остальные уже собранные поля
func (s *Service) startEdit(d *domain.Draft, t locale.Table, field string) {
	switch field {
	case "name":
		d.State = domain.StateBizName
		d.Editing = true
		s.sender.ToRequester(d.RequesterID, notify.Message{Text: t.Get("aud_ask_biz_name")})
	case "desc":
		d.State = domain.StateBizDesc
		d.Editing = true
		s.sender.ToRequester(d.RequesterID, notify.Message{Text: t.Get("aud_ask_biz_desc")})
	case "rev":
		d.State = domain.StateRevenue
		d.Editing = true
		s.sender.ToRequester(d.RequesterID, notify.Message{
			Text:     t.Get("aud_ask_revenue"),
			Keyboard: revenueKeyboard(t),
		})
	case "dt":
		// Дата и время пересобираются хвостом обычного потока:
		// месяц -> день -> время -> ревью.
		d.State = domain.StateMonth
		d.Editing = false
		s.sender.ToRequester(d.RequesterID, notify.Message{
			Text:     t.Get("aud_pick_month"),
			Keyboard: monthKeyboard(d.Lang),
		})
	}
}

func (s *Service) sendTimeGrid(d *domain.Draft, t locale.Table) {
	taken := s.slotIndex.TakenSlotsForDate(d.Year, d.Month, d.Day)
	s.sender.ToRequester(d.RequesterID, notify.Message{
		Text:     t.Get("aud_pick_time"),
		Keyboard: timeKeyboard(t, taken),
	})
}

func (s *Service) showReview(d *domain.Draft, t locale.Table) {
	d.State = domain.StateReview
	s.sender.ToRequester(d.RequesterID, notify.Message{
		Text:     reviewText(t, d),
		Keyboard: reviewKeyboard(t),
	})
}

// confirm коммитит черновик: снимок профиля, выдача id, вставка в журнал
// со статусом pending и передача координатору согласования
func (s *Service) confirm(ctx context.Context, d *domain.Draft, t locale.Table) {
	profile := s.snapshotProfile(ctx, d.RequesterID)

	b := &domain.Booking{
		ID:          s.ledger.NextID(),
		RequesterID: d.RequesterID,
		BizName:     d.BizName,
		BizDesc:     d.BizDesc,
		Revenue:     d.Revenue,
		Year:        d.Year,
		Month:       d.Month,
		Day:         d.Day,
		Time:        d.Time,
		Profile:     profile,
		Lang:        d.Lang,
		Status:      domain.StatusPending,
	}

	if err := s.ledger.Insert(b); err != nil {
		// При монотонных id сюда попасть нельзя; черновик сохраняем,
		// чтобы пользователь мог повторить подтверждение.
		s.logger.Error("wizard: insert booking failed requester=%d: %v", d.RequesterID, err)
		return
	}

	s.mu.Lock()
	delete(s.drafts, d.RequesterID)
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.BookingsSubmitted.Inc()
	}
	s.logger.Info("wizard: committed booking id=%d requester=%d slot=%d-%02d-%02d %s",
		b.ID, b.RequesterID, b.Year, b.Month, b.Day, b.Time)

	s.sender.ToRequester(d.RequesterID, notify.Message{Text: t.Get("aud_sent_to_admins")})
	s.approvals.Submit(ctx, b)
}

// snapshotProfile забирает профиль для карточки оператора. Отсутствие
// профиля или его полей не блокирует коммит.
func (s *Service) snapshotProfile(ctx context.Context, requesterID int64) domain.RequesterProfile {
	u, err := s.profiles.GetByUserID(ctx, requesterID)
	if err != nil {
		s.logger.Warn("wizard: profile lookup failed requester=%d: %v", requesterID, err)
		return domain.RequesterProfile{}
	}
	return domain.RequesterProfile{
		Name:     u.Name,
		Username: u.Username,
		Phone:    u.Phone,
	}
}
