package wizard

import (
	"context"
	"time"

	"github.com/mcompany-dev/consult-booking-bot/internal/domain"
	"github.com/mcompany-dev/consult-booking-bot/internal/infra/storage/users"
)

// Ledger интерфейс журнала бронирований, нужный мастеру
type Ledger interface {
	NextID() int64
	Insert(b *domain.Booking) error
}

// SlotIndex интерфейс индекса доступности слотов
type SlotIndex interface {
	IsTaken(year, month, day int, hhmm string) bool
	TakenSlotsForDate(year, month, day int) map[string]struct{}
}

// ProfileStore интерфейс хранилища профилей для снимка при коммите
type ProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*users.User, error)
}

// Approvals интерфейс координатора согласования
type Approvals interface {
	Submit(ctx context.Context, b *domain.Booking)
}

// TimeProvider интерфейс текущего времени (для тестов)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider провайдер реального времени
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
