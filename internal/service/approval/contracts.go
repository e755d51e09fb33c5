package approval

import "github.com/mcompany-dev/consult-booking-bot/internal/domain"

// Ledger интерфейс журнала бронирований, нужный координатору
type Ledger interface {
	GetByID(id int64) (*domain.Booking, error)
	UpdateStatus(id int64, status domain.BookingStatus) error
	UpdateTime(id int64, hhmm string) error
	Approve(id int64) error
}

// SlotIndex интерфейс индекса доступности слотов
type SlotIndex interface {
	IsTaken(year, month, day int, hhmm string) bool
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
