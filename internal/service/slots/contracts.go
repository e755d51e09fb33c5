package slots

import "github.com/mcompany-dev/consult-booking-bot/internal/domain"

// BookingLedger интерфейс журнала бронирований
type BookingLedger interface {
	All() []*domain.Booking
}
