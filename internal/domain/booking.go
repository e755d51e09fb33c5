package domain

// BookingStatus represents the status of a consultation booking
type BookingStatus string

const (
	StatusPending         BookingStatus = "pending"
	StatusApproved        BookingStatus = "approved"
	StatusRetimeRequested BookingStatus = "retime_requested"
	StatusCanceled        BookingStatus = "canceled"
)

// RevenueBand is the closed enumeration of monthly revenue brackets.
// Display strings live in the locale tables, never in the record.
type RevenueBand string

const (
	RevenueLow  RevenueBand = "low"
	RevenueMid  RevenueBand = "mid"
	RevenueHigh RevenueBand = "high"
)

// RequesterProfile is the denormalized snapshot captured at commit time
// for the operator card. Missing fields degrade to a placeholder dash.
type RequesterProfile struct {
	Name     string
	Username string
	Phone    string
}

// Booking represents a committed consultation request owned by the ledger
type Booking struct {
	ID          int64
	RequesterID int64

	BizName string
	BizDesc string
	Revenue RevenueBand
	Year    int
	Month   int    // 1-12
	Day     int    // 1-31, bounded by the month
	Time    string // canonical "HH:MM"

	Profile RequesterProfile
	Lang    string
	Status  BookingStatus
}

// SameSlot reports whether the booking targets the given (date, time) tuple
func (b *Booking) SameSlot(year, month, day int, t string) bool {
	return b.Year == year && b.Month == month && b.Day == day && b.Time == t
}

// IsApproved returns true if the booking holds its slot exclusively.
// Pending and retime-requested bookings may share a slot; only approval
// is authoritative.
func (b *Booking) IsApproved() bool {
	return b.Status == StatusApproved
}
