package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.ledger: booking not found")

	// ErrDuplicateID возвращается при попытке вставить запись с занятым id.
	// При монотонной выдаче id такого быть не должно, но контракт это проверяет.
	ErrDuplicateID = errors.New("booking.ledger: duplicate booking id")

	// ErrMissingID возвращается, когда запись вставляется без id,
	// выданного через NextID
	ErrMissingID = errors.New("booking.ledger: booking id is not set")

	// ErrSlotAlreadyApproved возвращается из Approve, когда другой
	// подтверждённый запрос уже занимает тот же слот
	ErrSlotAlreadyApproved = errors.New("booking.ledger: slot already approved for another booking")
)
