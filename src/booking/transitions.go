package booking

import (
	"errors"
	"fmt"

	"hbs/src/types"
)

var (
	ErrPlatformClosed    = errors.New("bookings are temporarily disabled")
	ErrIllegalTransition = errors.New("illegal booking status transition")
)

// forward is the happy-path lifecycle; cancelled and rejected are
// reachable from any non-terminal state and handled separately.
var forward = map[types.BookingStatus]types.BookingStatus{
	types.BOOKING_PENDING:     types.BOOKING_CONFIRMED,
	types.BOOKING_CONFIRMED:   types.BOOKING_CHECKED_IN,
	types.BOOKING_CHECKED_IN:  types.BOOKING_CHECKED_OUT,
	types.BOOKING_CHECKED_OUT: types.BOOKING_COMPLETED,
}

func terminal(s types.BookingStatus) bool {
	return s == types.BOOKING_COMPLETED || s == types.BOOKING_CANCELLED
}

// CanTransition reports whether from → to is a legal guest-visible
// transition.
func CanTransition(from, to types.BookingStatus) bool {
	if terminal(from) {
		return false
	}
	switch to {
	case types.BOOKING_CANCELLED, types.BOOKING_REJECTED:
		return from != types.BOOKING_REJECTED
	}
	if from == types.BOOKING_REJECTED {
		return false
	}
	return forward[from] == to
}

func checkTransition(from, to types.BookingStatus) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}
	return nil
}
