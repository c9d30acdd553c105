package booking

import (
	"testing"

	"hbs/src/types"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	t.Run("forward lifecycle", func(t *testing.T) {
		assert.True(t, CanTransition(types.BOOKING_PENDING, types.BOOKING_CONFIRMED))
		assert.True(t, CanTransition(types.BOOKING_CONFIRMED, types.BOOKING_CHECKED_IN))
		assert.True(t, CanTransition(types.BOOKING_CHECKED_IN, types.BOOKING_CHECKED_OUT))
		assert.True(t, CanTransition(types.BOOKING_CHECKED_OUT, types.BOOKING_COMPLETED))
	})

	t.Run("no skipping states", func(t *testing.T) {
		assert.False(t, CanTransition(types.BOOKING_PENDING, types.BOOKING_CHECKED_IN))
		assert.False(t, CanTransition(types.BOOKING_PENDING, types.BOOKING_COMPLETED))
		assert.False(t, CanTransition(types.BOOKING_CONFIRMED, types.BOOKING_COMPLETED))
	})

	t.Run("no moving backwards", func(t *testing.T) {
		assert.False(t, CanTransition(types.BOOKING_CONFIRMED, types.BOOKING_PENDING))
		assert.False(t, CanTransition(types.BOOKING_CHECKED_OUT, types.BOOKING_CHECKED_IN))
	})

	t.Run("cancellation from any non-terminal state", func(t *testing.T) {
		assert.True(t, CanTransition(types.BOOKING_PENDING, types.BOOKING_CANCELLED))
		assert.True(t, CanTransition(types.BOOKING_CONFIRMED, types.BOOKING_CANCELLED))
		assert.True(t, CanTransition(types.BOOKING_CHECKED_IN, types.BOOKING_CANCELLED))
		assert.True(t, CanTransition(types.BOOKING_CHECKED_OUT, types.BOOKING_CANCELLED))
	})

	t.Run("terminal states are final", func(t *testing.T) {
		assert.False(t, CanTransition(types.BOOKING_COMPLETED, types.BOOKING_CANCELLED))
		assert.False(t, CanTransition(types.BOOKING_CANCELLED, types.BOOKING_CONFIRMED))
		assert.False(t, CanTransition(types.BOOKING_CANCELLED, types.BOOKING_CANCELLED))
		assert.False(t, CanTransition(types.BOOKING_REJECTED, types.BOOKING_CONFIRMED))
		assert.False(t, CanTransition(types.BOOKING_REJECTED, types.BOOKING_REJECTED))
	})

	t.Run("rejection only before money moves", func(t *testing.T) {
		assert.True(t, CanTransition(types.BOOKING_PENDING, types.BOOKING_REJECTED))
		assert.True(t, CanTransition(types.BOOKING_CONFIRMED, types.BOOKING_REJECTED))
	})
}

func TestCheckTransition(t *testing.T) {
	assert.Nil(t, checkTransition(types.BOOKING_PENDING, types.BOOKING_CONFIRMED))

	err := checkTransition(types.BOOKING_COMPLETED, types.BOOKING_CANCELLED)
	assert.ErrorIs(t, err, ErrIllegalTransition)
	assert.Contains(t, err.Error(), "completed -> cancelled")
}
