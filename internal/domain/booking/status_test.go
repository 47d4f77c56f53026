package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

func TestCanTransition(t *testing.T) {
	assert.NoError(t, CanTransition(StatusPending, StatusConfirmed))
	assert.NoError(t, CanTransition(StatusPending, StatusCancelled))
	assert.NoError(t, CanTransition(StatusConfirmed, StatusCompleted))
	assert.NoError(t, CanTransition(StatusConfirmed, StatusCancelled))

	assert.Error(t, CanTransition(StatusPending, StatusCompleted))
	assert.Error(t, CanTransition(StatusCompleted, StatusConfirmed))
	assert.Error(t, CanTransition(StatusCancelled, StatusConfirmed))

	err := CanTransition(StatusCompleted, StatusCancelled)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestCanReschedule(t *testing.T) {
	assert.NoError(t, CanReschedule(StatusPending))
	assert.NoError(t, CanReschedule(StatusConfirmed))
	assert.Error(t, CanReschedule(StatusCompleted))
	assert.Error(t, CanReschedule(StatusCancelled))
}

func TestEndTime(t *testing.T) {
	end, err := EndTime("14:30", 60)
	assert.NoError(t, err)
	assert.Equal(t, "15:30", end)

	end, err = EndTime("09:45", 30)
	assert.NoError(t, err)
	assert.Equal(t, "10:15", end)

	_, err = EndTime("not-a-time", 30)
	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-08-31")
	assert.NoError(t, err)
	assert.Equal(t, 2026, d.Year())

	_, err = ParseDate("31/08/2026")
	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
}
