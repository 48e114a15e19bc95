package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(day, hour int) time.Time {
	return time.Date(2026, 3, day, hour, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func TestDeriveOpenStay(t *testing.T) {
	facts := Facts{
		LastCleanedAt: ptr(at(1, 9)),
		Stays: []StayFact{
			{CheckInAt: at(10, 14), Departure: at(12, 0)},
		},
	}

	assert.Equal(t, StatusOccupied, Derive(facts, at(10, 0)))
	assert.Equal(t, StatusOccupied, Derive(facts, at(11, 0)))
	assert.Equal(t, StatusPendingCheckout, Derive(facts, at(12, 0)))
	assert.Equal(t, StatusPendingCheckout, Derive(facts, at(15, 0)))
	// before check-in the stay does not cover the day
	assert.Equal(t, StatusFreeClean, Derive(facts, at(9, 0)))
}

func TestDeriveAfterCheckout(t *testing.T) {
	facts := Facts{
		LastCleanedAt: ptr(at(1, 9)),
		Stays: []StayFact{
			{CheckInAt: at(10, 14), CheckOutAt: ptr(at(12, 11)), Departure: at(12, 0)},
		},
	}

	assert.Equal(t, StatusOccupied, Derive(facts, at(11, 0)))
	assert.Equal(t, StatusPendingCleaning, Derive(facts, at(12, 0)))
	assert.Equal(t, StatusPendingCleaning, Derive(facts, at(20, 0)))

	facts.LastCleanedAt = ptr(at(12, 15))
	assert.Equal(t, StatusFreeClean, Derive(facts, at(12, 0)))
	assert.Equal(t, StatusFreeClean, Derive(facts, at(20, 0)))
}

func TestDeriveNeverCleaned(t *testing.T) {
	assert.Equal(t, StatusPendingCleaning, Derive(Facts{}, at(5, 0)))
}

func TestDeriveUsesLatestCheckout(t *testing.T) {
	facts := Facts{
		LastCleanedAt: ptr(at(8, 12)),
		Stays: []StayFact{
			{CheckInAt: at(1, 14), CheckOutAt: ptr(at(3, 10)), Departure: at(3, 0)},
			{CheckInAt: at(9, 14), CheckOutAt: ptr(at(11, 10)), Departure: at(11, 0)},
		},
	}

	assert.Equal(t, StatusFreeClean, Derive(facts, at(8, 0)))
	assert.Equal(t, StatusOccupied, Derive(facts, at(10, 0)))
	assert.Equal(t, StatusPendingCleaning, Derive(facts, at(11, 0)))
}

func TestDeriveIsStable(t *testing.T) {
	facts := Facts{Stays: []StayFact{{CheckInAt: at(10, 14), Departure: at(12, 0)}}}
	first := Derive(facts, at(11, 0))
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, Derive(facts, at(11, 0)))
	}
}
