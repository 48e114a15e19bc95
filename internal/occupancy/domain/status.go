// Package domain derives a room's operational status from its stays and its
// last cleaning. Nothing here reads the clock or the database.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/frontdesk/internal/clock"
)

type Status string

const (
	StatusOccupied        Status = "occupied"
	StatusPendingCheckout Status = "pending_checkout"
	StatusPendingCleaning Status = "pending_cleaning"
	StatusFreeClean       Status = "free_clean"
)

// StayFact is one stay as seen by the derivation. Departure is the scheduled
// check-out date of the reservation room the stay belongs to.
type StayFact struct {
	CheckInAt  time.Time
	CheckOutAt *time.Time
	Departure  time.Time
}

type Facts struct {
	LastCleanedAt *time.Time
	Stays         []StayFact
}

// Derive returns the status of a room on date. Days are compared in date's
// location.
//
// A stay covers the date when it checked in on or before that day and had not
// checked out by the end of it. A covering stay whose departure is after the
// date is occupied, otherwise it is pending checkout. Without a covering stay
// the room needs cleaning unless it was cleaned after the latest check-out
// that happened on or before the date.
func Derive(facts Facts, date time.Time) Status {
	loc := date.Location()
	day := clock.DateOf(date)

	var lastCheckOut *time.Time
	for _, s := range facts.Stays {
		checkIn := clock.DateOf(s.CheckInAt.In(loc))
		if checkIn.After(day) {
			continue
		}
		if s.CheckOutAt == nil || clock.DateOf(s.CheckOutAt.In(loc)).After(day) {
			if clock.DateOf(s.Departure.In(loc)).After(day) {
				return StatusOccupied
			}
			return StatusPendingCheckout
		}
		if lastCheckOut == nil || s.CheckOutAt.After(*lastCheckOut) {
			lastCheckOut = s.CheckOutAt
		}
	}

	if facts.LastCleanedAt == nil {
		return StatusPendingCleaning
	}
	if lastCheckOut != nil && facts.LastCleanedAt.Before(*lastCheckOut) {
		return StatusPendingCleaning
	}
	return StatusFreeClean
}

// RoomStatus is the read model returned to callers.
type RoomStatus struct {
	RoomID       snowflake.ID `json:"room_id"`
	RoomCode     string       `json:"room_code"`
	Date         string       `json:"date"`
	Status       Status       `json:"status"`
	StateVersion int64        `json:"state_version"`
}
