// Package events announces room state changes to downstream consumers
// (notifications, dashboards). Delivery is fire-and-forget: the core never
// waits for an acknowledgement and never fails a transaction on a publish error.
package events

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
)

const (
	EventStayOpened         = "stay.opened"
	EventStayClosed         = "stay.closed"
	EventRoomCleaned        = "room.cleaned"
	EventRoomReleased       = "room.released"
	EventReservationCreated = "reservation.created"
	EventPaymentRegistered  = "payment.registered"
	EventRefundRegistered   = "refund.registered"
)

type Event struct {
	Type          string         `json:"type"`
	RoomID        snowflake.ID   `json:"room_id,omitempty"`
	ReservationID snowflake.ID   `json:"reservation_id,omitempty"`
	OccurredAt    time.Time      `json:"occurred_at"`
	Data          map[string]any `json:"data,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Emit publishes without propagating failures.
func Emit(ctx context.Context, pub Publisher, log *zap.Logger, event Event) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, event); err != nil && log != nil {
		log.Warn("event publish failed",
			zap.String("event_type", event.Type),
			zap.String("room_id", event.RoomID.String()),
			zap.Error(err))
	}
}
