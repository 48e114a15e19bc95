package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/frontdesk/internal/errs"
	"github.com/shopspring/decimal"
)

type Service interface {
	Get(ctx context.Context, id snowflake.ID) (*Reservation, error)
	GetRoomLink(ctx context.Context, id snowflake.ID) (*ReservationRoom, error)
	OverrideTotal(ctx context.Context, req OverrideTotalRequest) (*Reservation, error)
}

type OverrideTotalRequest struct {
	ReservationID snowflake.ID    `json:"reservation_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Reason        string          `json:"reason"`
}

var (
	ErrNotFound            = errs.NotFound("reservation_not_found", "reservation does not exist")
	ErrRoomLinkNotFound    = errs.NotFound("reservation_room_not_found", "reservation room does not exist")
	ErrInvalidTotal        = errs.Validation("invalid_total", "total amount must be positive")
	ErrTotalBelowPaid      = errs.Validation("total_below_paid", "total amount cannot be lower than the amount already paid")
	ErrMissingReason       = errs.Validation("missing_reason", "a reason is required to override the total")
	ErrReservationReleased = errs.Conflict("reservation_released", "reservation was already released")
)
