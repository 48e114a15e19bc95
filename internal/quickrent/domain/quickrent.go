package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/frontdesk/internal/errs"
	paymentdomain "github.com/railzwaylabs/frontdesk/internal/payment/domain"
	reservationdomain "github.com/railzwaylabs/frontdesk/internal/reservation/domain"
	staydomain "github.com/railzwaylabs/frontdesk/internal/stay/domain"
	"github.com/shopspring/decimal"
)

// Request books a walk-in and checks it in at once. A positive ManualTotal
// is stored as the contractual total; otherwise the room's rate prices the
// stay.
type Request struct {
	RoomID        snowflake.ID     `json:"room_id"`
	CheckInDate   time.Time        `json:"check_in_date"`
	CheckOutDate  time.Time        `json:"check_out_date"`
	PrincipalID   *snowflake.ID    `json:"principal_id"`
	AdditionalIDs []snowflake.ID   `json:"additional_ids"`
	ManualTotal   *decimal.Decimal `json:"manual_total"`
	Deposit       decimal.Decimal  `json:"deposit"`
	PaymentMethod string           `json:"payment_method"`
	Notes         string           `json:"notes"`
}

type Result struct {
	Reservation     *reservationdomain.Reservation     `json:"reservation"`
	ReservationRoom *reservationdomain.ReservationRoom `json:"reservation_room"`
	Stay            *staydomain.Stay                   `json:"stay"`
	Deposit         *paymentdomain.Payment             `json:"deposit,omitempty"`
}

type Service interface {
	Create(ctx context.Context, req Request) (*Result, error)
}

var (
	ErrRoomNotFound      = errs.NotFound("room_not_found", "room does not exist")
	ErrHistoricCheckIn   = errs.Validation("historic_check_in", "check-in date cannot be in the past")
	ErrInvalidDates      = errs.Validation("invalid_dates", "check-out date cannot be before check-in date")
	ErrCapacityExceeded  = errs.Validation("capacity_exceeded", "guest count exceeds the room capacity")
	ErrNoRate            = errs.Validation("no_rate", "no price is configured for this room and guest count")
	ErrInvalidTotal      = errs.Validation("invalid_total", "total amount must be greater than zero")
	ErrInvalidDeposit    = errs.Validation("invalid_deposit", "deposit cannot be negative")
	ErrDuplicateGuest    = errs.Validation("duplicate_guest", "a guest is listed more than once")
	ErrPrincipalNotFound = errs.Validation("customer_not_found", "principal guest must be an existing customer")
)
