package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/frontdesk/internal/errs"
	"github.com/shopspring/decimal"
)

type Service interface {
	RegisterPayment(ctx context.Context, req RegisterRequest) (*Payment, error)
	RegisterRefund(ctx context.Context, req RegisterRequest) (*Payment, error)
	List(ctx context.Context, reservationID snowflake.ID) ([]Payment, error)
}

type RegisterRequest struct {
	ReservationID snowflake.ID    `json:"reservation_id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	Note          string          `json:"note"`
}

var (
	ErrInvalidAmount        = errs.Validation("invalid_amount", "amount must be greater than zero")
	ErrInvalidMethod        = errs.Validation("invalid_payment_method", "payment method must be cash, card or transfer")
	ErrRefundWithOpenStay   = errs.Validation("refund_with_open_stay", "refunds are not allowed while the stay is open")
	ErrRefundExceedsCredit  = errs.Validation("refund_exceeds_credit", "refund amount exceeds the refundable credit")
	ErrReservationNotFound  = errs.NotFound("reservation_not_found", "reservation does not exist")
	ErrReservationReleased  = errs.Conflict("reservation_released", "reservation was already released")
)
