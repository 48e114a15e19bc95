package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/frontdesk/internal/errs"
	"github.com/shopspring/decimal"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Room, error)
	Get(ctx context.Context, id snowflake.ID) (*Room, error)
	List(ctx context.Context) ([]Room, error)
	MarkCleaned(ctx context.Context, id snowflake.ID, date time.Time) (*Room, error)
}

type CreateRequest struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Beds        int             `json:"beds"`
	MaxCapacity int             `json:"max_capacity"`
	BasePrice   decimal.Decimal `json:"base_price"`
	RateBands   []RateBandInput `json:"rate_bands"`
}

type RateBandInput struct {
	MinGuests     int             `json:"min_guests"`
	MaxGuests     int             `json:"max_guests"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
}

var (
	ErrNotFound         = errs.NotFound("room_not_found", "room does not exist")
	ErrInvalidCode      = errs.Validation("invalid_code", "room code is required")
	ErrDuplicateCode    = errs.Conflict("duplicate_code", "room code already in use")
	ErrInvalidCapacity  = errs.Validation("invalid_capacity", "capacity and beds must be positive")
	ErrInvalidBasePrice = errs.Validation("invalid_base_price", "base price cannot be negative")
	ErrInvalidRateBand  = errs.Validation("invalid_rate_band", "rate band bounds must satisfy min <= max and price must not be negative")
	ErrHistoricDate     = errs.Validation("historic_date", "dates before today are read-only")
)
