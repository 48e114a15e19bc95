package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/frontdesk/internal/errs"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale is a consumption charge (minibar, laundry) billed to a reservation.
// IsPaid is toggled on its own; it never creates a Payment entry.
type Sale struct {
	ID            snowflake.ID    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	ReservationID snowflake.ID    `json:"reservation_id" gorm:"not null;index"`
	Description   string          `json:"description" gorm:"type:varchar(255);not null"`
	Quantity      int             `json:"quantity" gorm:"not null"`
	UnitPrice     decimal.Decimal `json:"unit_price" gorm:"type:decimal(14,2);not null"`
	Total         decimal.Decimal `json:"total" gorm:"type:decimal(14,2);not null"`
	IsPaid        bool            `json:"is_paid" gorm:"not null;default:false"`
	PaidAt        *time.Time      `json:"paid_at"`
	CreatedBy     string          `json:"created_by" gorm:"type:varchar(64);not null"`
	CreatedAt     time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt     time.Time       `json:"updated_at" gorm:"not null"`
}

func (Sale) TableName() string { return "sales" }

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, sale *Sale) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Sale, error)
	ListByReservation(ctx context.Context, db *gorm.DB, reservationID snowflake.ID) ([]Sale, error)
	MarkPaid(ctx context.Context, db *gorm.DB, id snowflake.ID, at time.Time) (bool, error)
	MarkAllPaid(ctx context.Context, db *gorm.DB, reservationID snowflake.ID, at time.Time) (int64, error)
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Sale, error)
	MarkPaid(ctx context.Context, id snowflake.ID) (*Sale, error)
	List(ctx context.Context, reservationID snowflake.ID) ([]Sale, error)
}

type RegisterRequest struct {
	ReservationID snowflake.ID    `json:"reservation_id"`
	Description   string          `json:"description"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
}

var (
	ErrNotFound            = errs.NotFound("sale_not_found", "sale does not exist")
	ErrInvalidDescription  = errs.Validation("invalid_description", "sale description is required")
	ErrInvalidQuantity     = errs.Validation("invalid_quantity", "quantity must be greater than zero")
	ErrInvalidUnitPrice    = errs.Validation("invalid_unit_price", "unit price must be greater than zero")
	ErrReservationNotFound = errs.NotFound("reservation_not_found", "reservation does not exist")
	ErrReservationReleased = errs.Conflict("reservation_released", "reservation was already released")
)
