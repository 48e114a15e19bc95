package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Status string
type PaymentStatus string

const (
	StatusPending  Status = "pending"
	StatusReleased Status = "released"

	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"

	SourceWalkIn = "walk_in"
)

// Reservation is a booking and the financial anchor of a stay.
//
// TotalAmount is the contractual stay price. It is written once on insert and
// afterwards only by Repository.OverrideTotalAmount, which the reservation
// service guards with a row lock and an audit entry. DepositAmount is
// informational; BalanceDue and PaymentStatus are caches of the ledger.
type Reservation struct {
	ID                  snowflake.ID    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Status              Status          `json:"status" gorm:"type:varchar(20);not null"`
	Source              string          `json:"source" gorm:"type:varchar(20);not null"`
	PrincipalCustomerID *snowflake.ID   `json:"principal_customer_id" gorm:"index"`
	GuestCount          int             `json:"guest_count" gorm:"not null"`
	TotalAmount         decimal.Decimal `json:"total_amount" gorm:"type:decimal(14,2);not null"`
	DepositAmount       decimal.Decimal `json:"deposit_amount" gorm:"type:decimal(14,2);not null"`
	BalanceDue          decimal.Decimal `json:"balance_due" gorm:"type:decimal(14,2);not null"`
	PaymentStatus       PaymentStatus   `json:"payment_status" gorm:"type:varchar(20);not null"`
	Notes               string          `json:"notes" gorm:"type:text"`
	CreatedBy           string          `json:"created_by" gorm:"type:varchar(64)"`
	CreatedAt           time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt           time.Time       `json:"updated_at" gorm:"not null"`
}

func (Reservation) TableName() string { return "reservations" }

// ReservationRoom links a reservation to a room for a date range. Nights and
// PricePerNight are informational; totals always come from the reservation.
type ReservationRoom struct {
	ID            snowflake.ID    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	ReservationID snowflake.ID    `json:"reservation_id" gorm:"not null;index"`
	RoomID        snowflake.ID    `json:"room_id" gorm:"not null;index"`
	CheckInDate   time.Time       `json:"check_in_date" gorm:"not null"`
	CheckOutDate  time.Time       `json:"check_out_date" gorm:"not null"`
	Nights        int             `json:"nights" gorm:"not null"`
	PricePerNight decimal.Decimal `json:"price_per_night" gorm:"type:decimal(14,2);not null"`
	CreatedAt     time.Time       `json:"created_at" gorm:"not null"`
}

func (ReservationRoom) TableName() string { return "reservation_rooms" }
