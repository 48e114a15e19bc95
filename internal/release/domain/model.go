package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// RoomReleaseHistory is the checkout snapshot. It copies everything it shows
// and keeps no foreign keys, so later corrections to live rows never reach it.
type RoomReleaseHistory struct {
	ID               snowflake.ID    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	RoomID           snowflake.ID    `json:"room_id" gorm:"not null;index"`
	RoomCode         string          `json:"room_code" gorm:"type:varchar(64);not null"`
	ReservationID    snowflake.ID    `json:"reservation_id" gorm:"not null;index"`
	StayID           snowflake.ID    `json:"stay_id" gorm:"not null"`
	CustomerID       *snowflake.ID   `json:"customer_id"`
	CustomerName     string          `json:"customer_name" gorm:"type:varchar(160)"`
	CustomerDocument string          `json:"customer_document" gorm:"type:varchar(64)"`
	CheckInAt        time.Time       `json:"check_in_at" gorm:"not null"`
	CheckOutAt       time.Time       `json:"check_out_at" gorm:"not null"`
	ScheduledOut     time.Time       `json:"scheduled_check_out" gorm:"column:scheduled_check_out;not null"`
	Nights           int             `json:"nights" gorm:"not null"`
	GuestCount       int             `json:"guest_count" gorm:"not null"`
	Guests           datatypes.JSON  `json:"guests" gorm:"type:json"`
	TotalAmount      decimal.Decimal `json:"total_amount" gorm:"type:decimal(14,2);not null"`
	Paid             decimal.Decimal `json:"paid" gorm:"type:decimal(14,2);not null"`
	Refunded         decimal.Decimal `json:"refunded" gorm:"type:decimal(14,2);not null"`
	SalesTotal       decimal.Decimal `json:"sales_total" gorm:"type:decimal(14,2);not null"`
	Balance          decimal.Decimal `json:"balance" gorm:"type:decimal(14,2);not null"`
	SettlementAmount decimal.Decimal `json:"settlement_amount" gorm:"type:decimal(14,2);not null"`
	SettlementMethod string          `json:"settlement_method" gorm:"type:varchar(20)"`
	Sales            datatypes.JSON  `json:"sales" gorm:"type:json"`
	Payments         datatypes.JSON  `json:"payments" gorm:"type:json"`
	TargetRoomState  string          `json:"target_room_state" gorm:"type:varchar(32);not null"`
	ReleasedBy       string          `json:"released_by" gorm:"type:varchar(64);not null"`
	ReleasedAt       time.Time       `json:"released_at" gorm:"not null;index"`
	CreatedAt        time.Time       `json:"created_at" gorm:"not null"`
}

func (RoomReleaseHistory) TableName() string { return "room_release_histories" }

type GuestLine struct {
	CustomerID string `json:"customer_id"`
	FullName   string `json:"full_name"`
	Document   string `json:"document,omitempty"`
	Principal  bool   `json:"principal"`
}

type SaleLine struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Total       string `json:"total"`
	IsPaid      bool   `json:"is_paid"`
}

type PaymentLine struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Amount    string    `json:"amount"`
	Method    string    `json:"method"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
