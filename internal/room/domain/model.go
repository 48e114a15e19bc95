package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Room is a rentable unit. MaxCapacity is a hard ceiling on simultaneous guests.
//
// StateVersion increases with every mutation that can change the derived
// operational status (stay opened/closed, room cleaned).
type Room struct {
	ID            snowflake.ID    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Code          string          `json:"code" gorm:"type:varchar(64);not null;uniqueIndex"`
	Name          string          `json:"name" gorm:"type:varchar(128);not null"`
	Beds          int             `json:"beds" gorm:"not null"`
	MaxCapacity   int             `json:"max_capacity" gorm:"not null"`
	BasePrice     decimal.Decimal `json:"base_price" gorm:"type:decimal(14,2);not null"`
	LastCleanedAt *time.Time      `json:"last_cleaned_at"`
	StateVersion  int64           `json:"state_version" gorm:"not null;default:0"`
	CreatedAt     time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt     time.Time       `json:"updated_at" gorm:"not null"`

	RateBands []RateBand `json:"rate_bands,omitempty" gorm:"foreignKey:RoomID"`
}

func (Room) TableName() string { return "rooms" }

// RateBand prices a room for a guest-count range. Bands may overlap or leave
// gaps; Position keeps the order they were configured in.
type RateBand struct {
	ID            snowflake.ID    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	RoomID        snowflake.ID    `json:"room_id" gorm:"not null;index"`
	Position      int             `json:"position" gorm:"not null"`
	MinGuests     int             `json:"min_guests" gorm:"not null"`
	MaxGuests     int             `json:"max_guests" gorm:"not null"`
	PricePerNight decimal.Decimal `json:"price_per_night" gorm:"type:decimal(14,2);not null"`
	CreatedAt     time.Time       `json:"created_at" gorm:"not null"`
}

func (RateBand) TableName() string { return "room_rate_bands" }
