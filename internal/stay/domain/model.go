package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Status string

// A stay only persists active or finished. "Pending checkout" is derived by
// the occupancy package and never stored.
const (
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

// Stay is the occupancy record of a room. An open stay (CheckOutAt nil) is the
// only signal that a room is occupied; a room has at most one.
type Stay struct {
	ID                snowflake.ID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	ReservationID     snowflake.ID `json:"reservation_id" gorm:"not null;index"`
	ReservationRoomID snowflake.ID `json:"reservation_room_id" gorm:"not null;index"`
	RoomID            snowflake.ID `json:"room_id" gorm:"not null;index;uniqueIndex:ux_stays_open_room,where:check_out_at IS NULL"`
	Status            Status       `json:"status" gorm:"type:varchar(20);not null"`
	CheckInAt         time.Time    `json:"check_in_at" gorm:"not null"`
	CheckOutAt        *time.Time   `json:"check_out_at"`
	CreatedAt         time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt         time.Time    `json:"updated_at" gorm:"not null"`
}

func (Stay) TableName() string { return "stays" }

func (s Stay) IsOpen() bool {
	return s.CheckOutAt == nil
}
