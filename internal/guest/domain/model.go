package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/railzwaylabs/frontdesk/internal/customer/domain"
)

// AdditionalGuest links a customer to a reservation room next to the
// principal guest.
type AdditionalGuest struct {
	ID                snowflake.ID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	ReservationID     snowflake.ID `json:"reservation_id" gorm:"not null;index"`
	ReservationRoomID snowflake.ID `json:"reservation_room_id" gorm:"not null;uniqueIndex:ux_additional_guest"`
	CustomerID        snowflake.ID `json:"customer_id" gorm:"not null;uniqueIndex:ux_additional_guest"`
	CreatedBy         string       `json:"created_by" gorm:"type:varchar(64);not null"`
	CreatedAt         time.Time    `json:"created_at" gorm:"not null"`
}

func (AdditionalGuest) TableName() string { return "additional_guests" }

// Assignment is the guest list of one reservation room.
type Assignment struct {
	ReservationID     snowflake.ID              `json:"reservation_id"`
	ReservationRoomID snowflake.ID              `json:"reservation_room_id"`
	Principal         *customerdomain.Customer  `json:"principal"`
	Additional        []customerdomain.Customer `json:"additional"`
	MaxCapacity       int                       `json:"max_capacity"`
}

func (a Assignment) Count() int {
	n := len(a.Additional)
	if a.Principal != nil {
		n++
	}
	return n
}
