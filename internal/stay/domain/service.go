package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/frontdesk/internal/errs"
	"gorm.io/gorm"
)

// Service manages stays. Every method accepts the caller's transaction;
// a nil db runs against the service's own connection.
type Service interface {
	Open(ctx context.Context, db *gorm.DB, req OpenRequest) (*Stay, error)
	Close(ctx context.Context, db *gorm.DB, stayID snowflake.ID, checkOutAt time.Time) (*Stay, error)
	FindOpenByRoom(ctx context.Context, db *gorm.DB, roomID snowflake.ID) (*Stay, error)
	HasOpenStayForRoom(ctx context.Context, db *gorm.DB, roomID snowflake.ID) (bool, error)
	HasOpenStayForReservation(ctx context.Context, db *gorm.DB, reservationID snowflake.ID) (bool, error)
}

type OpenRequest struct {
	ReservationID     snowflake.ID
	ReservationRoomID snowflake.ID
	RoomID            snowflake.ID
	CheckInAt         time.Time
}

var (
	ErrNotFound           = errs.NotFound("stay_not_found", "stay does not exist")
	ErrRoomNotFound       = errs.NotFound("room_not_found", "room does not exist")
	ErrRoomOccupied       = errs.Conflict("room_occupied", "room already has an open stay")
	ErrStayNotOpen        = errs.Conflict("stay_not_open", "stay is already closed")
	ErrOutstandingBalance = errs.Conflict("outstanding_balance", "stay cannot be closed while the guest still owes money")
)
