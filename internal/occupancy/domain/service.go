package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/frontdesk/internal/errs"
	"gorm.io/gorm"
)

type Service interface {
	GetOperationalStatus(ctx context.Context, roomID snowflake.ID, date time.Time) (*RoomStatus, error)
	ListOperationalStatus(ctx context.Context, date time.Time) ([]RoomStatus, error)
	// Derive computes without the cache from rows visible to db.
	Derive(ctx context.Context, db *gorm.DB, roomID snowflake.ID, date time.Time) (Status, error)
}

var ErrRoomNotFound = errs.NotFound("room_not_found", "room does not exist")
