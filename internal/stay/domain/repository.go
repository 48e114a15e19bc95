package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, stay *Stay) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Stay, error)
	FindOpenByRoom(ctx context.Context, db *gorm.DB, roomID snowflake.ID) (*Stay, error)
	FindOpenByReservation(ctx context.Context, db *gorm.DB, reservationID snowflake.ID) (*Stay, error)
	// ListOverlapping returns stays checked in before end that were still
	// open at start.
	ListOverlapping(ctx context.Context, db *gorm.DB, roomID snowflake.ID, start, end time.Time) ([]Stay, error)
	// LatestCheckedOutBefore returns the closed stay with the latest check-out before end.
	LatestCheckedOutBefore(ctx context.Context, db *gorm.DB, roomID snowflake.ID, end time.Time) (*Stay, error)
	Close(ctx context.Context, db *gorm.DB, id snowflake.ID, at time.Time) (bool, error)
}
