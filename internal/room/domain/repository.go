package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, room *Room) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Room, error)
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Room, error)
	FindByCode(ctx context.Context, db *gorm.DB, code string) (*Room, error)
	List(ctx context.Context, db *gorm.DB) ([]Room, error)
	MarkCleaned(ctx context.Context, db *gorm.DB, id snowflake.ID, at time.Time) error
	BumpStateVersion(ctx context.Context, db *gorm.DB, id snowflake.ID, at time.Time) error
}
