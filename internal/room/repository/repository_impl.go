package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/frontdesk/internal/room/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, room *domain.Room) error {
	bands := room.RateBands
	if err := db.WithContext(ctx).Omit("RateBands").Create(room).Error; err != nil {
		return err
	}
	if len(bands) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&bands).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Room, error) {
	return r.find(ctx, db.WithContext(ctx), "id = ?", id)
}

func (r *repo) FindByIDForUpdate(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Room, error) {
	return r.find(ctx, db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), "id = ?", id)
}

func (r *repo) FindByCode(ctx context.Context, db *gorm.DB, code string) (*domain.Room, error) {
	return r.find(ctx, db.WithContext(ctx), "code = ?", code)
}

func (r *repo) find(ctx context.Context, stmt *gorm.DB, query string, args ...any) (*domain.Room, error) {
	var room domain.Room
	if err := stmt.Where(query, args...).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	// WithContext on the fresh session would clone the locked rooms
	// statement back in, so the context goes through the session itself.
	bandQuery := stmt.Session(&gorm.Session{NewDB: true, Context: ctx})
	if err := bandQuery.
		Where("room_id = ?", room.ID).
		Order("position ASC").
		Find(&room.RateBands).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Room, error) {
	var rooms []domain.Room
	err := db.WithContext(ctx).
		Preload("RateBands", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
		Order("code ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *repo) MarkCleaned(ctx context.Context, db *gorm.DB, id snowflake.ID, at time.Time) error {
	return db.WithContext(ctx).
		Model(&domain.Room{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"last_cleaned_at": at,
			"state_version":   gorm.Expr("state_version + 1"),
			"updated_at":      at,
		}).Error
}

func (r *repo) BumpStateVersion(ctx context.Context, db *gorm.DB, id snowflake.ID, at time.Time) error {
	return db.WithContext(ctx).
		Model(&domain.Room{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"state_version": gorm.Expr("state_version + 1"),
			"updated_at":    at,
		}).Error
}
