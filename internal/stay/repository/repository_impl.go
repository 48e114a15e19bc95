package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/frontdesk/internal/stay/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, stay *domain.Stay) error {
	return db.WithContext(ctx).Create(stay).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Stay, error) {
	return first(db.WithContext(ctx).Where("id = ?", id))
}

func (r *repo) FindOpenByRoom(ctx context.Context, db *gorm.DB, roomID snowflake.ID) (*domain.Stay, error) {
	return first(db.WithContext(ctx).Where("room_id = ? AND check_out_at IS NULL", roomID))
}

func (r *repo) FindOpenByReservation(ctx context.Context, db *gorm.DB, reservationID snowflake.ID) (*domain.Stay, error) {
	return first(db.WithContext(ctx).Where("reservation_id = ? AND check_out_at IS NULL", reservationID))
}

func (r *repo) ListOverlapping(ctx context.Context, db *gorm.DB, roomID snowflake.ID, start, end time.Time) ([]domain.Stay, error) {
	var stays []domain.Stay
	err := db.WithContext(ctx).
		Where("room_id = ? AND check_in_at < ?", roomID, end.UTC()).
		Where("check_out_at IS NULL OR check_out_at >= ?", start.UTC()).
		Order("check_in_at ASC").
		Find(&stays).Error
	if err != nil {
		return nil, err
	}
	return stays, nil
}

func (r *repo) LatestCheckedOutBefore(ctx context.Context, db *gorm.DB, roomID snowflake.ID, end time.Time) (*domain.Stay, error) {
	return first(db.WithContext(ctx).
		Where("room_id = ? AND check_out_at IS NOT NULL AND check_out_at < ?", roomID, end.UTC()).
		Order("check_out_at DESC"))
}

// Close reports false when the stay was not open.
func (r *repo) Close(ctx context.Context, db *gorm.DB, id snowflake.ID, at time.Time) (bool, error) {
	result := db.WithContext(ctx).
		Model(&domain.Stay{}).
		Where("id = ? AND check_out_at IS NULL", id).
		Updates(map[string]any{
			"check_out_at": at,
			"status":       domain.StatusFinished,
			"updated_at":   at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func first(stmt *gorm.DB) (*domain.Stay, error) {
	var stay domain.Stay
	if err := stmt.First(&stay).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stay, nil
}
