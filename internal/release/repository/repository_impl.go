package repository

import (
	"context"

	"github.com/railzwaylabs/frontdesk/internal/release/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, h *domain.RoomReleaseHistory) error {
	return db.WithContext(ctx).Create(h).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.HistoryFilter) ([]domain.RoomReleaseHistory, error) {
	stmt := db.WithContext(ctx).Model(&domain.RoomReleaseHistory{})
	if filter.RoomID != nil {
		stmt = stmt.Where("room_id = ?", *filter.RoomID)
	}
	if !filter.From.IsZero() {
		stmt = stmt.Where("released_at >= ?", filter.From.UTC())
	}
	if !filter.To.IsZero() {
		stmt = stmt.Where("released_at < ?", filter.To.UTC())
	}

	var out []domain.RoomReleaseHistory
	if err := stmt.Order("released_at ASC").Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
