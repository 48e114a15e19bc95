package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/frontdesk/internal/guest/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, guest *domain.AdditionalGuest) error {
	return db.WithContext(ctx).Create(guest).Error
}

func (r *repo) Find(ctx context.Context, db *gorm.DB, reservationRoomID, customerID snowflake.ID) (*domain.AdditionalGuest, error) {
	return first(db.WithContext(ctx).
		Where("reservation_room_id = ? AND customer_id = ?", reservationRoomID, customerID))
}

func (r *repo) FindOnReservation(ctx context.Context, db *gorm.DB, reservationID, customerID snowflake.ID) (*domain.AdditionalGuest, error) {
	return first(db.WithContext(ctx).
		Where("reservation_id = ? AND customer_id = ?", reservationID, customerID))
}

func (r *repo) ListByReservationRoom(ctx context.Context, db *gorm.DB, reservationRoomID snowflake.ID) ([]domain.AdditionalGuest, error) {
	var guests []domain.AdditionalGuest
	if err := db.WithContext(ctx).
		Where("reservation_room_id = ?", reservationRoomID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&guests).Error; err != nil {
		return nil, err
	}
	return guests, nil
}

func (r *repo) CountByReservation(ctx context.Context, db *gorm.DB, reservationID snowflake.ID) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.AdditionalGuest{}).
		Where("reservation_id = ?", reservationID).
		Count(&n).Error
	return n, err
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, reservationRoomID, customerID snowflake.ID) (bool, error) {
	result := db.WithContext(ctx).
		Where("reservation_room_id = ? AND customer_id = ?", reservationRoomID, customerID).
		Delete(&domain.AdditionalGuest{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func first(stmt *gorm.DB) (*domain.AdditionalGuest, error) {
	var g domain.AdditionalGuest
	if err := stmt.First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}
