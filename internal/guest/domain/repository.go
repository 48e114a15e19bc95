package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, guest *AdditionalGuest) error
	Find(ctx context.Context, db *gorm.DB, reservationRoomID, customerID snowflake.ID) (*AdditionalGuest, error)
	FindOnReservation(ctx context.Context, db *gorm.DB, reservationID, customerID snowflake.ID) (*AdditionalGuest, error)
	ListByReservationRoom(ctx context.Context, db *gorm.DB, reservationRoomID snowflake.ID) ([]AdditionalGuest, error)
	CountByReservation(ctx context.Context, db *gorm.DB, reservationID snowflake.ID) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, reservationRoomID, customerID snowflake.ID) (bool, error)
}
