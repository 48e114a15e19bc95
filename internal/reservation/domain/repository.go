package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, reservation *Reservation) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Reservation, error)
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Reservation, error)
	UpdatePrincipal(ctx context.Context, db *gorm.DB, id snowflake.ID, customerID *snowflake.ID, at time.Time) error
	UpdateGuestCount(ctx context.Context, db *gorm.DB, id snowflake.ID, count int, at time.Time) error
	UpdateSettlement(ctx context.Context, db *gorm.DB, id snowflake.ID, balanceDue decimal.Decimal, status PaymentStatus, at time.Time) error
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status Status, at time.Time) error
	OverrideTotalAmount(ctx context.Context, db *gorm.DB, id snowflake.ID, total decimal.Decimal, at time.Time) error

	InsertRoom(ctx context.Context, db *gorm.DB, link *ReservationRoom) error
	FindRoomByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ReservationRoom, error)
	FindRoom(ctx context.Context, db *gorm.DB, reservationID, roomID snowflake.ID) (*ReservationRoom, error)
	ListRooms(ctx context.Context, db *gorm.DB, reservationID snowflake.ID) ([]ReservationRoom, error)
}
