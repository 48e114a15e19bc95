package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/frontdesk/internal/reservation/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, reservation *domain.Reservation) error {
	return db.WithContext(ctx).Create(reservation).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Reservation, error) {
	return r.find(db.WithContext(ctx), id)
}

func (r *repo) FindByIDForUpdate(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Reservation, error) {
	return r.find(db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *repo) find(stmt *gorm.DB, id snowflake.ID) (*domain.Reservation, error) {
	var res domain.Reservation
	if err := stmt.Where("id = ?", id).First(&res).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &res, nil
}

// The update helpers name their columns explicitly; total_amount is only
// reachable through OverrideTotalAmount.

func (r *repo) UpdatePrincipal(ctx context.Context, db *gorm.DB, id snowflake.ID, customerID *snowflake.ID, at time.Time) error {
	return r.update(ctx, db, id, map[string]any{
		"principal_customer_id": customerID,
		"updated_at":            at,
	})
}

func (r *repo) UpdateGuestCount(ctx context.Context, db *gorm.DB, id snowflake.ID, count int, at time.Time) error {
	return r.update(ctx, db, id, map[string]any{
		"guest_count": count,
		"updated_at":  at,
	})
}

func (r *repo) UpdateSettlement(ctx context.Context, db *gorm.DB, id snowflake.ID, balanceDue decimal.Decimal, status domain.PaymentStatus, at time.Time) error {
	return r.update(ctx, db, id, map[string]any{
		"balance_due":    balanceDue,
		"payment_status": status,
		"updated_at":     at,
	})
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status domain.Status, at time.Time) error {
	return r.update(ctx, db, id, map[string]any{
		"status":     status,
		"updated_at": at,
	})
}

func (r *repo) OverrideTotalAmount(ctx context.Context, db *gorm.DB, id snowflake.ID, total decimal.Decimal, at time.Time) error {
	return r.update(ctx, db, id, map[string]any{
		"total_amount": total,
		"updated_at":   at,
	})
}

func (r *repo) update(ctx context.Context, db *gorm.DB, id snowflake.ID, values map[string]any) error {
	result := db.WithContext(ctx).
		Model(&domain.Reservation{}).
		Where("id = ?", id).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *repo) InsertRoom(ctx context.Context, db *gorm.DB, link *domain.ReservationRoom) error {
	return db.WithContext(ctx).Create(link).Error
}

func (r *repo) FindRoomByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.ReservationRoom, error) {
	return r.findRoom(db.WithContext(ctx).Where("id = ?", id))
}

func (r *repo) FindRoom(ctx context.Context, db *gorm.DB, reservationID, roomID snowflake.ID) (*domain.ReservationRoom, error) {
	return r.findRoom(db.WithContext(ctx).Where("reservation_id = ? AND room_id = ?", reservationID, roomID))
}

func (r *repo) findRoom(stmt *gorm.DB) (*domain.ReservationRoom, error) {
	var link domain.ReservationRoom
	if err := stmt.First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

func (r *repo) ListRooms(ctx context.Context, db *gorm.DB, reservationID snowflake.ID) ([]domain.ReservationRoom, error) {
	var links []domain.ReservationRoom
	if err := db.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Order("check_in_date ASC").
		Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}
