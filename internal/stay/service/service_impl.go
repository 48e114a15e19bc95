package service

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/frontdesk/internal/clock"
	ledgerdomain "github.com/railzwaylabs/frontdesk/internal/ledger/domain"
	roomdomain "github.com/railzwaylabs/frontdesk/internal/room/domain"
	"github.com/railzwaylabs/frontdesk/internal/stay/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Repo     domain.Repository
	RoomRepo roomdomain.Repository
	Ledger   ledgerdomain.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     domain.Repository
	roomRepo roomdomain.Repository
	ledger   ledgerdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("stay.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		roomRepo: p.RoomRepo,
		ledger:   p.Ledger,
	}
}

func (s *Service) conn(db *gorm.DB) *gorm.DB {
	if db == nil {
		return s.db
	}
	return db
}

// Open locks the room and creates an active stay. The partial unique index
// on open stays backs the check if two writers ever bypass the lock.
func (s *Service) Open(ctx context.Context, db *gorm.DB, req domain.OpenRequest) (*domain.Stay, error) {
	var stay *domain.Stay
	err := s.conn(db).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		room, err := s.roomRepo.FindByIDForUpdate(ctx, tx, req.RoomID)
		if err != nil {
			return err
		}
		if room == nil {
			return domain.ErrRoomNotFound
		}

		open, err := s.repo.FindOpenByRoom(ctx, tx, req.RoomID)
		if err != nil {
			return err
		}
		if open != nil {
			return domain.ErrRoomOccupied
		}

		now := s.clock.Now(ctx).UTC()
		checkIn := req.CheckInAt
		if checkIn.IsZero() {
			checkIn = now
		}
		stay = &domain.Stay{
			ID:                s.genID.Generate(),
			ReservationID:     req.ReservationID,
			ReservationRoomID: req.ReservationRoomID,
			RoomID:            req.RoomID,
			Status:            domain.StatusActive,
			CheckInAt:         checkIn.UTC(),
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := s.repo.Insert(ctx, tx, stay); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrRoomOccupied
			}
			return err
		}
		return s.roomRepo.BumpStateVersion(ctx, tx, req.RoomID, now)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("stay opened",
		zap.String("stay_id", stay.ID.String()),
		zap.String("room_id", stay.RoomID.String()),
		zap.String("reservation_id", stay.ReservationID.String()))
	return stay, nil
}

// Close finishes a stay once nothing is owed on its reservation. A credit in
// the guest's favour does not block; it becomes refundable after closing.
func (s *Service) Close(ctx context.Context, db *gorm.DB, stayID snowflake.ID, checkOutAt time.Time) (*domain.Stay, error) {
	var stay *domain.Stay
	err := s.conn(db).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.repo.FindByID(ctx, tx, stayID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if !current.IsOpen() {
			return domain.ErrStayNotOpen
		}

		l, err := s.ledger.LedgerFor(ctx, tx, current.ReservationID)
		if err != nil {
			return err
		}
		if l.Owes() {
			return domain.ErrOutstandingBalance
		}

		if checkOutAt.IsZero() {
			checkOutAt = s.clock.Now(ctx)
		}
		closed, err := s.repo.Close(ctx, tx, stayID, checkOutAt.UTC())
		if err != nil {
			return err
		}
		if !closed {
			return domain.ErrStayNotOpen
		}
		if err := s.roomRepo.BumpStateVersion(ctx, tx, current.RoomID, s.clock.Now(ctx).UTC()); err != nil {
			return err
		}

		stay, err = s.repo.FindByID(ctx, tx, stayID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("stay closed",
		zap.String("stay_id", stay.ID.String()),
		zap.String("room_id", stay.RoomID.String()))
	return stay, nil
}

func (s *Service) FindOpenByRoom(ctx context.Context, db *gorm.DB, roomID snowflake.ID) (*domain.Stay, error) {
	return s.repo.FindOpenByRoom(ctx, s.conn(db), roomID)
}

func (s *Service) HasOpenStayForRoom(ctx context.Context, db *gorm.DB, roomID snowflake.ID) (bool, error) {
	stay, err := s.repo.FindOpenByRoom(ctx, s.conn(db), roomID)
	if err != nil {
		return false, err
	}
	return stay != nil, nil
}

func (s *Service) HasOpenStayForReservation(ctx context.Context, db *gorm.DB, reservationID snowflake.ID) (bool, error) {
	stay, err := s.repo.FindOpenByReservation(ctx, s.conn(db), reservationID)
	if err != nil {
		return false, err
	}
	return stay != nil, nil
}
