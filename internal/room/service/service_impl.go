package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/railzwaylabs/frontdesk/internal/clock"
	"github.com/railzwaylabs/frontdesk/internal/events"
	"github.com/railzwaylabs/frontdesk/internal/room/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Clock  clock.Clock
	Repo   domain.Repository
	Events events.Publisher `optional:"true"`
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	genID  *snowflake.Node
	clock  clock.Clock
	repo   domain.Repository
	events events.Publisher
}

func New(p Params) domain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("room.service"),
		genID:  p.GenID,
		clock:  p.Clock,
		repo:   p.Repo,
		events: p.Events,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Room, error) {
	code := slug.Make(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, domain.ErrInvalidCode
	}
	if req.Beds <= 0 || req.MaxCapacity <= 0 {
		return nil, domain.ErrInvalidCapacity
	}
	if req.BasePrice.IsNegative() {
		return nil, domain.ErrInvalidBasePrice
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = strings.TrimSpace(req.Code)
	}

	now := s.clock.Now(ctx).UTC()
	room := &domain.Room{
		ID:          s.genID.Generate(),
		Code:        code,
		Name:        name,
		Beds:        req.Beds,
		MaxCapacity: req.MaxCapacity,
		BasePrice:   req.BasePrice.Round(2),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	for i, in := range req.RateBands {
		// Non-positive bounds are stored as configured; the resolver skips them.
		if in.MinGuests > in.MaxGuests || in.PricePerNight.IsNegative() {
			return nil, domain.ErrInvalidRateBand
		}
		room.RateBands = append(room.RateBands, domain.RateBand{
			ID:            s.genID.Generate(),
			RoomID:        room.ID,
			Position:      i,
			MinGuests:     in.MinGuests,
			MaxGuests:     in.MaxGuests,
			PricePerNight: in.PricePerNight.Round(2),
			CreatedAt:     now,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.FindByCode(ctx, tx, code)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateCode
		}
		return s.repo.Insert(ctx, tx, room)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("room created", zap.String("room_id", room.ID.String()), zap.String("code", room.Code))
	return room, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*domain.Room, error) {
	room, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, domain.ErrNotFound
	}
	return room, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Room, error) {
	return s.repo.List(ctx, s.db)
}

// MarkCleaned records that housekeeping finished the room. Only today or a
// future operational date may be written.
func (s *Service) MarkCleaned(ctx context.Context, id snowflake.ID, date time.Time) (*domain.Room, error) {
	now := s.clock.Now(ctx)
	if clock.CalendarDate(date, now.Location()).Before(clock.DateOf(now)) {
		return nil, domain.ErrHistoricDate
	}

	var room *domain.Room
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := s.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		if err := s.repo.MarkCleaned(ctx, tx, id, now.UTC()); err != nil {
			return err
		}
		room, err = s.repo.FindByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	events.Emit(ctx, s.events, s.log, events.Event{
		Type:       events.EventRoomCleaned,
		RoomID:     id,
		OccurredAt: now.UTC(),
	})
	return room, nil
}
