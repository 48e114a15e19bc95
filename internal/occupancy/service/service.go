package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/frontdesk/internal/clock"
	"github.com/railzwaylabs/frontdesk/internal/config"
	"github.com/railzwaylabs/frontdesk/internal/occupancy/domain"
	reservationdomain "github.com/railzwaylabs/frontdesk/internal/reservation/domain"
	roomdomain "github.com/railzwaylabs/frontdesk/internal/room/domain"
	staydomain "github.com/railzwaylabs/frontdesk/internal/stay/domain"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Params struct {
	fx.In

	DB              *gorm.DB
	Log             *zap.Logger
	Clock           clock.Clock
	Cfg             config.Config
	Redis           *redis.Client `optional:"true"`
	RoomRepo        roomdomain.Repository
	StayRepo        staydomain.Repository
	ReservationRepo reservationdomain.Repository
}

type Service struct {
	db              *gorm.DB
	log             *zap.Logger
	clock           clock.Clock
	cache           *redis.Client
	ttl             time.Duration
	roomRepo        roomdomain.Repository
	stayRepo        staydomain.Repository
	reservationRepo reservationdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:              p.DB,
		log:             p.Log.Named("occupancy.service"),
		clock:           p.Clock,
		cache:           p.Redis,
		ttl:             p.Cfg.StatusCacheTTL,
		roomRepo:        p.RoomRepo,
		stayRepo:        p.StayRepo,
		reservationRepo: p.ReservationRepo,
	}
}

func (s *Service) GetOperationalStatus(ctx context.Context, roomID snowflake.ID, date time.Time) (*domain.RoomStatus, error) {
	room, err := s.roomRepo.FindByID(ctx, s.db, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, domain.ErrRoomNotFound
	}
	status, err := s.statusOf(ctx, room, s.day(ctx, date))
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (s *Service) ListOperationalStatus(ctx context.Context, date time.Time) ([]domain.RoomStatus, error) {
	rooms, err := s.roomRepo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	day := s.day(ctx, date)
	out := make([]domain.RoomStatus, 0, len(rooms))
	for i := range rooms {
		status, err := s.statusOf(ctx, &rooms[i], day)
		if err != nil {
			return nil, err
		}
		out = append(out, status)
	}
	return out, nil
}

func (s *Service) Derive(ctx context.Context, db *gorm.DB, roomID snowflake.ID, date time.Time) (domain.Status, error) {
	if db == nil {
		db = s.db
	}
	room, err := s.roomRepo.FindByID(ctx, db, roomID)
	if err != nil {
		return "", err
	}
	if room == nil {
		return "", domain.ErrRoomNotFound
	}
	return s.derive(ctx, db, room, s.day(ctx, date))
}

// statusOf consults the cache under the room's state version. The room row is
// read before the stays, so a concurrent mutation can only make a cached
// entry newer than its version, never older.
func (s *Service) statusOf(ctx context.Context, room *roomdomain.Room, day time.Time) (domain.RoomStatus, error) {
	out := domain.RoomStatus{
		RoomID:       room.ID,
		RoomCode:     room.Code,
		Date:         day.Format(dateLayout),
		StateVersion: room.StateVersion,
	}

	key := cacheKey(room.ID, room.StateVersion, day)
	if cached, ok := s.readCache(ctx, key); ok {
		out.Status = cached
		return out, nil
	}

	status, err := s.derive(ctx, s.db, room, day)
	if err != nil {
		return domain.RoomStatus{}, err
	}
	s.writeCache(ctx, key, status)

	out.Status = status
	return out, nil
}

func (s *Service) derive(ctx context.Context, db *gorm.DB, room *roomdomain.Room, day time.Time) (domain.Status, error) {
	end := day.AddDate(0, 0, 1)
	stays, err := s.stayRepo.ListOverlapping(ctx, db, room.ID, day, end)
	if err != nil {
		return "", err
	}
	latest, err := s.stayRepo.LatestCheckedOutBefore(ctx, db, room.ID, end)
	if err != nil {
		return "", err
	}
	if latest != nil {
		stays = append(stays, *latest)
	}

	facts := domain.Facts{LastCleanedAt: room.LastCleanedAt}
	for _, st := range stays {
		fact := domain.StayFact{
			CheckInAt:  st.CheckInAt,
			CheckOutAt: st.CheckOutAt,
			Departure:  st.CheckInAt,
		}
		link, err := s.reservationRepo.FindRoomByID(ctx, db, st.ReservationRoomID)
		if err != nil {
			return "", err
		}
		if link != nil {
			fact.Departure = link.CheckOutDate
		}
		facts.Stays = append(facts.Stays, fact)
	}
	return domain.Derive(facts, day), nil
}

// day pins date's calendar day to the hotel's location.
func (s *Service) day(ctx context.Context, date time.Time) time.Time {
	loc := s.clock.Now(ctx).Location()
	if date.IsZero() {
		return clock.DateOf(s.clock.Now(ctx))
	}
	return clock.CalendarDate(date, loc)
}

func (s *Service) readCache(ctx context.Context, key string) (domain.Status, bool) {
	if s.cache == nil {
		return "", false
	}
	val, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn("status cache read failed", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return domain.Status(val), true
}

func (s *Service) writeCache(ctx context.Context, key string, status domain.Status) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(status), s.ttl).Err(); err != nil {
		s.log.Warn("status cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func cacheKey(roomID snowflake.ID, version int64, day time.Time) string {
	return fmt.Sprintf("room_status:%s:%d:%s", roomID.String(), version, day.Format(dateLayout))
}
