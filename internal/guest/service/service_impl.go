package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/frontdesk/internal/actor"
	"github.com/railzwaylabs/frontdesk/internal/clock"
	customerdomain "github.com/railzwaylabs/frontdesk/internal/customer/domain"
	"github.com/railzwaylabs/frontdesk/internal/guest/domain"
	reservationdomain "github.com/railzwaylabs/frontdesk/internal/reservation/domain"
	roomdomain "github.com/railzwaylabs/frontdesk/internal/room/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB              *gorm.DB
	Log             *zap.Logger
	GenID           *snowflake.Node
	Clock           clock.Clock
	Repo            domain.Repository
	ReservationRepo reservationdomain.Repository
	RoomRepo        roomdomain.Repository
	CustomerRepo    customerdomain.Repository
}

type Service struct {
	db              *gorm.DB
	log             *zap.Logger
	genID           *snowflake.Node
	clock           clock.Clock
	repo            domain.Repository
	reservationRepo reservationdomain.Repository
	roomRepo        roomdomain.Repository
	customerRepo    customerdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:              p.DB,
		log:             p.Log.Named("guest.service"),
		genID:           p.GenID,
		clock:           p.Clock,
		repo:            p.Repo,
		reservationRepo: p.ReservationRepo,
		roomRepo:        p.RoomRepo,
		customerRepo:    p.CustomerRepo,
	}
}

func (s *Service) conn(db *gorm.DB) *gorm.DB {
	if db == nil {
		return s.db
	}
	return db
}

func (s *Service) AssignPrincipal(ctx context.Context, db *gorm.DB, reservationID, customerID snowflake.ID) error {
	return s.conn(db).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, err := s.lockReservation(ctx, tx, reservationID)
		if err != nil {
			return err
		}
		return s.assignPrincipal(ctx, tx, res, customerID)
	})
}

func (s *Service) assignPrincipal(ctx context.Context, tx *gorm.DB, res *reservationdomain.Reservation, customerID snowflake.ID) error {
	if res.PrincipalCustomerID != nil && *res.PrincipalCustomerID == customerID {
		return nil
	}
	if err := s.requireCustomer(ctx, tx, customerID); err != nil {
		return err
	}

	additional, err := s.repo.FindOnReservation(ctx, tx, res.ID, customerID)
	if err != nil {
		return err
	}
	if additional != nil {
		return domain.ErrGuestIsAdditional
	}

	// Replacing a principal keeps the head count; assigning the first one adds a guest.
	if res.PrincipalCustomerID == nil {
		links, err := s.reservationRepo.ListRooms(ctx, tx, res.ID)
		if err != nil {
			return err
		}
		for _, link := range links {
			guests, err := s.repo.ListByReservationRoom(ctx, tx, link.ID)
			if err != nil {
				return err
			}
			if err := s.checkCapacity(ctx, tx, link.RoomID, 1+len(guests)); err != nil {
				return err
			}
		}
	}

	now := s.clock.Now(ctx).UTC()
	if err := s.reservationRepo.UpdatePrincipal(ctx, tx, res.ID, &customerID, now); err != nil {
		return err
	}
	res.PrincipalCustomerID = &customerID
	return s.refreshGuestCount(ctx, tx, res, now)
}

func (s *Service) AddAdditionalGuest(ctx context.Context, db *gorm.DB, reservationRoomID, customerID snowflake.ID) (bool, error) {
	var added bool
	err := s.conn(db).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		link, res, err := s.lockLink(ctx, tx, reservationRoomID)
		if err != nil {
			return err
		}
		added, err = s.addAdditional(ctx, tx, res, link, customerID)
		return err
	})
	if err != nil {
		return false, err
	}
	return added, nil
}

func (s *Service) addAdditional(ctx context.Context, tx *gorm.DB, res *reservationdomain.Reservation, link *reservationdomain.ReservationRoom, customerID snowflake.ID) (bool, error) {
	if res.PrincipalCustomerID != nil && *res.PrincipalCustomerID == customerID {
		return false, domain.ErrGuestIsPrincipal
	}
	existing, err := s.repo.Find(ctx, tx, link.ID, customerID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	if err := s.requireCustomer(ctx, tx, customerID); err != nil {
		return false, err
	}

	guests, err := s.repo.ListByReservationRoom(ctx, tx, link.ID)
	if err != nil {
		return false, err
	}
	current := len(guests)
	if res.PrincipalCustomerID != nil {
		current++
	}
	if err := s.checkCapacity(ctx, tx, link.RoomID, current+1); err != nil {
		return false, err
	}

	now := s.clock.Now(ctx).UTC()
	if err := s.repo.Insert(ctx, tx, &domain.AdditionalGuest{
		ID:                s.genID.Generate(),
		ReservationID:     res.ID,
		ReservationRoomID: link.ID,
		CustomerID:        customerID,
		CreatedBy:         actor.FromContext(ctx).ID,
		CreatedAt:         now,
	}); err != nil {
		return false, err
	}
	return true, s.refreshGuestCount(ctx, tx, res, now)
}

func (s *Service) RemoveAdditionalGuest(ctx context.Context, reservationRoomID, customerID snowflake.ID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, res, err := s.lockLink(ctx, tx, reservationRoomID)
		if err != nil {
			return err
		}
		removed, err := s.repo.Delete(ctx, tx, reservationRoomID, customerID)
		if err != nil {
			return err
		}
		if !removed {
			return domain.ErrGuestNotAssigned
		}
		return s.refreshGuestCount(ctx, tx, res, s.clock.Now(ctx).UTC())
	})
}

// AssignGuests sets the principal (when given) and adds every additional
// guest in one transaction.
func (s *Service) AssignGuests(ctx context.Context, req domain.AssignRequest) (*domain.Assignment, error) {
	var out *domain.Assignment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		link, res, err := s.lockLink(ctx, tx, req.ReservationRoomID)
		if err != nil {
			return err
		}
		if req.PrincipalID != nil {
			if err := s.assignPrincipal(ctx, tx, res, *req.PrincipalID); err != nil {
				return err
			}
		}
		for _, id := range req.AdditionalIDs {
			if _, err := s.addAdditional(ctx, tx, res, link, id); err != nil {
				return err
			}
		}
		out, err = s.GetAssignment(ctx, tx, link.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("guests assigned",
		zap.String("reservation_room_id", req.ReservationRoomID.String()),
		zap.Int("guests", out.Count()))
	return out, nil
}

func (s *Service) GetAssignment(ctx context.Context, db *gorm.DB, reservationRoomID snowflake.ID) (*domain.Assignment, error) {
	db = s.conn(db)
	link, err := s.reservationRepo.FindRoomByID(ctx, db, reservationRoomID)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, domain.ErrRoomLinkNotFound
	}
	res, err := s.reservationRepo.FindByID(ctx, db, link.ReservationID)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, domain.ErrReservationNotFound
	}
	room, err := s.roomRepo.FindByID(ctx, db, link.RoomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, domain.ErrRoomNotFound
	}

	out := &domain.Assignment{
		ReservationID:     res.ID,
		ReservationRoomID: link.ID,
		MaxCapacity:       room.MaxCapacity,
		Additional:        []customerdomain.Customer{},
	}
	if res.PrincipalCustomerID != nil {
		out.Principal, err = s.customerRepo.FindByID(ctx, db, *res.PrincipalCustomerID)
		if err != nil {
			return nil, err
		}
	}

	guests, err := s.repo.ListByReservationRoom(ctx, db, link.ID)
	if err != nil {
		return nil, err
	}
	if len(guests) > 0 {
		ids := make([]snowflake.ID, 0, len(guests))
		for _, g := range guests {
			ids = append(ids, g.CustomerID)
		}
		customers, err := s.customerRepo.FindByIDs(ctx, db, ids)
		if err != nil {
			return nil, err
		}
		byID := make(map[snowflake.ID]customerdomain.Customer, len(customers))
		for _, c := range customers {
			byID[c.ID] = c
		}
		for _, id := range ids {
			if c, ok := byID[id]; ok {
				out.Additional = append(out.Additional, c)
			}
		}
	}
	return out, nil
}

func (s *Service) lockReservation(ctx context.Context, tx *gorm.DB, id snowflake.ID) (*reservationdomain.Reservation, error) {
	res, err := s.reservationRepo.FindByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, domain.ErrReservationNotFound
	}
	if res.Status == reservationdomain.StatusReleased {
		return nil, domain.ErrReservationReleased
	}
	return res, nil
}

func (s *Service) lockLink(ctx context.Context, tx *gorm.DB, reservationRoomID snowflake.ID) (*reservationdomain.ReservationRoom, *reservationdomain.Reservation, error) {
	link, err := s.reservationRepo.FindRoomByID(ctx, tx, reservationRoomID)
	if err != nil {
		return nil, nil, err
	}
	if link == nil {
		return nil, nil, domain.ErrRoomLinkNotFound
	}
	res, err := s.lockReservation(ctx, tx, link.ReservationID)
	if err != nil {
		return nil, nil, err
	}
	return link, res, nil
}

func (s *Service) requireCustomer(ctx context.Context, tx *gorm.DB, id snowflake.ID) error {
	c, err := s.customerRepo.FindByID(ctx, tx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func (s *Service) checkCapacity(ctx context.Context, tx *gorm.DB, roomID snowflake.ID, guests int) error {
	room, err := s.roomRepo.FindByID(ctx, tx, roomID)
	if err != nil {
		return err
	}
	if room == nil {
		return domain.ErrRoomNotFound
	}
	if guests > room.MaxCapacity {
		return domain.ErrCapacityExceeded
	}
	return nil
}

// refreshGuestCount stores principal plus additional guests. An anonymous
// walk-in keeps the count it was booked with.
func (s *Service) refreshGuestCount(ctx context.Context, tx *gorm.DB, res *reservationdomain.Reservation, at time.Time) error {
	additional, err := s.repo.CountByReservation(ctx, tx, res.ID)
	if err != nil {
		return err
	}
	count := int(additional)
	if res.PrincipalCustomerID != nil {
		count++
	}
	if count == 0 {
		return nil
	}
	res.GuestCount = count
	return s.reservationRepo.UpdateGuestCount(ctx, tx, res.ID, count, at)
}
