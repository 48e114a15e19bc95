package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/frontdesk/internal/actor"
	auditdomain "github.com/railzwaylabs/frontdesk/internal/audit/domain"
	"github.com/railzwaylabs/frontdesk/internal/clock"
	customerdomain "github.com/railzwaylabs/frontdesk/internal/customer/domain"
	"github.com/railzwaylabs/frontdesk/internal/errs"
	"github.com/railzwaylabs/frontdesk/internal/events"
	guestdomain "github.com/railzwaylabs/frontdesk/internal/guest/domain"
	ledgerdomain "github.com/railzwaylabs/frontdesk/internal/ledger/domain"
	"github.com/railzwaylabs/frontdesk/internal/observability"
	paymentdomain "github.com/railzwaylabs/frontdesk/internal/payment/domain"
	"github.com/railzwaylabs/frontdesk/internal/quickrent/domain"
	"github.com/railzwaylabs/frontdesk/internal/rating"
	reservationdomain "github.com/railzwaylabs/frontdesk/internal/reservation/domain"
	roomdomain "github.com/railzwaylabs/frontdesk/internal/room/domain"
	staydomain "github.com/railzwaylabs/frontdesk/internal/stay/domain"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var tracer = otel.Tracer("github.com/railzwaylabs/frontdesk/internal/quickrent")

type Params struct {
	fx.In

	DB              *gorm.DB
	Log             *zap.Logger
	GenID           *snowflake.Node
	Clock           clock.Clock
	RoomRepo        roomdomain.Repository
	ReservationRepo reservationdomain.Repository
	PaymentRepo     paymentdomain.Repository
	CustomerRepo    customerdomain.Repository
	Guests          guestdomain.Service
	Stays           staydomain.Service
	Ledger          ledgerdomain.Service
	AuditSvc        auditdomain.Service
	Metrics         *observability.Metrics `optional:"true"`
	Events          events.Publisher       `optional:"true"`
}

type Service struct {
	db              *gorm.DB
	log             *zap.Logger
	genID           *snowflake.Node
	clock           clock.Clock
	roomRepo        roomdomain.Repository
	reservationRepo reservationdomain.Repository
	paymentRepo     paymentdomain.Repository
	customerRepo    customerdomain.Repository
	guests          guestdomain.Service
	stays           staydomain.Service
	ledger          ledgerdomain.Service
	auditSvc        auditdomain.Service
	metrics         *observability.Metrics
	events          events.Publisher
}

func New(p Params) domain.Service {
	return &Service{
		db:              p.DB,
		log:             p.Log.Named("quickrent.service"),
		genID:           p.GenID,
		clock:           p.Clock,
		roomRepo:        p.RoomRepo,
		reservationRepo: p.ReservationRepo,
		paymentRepo:     p.PaymentRepo,
		customerRepo:    p.CustomerRepo,
		guests:          p.Guests,
		stays:           p.Stays,
		ledger:          p.Ledger,
		auditSvc:        p.AuditSvc,
		metrics:         p.Metrics,
		events:          p.Events,
	}
}

// Create runs the whole walk-in booking in one transaction: reservation,
// deposit, room link, guests and an open stay. Any failure leaves nothing behind.
func (s *Service) Create(ctx context.Context, req domain.Request) (result *domain.Result, err error) {
	ctx, span := tracer.Start(ctx, "quickrent.Create")
	span.SetAttributes(attribute.String("room_id", req.RoomID.String()))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			s.metrics.QuickRent(outcomeOf(err))
		}
		span.End()
	}()

	now := s.clock.Now(ctx)
	loc := now.Location()
	today := clock.DateOf(now)

	checkIn := clock.CalendarDate(req.CheckInDate, loc)
	if req.CheckInDate.IsZero() {
		checkIn = today
	}
	if checkIn.Before(today) {
		return nil, domain.ErrHistoricCheckIn
	}
	checkOut := checkIn.AddDate(0, 0, 1)
	if !req.CheckOutDate.IsZero() {
		checkOut = clock.CalendarDate(req.CheckOutDate, loc)
	}
	if checkOut.Before(checkIn) {
		return nil, domain.ErrInvalidDates
	}
	nights := clock.DaysBetween(checkIn, checkOut)
	if nights < 1 {
		nights = 1
	}

	if err := checkGuestList(req); err != nil {
		return nil, err
	}
	guests := len(req.AdditionalIDs)
	if req.PrincipalID != nil {
		guests++
	}
	if guests == 0 {
		guests = 1
	}

	deposit := req.Deposit.Round(2)
	if deposit.IsNegative() {
		return nil, domain.ErrInvalidDeposit
	}
	var method string
	if deposit.IsPositive() {
		m, ok := paymentdomain.NormalizeMethod(req.PaymentMethod)
		if !ok {
			return nil, paymentdomain.ErrInvalidMethod
		}
		method = m
	}

	result = &domain.Result{}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		room, err := s.roomRepo.FindByIDForUpdate(ctx, tx, req.RoomID)
		if err != nil {
			return err
		}
		if room == nil {
			return domain.ErrRoomNotFound
		}
		if guests > room.MaxCapacity {
			return domain.ErrCapacityExceeded
		}

		total, perNight, err := price(*room, guests, nights, req.ManualTotal)
		if err != nil {
			return err
		}

		if req.PrincipalID != nil {
			c, err := s.customerRepo.FindByID(ctx, tx, *req.PrincipalID)
			if err != nil {
				return err
			}
			if c == nil {
				return domain.ErrPrincipalNotFound
			}
		}

		stamp := now.UTC()
		res := &reservationdomain.Reservation{
			ID:                  s.genID.Generate(),
			Status:              reservationdomain.StatusPending,
			Source:              reservationdomain.SourceWalkIn,
			PrincipalCustomerID: req.PrincipalID,
			GuestCount:          guests,
			TotalAmount:         total,
			DepositAmount:       deposit,
			BalanceDue:          total,
			PaymentStatus:       reservationdomain.PaymentStatusUnpaid,
			Notes:               strings.TrimSpace(req.Notes),
			CreatedBy:           actor.FromContext(ctx).ID,
			CreatedAt:           stamp,
			UpdatedAt:           stamp,
		}
		if err := s.reservationRepo.Insert(ctx, tx, res); err != nil {
			return err
		}

		if deposit.IsPositive() {
			p := &paymentdomain.Payment{
				ID:            s.genID.Generate(),
				ReservationID: res.ID,
				Kind:          paymentdomain.KindDeposit,
				Amount:        deposit,
				Method:        method,
				Note:          "quick rent deposit",
				CreatedBy:     res.CreatedBy,
				CreatedAt:     stamp,
			}
			if err := s.paymentRepo.Insert(ctx, tx, p); err != nil {
				return err
			}
			result.Deposit = p
		}

		link := &reservationdomain.ReservationRoom{
			ID:            s.genID.Generate(),
			ReservationID: res.ID,
			RoomID:        room.ID,
			CheckInDate:   checkIn.UTC(),
			CheckOutDate:  checkOut.UTC(),
			Nights:        nights,
			PricePerNight: perNight,
			CreatedAt:     stamp,
		}
		if err := s.reservationRepo.InsertRoom(ctx, tx, link); err != nil {
			return err
		}

		for _, id := range req.AdditionalIDs {
			if _, err := s.guests.AddAdditionalGuest(ctx, tx, link.ID, id); err != nil {
				return err
			}
		}

		stay, err := s.stays.Open(ctx, tx, staydomain.OpenRequest{
			ReservationID:     res.ID,
			ReservationRoomID: link.ID,
			RoomID:            room.ID,
			CheckInAt:         stamp,
		})
		if err != nil {
			return err
		}

		if _, err := s.ledger.Sync(ctx, tx, res.ID); err != nil {
			return err
		}

		targetID := res.ID.String()
		if err := s.auditSvc.AuditLog(ctx, tx, "reservation.quick_rent", "reservation", &targetID, map[string]any{
			"room_id":      room.ID.String(),
			"total_amount": total.StringFixed(2),
			"manual_total": req.ManualTotal != nil,
			"deposit":      deposit.StringFixed(2),
			"nights":       nights,
			"guests":       guests,
		}); err != nil {
			return err
		}

		result.Reservation, err = s.reservationRepo.FindByID(ctx, tx, res.ID)
		if err != nil {
			return err
		}
		result.ReservationRoom = link
		result.Stay = stay
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.QuickRent(observability.OutcomeCreated)
	if result.Deposit != nil {
		s.metrics.Payment(observability.PaymentKindDeposit)
	}
	s.announce(ctx, result)
	return result, nil
}

func (s *Service) announce(ctx context.Context, result *domain.Result) {
	res := result.Reservation
	s.log.Info("quick rent created",
		zap.String("reservation_id", res.ID.String()),
		zap.String("room_id", result.ReservationRoom.RoomID.String()),
		zap.String("total_amount", res.TotalAmount.StringFixed(2)))

	events.Emit(ctx, s.events, s.log, events.Event{
		Type:          events.EventReservationCreated,
		RoomID:        result.ReservationRoom.RoomID,
		ReservationID: res.ID,
		OccurredAt:    res.CreatedAt,
		Data: map[string]any{
			"total_amount": res.TotalAmount.StringFixed(2),
			"source":       res.Source,
		},
	})
	events.Emit(ctx, s.events, s.log, events.Event{
		Type:          events.EventStayOpened,
		RoomID:        result.Stay.RoomID,
		ReservationID: res.ID,
		OccurredAt:    result.Stay.CheckInAt,
		Data:          map[string]any{"stay_id": result.Stay.ID.String()},
	})
}

// price returns the contractual total and the informational nightly price.
func price(room roomdomain.Room, guests, nights int, manual *decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	if manual != nil && !manual.IsZero() {
		total := manual.Round(2)
		if !total.IsPositive() {
			return decimal.Zero, decimal.Zero, domain.ErrInvalidTotal
		}
		perNight := total.DivRound(decimal.NewFromInt(int64(nights)), 2)
		return total, perNight, nil
	}

	total, perNight, ok := rating.StayTotal(room, guests, nights)
	if !ok {
		return decimal.Zero, decimal.Zero, domain.ErrNoRate
	}
	if !total.IsPositive() {
		return decimal.Zero, decimal.Zero, domain.ErrInvalidTotal
	}
	return total, perNight, nil
}

func checkGuestList(req domain.Request) error {
	seen := make(map[snowflake.ID]struct{}, len(req.AdditionalIDs)+1)
	if req.PrincipalID != nil {
		seen[*req.PrincipalID] = struct{}{}
	}
	for _, id := range req.AdditionalIDs {
		if _, dup := seen[id]; dup {
			return domain.ErrDuplicateGuest
		}
		seen[id] = struct{}{}
	}
	return nil
}

func outcomeOf(err error) string {
	switch kind, _ := errs.KindOf(err); kind {
	case errs.KindValidation, errs.KindConflict, errs.KindNotFound:
		return observability.OutcomeRejected
	default:
		return observability.OutcomeFailed
	}
}

