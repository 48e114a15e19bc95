package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/frontdesk/internal/actor"
	auditdomain "github.com/railzwaylabs/frontdesk/internal/audit/domain"
	"github.com/railzwaylabs/frontdesk/internal/clock"
	"github.com/railzwaylabs/frontdesk/internal/errs"
	"github.com/railzwaylabs/frontdesk/internal/events"
	guestdomain "github.com/railzwaylabs/frontdesk/internal/guest/domain"
	ledgerdomain "github.com/railzwaylabs/frontdesk/internal/ledger/domain"
	"github.com/railzwaylabs/frontdesk/internal/observability"
	occupancydomain "github.com/railzwaylabs/frontdesk/internal/occupancy/domain"
	paymentdomain "github.com/railzwaylabs/frontdesk/internal/payment/domain"
	"github.com/railzwaylabs/frontdesk/internal/release/domain"
	reservationdomain "github.com/railzwaylabs/frontdesk/internal/reservation/domain"
	roomdomain "github.com/railzwaylabs/frontdesk/internal/room/domain"
	saledomain "github.com/railzwaylabs/frontdesk/internal/sale/domain"
	staydomain "github.com/railzwaylabs/frontdesk/internal/stay/domain"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var tracer = otel.Tracer("github.com/railzwaylabs/frontdesk/internal/release")

type Params struct {
	fx.In

	DB              *gorm.DB
	Log             *zap.Logger
	GenID           *snowflake.Node
	Clock           clock.Clock
	Repo            domain.Repository
	RoomRepo        roomdomain.Repository
	ReservationRepo reservationdomain.Repository
	PaymentRepo     paymentdomain.Repository
	SaleRepo        saledomain.Repository
	Guests          guestdomain.Service
	Stays           staydomain.Service
	Ledger          ledgerdomain.Service
	Occupancy       occupancydomain.Service
	AuditSvc        auditdomain.Service
	Metrics         *observability.Metrics `optional:"true"`
	Events          events.Publisher       `optional:"true"`
}

type Service struct {
	db              *gorm.DB
	log             *zap.Logger
	genID           *snowflake.Node
	clock           clock.Clock
	repo            domain.Repository
	roomRepo        roomdomain.Repository
	reservationRepo reservationdomain.Repository
	paymentRepo     paymentdomain.Repository
	saleRepo        saledomain.Repository
	guests          guestdomain.Service
	stays           staydomain.Service
	ledger          ledgerdomain.Service
	occupancy       occupancydomain.Service
	auditSvc        auditdomain.Service
	metrics         *observability.Metrics
	events          events.Publisher
}

func New(p Params) domain.Service {
	return &Service{
		db:              p.DB,
		log:             p.Log.Named("release.service"),
		genID:           p.GenID,
		clock:           p.Clock,
		repo:            p.Repo,
		roomRepo:        p.RoomRepo,
		reservationRepo: p.ReservationRepo,
		paymentRepo:     p.PaymentRepo,
		saleRepo:        p.SaleRepo,
		guests:          p.Guests,
		stays:           p.Stays,
		ledger:          p.Ledger,
		occupancy:       p.Occupancy,
		auditSvc:        p.AuditSvc,
		metrics:         p.Metrics,
		events:          p.Events,
	}
}

// Release checks a room out. Settlement, the zero-balance check, closing the
// stay and marking the reservation released commit together. The history
// snapshot is best effort: failing to build or write it is logged and the
// checkout stands with Result.History nil.
func (s *Service) Release(ctx context.Context, req domain.Request) (result *domain.Result, err error) {
	ctx, span := tracer.Start(ctx, "release.Release",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("room_id", req.RoomID.String())))
	defer func() {
		switch {
		case err != nil:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			s.metrics.Release(outcomeOf(err))
		case result.Released:
			s.metrics.Release(observability.OutcomeReleased)
		default:
			s.metrics.Release(observability.OutcomeNothing)
		}
		span.End()
	}()

	now := s.clock.Now(ctx)
	today := clock.DateOf(now)
	day := today
	if !req.Date.IsZero() {
		day = clock.CalendarDate(req.Date, now.Location())
	}
	if day.Before(today) {
		return nil, domain.ErrHistoricDate
	}

	result = &domain.Result{}
	var (
		snapshot *domain.RoomReleaseHistory
		target   occupancydomain.Status
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		room, err := s.roomRepo.FindByIDForUpdate(ctx, tx, req.RoomID)
		if err != nil {
			return err
		}
		if room == nil {
			return domain.ErrRoomNotFound
		}

		stay, err := s.stays.FindOpenByRoom(ctx, tx, room.ID)
		if err != nil {
			return err
		}
		if stay == nil {
			result.Message = domain.MessageNothingToRelease
			return nil
		}

		res, err := s.reservationRepo.FindByIDForUpdate(ctx, tx, stay.ReservationID)
		if err != nil {
			return err
		}
		if res == nil {
			return domain.ErrReservationNotFound
		}

		before, err := s.ledger.LedgerFor(ctx, tx, res.ID)
		if err != nil {
			return err
		}
		if before.Owes() {
			result.Settlement, err = s.settle(ctx, tx, res.ID, before.Balance, req.PaymentMethod)
			if err != nil {
				return err
			}
		}

		after, err := s.ledger.LedgerFor(ctx, tx, res.ID)
		if err != nil {
			return err
		}
		if after.Owes() || (result.Settlement != nil && !after.IsSettled()) {
			s.log.Error("release integrity violation",
				zap.String("room_id", room.ID.String()),
				zap.String("reservation_id", res.ID.String()),
				zap.String("balance", after.Balance.StringFixed(2)))
			return errs.Wrapf(domain.ErrBalanceNotSettled, "reservation %s balance %s", res.ID, after.Balance.StringFixed(2))
		}

		closed, err := s.stays.Close(ctx, tx, stay.ID, now)
		if err != nil {
			return err
		}
		if err := s.reservationRepo.UpdateStatus(ctx, tx, res.ID, reservationdomain.StatusReleased, now.UTC()); err != nil {
			return err
		}
		final, err := s.ledger.Sync(ctx, tx, res.ID)
		if err != nil {
			return err
		}
		// A credit stays on the ledger for refunds; the cached balance
		// of a released reservation is zero.
		if final.Balance.IsNegative() {
			if err := s.reservationRepo.UpdateSettlement(ctx, tx, res.ID, decimal.Zero, reservationdomain.PaymentStatusPaid, now.UTC()); err != nil {
				return err
			}
		}

		target, err = s.occupancy.Derive(ctx, tx, room.ID, day)
		if err != nil {
			return err
		}
		// Savepoint, so a failed read does not poison the checkout.
		err = tx.Transaction(func(sp *gorm.DB) error {
			var buildErr error
			snapshot, buildErr = s.collect(ctx, sp, room, closed, final, target, result.Settlement)
			return buildErr
		})
		if err != nil {
			s.log.Error("release snapshot build failed",
				zap.String("room_id", room.ID.String()),
				zap.String("stay_id", closed.ID.String()),
				zap.Error(err))
			snapshot = nil
		}

		result.Reservation, err = s.reservationRepo.FindByID(ctx, tx, res.ID)
		if err != nil {
			return err
		}
		result.Released = true
		result.Stay = closed
		result.Ledger = &final
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !result.Released {
		return result, nil
	}

	if snapshot != nil {
		if err := s.repo.Insert(ctx, s.db, snapshot); err != nil {
			s.log.Error("release snapshot write failed",
				zap.String("room_id", req.RoomID.String()),
				zap.String("stay_id", result.Stay.ID.String()),
				zap.Error(err))
		} else {
			result.History = snapshot
		}
	}

	if result.Settlement != nil {
		s.metrics.Payment(observability.PaymentKindSettlement)
	}
	s.announce(ctx, result, string(target))
	return result, nil
}

func (s *Service) settle(ctx context.Context, tx *gorm.DB, reservationID snowflake.ID, balance decimal.Decimal, method string) (*paymentdomain.Payment, error) {
	if strings.TrimSpace(method) == "" {
		return nil, domain.ErrPaymentMethodRequired
	}
	m, ok := paymentdomain.NormalizeMethod(method)
	if !ok {
		return nil, paymentdomain.ErrInvalidMethod
	}

	p := &paymentdomain.Payment{
		ID:            s.genID.Generate(),
		ReservationID: reservationID,
		Kind:          paymentdomain.KindSettlement,
		Amount:        balance.Round(2),
		Method:        m,
		Note:          "checkout settlement",
		CreatedBy:     actor.FromContext(ctx).ID,
		CreatedAt:     s.clock.Now(ctx).UTC(),
	}
	if err := s.paymentRepo.Insert(ctx, tx, p); err != nil {
		return nil, err
	}

	targetID := reservationID.String()
	if err := s.auditSvc.AuditLog(ctx, tx, "payment.settlement", "reservation", &targetID, map[string]any{
		"payment_id": p.ID.String(),
		"amount":     p.Amount.StringFixed(2),
		"method":     m,
	}); err != nil {
		return nil, err
	}
	return p, nil
}

// collect reads the snapshot inside the release transaction so it matches
// what was committed.
func (s *Service) collect(ctx context.Context, tx *gorm.DB, room *roomdomain.Room, stay *staydomain.Stay, l ledgerdomain.Ledger, target occupancydomain.Status, settlement *paymentdomain.Payment) (*domain.RoomReleaseHistory, error) {
	link, err := s.reservationRepo.FindRoomByID(ctx, tx, stay.ReservationRoomID)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, reservationdomain.ErrRoomLinkNotFound
	}
	assignment, err := s.guests.GetAssignment(ctx, tx, link.ID)
	if err != nil {
		return nil, err
	}
	sales, err := s.saleRepo.ListByReservation(ctx, tx, stay.ReservationID)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListByReservation(ctx, tx, stay.ReservationID)
	if err != nil {
		return nil, err
	}
	res, err := s.reservationRepo.FindByID(ctx, tx, stay.ReservationID)
	if err != nil {
		return nil, err
	}

	guests := make([]domain.GuestLine, 0, assignment.Count())
	h := &domain.RoomReleaseHistory{
		ID:              s.genID.Generate(),
		RoomID:          room.ID,
		RoomCode:        room.Code,
		ReservationID:   stay.ReservationID,
		StayID:          stay.ID,
		CheckInAt:       stay.CheckInAt,
		ScheduledOut:    link.CheckOutDate,
		Nights:          link.Nights,
		GuestCount:      res.GuestCount,
		TotalAmount:     l.Total,
		Paid:            l.Paid,
		Refunded:        l.Refunded,
		Balance:         l.Balance,
		TargetRoomState: string(target),
		ReleasedBy:      actor.FromContext(ctx).ID,
		ReleasedAt:      s.clock.Now(ctx).UTC(),
		CreatedAt:       s.clock.Now(ctx).UTC(),
	}
	if stay.CheckOutAt != nil {
		h.CheckOutAt = *stay.CheckOutAt
	}
	if p := assignment.Principal; p != nil {
		id := p.ID
		h.CustomerID = &id
		h.CustomerName = p.FullName
		h.CustomerDocument = p.Document
		guests = append(guests, domain.GuestLine{CustomerID: p.ID.String(), FullName: p.FullName, Document: p.Document, Principal: true})
	}
	for _, c := range assignment.Additional {
		guests = append(guests, domain.GuestLine{CustomerID: c.ID.String(), FullName: c.FullName, Document: c.Document})
	}

	saleLines := make([]domain.SaleLine, 0, len(sales))
	salesTotal := decimal.Zero
	for _, sale := range sales {
		salesTotal = salesTotal.Add(sale.Total)
		saleLines = append(saleLines, domain.SaleLine{
			ID:          sale.ID.String(),
			Description: sale.Description,
			Quantity:    sale.Quantity,
			UnitPrice:   sale.UnitPrice.StringFixed(2),
			Total:       sale.Total.StringFixed(2),
			IsPaid:      sale.IsPaid,
		})
	}
	h.SalesTotal = salesTotal

	paymentLines := make([]domain.PaymentLine, 0, len(payments))
	for _, p := range payments {
		paymentLines = append(paymentLines, domain.PaymentLine{
			ID:        p.ID.String(),
			Kind:      string(p.Kind),
			Amount:    p.Amount.StringFixed(2),
			Method:    p.Method,
			CreatedBy: p.CreatedBy,
			CreatedAt: p.CreatedAt,
		})
	}

	h.SettlementAmount = decimal.Zero
	if settlement != nil {
		h.SettlementAmount = settlement.Amount
		h.SettlementMethod = settlement.Method
	}

	if h.Guests, err = toJSON(guests); err != nil {
		return nil, err
	}
	if h.Sales, err = toJSON(saleLines); err != nil {
		return nil, err
	}
	if h.Payments, err = toJSON(paymentLines); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *Service) announce(ctx context.Context, result *domain.Result, target string) {
	stay := result.Stay
	s.log.Info("room released",
		zap.String("room_id", stay.RoomID.String()),
		zap.String("reservation_id", stay.ReservationID.String()),
		zap.String("target_state", target))

	events.Emit(ctx, s.events, s.log, events.Event{
		Type:          events.EventStayClosed,
		RoomID:        stay.RoomID,
		ReservationID: stay.ReservationID,
		OccurredAt:    *stay.CheckOutAt,
		Data:          map[string]any{"stay_id": stay.ID.String()},
	})
	events.Emit(ctx, s.events, s.log, events.Event{
		Type:          events.EventRoomReleased,
		RoomID:        stay.RoomID,
		ReservationID: stay.ReservationID,
		OccurredAt:    *stay.CheckOutAt,
		Data:          map[string]any{"target_state": target},
	})
}

func toJSON(v any) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func outcomeOf(err error) string {
	switch kind, _ := errs.KindOf(err); kind {
	case errs.KindValidation, errs.KindConflict, errs.KindNotFound:
		return observability.OutcomeRejected
	default:
		return observability.OutcomeFailed
	}
}
