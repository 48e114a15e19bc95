package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/frontdesk/internal/actor"
	auditdomain "github.com/railzwaylabs/frontdesk/internal/audit/domain"
	"github.com/railzwaylabs/frontdesk/internal/clock"
	"github.com/railzwaylabs/frontdesk/internal/events"
	ledgerdomain "github.com/railzwaylabs/frontdesk/internal/ledger/domain"
	"github.com/railzwaylabs/frontdesk/internal/observability"
	"github.com/railzwaylabs/frontdesk/internal/payment/domain"
	reservationdomain "github.com/railzwaylabs/frontdesk/internal/reservation/domain"
	staydomain "github.com/railzwaylabs/frontdesk/internal/stay/domain"
	"github.com/shopspring/decimal"
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
	Ledger          ledgerdomain.Service
	Stays           staydomain.Service
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
	reservationRepo reservationdomain.Repository
	ledger          ledgerdomain.Service
	stays           staydomain.Service
	auditSvc        auditdomain.Service
	metrics         *observability.Metrics
	events          events.Publisher
}

func New(p Params) domain.Service {
	return &Service{
		db:              p.DB,
		log:             p.Log.Named("payment.service"),
		genID:           p.GenID,
		clock:           p.Clock,
		repo:            p.Repo,
		reservationRepo: p.ReservationRepo,
		ledger:          p.Ledger,
		stays:           p.Stays,
		auditSvc:        p.AuditSvc,
		metrics:         p.Metrics,
		events:          p.Events,
	}
}

func (s *Service) RegisterPayment(ctx context.Context, req domain.RegisterRequest) (*domain.Payment, error) {
	amount, method, err := validate(req)
	if err != nil {
		return nil, err
	}

	var payment *domain.Payment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, err := s.lockReservation(ctx, tx, req.ReservationID)
		if err != nil {
			return err
		}
		if res.Status == reservationdomain.StatusReleased {
			return domain.ErrReservationReleased
		}

		payment, err = s.write(ctx, tx, res.ID, domain.KindPayment, amount, method, req.Note)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.metrics.Payment(observability.PaymentKindPayment)
	s.announce(ctx, events.EventPaymentRegistered, payment)
	return payment, nil
}

// RegisterRefund writes a negative entry against the reservation's credit.
// While a stay is open, surplus money is an advance on further nights or
// charges, so nothing is refundable.
func (s *Service) RegisterRefund(ctx context.Context, req domain.RegisterRequest) (*domain.Payment, error) {
	amount, method, err := validate(req)
	if err != nil {
		return nil, err
	}

	var refund *domain.Payment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, err := s.lockReservation(ctx, tx, req.ReservationID)
		if err != nil {
			return err
		}

		open, err := s.stays.HasOpenStayForReservation(ctx, tx, res.ID)
		if err != nil {
			return err
		}
		if open {
			return domain.ErrRefundWithOpenStay
		}

		l, err := s.ledger.LedgerFor(ctx, tx, res.ID)
		if err != nil {
			return err
		}
		if amount.GreaterThan(l.Refundable) {
			return domain.ErrRefundExceedsCredit
		}

		refund, err = s.write(ctx, tx, res.ID, domain.KindRefund, amount.Neg(), method, req.Note)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.metrics.Payment(observability.PaymentKindRefund)
	s.announce(ctx, events.EventRefundRegistered, refund)
	return refund, nil
}

func (s *Service) List(ctx context.Context, reservationID snowflake.ID) ([]domain.Payment, error) {
	res, err := s.reservationRepo.FindByID(ctx, s.db, reservationID)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, domain.ErrReservationNotFound
	}
	return s.repo.ListByReservation(ctx, s.db, reservationID)
}

func (s *Service) lockReservation(ctx context.Context, tx *gorm.DB, id snowflake.ID) (*reservationdomain.Reservation, error) {
	res, err := s.reservationRepo.FindByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, domain.ErrReservationNotFound
	}
	return res, nil
}

func (s *Service) write(ctx context.Context, tx *gorm.DB, reservationID snowflake.ID, kind domain.Kind, amount decimal.Decimal, method, note string) (*domain.Payment, error) {
	payment := &domain.Payment{
		ID:            s.genID.Generate(),
		ReservationID: reservationID,
		Kind:          kind,
		Amount:        amount,
		Method:        method,
		Note:          strings.TrimSpace(note),
		CreatedBy:     actor.FromContext(ctx).ID,
		CreatedAt:     s.clock.Now(ctx).UTC(),
	}
	if err := s.repo.Insert(ctx, tx, payment); err != nil {
		return nil, err
	}
	if _, err := s.ledger.Sync(ctx, tx, reservationID); err != nil {
		return nil, err
	}

	targetID := reservationID.String()
	if err := s.auditSvc.AuditLog(ctx, tx, "payment."+string(kind), "reservation", &targetID, map[string]any{
		"payment_id": payment.ID.String(),
		"amount":     amount.StringFixed(2),
		"method":     method,
	}); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *Service) announce(ctx context.Context, eventType string, p *domain.Payment) {
	s.log.Info("ledger entry registered",
		zap.String("reservation_id", p.ReservationID.String()),
		zap.String("kind", string(p.Kind)),
		zap.String("amount", p.Amount.StringFixed(2)))

	events.Emit(ctx, s.events, s.log, events.Event{
		Type:          eventType,
		ReservationID: p.ReservationID,
		OccurredAt:    p.CreatedAt,
		Data: map[string]any{
			"payment_id": p.ID.String(),
			"amount":     p.Amount.StringFixed(2),
			"method":     p.Method,
		},
	})
}

func validate(req domain.RegisterRequest) (decimal.Decimal, string, error) {
	amount := req.Amount.Round(2)
	if !amount.IsPositive() {
		return decimal.Zero, "", domain.ErrInvalidAmount
	}
	method, ok := domain.NormalizeMethod(req.Method)
	if !ok {
		return decimal.Zero, "", domain.ErrInvalidMethod
	}
	return amount, method, nil
}
