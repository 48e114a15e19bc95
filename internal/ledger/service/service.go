package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/frontdesk/internal/clock"
	"github.com/railzwaylabs/frontdesk/internal/ledger/domain"
	paymentdomain "github.com/railzwaylabs/frontdesk/internal/payment/domain"
	reservationdomain "github.com/railzwaylabs/frontdesk/internal/reservation/domain"
	saledomain "github.com/railzwaylabs/frontdesk/internal/sale/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB              *gorm.DB
	Log             *zap.Logger
	Clock           clock.Clock
	ReservationRepo reservationdomain.Repository
	PaymentRepo     paymentdomain.Repository
	SaleRepo        saledomain.Repository
}

type Service struct {
	db              *gorm.DB
	log             *zap.Logger
	clock           clock.Clock
	reservationRepo reservationdomain.Repository
	paymentRepo     paymentdomain.Repository
	saleRepo        saledomain.Repository
}

func NewService(p Params) domain.Service {
	return &Service{
		db:              p.DB,
		log:             p.Log.Named("ledger.service"),
		clock:           p.Clock,
		reservationRepo: p.ReservationRepo,
		paymentRepo:     p.PaymentRepo,
		saleRepo:        p.SaleRepo,
	}
}

func (s *Service) GetLedger(ctx context.Context, reservationID snowflake.ID) (*domain.Ledger, error) {
	l, err := s.LedgerFor(ctx, s.db, reservationID)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *Service) LedgerFor(ctx context.Context, db *gorm.DB, reservationID snowflake.ID) (domain.Ledger, error) {
	res, err := s.reservationRepo.FindByID(ctx, db, reservationID)
	if err != nil {
		return domain.Ledger{}, err
	}
	if res == nil {
		return domain.Ledger{}, domain.ErrReservationNotFound
	}
	return s.compute(ctx, db, res)
}

func (s *Service) Sync(ctx context.Context, db *gorm.DB, reservationID snowflake.ID) (domain.Ledger, error) {
	l, err := s.LedgerFor(ctx, db, reservationID)
	if err != nil {
		return domain.Ledger{}, err
	}

	balanceDue := l.Balance
	if l.IsSettled() {
		balanceDue = decimal.Zero
	}
	if err := s.reservationRepo.UpdateSettlement(ctx, db, reservationID, balanceDue.Round(2), PaymentStatusOf(l), s.clock.Now(ctx).UTC()); err != nil {
		return domain.Ledger{}, err
	}
	return l, nil
}

func (s *Service) compute(ctx context.Context, db *gorm.DB, res *reservationdomain.Reservation) (domain.Ledger, error) {
	payments, err := s.paymentRepo.ListByReservation(ctx, db, res.ID)
	if err != nil {
		return domain.Ledger{}, err
	}
	sales, err := s.saleRepo.ListByReservation(ctx, db, res.ID)
	if err != nil {
		return domain.Ledger{}, err
	}

	amounts := make([]decimal.Decimal, 0, len(payments))
	for _, p := range payments {
		amounts = append(amounts, p.Amount)
	}
	lines := make([]domain.SaleLine, 0, len(sales))
	for _, sale := range sales {
		lines = append(lines, domain.SaleLine{Total: sale.Total, IsPaid: sale.IsPaid})
	}
	return domain.Compute(res.TotalAmount, amounts, lines), nil
}

// PaymentStatusOf maps a ledger to the reservation's cached status marker.
func PaymentStatusOf(l domain.Ledger) reservationdomain.PaymentStatus {
	switch {
	case !l.Owes():
		return reservationdomain.PaymentStatusPaid
	case l.Paid.Sub(l.Refunded).IsPositive():
		return reservationdomain.PaymentStatusPartial
	default:
		return reservationdomain.PaymentStatusUnpaid
	}
}
