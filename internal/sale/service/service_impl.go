package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/frontdesk/internal/actor"
	auditdomain "github.com/railzwaylabs/frontdesk/internal/audit/domain"
	"github.com/railzwaylabs/frontdesk/internal/clock"
	ledgerdomain "github.com/railzwaylabs/frontdesk/internal/ledger/domain"
	reservationdomain "github.com/railzwaylabs/frontdesk/internal/reservation/domain"
	"github.com/railzwaylabs/frontdesk/internal/sale/domain"
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
	AuditSvc        auditdomain.Service
}

type Service struct {
	db              *gorm.DB
	log             *zap.Logger
	genID           *snowflake.Node
	clock           clock.Clock
	repo            domain.Repository
	reservationRepo reservationdomain.Repository
	ledger          ledgerdomain.Service
	auditSvc        auditdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:              p.DB,
		log:             p.Log.Named("sale.service"),
		genID:           p.GenID,
		clock:           p.Clock,
		repo:            p.Repo,
		reservationRepo: p.ReservationRepo,
		ledger:          p.Ledger,
		auditSvc:        p.AuditSvc,
	}
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.Sale, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, domain.ErrInvalidDescription
	}
	if req.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	unitPrice := req.UnitPrice.Round(2)
	if !unitPrice.IsPositive() {
		return nil, domain.ErrInvalidUnitPrice
	}

	now := s.clock.Now(ctx).UTC()
	sale := &domain.Sale{
		ID:            s.genID.Generate(),
		ReservationID: req.ReservationID,
		Description:   description,
		Quantity:      req.Quantity,
		UnitPrice:     unitPrice,
		Total:         unitPrice.Mul(decimal.NewFromInt(int64(req.Quantity))),
		CreatedBy:     actor.FromContext(ctx).ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, err := s.reservationRepo.FindByIDForUpdate(ctx, tx, req.ReservationID)
		if err != nil {
			return err
		}
		if res == nil {
			return domain.ErrReservationNotFound
		}
		if res.Status == reservationdomain.StatusReleased {
			return domain.ErrReservationReleased
		}
		if err := s.repo.Insert(ctx, tx, sale); err != nil {
			return err
		}
		_, err = s.ledger.Sync(ctx, tx, res.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("sale registered",
		zap.String("reservation_id", sale.ReservationID.String()),
		zap.String("total", sale.Total.StringFixed(2)))
	return sale, nil
}

// MarkPaid settles a consumption charge outside the payment ledger. Marking
// an already paid sale is a no-op. Sales left unpaid at release were covered
// by the checkout payment and stay as they are.
func (s *Service) MarkPaid(ctx context.Context, id snowflake.ID) (*domain.Sale, error) {
	var sale *domain.Sale
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		res, err := s.reservationRepo.FindByIDForUpdate(ctx, tx, current.ReservationID)
		if err != nil {
			return err
		}
		if res == nil {
			return domain.ErrReservationNotFound
		}
		if res.Status == reservationdomain.StatusReleased && !current.IsPaid {
			return domain.ErrReservationReleased
		}

		changed, err := s.repo.MarkPaid(ctx, tx, id, s.clock.Now(ctx).UTC())
		if err != nil {
			return err
		}
		if changed {
			if _, err := s.ledger.Sync(ctx, tx, current.ReservationID); err != nil {
				return err
			}
			targetID := current.ReservationID.String()
			if err := s.auditSvc.AuditLog(ctx, tx, "sale.mark_paid", "reservation", &targetID, map[string]any{
				"sale_id": id.String(),
				"total":   current.Total.StringFixed(2),
			}); err != nil {
				return err
			}
		}

		sale, err = s.repo.FindByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

func (s *Service) List(ctx context.Context, reservationID snowflake.ID) ([]domain.Sale, error) {
	return s.repo.ListByReservation(ctx, s.db, reservationID)
}
