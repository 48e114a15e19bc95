package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/railzwaylabs/frontdesk/internal/audit/domain"
	"github.com/railzwaylabs/frontdesk/internal/clock"
	ledgerdomain "github.com/railzwaylabs/frontdesk/internal/ledger/domain"
	"github.com/railzwaylabs/frontdesk/internal/reservation/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Clock    clock.Clock
	Repo     domain.Repository
	Ledger   ledgerdomain.Service
	AuditSvc auditdomain.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	clock    clock.Clock
	repo     domain.Repository
	ledger   ledgerdomain.Service
	auditSvc auditdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("reservation.service"),
		clock:    p.Clock,
		repo:     p.Repo,
		ledger:   p.Ledger,
		auditSvc: p.AuditSvc,
	}
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*domain.Reservation, error) {
	res, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, domain.ErrNotFound
	}
	return res, nil
}

func (s *Service) GetRoomLink(ctx context.Context, id snowflake.ID) (*domain.ReservationRoom, error) {
	link, err := s.repo.FindRoomByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, domain.ErrRoomLinkNotFound
	}
	return link, nil
}

// OverrideTotal is the only path that changes a reservation's contractual
// total after creation.
func (s *Service) OverrideTotal(ctx context.Context, req domain.OverrideTotalRequest) (*domain.Reservation, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, domain.ErrMissingReason
	}
	newTotal := req.TotalAmount.Round(2)
	if !newTotal.IsPositive() {
		return nil, domain.ErrInvalidTotal
	}

	var updated *domain.Reservation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, err := s.repo.FindByIDForUpdate(ctx, tx, req.ReservationID)
		if err != nil {
			return err
		}
		if res == nil {
			return domain.ErrNotFound
		}
		if res.Status == domain.StatusReleased {
			return domain.ErrReservationReleased
		}

		current, err := s.ledger.LedgerFor(ctx, tx, res.ID)
		if err != nil {
			return err
		}
		if newTotal.LessThan(current.Paid) {
			return domain.ErrTotalBelowPaid
		}

		if err := s.repo.OverrideTotalAmount(ctx, tx, res.ID, newTotal, s.clock.Now(ctx).UTC()); err != nil {
			return err
		}
		if _, err := s.ledger.Sync(ctx, tx, res.ID); err != nil {
			return err
		}

		targetID := res.ID.String()
		if err := s.auditSvc.AuditLog(ctx, tx, "reservation.total_override", "reservation", &targetID, map[string]any{
			"previous_total": res.TotalAmount.StringFixed(2),
			"new_total":      newTotal.StringFixed(2),
			"reason":         reason,
		}); err != nil {
			return err
		}

		updated, err = s.repo.FindByID(ctx, tx, res.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("reservation total overridden",
		zap.String("reservation_id", updated.ID.String()),
		zap.String("total_amount", updated.TotalAmount.StringFixed(2)))
	return updated, nil
}
