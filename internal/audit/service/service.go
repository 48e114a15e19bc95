package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/frontdesk/internal/actor"
	"github.com/railzwaylabs/frontdesk/internal/audit/domain"
	"github.com/railzwaylabs/frontdesk/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func NewService(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("audit.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) AuditLog(ctx context.Context, db *gorm.DB, action, targetType string, targetID *string, metadata map[string]any) error {
	if db == nil {
		db = s.db
	}

	a := actor.FromContext(ctx)
	var actorID *string
	if id := strings.TrimSpace(a.ID); id != "" {
		actorID = &id
	}

	entry := &domain.AuditLog{
		ID:         s.genID.Generate(),
		ActorType:  a.Type,
		ActorID:    actorID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Metadata:   datatypes.JSONMap(metadata),
		CreatedAt:  s.clock.Now(ctx).UTC(),
	}
	if err := s.repo.Insert(ctx, db, entry); err != nil {
		s.log.Error("audit write failed", zap.String("action", action), zap.Error(err))
		return err
	}
	return nil
}
