package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, entry *AuditLog) error
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]AuditLog, error)
}

type ListFilter struct {
	StartDate time.Time
	EndDate   time.Time
	Actions   []string
}

// Service writes audit entries. A nil db writes outside any transaction;
// callers inside a unit of work pass their tx so the entry commits with it.
type Service interface {
	AuditLog(ctx context.Context, db *gorm.DB, action, targetType string, targetID *string, metadata map[string]any) error
}
