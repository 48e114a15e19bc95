package bootstrap

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

const StatusActive = "active"

var ErrSchemaStateNotFound = errors.New("no schema state recorded; run `frontdesk migrate` first")

// SchemaState mirrors the single row of schema_state.
type SchemaState struct {
	Status        string
	SchemaVersion string
	Checksum      string
	ActivatedAt   time.Time
}

func (SchemaState) TableName() string { return "schema_state" }

func loadSchemaState(ctx context.Context, db *gorm.DB) (*SchemaState, error) {
	var rows []SchemaState
	if err := db.WithContext(ctx).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrSchemaStateNotFound
	}

	state := rows[0]
	state.Status = strings.ToLower(strings.TrimSpace(state.Status))
	state.SchemaVersion = strings.TrimSpace(state.SchemaVersion)
	state.Checksum = strings.TrimSpace(state.Checksum)
	return &state, nil
}
