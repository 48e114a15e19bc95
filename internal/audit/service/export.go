package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/railzwaylabs/frontdesk/internal/audit/domain"
	"gorm.io/gorm"
)

type ExportService struct {
	db   *gorm.DB
	repo domain.Repository
}

func NewExportService(db *gorm.DB, repo domain.Repository) domain.ExportService {
	return &ExportService{db: db, repo: repo}
}

func (s *ExportService) Export(ctx context.Context, req domain.ExportRequest) (*domain.ExportResult, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, domain.ErrInvalidRange
	}
	if !req.Format.Valid() {
		return nil, domain.ErrUnsupportedFormat
	}

	logs, err := s.repo.List(ctx, s.db, domain.ListFilter{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Actions:   req.Actions,
	})
	if err != nil {
		return nil, err
	}

	var data []byte
	if req.Format == domain.ExportFormatCSV {
		data, err = formatCSV(logs)
	} else {
		data, err = formatJSON(logs)
	}
	if err != nil {
		return nil, err
	}

	return &domain.ExportResult{
		Data:     data,
		Checksum: Checksum(data),
		Format:   req.Format,
		Count:    len(logs),
	}, nil
}

func formatCSV(logs []domain.AuditLog) ([]byte, error) {
	rows := make([][]string, 0, len(logs))
	for _, log := range logs {
		metadataJSON, _ := json.Marshal(log.Metadata)
		rows = append(rows, []string{
			log.CreatedAt.Format(time.RFC3339),
			log.ActorType,
			formatStringPtr(log.ActorID),
			log.Action,
			log.TargetType,
			formatStringPtr(log.TargetID),
			string(metadataJSON),
		})
	}
	return WriteCSV([]string{
		"timestamp",
		"actor_type",
		"actor_id",
		"action",
		"target_type",
		"target_id",
		"metadata",
	}, rows)
}

func formatJSON(logs []domain.AuditLog) ([]byte, error) {
	type exportRecord struct {
		Timestamp  string         `json:"timestamp"`
		ActorType  string         `json:"actor_type"`
		ActorID    string         `json:"actor_id,omitempty"`
		Action     string         `json:"action"`
		TargetType string         `json:"target_type"`
		TargetID   string         `json:"target_id,omitempty"`
		Metadata   map[string]any `json:"metadata,omitempty"`
	}

	records := make([]exportRecord, 0, len(logs))
	for _, log := range logs {
		records = append(records, exportRecord{
			Timestamp:  log.CreatedAt.Format(time.RFC3339),
			ActorType:  log.ActorType,
			ActorID:    formatStringPtr(log.ActorID),
			Action:     log.Action,
			TargetType: log.TargetType,
			TargetID:   formatStringPtr(log.TargetID),
			Metadata:   log.Metadata,
		})
	}
	return json.MarshalIndent(records, "", "  ")
}

// WriteCSV renders a header and rows. Shared with the release history export.
func WriteCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Checksum is the hex SHA-256 of an export payload, used for integrity verification.
func Checksum(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func formatStringPtr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
