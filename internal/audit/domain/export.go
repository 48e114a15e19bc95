package domain

import (
	"context"
	"strings"
	"time"

	"github.com/railzwaylabs/frontdesk/internal/errs"
)

// ExportFormat is the wire format shared by the audit and release history exports.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatJSON ExportFormat = "json"
)

var (
	ErrUnsupportedFormat = errs.Validation("unsupported_export_format", "export format must be csv or json")
	ErrInvalidRange      = errs.Validation("invalid_export_range", "export end must be after start")
)

// ParseExportFormat accepts "csv" or "json" in any case. Empty means csv.
func ParseExportFormat(raw string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return ExportFormatCSV, nil
	case ExportFormatCSV, ExportFormatJSON:
		return f, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

func (f ExportFormat) Valid() bool {
	return f == ExportFormatCSV || f == ExportFormatJSON
}

func (f ExportFormat) ContentType() string {
	if f == ExportFormatJSON {
		return "application/json"
	}
	return "text/csv"
}

func (f ExportFormat) Extension() string {
	return "." + string(f)
}

// ExportRequest selects audit entries created in [StartDate, EndDate).
type ExportRequest struct {
	StartDate time.Time
	EndDate   time.Time
	Format    ExportFormat
	Actions   []string
}

// ExportResult carries the rendered file and the SHA-256 of its bytes.
type ExportResult struct {
	Data     []byte
	Checksum string
	Format   ExportFormat
	Count    int
}

type ExportService interface {
	Export(ctx context.Context, req ExportRequest) (*ExportResult, error)
}
