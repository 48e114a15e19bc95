package service

import (
	"context"
	"encoding/json"
	"time"

	auditdomain "github.com/railzwaylabs/frontdesk/internal/audit/domain"
	auditservice "github.com/railzwaylabs/frontdesk/internal/audit/service"
	"github.com/railzwaylabs/frontdesk/internal/release/domain"
)

func (s *Service) ListHistory(ctx context.Context, filter domain.HistoryFilter) ([]domain.RoomReleaseHistory, error) {
	if !filter.From.IsZero() && !filter.To.IsZero() && !filter.To.After(filter.From) {
		return nil, auditdomain.ErrInvalidRange
	}
	return s.repo.List(ctx, s.db, filter)
}

// ExportHistory renders release snapshots in the audit export formats with
// the same checksum.
func (s *Service) ExportHistory(ctx context.Context, filter domain.HistoryFilter, format auditdomain.ExportFormat) (*auditdomain.ExportResult, error) {
	if !format.Valid() {
		return nil, auditdomain.ErrUnsupportedFormat
	}
	rows, err := s.ListHistory(ctx, filter)
	if err != nil {
		return nil, err
	}

	var data []byte
	if format == auditdomain.ExportFormatCSV {
		data, err = historyCSV(rows)
	} else {
		data, err = json.MarshalIndent(rows, "", "  ")
	}
	if err != nil {
		return nil, err
	}

	return &auditdomain.ExportResult{
		Data:     data,
		Checksum: auditservice.Checksum(data),
		Format:   format,
		Count:    len(rows),
	}, nil
}

func historyCSV(rows []domain.RoomReleaseHistory) ([]byte, error) {
	records := make([][]string, 0, len(rows))
	for _, h := range rows {
		records = append(records, []string{
			h.ReleasedAt.Format(time.RFC3339),
			h.RoomCode,
			h.ReservationID.String(),
			h.CustomerName,
			h.CheckInAt.Format(time.RFC3339),
			h.CheckOutAt.Format(time.RFC3339),
			h.TotalAmount.StringFixed(2),
			h.Paid.StringFixed(2),
			h.Refunded.StringFixed(2),
			h.SalesTotal.StringFixed(2),
			h.SettlementAmount.StringFixed(2),
			h.SettlementMethod,
			h.TargetRoomState,
			h.ReleasedBy,
		})
	}
	return auditservice.WriteCSV([]string{
		"released_at",
		"room_code",
		"reservation_id",
		"customer_name",
		"check_in_at",
		"check_out_at",
		"total_amount",
		"paid",
		"refunded",
		"sales_total",
		"settlement_amount",
		"settlement_method",
		"target_room_state",
		"released_by",
	}, records)
}
