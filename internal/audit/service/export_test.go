package service_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/railzwaylabs/frontdesk/internal/actor"
	"github.com/railzwaylabs/frontdesk/internal/audit/domain"
	"github.com/railzwaylabs/frontdesk/internal/audit/service"
	"github.com/railzwaylabs/frontdesk/internal/clock"
	"github.com/railzwaylabs/frontdesk/internal/testsupport"
	"github.com/railzwaylabs/frontdesk/internal/testsupport/harness"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEntries(t *testing.T, app *harness.App) {
	t.Helper()
	base := actor.WithActor(context.Background(), actor.Actor{Type: actor.TypeUser, ID: "clerk-1"})
	for i, action := range []string{"reservation.quick_rent", "payment.payment", "room.release"} {
		ctx := clock.WithAsOf(base, time.Date(2026, time.March, 10, 9+i, 0, 0, 0, time.UTC))
		target := "target-" + action
		require.NoError(t, app.Audit.AuditLog(ctx, nil, action, "reservation", &target, map[string]any{"step": i}))
	}
}

func TestExportCSV(t *testing.T) {
	app := harness.New(t)
	writeEntries(t, app)

	out, err := app.AuditExport.Export(context.Background(), domain.ExportRequest{
		StartDate: testsupport.Date(2026, time.March, 10),
		EndDate:   testsupport.Date(2026, time.March, 11),
		Format:    domain.ExportFormatCSV,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Count)
	assert.Equal(t, service.Checksum(out.Data), out.Checksum)

	lines := strings.Split(strings.TrimSpace(string(out.Data)), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[1], "reservation.quick_rent")
	assert.Contains(t, lines[1], "clerk-1")
	assert.Contains(t, lines[3], "room.release")
}

func TestExportJSONFiltersActions(t *testing.T) {
	app := harness.New(t)
	writeEntries(t, app)

	out, err := app.AuditExport.Export(context.Background(), domain.ExportRequest{
		StartDate: testsupport.Date(2026, time.March, 10),
		EndDate:   testsupport.Date(2026, time.March, 11),
		Format:    domain.ExportFormatJSON,
		Actions:   []string{"payment.payment"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, out.Count)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(out.Data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "payment.payment", rows[0]["action"])
}

func TestExportRejectsBadRequests(t *testing.T) {
	app := harness.New(t)
	day := testsupport.Date(2026, time.March, 10)

	_, err := app.AuditExport.Export(context.Background(), domain.ExportRequest{StartDate: day, EndDate: day, Format: domain.ExportFormatCSV})
	require.ErrorIs(t, err, domain.ErrInvalidRange)

	_, err = app.AuditExport.Export(context.Background(), domain.ExportRequest{StartDate: day, EndDate: day.AddDate(0, 0, 1), Format: "xml"})
	require.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}
