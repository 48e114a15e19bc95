package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	auditdomain "github.com/railzwaylabs/frontdesk/internal/audit/domain"
	releasedomain "github.com/railzwaylabs/frontdesk/internal/release/domain"
)

const maxExportWindow = 90 * 24 * time.Hour

// ExportAuditLogs
// GET /api/v1/audit/export?start_date=&end_date=&format=&actions=
func (s *Server) ExportAuditLogs(c *gin.Context) {
	startDateStr := strings.TrimSpace(c.Query("start_date"))
	endDateStr := strings.TrimSpace(c.Query("end_date"))
	if startDateStr == "" || endDateStr == "" {
		AbortWithError(c, invalidRequestError())
		return
	}

	start, end, ok := exportWindow(c, startDateStr, endDateStr)
	if !ok {
		return
	}
	format, ok := exportFormat(c)
	if !ok {
		return
	}

	var actions []string
	if raw := strings.TrimSpace(c.Query("actions")); raw != "" {
		for _, a := range strings.Split(raw, ",") {
			if a = strings.TrimSpace(a); a != "" {
				actions = append(actions, a)
			}
		}
	}

	result, err := s.auditExportSvc.Export(c.Request.Context(), auditdomain.ExportRequest{
		StartDate: start,
		EndDate:   end,
		Format:    format,
		Actions:   actions,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	writeExport(c, "audit_export_"+startDateStr+"_"+endDateStr, result)
}

// ListReleaseHistory
// GET /api/v1/releases?room_id=&start_date=&end_date=
func (s *Server) ListReleaseHistory(c *gin.Context) {
	filter, ok := releaseFilter(c)
	if !ok {
		return
	}

	rows, err := s.releaseSvc.ListHistory(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, rows, len(rows))
}

// ExportReleaseHistory
// GET /api/v1/releases/export?room_id=&start_date=&end_date=&format=
func (s *Server) ExportReleaseHistory(c *gin.Context) {
	filter, ok := releaseFilter(c)
	if !ok {
		return
	}
	format, ok := exportFormat(c)
	if !ok {
		return
	}

	result, err := s.releaseSvc.ExportHistory(c.Request.Context(), filter, format)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	name := "release_history"
	if !filter.From.IsZero() {
		name += "_" + filter.From.Format(dateLayout)
	}
	writeExport(c, name, result)
}

func releaseFilter(c *gin.Context) (releasedomain.HistoryFilter, bool) {
	var filter releasedomain.HistoryFilter

	if raw := strings.TrimSpace(c.Query("room_id")); raw != "" {
		id, err := snowflake.ParseString(raw)
		if err != nil {
			AbortWithError(c, invalidRequestError())
			return filter, false
		}
		filter.RoomID = &id
	}

	startDateStr := strings.TrimSpace(c.Query("start_date"))
	endDateStr := strings.TrimSpace(c.Query("end_date"))
	if startDateStr == "" && endDateStr == "" {
		return filter, true
	}

	from, err := parseDate(startDateStr)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return filter, false
	}
	to, err := parseDate(endDateStr)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return filter, false
	}
	if !to.IsZero() {
		to = to.Add(24 * time.Hour)
	}
	filter.From = from
	filter.To = to
	return filter, true
}

// exportWindow parses an inclusive date range into a half-open window.
func exportWindow(c *gin.Context, startDateStr, endDateStr string) (time.Time, time.Time, bool) {
	start, err := time.Parse(dateLayout, startDateStr)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(dateLayout, endDateStr)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return time.Time{}, time.Time{}, false
	}
	end = end.Add(24 * time.Hour)

	if end.Before(start) || end.Sub(start) > maxExportWindow {
		AbortWithError(c, invalidRequestError())
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func exportFormat(c *gin.Context) (auditdomain.ExportFormat, bool) {
	format, err := auditdomain.ParseExportFormat(c.Query("format"))
	if err != nil {
		AbortWithError(c, err)
		return "", false
	}
	return format, true
}

func writeExport(c *gin.Context, basename string, result *auditdomain.ExportResult) {
	c.Header("X-Audit-Export-Checksum", result.Checksum)
	c.Header("X-Audit-Export-Count", strconv.Itoa(result.Count))

	c.Header("Content-Disposition", "attachment; filename=\""+basename+result.Format.Extension()+"\"")
	c.Data(http.StatusOK, result.Format.ContentType(), result.Data)
}
