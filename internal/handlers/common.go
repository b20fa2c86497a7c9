package handlers

import (
	"net/http"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/viddeveloper111/invoiceadmin-sub000/internal/followup"
	"github.com/viddeveloper111/invoiceadmin-sub000/internal/models"
)

// DefaultPageSize matches the SPA's list views. Deployments override it via
// the PAGE_SIZE env var, requests via the limit query param.
const DefaultPageSize = 6

var timeLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// parseTimePtr parses a request-supplied timestamp, nil when absent or
// malformed. Malformed dates are dropped rather than rejected so one bad
// field never fails a whole update.
func parseTimePtr(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// listQuery carries the common list-view parameters.
type listQuery struct {
	Filter   followup.Filter
	Page     int
	PageSize int
}

// parseListQuery reads the common list parameters. defaultSize is the
// configured page size; zero falls back to DefaultPageSize.
func parseListQuery(r *http.Request, defaultSize int) listQuery {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	q := r.URL.Query()
	lq := listQuery{
		Filter: followup.Filter{
			ClientName:    q.Get("clientName"),
			ContactPerson: q.Get("contactPerson"),
			Range: followup.DateRange{
				Start: q.Get("startDate"),
				End:   q.Get("endDate"),
			},
		},
		Page:     1,
		PageSize: defaultSize,
	}
	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			lq.Page = n
		}
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			lq.PageSize = n
		}
	}
	return lq
}

func pathID(r *http.Request) (uint, bool) {
	idStr := r.PathValue("id")
	if idStr == "" {
		idStr = r.URL.Query().Get("id")
	}
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func nowMillis() int64 { return time.Now().UnixMilli() }

// audit records a change trail entry; failures are ignored so auditing can
// never block the operation itself.
func audit(db *gorm.DB, userID uint, entityType string, entityID uint, action string) {
	_ = db.Create(&models.AuditLog{
		UserID:     userID,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
	}).Error
}
