package handlers

import (
	"net/http"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/viddeveloper111/invoiceadmin-sub000/internal/followup"
	"github.com/viddeveloper111/invoiceadmin-sub000/internal/httpx"
	"github.com/viddeveloper111/invoiceadmin-sub000/internal/models"
)

// DashboardHandler serves the "upcoming follow-ups" cards on the console
// home screen.
type DashboardHandler struct{ DB *gorm.DB }

func NewDashboardHandler(db *gorm.DB) *DashboardHandler { return &DashboardHandler{DB: db} }

// Upcoming: GET /dashboard/upcoming?kind=clients|jobs|projects&top=N
func (h *DashboardHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	top := 3
	if v := r.URL.Query().Get("top"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 20 {
			top = n
		}
	}

	var entities []followup.Entity
	switch kind {
	case "clients", "":
		var clients []models.Client
		if err := h.DB.Preload("Followups").Find(&clients).Error; err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_clients", nil)
			return
		}
		for _, c := range clients {
			entities = append(entities, c)
		}
	case "jobs":
		var jobs []models.Job
		if err := h.DB.Find(&jobs).Error; err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_jobs", nil)
			return
		}
		for _, j := range jobs {
			entities = append(entities, j)
		}
	case "projects":
		var projects []models.Project
		if err := h.DB.Preload("Followups").Find(&projects).Error; err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_projects", nil)
			return
		}
		for _, p := range projects {
			entities = append(entities, p)
		}
	default:
		httpx.JSONError(w, http.StatusBadRequest, "invalid_kind", nil)
		return
	}

	ranked, total := followup.RankUpcoming(entities, nowMillis(), top)
	type upcomingView struct {
		Name       string `json:"name"`
		Contact    string `json:"contact,omitempty"`
		FollowUpAt string `json:"follow_up_at"`
	}
	items := make([]upcomingView, 0, len(ranked))
	for _, u := range ranked {
		items = append(items, upcomingView{
			Name:       u.Entity.DisplayName(),
			Contact:    u.Entity.ContactName(),
			FollowUpAt: time.UnixMilli(u.At).UTC().Format(time.RFC3339),
		})
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items, "upcoming_total": total})
}
