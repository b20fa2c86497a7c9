package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/viddeveloper111/invoiceadmin-sub000/internal/auth"
	"github.com/viddeveloper111/invoiceadmin-sub000/internal/followup"
	"github.com/viddeveloper111/invoiceadmin-sub000/internal/httpx"
	"github.com/viddeveloper111/invoiceadmin-sub000/internal/models"
	"github.com/viddeveloper111/invoiceadmin-sub000/internal/validation"
)

type ProjectHandler struct {
	DB       *gorm.DB
	PageSize int
}

func NewProjectHandler(db *gorm.DB) *ProjectHandler { return &ProjectHandler{DB: db} }

// List: GET /projects
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	var projects []models.Project
	if err := h.DB.Preload("Followups").Order("id desc").Find(&projects).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_projects", nil)
		return
	}
	lq := parseListQuery(r, h.PageSize)
	entities := make([]followup.Entity, 0, len(projects))
	for _, p := range projects {
		entities = append(entities, p)
	}
	filtered := followup.FilterEntities(entities, lq.Filter)
	page := followup.Paginate(filtered, lq.Page, lq.PageSize)
	items := make([]models.Project, 0, len(page))
	for _, e := range page {
		items = append(items, e.(models.Project))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items":       items,
		"total":       len(filtered),
		"page":        lq.Page,
		"total_pages": followup.TotalPages(len(filtered), lq.PageSize),
	})
}

type projectInput struct {
	ProjectName       string `json:"projectName"`
	ContactPersonName string `json:"contactPersonName"`
	ClientID          uint   `json:"clientId"`
	Description       string `json:"description"`
	Status            string `json:"status"`
	FollowUpDate      string `json:"followUpDate"`
}

// Create: POST /projects
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	var input projectInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("projectName", input.ProjectName, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	project := models.Project{
		UserID:            uid,
		ProjectName:       input.ProjectName,
		ContactPersonName: input.ContactPersonName,
		ClientID:          input.ClientID,
		Description:       input.Description,
		FollowUpDate:      parseTimePtr(input.FollowUpDate),
	}
	if input.Status != "" {
		project.Status = input.Status
	}
	if err := h.DB.Create(&project).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_project", nil)
		return
	}
	audit(h.DB, uid, "Project", project.ID, "create")
	httpx.JSON(w, http.StatusCreated, project)
}

// Update: PUT /projects/{id}
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var project models.Project
	if err := h.DB.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_project", nil)
		return
	}
	var input projectInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if input.ProjectName != "" {
		project.ProjectName = input.ProjectName
	}
	project.ContactPersonName = input.ContactPersonName
	project.Description = input.Description
	if input.ClientID != 0 {
		project.ClientID = input.ClientID
	}
	if input.Status != "" {
		project.Status = input.Status
	}
	if at := parseTimePtr(input.FollowUpDate); at != nil {
		project.LastFollowUpDate = project.FollowUpDate
		project.FollowUpDate = at
	}
	if err := h.DB.Save(&project).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_project", nil)
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	audit(h.DB, uid, "Project", project.ID, "update")
	httpx.JSON(w, http.StatusOK, project)
}

// Delete: DELETE /projects/{id}
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.DB.Delete(&models.Project{}, id).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_project", nil)
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	audit(h.DB, uid, "Project", id, "delete")
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
