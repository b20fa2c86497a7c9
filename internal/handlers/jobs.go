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

type JobHandler struct {
	DB       *gorm.DB
	PageSize int
}

func NewJobHandler(db *gorm.DB) *JobHandler { return &JobHandler{DB: db} }

// List: GET /jobs. Jobs have no follow-up history, so the date-range
// filter compares their single action date.
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	var jobs []models.Job
	if err := h.DB.Order("id desc").Find(&jobs).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_jobs", nil)
		return
	}
	lq := parseListQuery(r, h.PageSize)
	entities := make([]followup.Entity, 0, len(jobs))
	for _, j := range jobs {
		entities = append(entities, j)
	}
	filtered := followup.FilterEntities(entities, lq.Filter)
	page := followup.Paginate(filtered, lq.Page, lq.PageSize)
	items := make([]models.Job, 0, len(page))
	for _, e := range page {
		items = append(items, e.(models.Job))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items":       items,
		"total":       len(filtered),
		"page":        lq.Page,
		"total_pages": followup.TotalPages(len(filtered), lq.PageSize),
	})
}

type jobInput struct {
	CompanyName   string `json:"companyName"`
	JobTitle      string `json:"jobTitle"`
	ContactPerson string `json:"contactPerson"`
	ContactEmail  string `json:"contactEmail"`
	Location      string `json:"location"`
	Status        string `json:"status"`
	FollowUpDate  string `json:"followUpDate"`
}

// Create: POST /jobs
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	var input jobInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("companyName", input.CompanyName, v)
	validation.Required("jobTitle", input.JobTitle, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	job := models.Job{
		UserID:        uid,
		CompanyName:   input.CompanyName,
		JobTitle:      input.JobTitle,
		ContactPerson: input.ContactPerson,
		ContactEmail:  input.ContactEmail,
		Location:      input.Location,
		FollowUpDate:  parseTimePtr(input.FollowUpDate),
	}
	if input.Status != "" {
		job.Status = input.Status
	}
	if err := h.DB.Create(&job).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_job", nil)
		return
	}
	audit(h.DB, uid, "Job", job.ID, "create")
	httpx.JSON(w, http.StatusCreated, job)
}

// Update: PUT /jobs/{id}
func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var job models.Job
	if err := h.DB.First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_job", nil)
		return
	}
	var input jobInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if input.CompanyName != "" {
		job.CompanyName = input.CompanyName
	}
	if input.JobTitle != "" {
		job.JobTitle = input.JobTitle
	}
	job.ContactPerson = input.ContactPerson
	job.ContactEmail = input.ContactEmail
	job.Location = input.Location
	if input.Status != "" {
		job.Status = input.Status
	}
	if err := h.DB.Save(&job).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_job", nil)
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	audit(h.DB, uid, "Job", job.ID, "update")
	httpx.JSON(w, http.StatusOK, job)
}

// SetFollowUp: POST /jobs/{id}/followup overwrites the single action
// slot; the previous upcoming date rolls into LastFollowUpDate.
func (h *JobHandler) SetFollowUp(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var job models.Job
	if err := h.DB.First(&job, id).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	var input struct {
		FollowUpDate string `json:"followUpDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	at := parseTimePtr(input.FollowUpDate)
	if at == nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"followUpDate": "unparseable"})
		return
	}
	job.LastFollowUpDate = job.FollowUpDate
	job.FollowUpDate = at
	if err := h.DB.Save(&job).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_job", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, job)
}

// Delete: DELETE /jobs/{id}
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.DB.Delete(&models.Job{}, id).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_job", nil)
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	audit(h.DB, uid, "Job", id, "delete")
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
