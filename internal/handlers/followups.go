package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/viddeveloper111/invoiceadmin-sub000/internal/auth"
	"github.com/viddeveloper111/invoiceadmin-sub000/internal/httpx"
	"github.com/viddeveloper111/invoiceadmin-sub000/internal/models"
	"github.com/viddeveloper111/invoiceadmin-sub000/internal/validation"
)

// FollowupHandler manages the polymorphic follow-up history shared by
// clients and projects. Records are only ever created or marked completed.
type FollowupHandler struct{ DB *gorm.DB }

func NewFollowupHandler(db *gorm.DB) *FollowupHandler { return &FollowupHandler{DB: db} }

func (h *FollowupHandler) ownerExists(ownerType string, ownerID uint) (bool, error) {
	var count int64
	var err error
	switch ownerType {
	case "Client":
		err = h.DB.Model(&models.Client{}).Where("id = ?", ownerID).Count(&count).Error
	case "Project":
		err = h.DB.Model(&models.Project{}).Where("id = ?", ownerID).Count(&count).Error
	default:
		return false, nil
	}
	return count > 0, err
}

// Add: POST /clients/{id}/followups and POST /projects/{id}/followups
func (h *FollowupHandler) Add(ownerType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := pathID(r)
		if !ok {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
			return
		}
		exists, err := h.ownerExists(ownerType, ownerID)
		if err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_owner", nil)
			return
		}
		if !exists {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		var input struct {
			Description string `json:"description"`
			DateTime    string `json:"datetime"`
		}
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
			return
		}
		v := validation.Violations{}
		validation.Required("description", input.Description, v)
		validation.Required("datetime", input.DateTime, v)
		at := parseTimePtr(input.DateTime)
		if input.DateTime != "" && at == nil {
			v["datetime"] = "unparseable"
		}
		if !v.Empty() {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
			return
		}
		rec := models.FollowupRecord{
			OwnerType:   ownerType,
			OwnerID:     ownerID,
			Description: input.Description,
			DateTime:    *at,
		}
		if err := h.DB.Create(&rec).Error; err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_followup", nil)
			return
		}
		uid, _ := auth.UserIDFromContext(r.Context())
		audit(h.DB, uid, ownerType+"Followup", rec.ID, "create")
		httpx.JSON(w, http.StatusCreated, rec)
	}
}

// Complete: POST /followups/{id}/complete
func (h *FollowupHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var rec models.FollowupRecord
	if err := h.DB.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_followup", nil)
		return
	}
	if !rec.Completed {
		if err := h.DB.Model(&rec).Update("completed", true).Error; err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_complete_followup", nil)
			return
		}
		rec.Completed = true
	}
	httpx.JSON(w, http.StatusOK, rec)
}
