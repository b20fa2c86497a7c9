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

type ClientHandler struct {
	DB *gorm.DB
	// PageSize is the configured default list page size; zero means
	// DefaultPageSize.
	PageSize int
}

func NewClientHandler(db *gorm.DB) *ClientHandler { return &ClientHandler{DB: db} }

// List: GET /clients. Newest first, then name/contact/date-range filtering
// and pagination over the fetched collection, mirroring the console's
// client-side semantics.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	var clients []models.Client
	if err := h.DB.Preload("Followups").Order("id desc").Find(&clients).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_clients", nil)
		return
	}
	lq := parseListQuery(r, h.PageSize)
	entities := make([]followup.Entity, 0, len(clients))
	for _, c := range clients {
		entities = append(entities, c)
	}
	filtered := followup.FilterEntities(entities, lq.Filter)
	page := followup.Paginate(filtered, lq.Page, lq.PageSize)
	items := make([]models.Client, 0, len(page))
	for _, e := range page {
		items = append(items, e.(models.Client))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items":       items,
		"total":       len(filtered),
		"page":        lq.Page,
		"total_pages": followup.TotalPages(len(filtered), lq.PageSize),
	})
}

type clientInput struct {
	ClientName        string `json:"clientName"`
	ContactPersonName string `json:"contactPersonName"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Address           string `json:"address"`
	City              string `json:"city"`
	StateName         string `json:"stateName"`
	GSTIN             string `json:"gstin"`
}

// Create: POST /clients
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	var input clientInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("clientName", input.ClientName, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	client := models.Client{
		UserID:            uid,
		ClientName:        input.ClientName,
		ContactPersonName: input.ContactPersonName,
		Email:             input.Email,
		Phone:             input.Phone,
		Address:           input.Address,
		City:              input.City,
		StateName:         input.StateName,
		GSTIN:             input.GSTIN,
	}
	if err := h.DB.Create(&client).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_client", nil)
		return
	}
	audit(h.DB, uid, "Client", client.ID, "create")
	httpx.JSON(w, http.StatusCreated, client)
}

// Get: GET /clients/{id}
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var client models.Client
	if err := h.DB.Preload("Followups").First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_client", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, client)
}

// Update: PUT /clients/{id}
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var client models.Client
	if err := h.DB.First(&client, id).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	var input clientInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if input.ClientName != "" {
		client.ClientName = input.ClientName
	}
	client.ContactPersonName = input.ContactPersonName
	client.Email = input.Email
	client.Phone = input.Phone
	client.Address = input.Address
	client.City = input.City
	client.StateName = input.StateName
	client.GSTIN = input.GSTIN
	if err := h.DB.Save(&client).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_client", nil)
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	audit(h.DB, uid, "Client", client.ID, "update")
	httpx.JSON(w, http.StatusOK, client)
}

// Delete: DELETE /clients/{id}
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.DB.Delete(&models.Client{}, id).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_client", nil)
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	audit(h.DB, uid, "Client", id, "delete")
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
