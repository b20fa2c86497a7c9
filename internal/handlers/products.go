package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/viddeveloper111/invoiceadmin-sub000/internal/auth"
	"github.com/viddeveloper111/invoiceadmin-sub000/internal/httpx"
	"github.com/viddeveloper111/invoiceadmin-sub000/internal/models"
	"github.com/viddeveloper111/invoiceadmin-sub000/internal/validation"
)

type ProductHandler struct{ DB *gorm.DB }

func NewProductHandler(db *gorm.DB) *ProductHandler { return &ProductHandler{DB: db} }

var safeQueryRegex = regexp.MustCompile(`[^a-zA-Z0-9 \-_]`)

// List: GET /products with optional ?q= name search.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	dbq := h.DB.Where("deleted_at IS NULL")
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		like := "%" + strings.ToLower(safeQueryRegex.ReplaceAllString(q, "")) + "%"
		dbq = dbq.Where("lower(name) LIKE ?", like)
	}
	var products []models.Product
	if err := dbq.Order("id desc").Find(&products).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_products", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": products, "total": len(products)})
}

type productInput struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	GSTRatePercent float64 `json:"gstRatePercent"`
	HSNCode        string  `json:"hsnCode"`
}

func validateProduct(input productInput) validation.Violations {
	v := validation.Violations{}
	validation.Required("name", input.Name, v)
	// NaN or negative prices must never reach the totals computation
	validation.NonNegativeFloat("price", input.Price, v)
	validation.RangeFloat("gstRatePercent", input.GSTRatePercent, 0, 100, v)
	return v
}

// Create: POST /products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input productInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := validateProduct(input); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	product := models.Product{
		UserID:         uid,
		Name:           input.Name,
		Description:    input.Description,
		Price:          input.Price,
		GSTRatePercent: input.GSTRatePercent,
		HSNCode:        input.HSNCode,
	}
	if err := h.DB.Create(&product).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_product", nil)
		return
	}
	audit(h.DB, uid, "Product", product.ID, "create")
	httpx.JSON(w, http.StatusCreated, product)
}

// Update: PUT /products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	var input productInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := validateProduct(input); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.GSTRatePercent = input.GSTRatePercent
	product.HSNCode = input.HSNCode
	if err := h.DB.Save(&product).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_product", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

// Delete: DELETE /products/{id}. Soft delete so finalized invoices keep
// their line references.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.DB.Delete(&models.Product{}, id).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_product", nil)
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	audit(h.DB, uid, "Product", id, "delete")
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
