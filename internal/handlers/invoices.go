package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/viddeveloper111/invoiceadmin-sub000/internal/auth"
	"github.com/viddeveloper111/invoiceadmin-sub000/internal/httpx"
	"github.com/viddeveloper111/invoiceadmin-sub000/internal/models"
	"github.com/viddeveloper111/invoiceadmin-sub000/internal/services"
	"github.com/viddeveloper111/invoiceadmin-sub000/internal/validation"
)

type InvoiceHandler struct {
	DB  *gorm.DB
	Svc *services.InvoiceService
}

func NewInvoiceHandler(db *gorm.DB, svc *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{DB: db, Svc: svc}
}

// List: GET /invoices. Totals are derived per invoice, never read from
// storage.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	var invs []models.Invoice
	if err := h.DB.Preload("Items.Product").Preload("Client").Order("id desc").Find(&invs).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_invoices", nil)
		return
	}
	type invoiceView struct {
		models.Invoice
		Totals services.Totals `json:"totals"`
	}
	items := make([]invoiceView, 0, len(invs))
	for i := range invs {
		items = append(items, invoiceView{Invoice: invs[i], Totals: h.Svc.ComputeInvoiceTotals(&invs[i])})
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
}

// Create: POST /invoices
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	type itemReq struct {
		ProductID uint `json:"product_id"`
		Quantity  int  `json:"quantity"`
	}
	var req struct {
		ClientID uint      `json:"client_id"`
		Items    []itemReq `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.ClientID == 0 || len(req.Items) == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"client_id": "required", "items": "required"})
		return
	}
	productIDs := make([]uint, 0, len(req.Items))
	v := validation.Violations{}
	for _, it := range req.Items {
		if it.ProductID == 0 {
			v["product_id"] = "required"
		}
		validation.PositiveInt("quantity", it.Quantity, v)
		productIDs = append(productIDs, it.ProductID)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	var client models.Client
	if err := h.DB.First(&client, req.ClientID).Error; err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_client", nil)
		return
	}
	var products []models.Product
	if err := h.DB.Where("id IN ? AND deleted_at IS NULL", productIDs).Find(&products).Error; err != nil || len(products) != len(productIDs) {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_products", nil)
		return
	}

	inv := models.Invoice{Status: "draft", UserID: uid, ClientID: req.ClientID}
	items := make([]models.InvoiceItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, models.InvoiceItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].InvoiceID = inv.ID
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_invoice", nil)
		return
	}
	if err := h.DB.Preload("Items.Product").Preload("Client").First(&inv, inv.ID).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_invoice", nil)
		return
	}
	audit(h.DB, uid, "Invoice", inv.ID, "create")
	totals := h.Svc.ComputeInvoiceTotals(&inv)
	httpx.JSON(w, http.StatusCreated, map[string]any{"id": inv.ID, "status": inv.Status, "totals": totals})
}

// Get: GET /invoices/{id}
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var inv models.Invoice
	if err := h.DB.Preload("Items.Product").Preload("Client").First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_invoice", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"invoice": inv, "totals": h.Svc.ComputeInvoiceTotals(&inv)})
}

// Finalize: POST /invoices/{id}/finalize
func (h *InvoiceHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var inv models.Invoice
	if err := h.DB.Preload("Items").First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_invoice", nil)
		return
	}
	if len(inv.Items) == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "empty_invoice", nil)
		return
	}
	// Prevent finalize if any product was soft-deleted in the meantime
	var cnt int64
	if err := h.DB.Table("invoice_items ii").
		Joins("JOIN products p ON p.id = ii.product_id").
		Where("ii.invoice_id = ? AND p.deleted_at IS NOT NULL", inv.ID).
		Count(&cnt).Error; err == nil && cnt > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "contains_deleted_products", nil)
		return
	}
	if inv.Status != "final" {
		if err := h.DB.Model(&inv).Update("status", "final").Error; err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_finalize", nil)
			return
		}
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "finalized"})
}
