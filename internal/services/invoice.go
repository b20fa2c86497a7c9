package services

import (
	"strings"

	"github.com/viddeveloper111/invoiceadmin-sub000/internal/models"
)

// LineItem is one (product, quantity) pair selected for an invoice.
type LineItem struct {
	ProductID uint
	Quantity  int
}

// Totals is the derived GST breakdown for an invoice. It is recomputed from
// line items and the client's state whenever either changes; never stored.
type Totals struct {
	SubTotal    float64 `json:"sub_total"`
	CGST        float64 `json:"cgst"`
	SGST        float64 `json:"sgst"`
	TotalAmount float64 `json:"total_amount"`
}

// InvoiceService encapsulates invoice-related business logic.
// HomeState is the seller's registration state; a client in the same state
// gets the intra-state CGST+SGST split, anyone else the inter-state rule.
type InvoiceService struct {
	HomeState string
}

func NewInvoiceService(homeState string) *InvoiceService {
	return &InvoiceService{HomeState: homeState}
}

// ComputeTotals computes subtotal and the CGST/SGST split for the given
// lines. Unknown product references contribute nothing rather than failing
// the whole computation. Intra-state GST is split half/half between CGST and
// SGST; inter-state GST goes entirely to the SGST accumulator, which stands
// in for IGST for compatibility with the existing console. No rounding is
// applied here; callers round for display only.
func (s *InvoiceService) ComputeTotals(items []LineItem, productsByID map[uint]models.Product, clientStateName string) Totals {
	var subTotal, gst float64
	for _, it := range items {
		p, ok := productsByID[it.ProductID]
		if !ok {
			continue
		}
		lineSubtotal := p.Price * float64(it.Quantity)
		subTotal += lineSubtotal
		gst += lineSubtotal * p.GSTRatePercent / 100
	}
	t := Totals{SubTotal: subTotal}
	if strings.EqualFold(strings.TrimSpace(clientStateName), strings.TrimSpace(s.HomeState)) {
		t.CGST = gst / 2
		t.SGST = gst / 2
	} else {
		t.SGST = gst
	}
	t.TotalAmount = t.SubTotal + t.CGST + t.SGST
	return t
}

// ComputeInvoiceTotals derives totals for a stored invoice with Items.Product
// and Client preloaded.
func (s *InvoiceService) ComputeInvoiceTotals(inv *models.Invoice) Totals {
	if inv == nil {
		return Totals{}
	}
	items := make([]LineItem, 0, len(inv.Items))
	products := make(map[uint]models.Product, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, LineItem{ProductID: it.ProductID, Quantity: it.Quantity})
		products[it.ProductID] = it.Product
	}
	return s.ComputeTotals(items, products, inv.Client.StateName)
}
