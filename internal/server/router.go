package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/viddeveloper111/invoiceadmin-sub000/internal/auth"
	"github.com/viddeveloper111/invoiceadmin-sub000/internal/config"
	"github.com/viddeveloper111/invoiceadmin-sub000/internal/handlers"
	"github.com/viddeveloper111/invoiceadmin-sub000/internal/httpx"
	"github.com/viddeveloper111/invoiceadmin-sub000/internal/middleware"
	"github.com/viddeveloper111/invoiceadmin-sub000/internal/models"
	"github.com/viddeveloper111/invoiceadmin-sub000/internal/services"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, cfg config.Config) http.Handler {
	mux := http.NewServeMux()

	// RequireAuth additionally checks the session still maps to a real user.
	auth.SetUserVerifier(func(_ context.Context, uid uint) bool {
		var count int64
		if err := db.Model(&models.User{}).Where("id = ?", uid).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth endpoints
	authHandler := handlers.NewAuthHandler(db)
	authHandler.Register(mux)

	guard := func(h http.HandlerFunc) http.Handler { return auth.RequireAuth(h) }

	// Clients + follow-up history
	ch := handlers.NewClientHandler(db)
	ch.PageSize = cfg.PageSize
	fh := handlers.NewFollowupHandler(db)
	mux.Handle("GET /clients", guard(ch.List))
	mux.Handle("POST /clients", guard(ch.Create))
	mux.Handle("GET /clients/{id}", guard(ch.Get))
	mux.Handle("PUT /clients/{id}", guard(ch.Update))
	mux.Handle("DELETE /clients/{id}", guard(ch.Delete))
	mux.Handle("POST /clients/{id}/followups", guard(fh.Add("Client")))
	mux.Handle("POST /followups/{id}/complete", guard(fh.Complete))

	// Jobs (single action follow-up slot, no history list)
	jh := handlers.NewJobHandler(db)
	jh.PageSize = cfg.PageSize
	mux.Handle("GET /jobs", guard(jh.List))
	mux.Handle("POST /jobs", guard(jh.Create))
	mux.Handle("PUT /jobs/{id}", guard(jh.Update))
	mux.Handle("DELETE /jobs/{id}", guard(jh.Delete))
	mux.Handle("POST /jobs/{id}/followup", guard(jh.SetFollowUp))

	// Projects
	ph := handlers.NewProjectHandler(db)
	ph.PageSize = cfg.PageSize
	mux.Handle("GET /projects", guard(ph.List))
	mux.Handle("POST /projects", guard(ph.Create))
	mux.Handle("PUT /projects/{id}", guard(ph.Update))
	mux.Handle("DELETE /projects/{id}", guard(ph.Delete))
	mux.Handle("POST /projects/{id}/followups", guard(fh.Add("Project")))

	// Products
	prh := handlers.NewProductHandler(db)
	mux.Handle("GET /products", guard(prh.List))
	mux.Handle("POST /products", guard(prh.Create))
	mux.Handle("PUT /products/{id}", guard(prh.Update))
	mux.Handle("DELETE /products/{id}", guard(prh.Delete))

	// Invoices
	invSvc := services.NewInvoiceService(cfg.HomeState)
	ih := handlers.NewInvoiceHandler(db, invSvc)
	mux.Handle("GET /invoices", guard(ih.List))
	mux.Handle("POST /invoices", guard(ih.Create))
	mux.Handle("GET /invoices/{id}", guard(ih.Get))
	mux.Handle("POST /invoices/{id}/finalize", guard(ih.Finalize))

	// Blogs (tenant-scoped)
	bh := handlers.NewBlogHandler(db)
	mux.Handle("GET /blogs", guard(bh.List))
	mux.Handle("POST /blogs", guard(bh.Create))
	mux.Handle("PUT /blogs/{id}", guard(bh.Update))
	mux.Handle("DELETE /blogs/{id}", guard(bh.Delete))
	mux.Handle("POST /blogs/sync", guard(bh.Sync))

	// Dashboard
	dh := handlers.NewDashboardHandler(db)
	mux.Handle("GET /dashboard/upcoming", guard(dh.Upcoming))

	// session parsing runs before RequireAuth sees the context
	return middleware.Tenant(auth.Middleware(withRecover(mux)))
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// WithLogging is the request log middleware applied around the root handler.
func WithLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
