package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"

	"gorm.io/gorm"

	"github.com/viddeveloper111/invoiceadmin-sub000/internal/blogfeed"
	"github.com/viddeveloper111/invoiceadmin-sub000/internal/httpx"
	"github.com/viddeveloper111/invoiceadmin-sub000/internal/middleware"
	"github.com/viddeveloper111/invoiceadmin-sub000/internal/models"
	"github.com/viddeveloper111/invoiceadmin-sub000/internal/validation"
)

// BlogHandler serves the multi-tenant blog section. Every operation is
// scoped to the source resolved by the tenant middleware; only local posts
// may be written through the console.
type BlogHandler struct {
	DB      *gorm.DB
	Fetcher *blogfeed.Fetcher
}

func NewBlogHandler(db *gorm.DB) *BlogHandler {
	return &BlogHandler{DB: db, Fetcher: blogfeed.NewFetcher(db)}
}

// List: GET /blogs
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	source := middleware.SourceFrom(r)
	var blogs []models.Blog
	if err := h.DB.Where("source = ?", source).Order("id desc").Find(&blogs).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_blogs", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": blogs, "total": len(blogs), "source": source})
}

type blogInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Author   string `json:"author"`
	ImageURL string `json:"imageUrl"`
}

// Create: POST /blogs. Local tenant only; aggregated sources are read-only.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	if source := middleware.SourceFrom(r); source != middleware.DefaultSource {
		httpx.JSONError(w, http.StatusForbidden, "source_read_only", nil)
		return
	}
	var input blogInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("title", input.Title, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	blog := models.Blog{
		Source:   middleware.DefaultSource,
		Title:    input.Title,
		Content:  input.Content,
		Author:   input.Author,
		ImageURL: input.ImageURL,
	}
	if err := h.DB.Create(&blog).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_blog", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, blog)
}

// Update: PUT /blogs/{id}
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var blog models.Blog
	if err := h.DB.First(&blog, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_blog", nil)
		return
	}
	if blog.Source != middleware.DefaultSource {
		httpx.JSONError(w, http.StatusForbidden, "source_read_only", nil)
		return
	}
	var input blogInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if input.Title != "" {
		blog.Title = input.Title
	}
	blog.Content = input.Content
	blog.Author = input.Author
	blog.ImageURL = input.ImageURL
	if err := h.DB.Save(&blog).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_blog", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, blog)
}

// Delete: DELETE /blogs/{id}
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var blog models.Blog
	if err := h.DB.First(&blog, id).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if blog.Source != middleware.DefaultSource {
		httpx.JSONError(w, http.StatusForbidden, "source_read_only", nil)
		return
	}
	if err := h.DB.Delete(&blog).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_blog", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Sync: POST /blogs/sync pulls every configured remote source.
// BLOG_SOURCES is a comma list of name=url pairs.
func (h *BlogHandler) Sync(w http.ResponseWriter, r *http.Request) {
	sources := parseBlogSources(os.Getenv("BLOG_SOURCES"))
	if len(sources) == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "no_sources_configured", nil)
		return
	}
	total, errs := h.Fetcher.FetchAll(r.Context(), sources)
	failed := make([]string, 0, len(errs))
	for _, err := range errs {
		failed = append(failed, err.Error())
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"stored": total, "errors": failed})
}

func parseBlogSources(raw string) []blogfeed.Source {
	var sources []blogfeed.Source
	for _, pair := range strings.Split(raw, ",") {
		name, url, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || name == "" || url == "" {
			continue
		}
		sources = append(sources, blogfeed.Source{Name: name, URL: url})
	}
	return sources
}
