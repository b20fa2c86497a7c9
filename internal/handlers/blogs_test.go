package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/viddeveloper111/invoiceadmin-sub000/internal/middleware"
	"github.com/viddeveloper111/invoiceadmin-sub000/internal/models"
)

func setupBlogTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Blog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// tenantReq routes the request through the tenant middleware so SourceFrom
// resolves the same way it does behind the real router.
func tenantReq(h http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	middleware.Tenant(h).ServeHTTP(w, r)
	return w
}

func TestBlogListScopedToSource(t *testing.T) {
	db := setupBlogTestDB(t)
	h := NewBlogHandler(db)
	seed := []models.Blog{
		{Source: "local", Title: "Ours"},
		{Source: "remote-1", Title: "Theirs A"},
		{Source: "remote-1", Title: "Theirs B"},
	}
	for i := range seed {
		if err := db.Create(&seed[i]).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	w := tenantReq(h.List, httptest.NewRequest(http.MethodGet, "/blogs", nil))
	var resp struct {
		Items  []models.Blog `json:"items"`
		Total  int           `json:"total"`
		Source string        `json:"source"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Source != "local" || resp.Total != 1 || resp.Items[0].Title != "Ours" {
		t.Fatalf("default tenant must only see local posts: %+v", resp)
	}

	r := httptest.NewRequest(http.MethodGet, "/blogs", nil)
	r.Header.Set("X-Blog-Source", "remote-1")
	w = tenantReq(h.List, r)
	resp.Items = nil
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Source != "remote-1" || resp.Total != 2 {
		t.Fatalf("remote tenant scoping wrong: %+v", resp)
	}
}

func TestBlogWritesRejectedForRemoteSource(t *testing.T) {
	db := setupBlogTestDB(t)
	h := NewBlogHandler(db)

	r := httptest.NewRequest(http.MethodPost, "/blogs", strings.NewReader(`{"title":"nope"}`))
	r.Header.Set("X-Blog-Source", "remote-1")
	if w := tenantReq(h.Create, r); w.Code != http.StatusForbidden {
		t.Fatalf("create on remote source expected 403 got %d", w.Code)
	}

	remote := models.Blog{Source: "remote-1", Title: "Theirs"}
	if err := db.Create(&remote).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	r = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/blogs/%d", remote.ID), nil)
	r.SetPathValue("id", fmt.Sprint(remote.ID))
	if w := tenantReq(h.Delete, r); w.Code != http.StatusForbidden {
		t.Fatalf("delete of remote post expected 403 got %d", w.Code)
	}
}

func TestBlogCreateLocal(t *testing.T) {
	db := setupBlogTestDB(t)
	h := NewBlogHandler(db)

	r := httptest.NewRequest(http.MethodPost, "/blogs", strings.NewReader(`{"title":"Hello","content":"world"}`))
	w := tenantReq(h.Create, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var blog models.Blog
	if err := json.Unmarshal(w.Body.Bytes(), &blog); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if blog.Source != "local" || blog.Title != "Hello" {
		t.Fatalf("unexpected blog: %+v", blog)
	}
}

func TestParseBlogSources(t *testing.T) {
	got := parseBlogSources("a=http://a.test/posts, b=http://b.test/posts,,bad")
	if len(got) != 2 || got[0].Name != "a" || got[1].URL != "http://b.test/posts" {
		t.Fatalf("unexpected sources: %+v", got)
	}
	if parseBlogSources("") != nil {
		t.Fatalf("empty config must yield no sources")
	}
}
