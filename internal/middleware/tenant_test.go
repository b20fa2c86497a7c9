package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func resolve(t *testing.T, setup func(*http.Request)) string {
	t.Helper()
	var got string
	h := Tenant(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = SourceFrom(r)
	}))
	r := httptest.NewRequest(http.MethodGet, "/blogs", nil)
	setup(r)
	h.ServeHTTP(httptest.NewRecorder(), r)
	return got
}

func TestTenantDefaultsToLocal(t *testing.T) {
	if got := resolve(t, func(r *http.Request) {}); got != DefaultSource {
		t.Fatalf("expected %q got %q", DefaultSource, got)
	}
}

func TestTenantQueryBeatsHeaderBeatsCookie(t *testing.T) {
	got := resolve(t, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "blog_source", Value: "cookie-src"})
		r.Header.Set("X-Blog-Source", "header-src")
	})
	if got != "header-src" {
		t.Fatalf("header must beat cookie, got %q", got)
	}

	got = resolve(t, func(r *http.Request) {
		r.Header.Set("X-Blog-Source", "header-src")
		r.URL.RawQuery = "source=query-src"
	})
	if got != "query-src" {
		t.Fatalf("query must beat header, got %q", got)
	}
}

func TestTenantRejectsInvalidSource(t *testing.T) {
	got := resolve(t, func(r *http.Request) {
		r.Header.Set("X-Blog-Source", "DROP TABLE; --")
	})
	if got != DefaultSource {
		t.Fatalf("invalid source must fall back to %q, got %q", DefaultSource, got)
	}
}

func TestTenantQuerySetsCookie(t *testing.T) {
	h := Tenant(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	r := httptest.NewRequest(http.MethodGet, "/blogs?source=remote-1", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	for _, c := range w.Result().Cookies() {
		if c.Name == "blog_source" && c.Value == "remote-1" {
			return
		}
	}
	t.Fatalf("expected blog_source cookie to be set")
}
