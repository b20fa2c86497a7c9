package middleware

import (
	"context"
	"net/http"
	"regexp"
	"strings"
)

type ctxKey string

const ctxSource ctxKey = "blog_source"

// DefaultSource is the tenant used for posts authored in this console.
const DefaultSource = "local"

var sourceRegex = regexp.MustCompile(`^[a-z0-9\-]{1,40}$`)

// Tenant resolves the blog source (query > header > cookie) and stores it in
// context. Query-provided sources are persisted in a cookie for ~30 days so
// the SPA keeps its selection across reloads.
func Tenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		source := DefaultSource
		if c, err := r.Cookie("blog_source"); err == nil && c.Value != "" {
			source = c.Value
		}
		if h := r.Header.Get("X-Blog-Source"); h != "" {
			source = h
		}
		if q := r.URL.Query().Get("source"); q != "" {
			source = q
			http.SetCookie(w, &http.Cookie{Name: "blog_source", Value: source, Path: "/", MaxAge: 86400 * 30})
		}
		source = strings.ToLower(strings.TrimSpace(source))
		if !sourceRegex.MatchString(source) {
			source = DefaultSource
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxSource, source)))
	})
}

// SourceFrom returns the resolved blog source for the request.
func SourceFrom(r *http.Request) string {
	if v, ok := r.Context().Value(ctxSource).(string); ok && v != "" {
		return v
	}
	return DefaultSource
}
