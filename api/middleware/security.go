package middleware

import (
	"net/http"
	"strings"
)

func (mw *Middleware) SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			w.Header().Set("Permissions-Policy", "geolocation=(), camera=()")

			// uploaded images are embedded by the storefront on another origin
			if !strings.HasPrefix(r.URL.Path, mw.cfg.Upload.PublicPath) {
				w.Header().Set("Content-Security-Policy", "default-src 'self'")
			} else {
				w.Header().Set("Cross-Origin-Resource-Policy", "cross-origin")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// BodyLimit caps JSON bodies. Multipart uploads carry their own limit.
func (mw *Middleware) BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
