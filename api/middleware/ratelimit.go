package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
)

const (
	bucketLogin   = "login"
	bucketOrder   = "order"
	bucketGeneral = "general"
)

// getRateLimitForEndpoint picks the bucket and its limit for a request
func (mw *Middleware) getRateLimitForEndpoint(path, method string) (string, int, time.Duration) {
	rl := mw.cfg.RateLimit

	if method == http.MethodPost {
		switch {
		case strings.HasSuffix(path, "/admin/login"):
			return bucketLogin, rl.LoginLimit, rl.LoginWindow
		case strings.HasPrefix(path, "/api/orders"),
			strings.HasPrefix(path, "/api/validate-discount"),
			strings.HasPrefix(path, "/api/testimonials"):
			return bucketOrder, rl.OrderLimit, rl.OrderWindow
		}
	}

	return bucketGeneral, rl.GeneralLimit, rl.GeneralWindow
}

// getClientIP strips the port from RemoteAddr. chi's RealIP has already
// replaced it with the forwarded address when running behind a proxy.
func (mw *Middleware) getClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimitMiddleware implements fixed window rate limiting per client and bucket
func (mw *Middleware) RateLimitMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !mw.cfg.RateLimit.Enabled || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			// Skip rate limiting for health checks and metrics
			if strings.HasPrefix(r.URL.Path, "/health") || r.URL.Path == "/metrics" || r.URL.Path == "/" {
				next.ServeHTTP(w, r)
				return
			}

			clientIP := mw.getClientIP(r)
			bucket, limit, window := mw.getRateLimitForEndpoint(r.URL.Path, r.Method)

			count, err := mw.cacheService.IncrementRateLimit(r.Context(), clientIP, bucket, window)
			if err != nil {
				// Cache error - log and allow request (fail open)
				mw.logger.Warn("Rate limit cache error, allowing request",
					gecho.Field("error", err),
					gecho.Field("ip", clientIP),
					gecho.Field("bucket", bucket),
				)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
			w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(window).Unix()))

			if count > limit {
				mw.logger.Warn("Rate limit exceeded",
					gecho.Field("ip", clientIP),
					gecho.Field("bucket", bucket),
					gecho.Field("count", count),
					gecho.Field("limit", limit),
				)

				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))

				gecho.TooManyRequests(w,
					gecho.WithMessage("Terlalu banyak permintaan. Silakan coba lagi nanti."),
					gecho.WithData(map[string]any{
						"limit":       limit,
						"window":      window.String(),
						"retry_after": int(window.Seconds()),
					}),
					gecho.Send(),
				)
				return
			}

			remaining := max(0, limit-count)
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

			// Log if getting close to limit (80% threshold)
			if count > int(float64(limit)*0.8) {
				mw.logger.Debug("Rate limit warning",
					gecho.Field("ip", clientIP),
					gecho.Field("bucket", bucket),
					gecho.Field("count", count),
					gecho.Field("limit", limit),
					gecho.Field("remaining", remaining),
				)
			}

			next.ServeHTTP(w, r)
		})
	}
}
