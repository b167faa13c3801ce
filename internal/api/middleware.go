package api

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/puckboard/puckboard/internal/api/respond"
)

// TimingMiddleware reports server-side processing time on every response.
func TimingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		w.Header().Set("X-Process-Time",
			fmt.Sprintf("%.2fms", float64(time.Since(start).Microseconds())/1000.0))
	})
}

// visitors holds one token bucket per client IP. Buckets are kept for the
// life of the process; the caller population of a ten-team league API is
// small enough that the map stays bounded.
type visitors struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	limit   rate.Limit
	burst   int
}

func (v *visitors) bucket(ip string) *rate.Limiter {
	v.mu.Lock()
	defer v.mu.Unlock()
	b, ok := v.buckets[ip]
	if !ok {
		b = rate.NewLimiter(v.limit, v.burst)
		v.buckets[ip] = b
	}
	return b
}

// RateLimitMiddleware allows each client IP requests-per-window sustained,
// with a burst of half the window allowance. CORS preflights are exempt so
// a rate-limited browser client still gets a proper CORS response on its
// actual request. Rejections carry Retry-After equal to the window.
func RateLimitMiddleware(requests int, window time.Duration) func(http.Handler) http.Handler {
	v := &visitors{
		buckets: make(map[string]*rate.Limiter),
		limit:   rate.Limit(float64(requests) / window.Seconds()),
		burst:   max(1, requests/2),
	}
	retryAfter := strconv.Itoa(int(window.Seconds()))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			if !v.bucket(ip).Allow() {
				w.Header().Set("Retry-After", retryAfter)
				respond.WriteError(w, http.StatusTooManyRequests, "RATE_LIMITED",
					"request rate exceeded, slow down")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
