package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/api-sage/swift-payments-portal/src/internal/commons"
	"github.com/api-sage/swift-payments-portal/src/internal/logger"
	"golang.org/x/time/rate"
)

const (
	GeneralRateLimitMessage = "Too many requests from this IP, please try again later."
	AuthRateLimitMessage    = "Too many login attempts, please try again after 15 minutes."
)

type RateLimitOptions struct {
	Name    string
	Message string
	Max     int
	Window  time.Duration
	// SkipSuccessful charges every request up front and refunds the token when
	// the response status is below 400.
	SkipSuccessful bool
	Now            func() time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per client IP. Each bucket holds Max
// tokens and refills completely over Window.
type RateLimiter struct {
	opts  RateLimitOptions
	limit rate.Limit

	mu        sync.Mutex
	clients   map[string]*clientLimiter
	lastSweep time.Time
}

func NewRateLimiter(opts RateLimitOptions) *RateLimiter {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Message == "" {
		opts.Message = GeneralRateLimitMessage
	}
	return &RateLimiter{
		opts:    opts,
		limit:   rate.Every(opts.Window / time.Duration(opts.Max)),
		clients: make(map[string]*clientLimiter),
	}
}

// RateLimit returns a per-IP limiting middleware. A non-positive Max or Window
// disables limiting.
func RateLimit(opts RateLimitOptions) func(http.Handler) http.Handler {
	if opts.Max <= 0 || opts.Window <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return NewRateLimiter(opts).Middleware
}

func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)

		if !l.opts.SkipSuccessful {
			if !l.Allow(ip) {
				l.reject(w, r, ip)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		reservation, reservedAt, ok := l.reserve(ip)
		if !ok {
			l.reject(w, r, ip)
			return
		}
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		if rec.status < http.StatusBadRequest {
			reservation.CancelAt(reservedAt)
		}
	})
}

// Allow charges one token to key and reports whether one was available.
func (l *RateLimiter) Allow(key string) bool {
	now := l.opts.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.client(key, now).limiter.AllowN(now, 1)
}

// reserve takes a token for key that the caller may hand back with CancelAt
// at the returned time.
func (l *RateLimiter) reserve(key string) (*rate.Reservation, time.Time, bool) {
	now := l.opts.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	reservation := l.client(key, now).limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return nil, now, false
	}
	if reservation.DelayFrom(now) > 0 {
		reservation.CancelAt(now)
		return nil, now, false
	}
	return reservation, now, true
}

// client must be called with l.mu held.
func (l *RateLimiter) client(key string, now time.Time) *clientLimiter {
	l.sweep(now)

	c, ok := l.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.opts.Max)}
		l.clients[key] = c
	}
	c.lastSeen = now
	return c
}

// sweep drops buckets idle for a full window; they would be full again anyway.
func (l *RateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.opts.Window {
		return
	}
	for key, c := range l.clients {
		if now.Sub(c.lastSeen) >= l.opts.Window {
			delete(l.clients, key)
		}
	}
	l.lastSweep = now
}

func (l *RateLimiter) reject(w http.ResponseWriter, r *http.Request, ip string) {
	logger.Warn("rate limit middleware rejected request", logger.Fields{
		"limiter": l.opts.Name,
		"method":  r.Method,
		"path":    r.URL.Path,
		"client":  ip,
	})
	w.Header().Set("Retry-After", retryAfterSeconds(l.opts.Window/time.Duration(l.opts.Max)))
	writeJSON(w, http.StatusTooManyRequests, commons.Message(l.opts.Message))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func retryAfterSeconds(d time.Duration) string {
	seconds := int(d.Round(time.Second) / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	return strconv.Itoa(seconds)
}
