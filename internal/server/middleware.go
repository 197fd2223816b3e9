package server

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// requestLogger logs each request with method, path, status, duration and
// request id. Handler errors are rendered here so the logged status is the
// one the client saw.
func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			req, res := c.Request(), c.Response()
			level := slog.LevelInfo
			if res.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(req.Context(), level, "http.request",
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
				slog.Int("status", res.Status),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", res.Header().Get(echo.HeaderXRequestID)),
			)
			return nil
		}
	}
}

// limiterIdle is how long a client's bucket survives without requests.
const limiterIdle = 10 * time.Minute

// clientLimit is one client's bucket and when it was last used, in unix
// nanoseconds.
type clientLimit struct {
	*rate.Limiter
	seen atomic.Int64
}

// rateLimiter keeps one token bucket per client IP. Buckets idle for
// longer than the sweep window are dropped by sweep.
type rateLimiter struct {
	mu     sync.RWMutex
	limits map[string]*clientLimit
	limit  rate.Limit
	burst  int
	now    func() time.Time
}

func newRateLimiter(perSecond float64, burst int) *rateLimiter {
	return &rateLimiter{
		limits: make(map[string]*clientLimit),
		limit:  rate.Limit(perSecond),
		burst:  burst,
		now:    time.Now,
	}
}

// limiter gets or creates the limiter for key and marks it used.
func (rl *rateLimiter) limiter(key string) *rate.Limiter {
	now := rl.now().UnixNano()

	rl.mu.RLock()
	l, ok := rl.limits[key]
	rl.mu.RUnlock()
	if ok {
		l.seen.Store(now)
		return l.Limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if l, ok := rl.limits[key]; ok {
		l.seen.Store(now)
		return l.Limiter
	}
	l = &clientLimit{Limiter: rate.NewLimiter(rl.limit, rl.burst)}
	l.seen.Store(now)
	rl.limits[key] = l
	return l.Limiter
}

// sweep drops buckets unused for longer than idle and returns how many
// were dropped. A dropped client starts again with a full bucket.
func (rl *rateLimiter) sweep(idle time.Duration) int {
	cutoff := rl.now().Add(-idle).UnixNano()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	n := 0
	for key, l := range rl.limits {
		if l.seen.Load() < cutoff {
			delete(rl.limits, key)
			n++
		}
	}
	return n
}

// run sweeps idle buckets every interval until ctx is done.
func (rl *rateLimiter) run(ctx context.Context, idle, interval time.Duration, logger *slog.Logger) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := rl.sweep(idle); n > 0 {
				logger.Debug("rate limiter swept", "dropped", n)
			}
		}
	}
}

func (rl *rateLimiter) middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rl.limiter(c.RealIP()).Allow() {
				retry := time.Duration(float64(time.Second) / float64(rl.limit))
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(retry.Seconds())+1))
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
