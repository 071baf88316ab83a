package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/heartmarshall/council-backend/pkg/ctxutil"
)

// idleEviction is how long a caller's limiter survives without requests.
const idleEviction = 10 * time.Minute

// RateLimiter throttles broadcast writes per caller. Each caller gets a
// token bucket refilling at the configured per-minute rate, with the whole
// minute's allowance available as a burst.
type RateLimiter struct {
	mu      sync.Mutex
	callers map[string]*caller
	now     func() time.Time
	stop    chan struct{}
	done    chan struct{}
}

type caller struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter starts the idle eviction loop; call Stop on shutdown.
func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{
		callers: make(map[string]*caller),
		now:     time.Now,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go rl.cleanup(cleanupInterval)
	return rl
}

// Stop ends the eviction loop and waits for it.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
	<-rl.done
}

// Limit allows maxPerMinute mutating requests per caller. Members are keyed
// by user id and anonymous callers by client address; reads are never
// limited. Rejections carry Retry-After in whole seconds.
func (rl *RateLimiter) Limit(maxPerMinute int) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if maxPerMinute <= 0 || isSafeMethod(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			if wait, ok := rl.reserve(callerKey(r), maxPerMinute); !ok {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// reserve takes a token for key, or reports how long until one is free.
func (rl *RateLimiter) reserve(key string, maxPerMinute int) (time.Duration, bool) {
	now := rl.now()

	rl.mu.Lock()
	c, ok := rl.callers[key]
	if !ok {
		c = &caller{lim: rate.NewLimiter(rate.Limit(float64(maxPerMinute)/60), maxPerMinute)}
		rl.callers[key] = c
	}
	c.lastSeen = now
	rl.mu.Unlock()

	res := c.lim.ReserveN(now, 1)
	if wait := res.DelayFrom(now); wait > 0 {
		res.CancelAt(now)
		return wait, false
	}
	return 0, true
}

func isSafeMethod(m string) bool {
	return m == http.MethodGet || m == http.MethodHead || m == http.MethodOptions
}

func callerKey(r *http.Request) string {
	if id, ok := ctxutil.UserIDFromCtx(r.Context()); ok {
		return "user:" + id.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "addr:" + host
}

func (rl *RateLimiter) evictIdle() {
	cutoff := rl.now().Add(-idleEviction)
	rl.mu.Lock()
	for key, c := range rl.callers {
		if c.lastSeen.Before(cutoff) {
			delete(rl.callers, key)
		}
	}
	rl.mu.Unlock()
}

func (rl *RateLimiter) cleanup(interval time.Duration) {
	defer close(rl.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.evictIdle()
		}
	}
}
