package middleware

import (
	"hash/fnv"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pharmabot/basket-service/internal/domain/dto"
	"github.com/pharmabot/basket-service/internal/i18n"
)

// limiterShards spreads clients over independent locks so the hot path
// never contends on a single mutex.
const limiterShards = 16

// clientWindow is one client's remaining budget in the current window.
type clientWindow struct {
	remaining int
	resetAt   time.Time
}

type limiterShard struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
}

// IPLimiter enforces a fixed-window request budget per client IP.
type IPLimiter struct {
	rate     int
	window   time.Duration
	shards   [limiterShards]*limiterShard
	stop     chan struct{}
	stopOnce sync.Once
}

// NewIPLimiter creates a limiter allowing rate requests per window for
// each client IP, with a background sweeper for idle clients.
func NewIPLimiter(rate int, window time.Duration) *IPLimiter {
	l := &IPLimiter{
		rate:   rate,
		window: window,
		stop:   make(chan struct{}),
	}
	for i := range l.shards {
		l.shards[i] = &limiterShard{clients: make(map[string]*clientWindow)}
	}
	go l.sweep()
	return l
}

func (l *IPLimiter) shardFor(ip string) *limiterShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(ip))
	return l.shards[h.Sum32()%limiterShards]
}

// take consumes one request from the client's current window, opening a
// fresh window when the old one expired.
func (l *IPLimiter) take(ip string) (allowed bool, remaining int) {
	shard := l.shardFor(ip)
	now := time.Now()

	shard.mu.Lock()
	defer shard.mu.Unlock()

	w := shard.clients[ip]
	if w == nil || now.After(w.resetAt) {
		shard.clients[ip] = &clientWindow{remaining: l.rate - 1, resetAt: now.Add(l.window)}
		return true, l.rate - 1
	}
	if w.remaining <= 0 {
		return false, 0
	}
	w.remaining--
	return true, w.remaining
}

// Handler returns the gin middleware enforcing the limit. Rejected
// requests get a localized 429 with a Retry-After hint in seconds.
func (l *IPLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining := l.take(c.ClientIP())

		c.Header("X-RateLimit-Limit", strconv.Itoa(l.rate))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			message := i18n.GetTranslator().Translate(i18n.ErrKeyRateLimitExceeded, i18n.GetLocale(c))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewError(dto.ErrCodeRateLimit, message).WithRequestID(GetRequestID(c)))
			return
		}

		c.Next()
	}
}

// sweep periodically drops clients whose window has long expired.
func (l *IPLimiter) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			for _, shard := range l.shards {
				shard.mu.Lock()
				for ip, w := range shard.clients {
					if now.After(w.resetAt.Add(l.window)) {
						delete(shard.clients, ip)
					}
				}
				shard.mu.Unlock()
			}
		case <-l.stop:
			return
		}
	}
}

// Stop ends the background sweeper.
func (l *IPLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// Tracked returns how many clients currently hold a window.
func (l *IPLimiter) Tracked() int {
	total := 0
	for _, shard := range l.shards {
		shard.mu.Lock()
		total += len(shard.clients)
		shard.mu.Unlock()
	}
	return total
}
