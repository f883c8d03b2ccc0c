package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/yungbote/foodgram-backend/internal/http/response"
	"github.com/yungbote/foodgram-backend/internal/observability"
	"github.com/yungbote/foodgram-backend/internal/platform/ctxutil"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

// Limiter decides whether key may make one more request now.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// LocalLimiter keeps one token bucket per key in process memory.
type LocalLimiter struct {
	limit rate.Limit
	burst int
	idle  time.Duration

	mu       sync.Mutex
	visitors map[string]*visitor
	lastGC   time.Time
	now      func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLocalLimiter allows perMinute requests per key with the given burst.
func NewLocalLimiter(perMinute, burst int) *LocalLimiter {
	if burst < 1 {
		burst = 1
	}
	return &LocalLimiter{
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
		idle:     10 * time.Minute,
		visitors: map[string]*visitor{},
		now:      time.Now,
	}
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastGC) > l.idle {
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) > l.idle {
				delete(l.visitors, k)
			}
		}
		l.lastGC = now
	}
	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1), nil
}

// RedisLimiter counts requests per key in fixed one-minute windows shared by
// every instance.
type RedisLimiter struct {
	rdb       redis.UniversalClient
	prefix    string
	perWindow int64
	window    time.Duration
	now       func() time.Time
}

func NewRedisLimiter(rdb redis.UniversalClient, prefix string, perMinute int) *RedisLimiter {
	return &RedisLimiter{
		rdb:       rdb,
		prefix:    prefix,
		perWindow: int64(perMinute),
		window:    time.Minute,
		now:       time.Now,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	bucket := l.now().Unix() / int64(l.window.Seconds())
	redisKey := fmt.Sprintf("%s:%s:%d", l.prefix, key, bucket)

	var incr *redis.IntCmd
	_, err := l.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, redisKey)
		p.Expire(ctx, redisKey, l.window+time.Second)
		return nil
	})
	if err != nil {
		return false, err
	}
	return incr.Val() <= l.perWindow, nil
}

// FallbackLimiter asks primary first and uses secondary when primary errors.
type FallbackLimiter struct {
	Primary   Limiter
	Secondary Limiter
	Log       *logger.Logger
}

func (f FallbackLimiter) Allow(ctx context.Context, key string) (bool, error) {
	ok, err := f.Primary.Allow(ctx, key)
	if err == nil {
		return ok, nil
	}
	if f.Log != nil {
		f.Log.Warn("rate limiter primary failed, using fallback", "error", err)
	}
	return f.Secondary.Allow(ctx, key)
}

// RateLimit keys on the authenticated user, or the client IP for anonymous
// requests. Limiter errors let the request through.
func RateLimit(log *logger.Logger, name string, limiter Limiter, metrics *observability.Metrics) gin.HandlerFunc {
	if limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if id := ctxutil.UserID(c.Request.Context()); id != uuid.Nil {
			key = "user:" + id.String()
		}
		ok, err := limiter.Allow(c.Request.Context(), name+":"+key)
		if err != nil {
			if log != nil {
				log.Error("rate limiter failed", "limiter", name, "error", err)
			}
			c.Next()
			return
		}
		if !ok {
			metrics.IncRateLimited(name)
			c.Header("Retry-After", strconv.Itoa(60))
			response.AbortError(c, http.StatusTooManyRequests, "rate_limited", fmt.Errorf("too many requests"))
			return
		}
		c.Next()
	}
}
