package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

const (
	maxTrackedSenders = 1000
	senderTTL         = 5 * time.Minute
)

// LocalLimiter is a per-process token bucket limiter used when no Redis is
// configured. Idle senders are evicted after senderTTL.
type LocalLimiter struct {
	mu       sync.Mutex
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
	disabled bool
}

// NewLocalLimiter allows perMinute requests per minute for each key. A full
// minute's allowance may arrive at once. perMinute <= 0 disables limiting.
func NewLocalLimiter(perMinute int) *LocalLimiter {
	return &LocalLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](maxTrackedSenders, nil, senderTTL),
		rate:     rate.Limit(float64(perMinute) / 60.0),
		burst:    max(perMinute, 1),
		disabled: perMinute <= 0,
	}
}

func (l *LocalLimiter) Allow(_ context.Context, key string) bool {
	if l.disabled {
		return true
	}

	l.mu.Lock()
	limiter, ok := l.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(l.rate, l.burst)
		l.limiters.Add(key, limiter)
	}
	l.mu.Unlock()

	return limiter.Allow()
}
