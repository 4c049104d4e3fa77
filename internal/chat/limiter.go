package chat

import (
	"sync"

	"golang.org/x/time/rate"
)

// userLimiters hands out one token bucket per user.
type userLimiters struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

func newUserLimiters(perSecond float64, burst int) *userLimiters {
	if perSecond <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &userLimiters{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether user may run a command now. A nil receiver allows everything.
func (u *userLimiters) Allow(user string) bool {
	if u == nil {
		return true
	}
	u.mu.Lock()
	l, ok := u.limiters[user]
	if !ok {
		l = rate.NewLimiter(u.limit, u.burst)
		u.limiters[user] = l
	}
	u.mu.Unlock()
	return l.Allow()
}
