package cache

import (
	"sync"
	"time"

	"github.com/spec-kit/gift-registry/internal/domain"
)

// Users is a per-process, time-boxed cache over the full user list. It
// only exists to avoid refetching every user when the gift listing joins
// purchaser names; correctness never depends on it being fresh.
type Users struct {
	mu        sync.Mutex
	ttl       time.Duration
	now       func() time.Time
	users     []domain.User
	fetchedAt time.Time
	valid     bool
}

// NewUsers builds a cache with the given TTL. The clock is injectable so
// staleness windows are explicit in tests; pass nil for time.Now.
func NewUsers(ttl time.Duration, now func() time.Time) *Users {
	if now == nil {
		now = time.Now
	}
	return &Users{ttl: ttl, now: now}
}

// Get returns the cached user list, or false when the entry is missing,
// expired, or caching is disabled (ttl <= 0).
func (c *Users) Get() ([]domain.User, bool) {
	if c == nil || c.ttl <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid || c.now().Sub(c.fetchedAt) >= c.ttl {
		return nil, false
	}
	out := make([]domain.User, len(c.users))
	copy(out, c.users)
	return out, true
}

// Set replaces the cached list and restarts the TTL window.
func (c *Users) Set(users []domain.User) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users = make([]domain.User, len(users))
	copy(c.users, users)
	c.fetchedAt = c.now()
	c.valid = true
}
