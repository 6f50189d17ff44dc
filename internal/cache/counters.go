package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const (
	visitsKey        = "picklewheel:visits"
	registrationsKey = "picklewheel:registration_attempts"
)

// Counters tracks coarse usage numbers in Redis. It fails safe: when Redis
// is unreachable increments are dropped and reads come back zero, so the
// request path never depends on Redis being up.
type Counters struct {
	client *redis.Client
}

// NewCounters creates a Redis-backed counter set.
func NewCounters(addr, password string, db int) *Counters {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Counters{client: redis.NewClient(opts)}
}

// IncrVisits bumps the API visit counter, ignoring redis errors.
func (c *Counters) IncrVisits(ctx context.Context) {
	c.incr(ctx, visitsKey)
}

// IncrRegistrations bumps the first-seen identity counter, ignoring redis errors.
func (c *Counters) IncrRegistrations(ctx context.Context) {
	c.incr(ctx, registrationsKey)
}

// Visits returns the visit count, or 0 if redis is unavailable.
func (c *Counters) Visits(ctx context.Context) int64 {
	return c.get(ctx, visitsKey)
}

// Registrations returns the first-seen identity count, or 0 if redis is unavailable.
func (c *Counters) Registrations(ctx context.Context) int64 {
	return c.get(ctx, registrationsKey)
}

func (c *Counters) incr(ctx context.Context, key string) {
	if c == nil || c.client == nil {
		return
	}
	// fail safe: drop the increment on redis errors
	_ = c.client.Incr(ctx, key).Err()
}

func (c *Counters) get(ctx context.Context, key string) int64 {
	if c == nil || c.client == nil {
		return 0
	}
	n, err := c.client.Get(ctx, key).Int64()
	if err != nil {
		// fail safe: missing key and connectivity errors both read as zero
		return 0
	}
	return n
}
