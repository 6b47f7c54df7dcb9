package redis

import (
	"context"
	"fmt"
	"time"
)

// Limiter is a fixed-window rate limiter over Redis:
// INCR key; on first hit, set the window expiry. The key must already
// include the caller identity and route.
type Limiter struct {
	client *Client
}

func NewLimiter(c *Client) *Limiter {
	return &Limiter{client: c}
}

type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration // 0 if allowed
	Count      int
}

// Lua keeps INCR + PEXPIRE atomic across concurrent hits.
// Returns {count, ttl_ms}.
const allowScript = `
local c = redis.call("INCR", KEYS[1])
if c == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {c, ttl}
`

// Allow reports whether another hit fits in the current window. A
// non-positive limit disables the check.
func (l *Limiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (Decision, error) {
	if limit <= 0 {
		return Decision{Allowed: true, Limit: limit, Remaining: limit}, nil
	}
	if window < time.Second {
		window = time.Minute
	}

	res, err := l.client.rdb.Eval(ctx, allowScript, []string{key}, window.Milliseconds()).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("ratelimit eval: %w", err)
	}

	arr, ok := res.([]any)
	if !ok || len(arr) != 2 {
		return Decision{}, fmt.Errorf("ratelimit eval: unexpected result %T", res)
	}

	count := int(arr[0].(int64))
	ttl := time.Duration(arr[1].(int64)) * time.Millisecond

	d := Decision{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: max(0, limit-count),
		Count:     count,
	}
	if !d.Allowed {
		d.RetryAfter = ttl
		if d.RetryAfter <= 0 {
			d.RetryAfter = window
		}
	}
	return d, nil
}
