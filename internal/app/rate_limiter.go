/**
 * @description
 * Distributed login rate limiting backed by Redis. A fixed window counter per
 * email keeps credential-stuffing runs from hammering the bcrypt comparison.
 * The limiter is optional: when no Redis client is configured the service
 * accepts every attempt.
 *
 * @dependencies
 * - github.com/redis/go-redis/v9: Redis client and Lua script support.
 */

package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var loginRateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// LoginRateLimiter counts login attempts per subject in a fixed window.
type LoginRateLimiter struct {
	client redis.UniversalClient
	prefix string
	limit  int
	window time.Duration
}

// NewLoginRateLimiter creates a limiter allowing `limit` attempts per window.
func NewLoginRateLimiter(client redis.UniversalClient, prefix string, limit int, window time.Duration) *LoginRateLimiter {
	trimmed := strings.TrimSuffix(strings.TrimSpace(prefix), ":")
	if trimmed == "" {
		trimmed = "platform:rate_limit"
	}
	return &LoginRateLimiter{client: client, prefix: trimmed, limit: limit, window: window}
}

// Allow records one attempt for the subject and reports whether it is still
// under the window's limit.
func (l *LoginRateLimiter) Allow(ctx context.Context, subject string) (bool, error) {
	if l == nil || l.client == nil || l.limit <= 0 || l.window <= 0 {
		return true, nil
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return true, nil
	}

	key := fmt.Sprintf("%s:login:%s", l.prefix, subject)
	raw, err := loginRateLimitScript.Run(ctx, l.client, []string{key}, l.window.Milliseconds()).Result()
	if err != nil {
		return true, err
	}
	count, ok := raw.(int64)
	if !ok {
		return true, fmt.Errorf("unexpected redis limiter response type: %T", raw)
	}
	return count <= int64(l.limit), nil
}
