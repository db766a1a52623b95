package mcptool

import (
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimiter is a token bucket shared by all tool calls of one server.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter allows burst calls at once and then refillRate calls per
// second.
func NewRateLimiter(burst int, refillRate float64) *RateLimiter {
	return &RateLimiter{limiter: rate.NewLimiter(rate.Limit(refillRate), burst)}
}

// Allow takes a token if one is available.
func (r *RateLimiter) Allow() bool { return r.limiter.Allow() }

// CheckRateLimit is Allow reported as an error naming the tool.
func (r *RateLimiter) CheckRateLimit(tool string) error {
	if r.Allow() {
		return nil
	}
	return fmt.Errorf("rate limit exceeded for tool %q, please wait before retrying", tool)
}
