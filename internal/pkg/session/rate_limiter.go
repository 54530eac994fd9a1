// internal/pkg/session/rate_limiter.go
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RateLimiter struct {
	client *redis.Client
}

func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// CheckOTPRequest limits how often a phone number may ask for a new code.
// Allows up to 3 requests per 10 minutes.
func (r *RateLimiter) CheckOTPRequest(ctx context.Context, phone string) (bool, int64, error) {
	key := fmt.Sprintf("ratelimit:otp_request:%s", phone)

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to increment otp request count: %w", err)
	}

	// Set expiration on first attempt
	if count == 1 {
		r.client.Expire(ctx, key, 10*time.Minute)
	}

	maxRequests := int64(3)
	remaining := maxRequests - count
	if remaining < 0 {
		remaining = 0
	}

	return count <= maxRequests, remaining, nil
}

// CheckOTPVerify limits wrong-code guesses. Allows 5 attempts per 10 minutes.
func (r *RateLimiter) CheckOTPVerify(ctx context.Context, phone string) (bool, error) {
	key := fmt.Sprintf("ratelimit:otp_verify:%s", phone)

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment otp verify count: %w", err)
	}

	if count == 1 {
		r.client.Expire(ctx, key, 10*time.Minute)
	}

	return count <= 5, nil
}

// ResetOTPAttempts clears both counters after a successful login.
func (r *RateLimiter) ResetOTPAttempts(ctx context.Context, phone string) error {
	if err := r.client.Del(ctx, fmt.Sprintf("ratelimit:otp_request:%s", phone)).Err(); err != nil && err != redis.Nil {
		return err
	}
	return r.client.Del(ctx, fmt.Sprintf("ratelimit:otp_verify:%s", phone)).Err()
}

// CheckAPIRateLimit checks general per-identity endpoint rate limiting.
func (r *RateLimiter) CheckAPIRateLimit(ctx context.Context, identityID int64, endpoint string, maxRequests int64, window time.Duration) (bool, error) {
	key := fmt.Sprintf("ratelimit:api:%d:%s", identityID, endpoint)

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment API rate limit: %w", err)
	}

	if count == 1 {
		r.client.Expire(ctx, key, window)
	}

	return count <= maxRequests, nil
}
