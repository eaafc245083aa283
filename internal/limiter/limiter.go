// Package limiter throttles login attempts with a fixed redis window per
// identifier and per client IP.
package limiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/streamverse/vidtube/internal/apperr"
)

type LoginLimiter interface {
	// Enforce returns ErrTooManyAttempts when the window budget for either
	// key is exhausted.
	Enforce(ctx context.Context, identifier, ip string) error
	// Reset clears the identifier's counter after a successful login.
	Reset(ctx context.Context, identifier string) error
}

type redisLimiter struct {
	client      *redis.Client
	maxAttempts int
	cooldown    time.Duration
}

func NewRedisLoginLimiter(client *redis.Client, maxAttempts int, cooldown time.Duration) LoginLimiter {
	return &redisLimiter{client: client, maxAttempts: maxAttempts, cooldown: cooldown}
}

func identifierKey(identifier string) string { return "login:id:" + identifier }
func ipKey(ip string) string                 { return "login:ip:" + ip }

func (l *redisLimiter) Enforce(ctx context.Context, identifier, ip string) error {
	if err := l.enforceKey(ctx, identifierKey(identifier)); err != nil {
		return err
	}
	if ip != "" {
		if err := l.enforceKey(ctx, ipKey(ip)); err != nil {
			return err
		}
	}
	return nil
}

func (l *redisLimiter) enforceKey(ctx context.Context, key string) error {
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return apperr.WrapInternal(err, "login limiter incr")
	}

	if count == 1 {
		if err := l.client.Expire(ctx, key, l.cooldown).Err(); err != nil {
			return apperr.WrapInternal(err, "login limiter expire")
		}
	}

	if count > int64(l.maxAttempts) {
		return fmt.Errorf("%w: retry after %s", apperr.ErrTooManyAttempts, l.cooldown)
	}
	return nil
}

func (l *redisLimiter) Reset(ctx context.Context, identifier string) error {
	if err := l.client.Del(ctx, identifierKey(identifier)).Err(); err != nil {
		return apperr.WrapInternal(err, "login limiter reset")
	}
	return nil
}
