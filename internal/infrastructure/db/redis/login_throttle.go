package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"
)

const (
	defaultMaxFailures   = 5
	defaultFailureWindow = 15 * time.Minute
)

// LoginThrottle counts failed logins per login name in Redis and blocks
// further attempts once the limit is reached inside the window.
// Key format: login:fail:<login>
type LoginThrottle struct {
	client      redis.Cmdable
	maxFailures int64
	window      time.Duration
	cb          *gobreaker.CircuitBreaker[int64]
}

// NewLoginThrottle creates a LoginThrottle. Non-positive limits fall back to
// 5 failures per 15 minutes.
func NewLoginThrottle(client redis.Cmdable, maxFailures int, window time.Duration) *LoginThrottle {
	if maxFailures <= 0 {
		maxFailures = defaultMaxFailures
	}
	if window <= 0 {
		window = defaultFailureWindow
	}
	return &LoginThrottle{
		client:      client,
		maxFailures: int64(maxFailures),
		window:      window,
		cb: gobreaker.NewCircuitBreaker[int64](gobreaker.Settings{
			Name:        "login throttle",
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			MaxRequests: 3,
		}),
	}
}

// Blocked reports whether login has reached the failure limit.
func (t *LoginThrottle) Blocked(ctx context.Context, login string) (bool, error) {
	n, err := t.cb.Execute(func() (int64, error) {
		n, err := t.client.Get(ctx, t.key(login)).Int64()
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return n, err
	})
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n >= t.maxFailures, nil
}

// RegisterFailure increments the failure counter. The window starts with the
// first failure and is not extended by later ones.
func (t *LoginThrottle) RegisterFailure(ctx context.Context, login string) error {
	_, err := t.cb.Execute(func() (int64, error) {
		key := t.key(login)
		n, err := t.client.Incr(ctx, key).Result()
		if err != nil {
			return 0, err
		}
		if n == 1 {
			if err := t.client.Expire(ctx, key, t.window).Err(); err != nil {
				return n, err
			}
		}
		return n, nil
	})
	if err != nil {
		return fmt.Errorf("throttle register: %w", err)
	}
	return nil
}

// Reset clears the failure counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, login string) error {
	_, err := t.cb.Execute(func() (int64, error) {
		return t.client.Del(ctx, t.key(login)).Result()
	})
	if err != nil {
		return fmt.Errorf("throttle reset: %w", err)
	}
	return nil
}

func (t *LoginThrottle) key(login string) string {
	return "login:fail:" + login
}
