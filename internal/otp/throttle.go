package otp

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	throttleWindow = time.Hour
	throttleLimit  = 5
)

// Throttle caps how many OTP emails a single address can trigger per
// window. With a nil client every send is allowed, so environments
// without Redis (and tests) keep working.
type Throttle struct {
	rdb *redis.Client
}

func NewThrottle(rdb *redis.Client) *Throttle {
	return &Throttle{rdb: rdb}
}

func (t *Throttle) Allow(ctx context.Context, email string) (bool, error) {
	if t.rdb == nil {
		return true, nil
	}

	key := fmt.Sprintf("otp:sent:%s", email)

	count, err := t.rdb.Incr(ctx, key).Result()
	if err != nil {
		// Redis being down must not lock users out of verification.
		return true, nil
	}
	if count == 1 {
		t.rdb.Expire(ctx, key, throttleWindow)
	}

	return count <= throttleLimit, nil
}
