package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const throttleWindow = 15 * time.Minute

// ResetThrottle rate-limits password-reset issuance per login, backed by a
// Redis key with a TTL. It holds no token state: reset tokens stay valid or
// invalid on their own signed content regardless of what happens here.
// Key format: pwreset:<login>
type ResetThrottle struct {
	client *redis.Client
}

// NewResetThrottle creates a ResetThrottle wrapping the given Redis client.
func NewResetThrottle(client *redis.Client) *ResetThrottle {
	return &ResetThrottle{client: client}
}

// Reserve claims the throttle slot for login. It returns false when a reset
// was already requested within the window.
func (t *ResetThrottle) Reserve(ctx context.Context, login string) (bool, error) {
	ok, err := t.client.SetNX(ctx, t.key(login), "1", throttleWindow).Result()
	if err != nil {
		return false, fmt.Errorf("reset throttle: %w", err)
	}
	return ok, nil
}

func (t *ResetThrottle) key(login string) string {
	return fmt.Sprintf("pwreset:%s", login)
}
