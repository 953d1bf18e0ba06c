// ABOUTME: Redis-backed per-key lock using SET NX PX and a holder token
// ABOUTME: Serializes feed generation for one URL across every process sharing the Redis

package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	coreerrors "listfeeds-api/core/errors"
	"listfeeds-api/core/interfaces"
)

// DefaultRetryInterval is the pause between attempts on a held lock
const DefaultRetryInterval = 50 * time.Millisecond

// releaseScript deletes the lock only if it still carries the caller's token
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Locker implements interfaces.Locker on Redis
type Locker struct {
	client        *redis.Client
	waitTimeout   time.Duration
	retryInterval time.Duration
}

// NewLocker creates a Redis locker. waitTimeout caps how long Acquire
// waits; 0 waits until the lock is free or ctx is done.
func NewLocker(client *redis.Client, waitTimeout time.Duration) *Locker {
	return &Locker{
		client:        client,
		waitTimeout:   waitTimeout,
		retryInterval: DefaultRetryInterval,
	}
}

// Acquire sets key to a fresh token if it is absent, retrying at a fixed
// interval while another holder has it. A failing Redis is retried the same
// way; its last error is attached to the LockTimeoutError.
func (l *Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (interfaces.Lock, error) {
	token := uuid.NewString()
	start := time.Now()
	var lastErr error

	var deadline <-chan time.Time
	if l.waitTimeout > 0 {
		timer := time.NewTimer(l.waitTimeout)
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
		if err != nil {
			lastErr = err
		} else if ok {
			return &lock{client: l.client, key: key, token: token}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline:
			return nil, &coreerrors.LockTimeoutError{Key: key, Waited: time.Since(start), Err: lastErr}
		case <-time.After(l.retryInterval):
		}
	}
}

type lock struct {
	client *redis.Client
	key    string
	token  string
	once   sync.Once
}

// Release deletes the lock record if this holder still owns it
func (l *lock) Release(ctx context.Context) error {
	var err error
	l.once.Do(func() {
		err = releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Err()
		if err != nil {
			err = fmt.Errorf("failed to release lock %s: %w", l.key, err)
		}
	})
	return err
}
