package interfaces

import (
	"context"
	"time"
)

// Locker hands out per-key mutual exclusion. Depending on the backend the
// exclusion holds across processes (Redis) or only inside this process.
type Locker interface {
	// Acquire blocks until the lock for key is held, the locker's wait limit
	// passes or ctx is done. ttl bounds how long a crashed holder can keep
	// the lock; backends without expiry may ignore it.
	Acquire(ctx context.Context, key string, ttl time.Duration) (Lock, error)
}

// Lock is a held lock. Release must be called exactly once by the holder;
// further calls are no-ops.
type Lock interface {
	Release(ctx context.Context) error
}
