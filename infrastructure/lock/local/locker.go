// ABOUTME: In-process keyed lock used when no shared backend is available
// ABOUTME: Keeps one ref-counted semaphore per key and drops it once nobody holds or waits on it

package local

import (
	"context"
	"sync"
	"time"

	coreerrors "listfeeds-api/core/errors"
	"listfeeds-api/core/interfaces"
)

type entry struct {
	sem  chan struct{}
	refs int
}

// Locker implements interfaces.Locker for a single process
type Locker struct {
	mu          sync.Mutex
	entries     map[string]*entry
	waitTimeout time.Duration
}

// NewLocker creates a local locker. waitTimeout caps how long Acquire
// waits; 0 waits until the lock is free or ctx is done.
func NewLocker(waitTimeout time.Duration) *Locker {
	return &Locker{
		entries:     make(map[string]*entry),
		waitTimeout: waitTimeout,
	}
}

// Acquire takes the semaphore for key. ttl is ignored: a holder in this
// process always releases on return.
func (l *Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (interfaces.Lock, error) {
	e := l.ref(key)
	start := time.Now()

	var deadline <-chan time.Time
	if l.waitTimeout > 0 {
		timer := time.NewTimer(l.waitTimeout)
		defer timer.Stop()
		deadline = timer.C
	}

	select {
	case e.sem <- struct{}{}:
		return &lock{locker: l, key: key, entry: e}, nil
	case <-ctx.Done():
		l.unref(key, e)
		return nil, ctx.Err()
	case <-deadline:
		l.unref(key, e)
		return nil, &coreerrors.LockTimeoutError{Key: key, Waited: time.Since(start)}
	}
}

// Len reports how many keys currently have holders or waiters
func (l *Locker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *Locker) ref(key string) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	e.refs++
	return e
}

func (l *Locker) unref(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}

type lock struct {
	locker *Locker
	key    string
	entry  *entry
	once   sync.Once
}

// Release frees the semaphore
func (l *lock) Release(ctx context.Context) error {
	l.once.Do(func() {
		<-l.entry.sem
		l.locker.unref(l.key, l.entry)
	})
	return nil
}
