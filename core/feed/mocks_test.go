package feed

import (
	"context"
	"sync"
	"time"

	"listfeeds-api/core/domain"
	"listfeeds-api/core/interfaces"
)

// mockCache is a mock implementation of the Cache interface
type mockCache struct {
	getFunc    func(ctx context.Context, key string) ([]byte, error)
	setFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	deleteFunc func(ctx context.Context, key string) error
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, key)
	}
	return nil, interfaces.ErrCacheMiss
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFunc != nil {
		return m.setFunc(ctx, key, value, ttl)
	}
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, key)
	}
	return nil
}

// fakeCache is a goroutine-safe map cache that counts calls
type fakeCache struct {
	mu    sync.Mutex
	items map[string][]byte
	ttls  map[string]time.Duration
	gets  int
	sets  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		items: make(map[string][]byte),
		ttls:  make(map[string]time.Duration),
	}
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	v, ok := c.items[key]
	if !ok {
		return nil, interfaces.ErrCacheMiss
	}
	return v, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.items[key] = value
	c.ttls[key] = ttl
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

func (c *fakeCache) counts() (gets, sets, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gets, c.sets, len(c.items)
}

// fakeLocker is an in-process keyed locker that counts acquisitions and releases
type fakeLocker struct {
	mu       sync.Mutex
	locks    map[string]chan struct{}
	acquired int
	released int
	keys     []string
	err      error
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{locks: make(map[string]chan struct{})}
}

func (l *fakeLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (interfaces.Lock, error) {
	l.mu.Lock()
	if l.err != nil {
		l.mu.Unlock()
		return nil, l.err
	}
	ch, ok := l.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[key] = ch
	}
	l.mu.Unlock()

	select {
	case ch <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	l.mu.Lock()
	l.acquired++
	l.keys = append(l.keys, key)
	l.mu.Unlock()

	return &fakeLock{locker: l, ch: ch}, nil
}

func (l *fakeLocker) counts() (acquired, released int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.acquired, l.released
}

type fakeLock struct {
	locker *fakeLocker
	ch     chan struct{}
	once   sync.Once
}

func (f *fakeLock) Release(ctx context.Context) error {
	f.once.Do(func() {
		<-f.ch
		f.locker.mu.Lock()
		f.locker.released++
		f.locker.mu.Unlock()
	})
	return nil
}

// mockFetcher is a mock implementation of the FeedFetcher interface
type mockFetcher struct {
	mu        sync.Mutex
	calls     int
	urls      []string
	fetchFunc func(ctx context.Context, url string) (*domain.FeedData, error)
}

func (m *mockFetcher) Fetch(ctx context.Context, url string) (*domain.FeedData, error) {
	m.mu.Lock()
	m.calls++
	m.urls = append(m.urls, url)
	m.mu.Unlock()

	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, url)
	}
	return sampleFeed(url), nil
}

func (m *mockFetcher) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockLogger is a mock implementation of the Logger interface
type mockLogger struct {
	mu       sync.Mutex
	messages []string
}

func (m *mockLogger) record(msg string) {
	m.mu.Lock()
	m.messages = append(m.messages, msg)
	m.mu.Unlock()
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) { m.record(msg) }
func (m *mockLogger) Info(msg string, fields map[string]interface{})  { m.record(msg) }
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  { m.record(msg) }
func (m *mockLogger) Error(msg string, fields map[string]interface{}) { m.record(msg) }

func (m *mockLogger) has(msg string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, got := range m.messages {
		if got == msg {
			return true
		}
	}
	return false
}

func sampleFeed(url string) *domain.FeedData {
	return &domain.FeedData{
		Title:   "Example News",
		PageURL: url,
		Icon:    "https://example.com/favicon.ico",
		Items: []domain.Item{
			{Title: "A", Link: "http://a"},
			{Title: "B", Link: "http://b"},
		},
	}
}
