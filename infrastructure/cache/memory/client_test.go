package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"listfeeds-api/core/interfaces"
)

func TestNewMemoryCache(t *testing.T) {
	cache := NewMemoryCache()

	if cache == nil {
		t.Error("NewMemoryCache returned nil")
	}
}

func TestMemoryCache_Get_ExistingKey(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	key := "feed:https://example.com"
	value := []byte(`{"title":"Example"}`)
	err := cache.Set(ctx, key, value, 1*time.Hour)
	if err != nil {
		t.Fatalf("Failed to set value: %v", err)
	}

	got, err := cache.Get(ctx, key)
	if err != nil {
		t.Errorf("Get returned error: %v", err)
	}
	if string(got) != string(value) {
		t.Errorf("Get returned %s, want %s", string(got), string(value))
	}
}

func TestMemoryCache_Get_NonExistentKey(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	got, err := cache.Get(ctx, "non-existent")

	if !errors.Is(err, interfaces.ErrCacheMiss) {
		t.Errorf("Get should return ErrCacheMiss for non-existent key, got %v", err)
	}
	if got != nil {
		t.Error("Get should return nil value for non-existent key")
	}
}

func TestMemoryCache_Get_ExpiredKey(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	key := "test-key"
	err := cache.Set(ctx, key, []byte("test-value"), 10*time.Millisecond)
	if err != nil {
		t.Fatalf("Failed to set value: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	got, err := cache.Get(ctx, key)

	if !errors.Is(err, interfaces.ErrCacheMiss) {
		t.Errorf("Get should return ErrCacheMiss for expired key, got %v", err)
	}
	if got != nil {
		t.Error("Get should return nil value for expired key")
	}
}

func TestMemoryCache_Set_WithZeroTTL(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	key := "test-key"
	value := []byte("test-value")

	// Set with zero TTL (should not expire)
	if err := cache.Set(ctx, key, value, 0); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	time.Sleep(50 * time.Millisecond)

	got, err := cache.Get(ctx, key)
	if err != nil {
		t.Errorf("Value with zero TTL should not expire: %v", err)
	}
	if string(got) != string(value) {
		t.Errorf("Get returned %s, want %s", string(got), string(value))
	}
}

func TestMemoryCache_Set_UpdatesExisting(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	key := "test-key"
	if err := cache.Set(ctx, key, []byte("value1"), 1*time.Hour); err != nil {
		t.Fatalf("First set failed: %v", err)
	}
	if err := cache.Set(ctx, key, []byte("value2"), 1*time.Hour); err != nil {
		t.Fatalf("Second set failed: %v", err)
	}

	got, err := cache.Get(ctx, key)
	if err != nil {
		t.Errorf("Get returned error: %v", err)
	}
	if string(got) != "value2" {
		t.Errorf("Get returned %s, want value2", string(got))
	}
}

func TestMemoryCache_ValuesAreCopied(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	value := []byte("original")
	if err := cache.Set(ctx, "k", value, time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value[0] = 'X'

	got, _ := cache.Get(ctx, "k")
	if string(got) != "original" {
		t.Errorf("Set must copy the value, got %s", string(got))
	}

	got[0] = 'Y'
	again, _ := cache.Get(ctx, "k")
	if string(again) != "original" {
		t.Errorf("Get must return a copy, got %s", string(again))
	}
}

func TestMemoryCache_Delete_RemovesKey(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	key := "test-key"
	if err := cache.Set(ctx, key, []byte("test-value"), 1*time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := cache.Delete(ctx, key); err != nil {
		t.Errorf("Delete returned error: %v", err)
	}

	got, err := cache.Get(ctx, key)
	if err == nil {
		t.Error("Get should return error for deleted key")
	}
	if got != nil {
		t.Error("Get should return nil for deleted key")
	}
}

func TestMemoryCache_Delete_NonExistentKey(t *testing.T) {
	cache := NewMemoryCache()

	if err := cache.Delete(context.Background(), "non-existent"); err != nil {
		t.Errorf("Delete should return nil for non-existent key, got: %v", err)
	}
}

func TestMemoryCache_CancelledContext(t *testing.T) {
	cache := NewMemoryCache()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := cache.Get(ctx, "k"); !errors.Is(err, context.Canceled) {
		t.Errorf("Get with cancelled context = %v, want context.Canceled", err)
	}
	if err := cache.Set(ctx, "k", []byte("v"), time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("Set with cancelled context = %v, want context.Canceled", err)
	}
	if err := cache.Delete(ctx, "k"); !errors.Is(err, context.Canceled) {
		t.Errorf("Delete with cancelled context = %v, want context.Canceled", err)
	}
}

func TestMemoryCache_JanitorPurgesExpired(t *testing.T) {
	cache := NewMemoryCacheWithCleanup(10 * time.Millisecond)
	ctx := context.Background()

	cache.Set(ctx, "key1", []byte("value1"), 5*time.Millisecond)
	cache.Set(ctx, "key2", []byte("value2"), 1*time.Hour)

	time.Sleep(60 * time.Millisecond)

	if cache.Len() != 1 {
		t.Errorf("Len() = %d after janitor run, want 1", cache.Len())
	}
	if _, err := cache.Get(ctx, "key2"); err != nil {
		t.Error("key2 should still exist")
	}
}

func TestMemoryCache_CloseStopsCleanup(t *testing.T) {
	cache := NewMemoryCacheWithCleanup(10 * time.Millisecond)
	ctx := context.Background()

	if err := cache.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if err := cache.Close(); err != nil {
		t.Fatalf("second Close returned error: %v", err)
	}

	cache.Set(ctx, "key1", []byte("value1"), 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)

	// Expired entries stay counted once nothing purges them
	if cache.Len() != 1 {
		t.Errorf("Len() = %d after Close, want 1", cache.Len())
	}
	if _, err := cache.Get(ctx, "key1"); !errors.Is(err, interfaces.ErrCacheMiss) {
		t.Errorf("Get() error = %v, want ErrCacheMiss", err)
	}
}
