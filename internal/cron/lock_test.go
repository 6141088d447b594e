package cron

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type stubRedisStore struct {
	values map[string]string
}

func newStubRedisStore() *stubRedisStore {
	return &stubRedisStore{values: make(map[string]string)}
}

func (s *stubRedisStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if _, ok := s.values[key]; ok {
		return false, nil
	}
	s.values[key] = value.(string)
	return true, nil
}

func (s *stubRedisStore) Get(ctx context.Context, key string) (string, error) {
	value, ok := s.values[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (s *stubRedisStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

func TestRedisLockAcquireRelease(t *testing.T) {
	store := newStubRedisStore()
	lock, err := NewRedisLock(store, "test-lock", time.Minute)
	if err != nil {
		t.Fatalf("lock constructor failed: %v", err)
	}

	ok, err := lock.Acquire(context.Background())
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	if !ok {
		t.Fatal("expected lock acquired")
	}

	second, _ := NewRedisLock(store, "test-lock", time.Minute)
	ok, err = second.Acquire(context.Background())
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	if ok {
		t.Fatal("held lock must not be acquired twice")
	}

	if err := lock.Release(context.Background()); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	ok, err = second.Acquire(context.Background())
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	if !ok {
		t.Fatal("expected lock acquired after release")
	}
}

func TestRedisLockReleaseOnlyByOwner(t *testing.T) {
	store := newStubRedisStore()
	holder, _ := NewRedisLock(store, "test-lock", time.Minute)
	if ok, _ := holder.Acquire(context.Background()); !ok {
		t.Fatal("expected lock acquired")
	}

	// Simulate the holder's value being replaced after a TTL expiry.
	store.values["test-lock"] = "someone-else"
	if err := holder.Release(context.Background()); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if store.values["test-lock"] != "someone-else" {
		t.Fatal("release must not delete another owner's lock")
	}
}

func TestRedisLockReleaseWithoutAcquire(t *testing.T) {
	store := newStubRedisStore()
	lock, _ := NewRedisLock(store, "test-lock", time.Minute)
	if err := lock.Release(context.Background()); err != nil {
		t.Fatalf("release of an unheld lock should be a no-op, got %v", err)
	}
}

func TestRedisLockReleaseExpiredKey(t *testing.T) {
	store := newStubRedisStore()
	lock, _ := NewRedisLock(store, "test-lock", time.Minute)
	if ok, _ := lock.Acquire(context.Background()); !ok {
		t.Fatal("expected lock acquired")
	}

	// Key already expired server-side.
	delete(store.values, "test-lock")
	if err := lock.Release(context.Background()); err != nil {
		t.Fatalf("release after expiry should be a no-op, got %v", err)
	}
}
