package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value    []byte
	expireAt time.Time // zero means no expiry
	lastUsed time.Time
}

func (e *memoryEntry) expired(now time.Time) bool {
	return !e.expireAt.IsZero() && !now.Before(e.expireAt)
}

// MemoryCache implements Service in process with LRU eviction. A janitor
// goroutine sweeps expired keys until Close.
type MemoryCache struct {
	mu      sync.Mutex
	data    map[string]*memoryEntry
	maxSize int
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemoryCache creates an in-memory cache.
func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	cfg := &MemoryConfig{
		MaxSize:         10000,
		CleanupInterval: time.Minute,
		Now:             time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	mc := &MemoryCache{
		data:    make(map[string]*memoryEntry),
		maxSize: cfg.MaxSize,
		now:     cfg.Now,
		stop:    make(chan struct{}),
	}
	if cfg.CleanupInterval > 0 {
		go mc.janitor(cfg.CleanupInterval)
	}
	return mc
}

func (mc *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	now := mc.now()
	if _, ok := mc.data[key]; !ok && mc.maxSize > 0 && len(mc.data) >= mc.maxSize {
		mc.evictLocked(now)
	}
	e := &memoryEntry{value: append([]byte(nil), value...), lastUsed: now}
	if ttl > 0 {
		e.expireAt = now.Add(ttl)
	}
	mc.data[key] = e
	return nil
}

func (mc *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	now := mc.now()
	e, ok := mc.data[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	if e.expired(now) {
		delete(mc.data, key)
		return nil, ErrCacheMiss
	}
	e.lastUsed = now
	return append([]byte(nil), e.value...), nil
}

func (mc *MemoryCache) Delete(_ context.Context, keys ...string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	for _, key := range keys {
		delete(mc.data, key)
	}
	return nil
}

func (mc *MemoryCache) Expire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	now := mc.now()
	e, ok := mc.data[key]
	if !ok || e.expired(now) {
		return false, nil
	}
	if ttl > 0 {
		e.expireAt = now.Add(ttl)
	} else {
		delete(mc.data, key)
	}
	return true, nil
}

// Len returns the number of stored keys, expired or not.
func (mc *MemoryCache) Len() int {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return len(mc.data)
}

// Close stops the janitor. It is safe to call more than once.
func (mc *MemoryCache) Close() error {
	mc.stopOnce.Do(func() { close(mc.stop) })
	return nil
}

// evictLocked drops expired keys, or failing that the least recently used one.
func (mc *MemoryCache) evictLocked(now time.Time) {
	if mc.sweepLocked(now) > 0 {
		return
	}
	var (
		oldestKey string
		oldest    time.Time
	)
	for k, e := range mc.data {
		if oldestKey == "" || e.lastUsed.Before(oldest) {
			oldestKey, oldest = k, e.lastUsed
		}
	}
	if oldestKey != "" {
		delete(mc.data, oldestKey)
	}
}

func (mc *MemoryCache) sweepLocked(now time.Time) int {
	n := 0
	for k, e := range mc.data {
		if e.expired(now) {
			delete(mc.data, k)
			n++
		}
	}
	return n
}

func (mc *MemoryCache) janitor(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-mc.stop:
			return
		case <-t.C:
			mc.mu.Lock()
			mc.sweepLocked(mc.now())
			mc.mu.Unlock()
		}
	}
}
