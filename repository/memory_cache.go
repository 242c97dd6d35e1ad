package repository

import (
	"context"
	"sync"
	"time"
)

const (
	// DefaultMemoryCacheEntries bounds a MemoryCache built by NewMemoryCache.
	DefaultMemoryCacheEntries = 10000
	memorySweepInterval       = 5 * time.Minute
)

type memoryEntry struct {
	value     string
	storedAt  time.Time
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryCache is an in-process CacheRepository. A zero TTL keeps entries
// until they are evicted to make room; expired entries are swept in the
// background until Close is called.
type MemoryCache struct {
	mu         sync.RWMutex
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	data       map[string]memoryEntry
	stopSweep  chan struct{}
	stopOnce   sync.Once
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	m := &MemoryCache{
		ttl:        ttl,
		maxEntries: DefaultMemoryCacheEntries,
		now:        time.Now,
		data:       make(map[string]memoryEntry),
		stopSweep:  make(chan struct{}),
	}
	if ttl > 0 {
		go m.sweepLoop()
	}
	return m
}

func (m *MemoryCache) sweepLoop() {
	ticker := time.NewTicker(memorySweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Sweep()
		case <-m.stopSweep:
			return
		}
	}
}

// Sweep drops every expired entry and returns how many were removed.
func (m *MemoryCache) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sweepLocked(m.now())
}

func (m *MemoryCache) sweepLocked(now time.Time) int {
	removed := 0
	for key, entry := range m.data {
		if entry.expired(now) {
			delete(m.data, key)
			removed++
		}
	}
	return removed
}

// Close stops the background sweep. It is safe to call more than once.
func (m *MemoryCache) Close() error {
	m.stopOnce.Do(func() { close(m.stopSweep) })
	return nil
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.RLock()
	entry, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return "", false
	}
	if entry.expired(m.now()) {
		m.mu.Lock()
		delete(m.data, key)
		m.mu.Unlock()
		return "", false
	}
	return entry.value, true
}

func (m *MemoryCache) Set(_ context.Context, key string, value string) error {
	now := m.now()
	entry := memoryEntry{value: value, storedAt: now}
	if m.ttl > 0 {
		entry.expiresAt = now.Add(m.ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.data[key]; !exists && m.maxEntries > 0 && len(m.data) >= m.maxEntries {
		if m.sweepLocked(now) == 0 {
			m.evictOldestLocked()
		}
	}
	m.data[key] = entry
	return nil
}

func (m *MemoryCache) evictOldestLocked() {
	var (
		oldestKey string
		oldestAt  time.Time
		found     bool
	)
	for key, entry := range m.data {
		if !found || entry.storedAt.Before(oldestAt) {
			oldestKey, oldestAt, found = key, entry.storedAt, true
		}
	}
	if found {
		delete(m.data, oldestKey)
	}
}

// Len returns the number of stored entries, expired ones included.
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// NopCache never stores anything.
type NopCache struct{}

func (NopCache) Get(context.Context, string) (string, bool) { return "", false }
func (NopCache) Set(context.Context, string, string) error  { return nil }
