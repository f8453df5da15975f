package cache

import (
	"errors"
	"strings"
	"sync"
	"time"
)

var ErrorKeyNotFound = errors.New("key_not_found")

type memoryEntry struct {
	Value     string
	ExpiresAt time.Time
}

func (e memoryEntry) isExpired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// Memory implements common.Cache in process memory; it backs the webhook
// deduplication window and activation flows when no Redis is configured
// and doubles as the cache used in tests
type Memory struct {
	entries map[string]memoryEntry
	lock    sync.Mutex
}

func NewMemory() *Memory {
	return &Memory{
		entries: map[string]memoryEntry{},
	}
}

func (m *Memory) Set(key string, value string, ttl time.Duration) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.entries[key] = m.createEntry(value, ttl)
	return nil
}

func (m *Memory) SetNx(key string, value string, ttl time.Duration) (bool, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if entry, ok := m.entries[key]; ok && !entry.isExpired(time.Now()) {
		return false, nil
	}
	m.entries[key] = m.createEntry(value, ttl)
	return true, nil
}

func (m *Memory) Get(key string) (string, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	entry, ok := m.entries[key]
	if !ok || entry.isExpired(time.Now()) {
		delete(m.entries, key)
		return "", ErrorKeyNotFound
	}
	return entry.Value, nil
}

func (m *Memory) Scan(prefix string) ([]string, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	now := time.Now()
	keys := []string{}
	for key, entry := range m.entries {
		if entry.isExpired(now) {
			delete(m.entries, key)
			continue
		}
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (m *Memory) Del(key string) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *Memory) createEntry(value string, ttl time.Duration) memoryEntry {
	entry := memoryEntry{Value: value}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}
	return entry
}
