package store

import (
	"encoding/json"
	"sort"
	"sync"
)

// MemoryStore implements Store over a plain map. Used in tests and kept
// behaviorally identical to SQLiteStore, including the JSON round-trip.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Get(key string, out any) bool {
	s.mu.RLock()
	raw, ok := s.data[Prefix+key]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	return json.Unmarshal([]byte(raw), out) == nil
}

func (s *MemoryStore) Set(key string, v any) bool {
	raw, err := json.Marshal(v)
	if err != nil {
		return false
	}
	s.mu.Lock()
	s.data[Prefix+key] = string(raw)
	s.mu.Unlock()
	return true
}

func (s *MemoryStore) Remove(key string) {
	s.mu.Lock()
	delete(s.data, Prefix+key)
	s.mu.Unlock()
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	s.data = make(map[string]string)
	s.mu.Unlock()
}

func (s *MemoryStore) Exists(key string) bool {
	s.mu.RLock()
	_, ok := s.data[Prefix+key]
	s.mu.RUnlock()
	return ok
}

func (s *MemoryStore) ListKeys() []string {
	s.mu.RLock()
	keys := make([]string, 0, len(s.data))
	for key := range s.data {
		keys = append(keys, key[len(Prefix):])
	}
	s.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// Corrupt overwrites a key with a payload that is not valid JSON. Test
// helper for the degrade-to-default path.
func (s *MemoryStore) Corrupt(key string) {
	s.mu.Lock()
	s.data[Prefix+key] = "{not json"
	s.mu.Unlock()
}
