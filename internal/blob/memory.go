package blob

import (
	"context"
	"sort"
	"strings"
	"sync"

	ierr "github.com/bohselecta/luvler-metering/internal/errors"
)

// InMemoryStore is a map-backed Store for local development and tests
type InMemoryStore struct {
	mu    sync.RWMutex
	items map[string][]byte
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		items: make(map[string][]byte),
	}
}

func (s *InMemoryStore) Put(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)
	s.items[key] = buf
	return nil
}

func (s *InMemoryStore) Fetch(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.items[key]
	if !ok {
		return nil, ierr.NewErrorf("blob not found: %s", key).
			Mark(ierr.ErrNotFound)
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return buf, nil
}

func (s *InMemoryStore) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.items[key]
	return ok, nil
}

func (s *InMemoryStore) List(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for k := range s.items {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
