package testutil

import (
	"context"
	"sync"

	"github.com/bohselecta/luvler-metering/internal/blob"
	ierr "github.com/bohselecta/luvler-metering/internal/errors"
)

// InstrumentedBlobStore wraps the in-memory blob store with per-operation
// counters and failure injection. Suites use the counters to assert that
// anonymous requests never touch storage, and the failure flags to exercise
// the fail-open policies around store outages.
type InstrumentedBlobStore struct {
	inner *blob.InMemoryStore

	mu          sync.Mutex
	PutCalls    int
	FetchCalls  int
	ExistsCalls int
	ListCalls   int

	FailPuts    bool
	FailFetches bool
}

func NewInstrumentedBlobStore() *InstrumentedBlobStore {
	return &InstrumentedBlobStore{
		inner: blob.NewInMemoryStore(),
	}
}

func (s *InstrumentedBlobStore) Put(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	s.PutCalls++
	fail := s.FailPuts
	s.mu.Unlock()

	if fail {
		return ierr.NewErrorf("injected put failure for %s", key).
			Mark(ierr.ErrBlobStore)
	}
	return s.inner.Put(ctx, key, data)
}

func (s *InstrumentedBlobStore) Fetch(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	s.FetchCalls++
	fail := s.FailFetches
	s.mu.Unlock()

	if fail {
		return nil, ierr.NewErrorf("injected fetch failure for %s", key).
			Mark(ierr.ErrBlobStore)
	}
	return s.inner.Fetch(ctx, key)
}

func (s *InstrumentedBlobStore) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	s.ExistsCalls++
	s.mu.Unlock()

	return s.inner.Exists(ctx, key)
}

func (s *InstrumentedBlobStore) List(ctx context.Context, prefix string) ([]string, error) {
	s.mu.Lock()
	s.ListCalls++
	s.mu.Unlock()

	return s.inner.List(ctx, prefix)
}

// TotalCalls returns the number of store operations performed
func (s *InstrumentedBlobStore) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.PutCalls + s.FetchCalls + s.ExistsCalls + s.ListCalls
}
