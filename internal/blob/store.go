package blob

import (
	"context"

	"github.com/bohselecta/luvler-metering/internal/config"
	ierr "github.com/bohselecta/luvler-metering/internal/errors"
	"github.com/bohselecta/luvler-metering/internal/logger"
)

// Store is the durable key-value blob store that backs usage and billing
// records. Values are small JSON documents. There is no compare-and-swap
// primitive: writers overwrite whole values, last write wins.
type Store interface {
	// Put persists data under key, overwriting any prior value
	Put(ctx context.Context, key string, data []byte) error

	// Fetch returns the value stored under key, or ErrNotFound
	Fetch(ctx context.Context, key string) ([]byte, error)

	// Exists reports whether a value is stored under key
	Exists(ctx context.Context, key string) (bool, error)

	// List returns all keys with the given prefix
	List(ctx context.Context, prefix string) ([]string, error)
}

// NewStore creates the blob store configured by blob.provider
func NewStore(cfg *config.Configuration, log *logger.Logger) (Store, error) {
	switch cfg.Blob.Provider {
	case "s3":
		return NewS3Store(cfg, log)
	case "memory":
		log.Warnw("using in-memory blob store, records will not survive a restart")
		return NewInMemoryStore(), nil
	default:
		return nil, ierr.NewErrorf("unknown blob provider: %s", cfg.Blob.Provider).
			WithHint("Supported blob providers are s3 and memory").
			Mark(ierr.ErrValidation)
	}
}
