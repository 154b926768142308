package usage

import (
	"context"

	"github.com/bohselecta/luvler-metering/internal/types"
)

// Repository defines the interface for usage record storage operations.
//
// Put is a whole-record overwrite with no compare-and-swap, so the
// read-modify-write increment in the usage service can race with itself
// under concurrency and lose updates. That is accepted: the counter is
// soft metering, not a billing ledger.
type Repository interface {
	// Get returns the record for (userID, period), synthesizing a zero
	// record when none exists. Get never creates anything.
	Get(ctx context.Context, userID string, period types.Period) (*UsageRecord, error)

	// Put persists the record under its (userID, period) key, last write wins
	Put(ctx context.Context, record *UsageRecord) error

	// ListPeriods returns the periods for which a record was persisted,
	// oldest first
	ListPeriods(ctx context.Context, userID string) ([]types.Period, error)
}
