package billing

import "context"

// Repository defines the interface for billing record storage operations.
// Get operations return ErrNotFound when no record has been written; tier
// resolution treats any read failure the same as not-found.
type Repository interface {
	GetForUser(ctx context.Context, userID string) (*BillingRecord, error)
	GetForOrg(ctx context.Context, orgID string) (*BillingRecord, error)
	SetForUser(ctx context.Context, userID string, record *BillingRecord) error
	SetForOrg(ctx context.Context, orgID string, record *BillingRecord) error
}
