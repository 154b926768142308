package blobstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bohselecta/luvler-metering/internal/blob"
	"github.com/bohselecta/luvler-metering/internal/domain/billing"
	ierr "github.com/bohselecta/luvler-metering/internal/errors"
	"github.com/bohselecta/luvler-metering/internal/logger"
)

const (
	userBillingKeyPrefix = "billing/users/"
	orgBillingKeyPrefix  = "billing/orgs/"
)

type billingRepository struct {
	store blob.Store
	log   *logger.Logger
}

// NewBillingRepository creates a billing repository backed by the blob store
func NewBillingRepository(store blob.Store, log *logger.Logger) billing.Repository {
	return &billingRepository{
		store: store,
		log:   log,
	}
}

func userBillingKey(userID string) string {
	return fmt.Sprintf("%s%s", userBillingKeyPrefix, userID)
}

func orgBillingKey(orgID string) string {
	return fmt.Sprintf("%s%s", orgBillingKeyPrefix, orgID)
}

func (r *billingRepository) GetForUser(ctx context.Context, userID string) (*billing.BillingRecord, error) {
	return r.get(ctx, userBillingKey(userID))
}

func (r *billingRepository) GetForOrg(ctx context.Context, orgID string) (*billing.BillingRecord, error) {
	return r.get(ctx, orgBillingKey(orgID))
}

func (r *billingRepository) SetForUser(ctx context.Context, userID string, record *billing.BillingRecord) error {
	return r.set(ctx, userBillingKey(userID), record)
}

func (r *billingRepository) SetForOrg(ctx context.Context, orgID string, record *billing.BillingRecord) error {
	return r.set(ctx, orgBillingKey(orgID), record)
}

func (r *billingRepository) get(ctx context.Context, key string) (*billing.BillingRecord, error) {
	data, err := r.store.Fetch(ctx, key)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, err
		}
		return nil, ierr.WithError(err).
			WithHintf("Failed to fetch billing record %s", key).
			Mark(ierr.ErrBlobStore)
	}

	var record billing.BillingRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Malformed billing record %s", key).
			Mark(ierr.ErrBlobStore)
	}
	return &record, nil
}

func (r *billingRepository) set(ctx context.Context, key string, record *billing.BillingRecord) error {
	if record == nil {
		return ierr.NewError("billing record cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if err := record.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return ierr.WithError(err).
			WithHintf("Failed to encode billing record %s", key).
			Mark(ierr.ErrSystem)
	}
	return r.store.Put(ctx, key, data)
}
