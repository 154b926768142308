package blobstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bohselecta/luvler-metering/internal/blob"
	"github.com/bohselecta/luvler-metering/internal/domain/usage"
	ierr "github.com/bohselecta/luvler-metering/internal/errors"
	"github.com/bohselecta/luvler-metering/internal/logger"
	"github.com/bohselecta/luvler-metering/internal/types"
)

const usageKeyPrefix = "usage/"

type usageRepository struct {
	store blob.Store
	log   *logger.Logger
}

// NewUsageRepository creates a usage repository backed by the blob store
func NewUsageRepository(store blob.Store, log *logger.Logger) usage.Repository {
	return &usageRepository{
		store: store,
		log:   log,
	}
}

func usageKey(userID string, period types.Period) string {
	return fmt.Sprintf("%s%s/%s", usageKeyPrefix, userID, period)
}

func (r *usageRepository) Get(ctx context.Context, userID string, period types.Period) (*usage.UsageRecord, error) {
	data, err := r.store.Fetch(ctx, usageKey(userID, period))
	if err != nil {
		if ierr.IsNotFound(err) {
			// read does not create: the zero record only exists in memory
			// until the first increment persists it
			return usage.NewUsageRecord(userID, period), nil
		}
		return nil, ierr.WithError(err).
			WithHintf("Failed to fetch usage for user %s in %s", userID, period).
			Mark(ierr.ErrBlobStore)
	}

	var record usage.UsageRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Malformed usage record for user %s in %s", userID, period).
			Mark(ierr.ErrBlobStore)
	}
	return &record, nil
}

func (r *usageRepository) Put(ctx context.Context, record *usage.UsageRecord) error {
	if record == nil {
		return ierr.NewError("usage record cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if err := record.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return ierr.WithError(err).
			WithHintf("Failed to encode usage record for user %s", record.UserID).
			Mark(ierr.ErrSystem)
	}
	return r.store.Put(ctx, usageKey(record.UserID, record.Period), data)
}

func (r *usageRepository) ListPeriods(ctx context.Context, userID string) ([]types.Period, error) {
	prefix := fmt.Sprintf("%s%s/", usageKeyPrefix, userID)
	keys, err := r.store.List(ctx, prefix)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Failed to list usage periods for user %s", userID).
			Mark(ierr.ErrBlobStore)
	}

	periods := make([]types.Period, 0, len(keys))
	for _, key := range keys {
		period, err := types.ParsePeriod(strings.TrimPrefix(key, prefix))
		if err != nil {
			r.log.Warnw("skipping unparseable usage key", "key", key, "error", err)
			continue
		}
		periods = append(periods, period)
	}
	return periods, nil
}
