package repository

import (
	"context"

	"github.com/bohselecta/luvler-metering/internal/cache"
	"github.com/bohselecta/luvler-metering/internal/domain/billing"
	"github.com/bohselecta/luvler-metering/internal/logger"
)

// cachedBillingRepository decorates a billing repository with a short-TTL
// cache so tier resolution does not hit the blob store on every generation
// request. Writes invalidate the cached entry; a stale read is bounded by
// the cache TTL. Not-found results are not cached.
type cachedBillingRepository struct {
	inner billing.Repository
	cache cache.Cache
	log   *logger.Logger
}

func withBillingCache(inner billing.Repository, c cache.Cache, log *logger.Logger) billing.Repository {
	return &cachedBillingRepository{
		inner: inner,
		cache: c,
		log:   log,
	}
}

func (r *cachedBillingRepository) GetForUser(ctx context.Context, userID string) (*billing.BillingRecord, error) {
	key := cache.GenerateKey(cache.PrefixUserBilling, userID)
	if value, found := r.cache.Get(ctx, key); found {
		if record, ok := value.(*billing.BillingRecord); ok {
			return record, nil
		}
	}

	record, err := r.inner.GetForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	r.cache.Set(ctx, key, record, cache.DefaultExpiration)
	return record, nil
}

func (r *cachedBillingRepository) GetForOrg(ctx context.Context, orgID string) (*billing.BillingRecord, error) {
	key := cache.GenerateKey(cache.PrefixOrgBilling, orgID)
	if value, found := r.cache.Get(ctx, key); found {
		if record, ok := value.(*billing.BillingRecord); ok {
			return record, nil
		}
	}

	record, err := r.inner.GetForOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	r.cache.Set(ctx, key, record, cache.DefaultExpiration)
	return record, nil
}

func (r *cachedBillingRepository) SetForUser(ctx context.Context, userID string, record *billing.BillingRecord) error {
	if err := r.inner.SetForUser(ctx, userID, record); err != nil {
		return err
	}
	r.cache.Delete(ctx, cache.GenerateKey(cache.PrefixUserBilling, userID))
	return nil
}

func (r *cachedBillingRepository) SetForOrg(ctx context.Context, orgID string, record *billing.BillingRecord) error {
	if err := r.inner.SetForOrg(ctx, orgID, record); err != nil {
		return err
	}
	r.cache.Delete(ctx, cache.GenerateKey(cache.PrefixOrgBilling, orgID))
	return nil
}
