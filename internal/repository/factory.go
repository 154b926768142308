package repository

import (
	"github.com/bohselecta/luvler-metering/internal/blob"
	"github.com/bohselecta/luvler-metering/internal/cache"
	"github.com/bohselecta/luvler-metering/internal/domain/billing"
	"github.com/bohselecta/luvler-metering/internal/domain/usage"
	"github.com/bohselecta/luvler-metering/internal/logger"
	"github.com/bohselecta/luvler-metering/internal/repository/blobstore"
)

// NewUsageRepository creates the blob-backed usage repository
func NewUsageRepository(store blob.Store, log *logger.Logger) usage.Repository {
	return blobstore.NewUsageRepository(store, log)
}

// NewBillingRepository creates the blob-backed billing repository wrapped
// with the short-TTL record cache
func NewBillingRepository(store blob.Store, c cache.Cache, log *logger.Logger) billing.Repository {
	return withBillingCache(blobstore.NewBillingRepository(store, log), c, log)
}
