package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/bohselecta/luvler-metering/internal/cache"
	"github.com/bohselecta/luvler-metering/internal/config"
	"github.com/bohselecta/luvler-metering/internal/domain/billing"
	"github.com/bohselecta/luvler-metering/internal/domain/usage"
	"github.com/bohselecta/luvler-metering/internal/logger"
	"github.com/bohselecta/luvler-metering/internal/repository"
	"github.com/bohselecta/luvler-metering/internal/validator"
)

// Stores holds all the repository interfaces for testing. Both repositories
// are the real blob-backed implementations running over an instrumented
// in-memory blob store, so suites exercise the storage codecs too.
type Stores struct {
	UsageRepo   usage.Repository
	BillingRepo billing.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	blobStore *InstrumentedBlobStore
	stores    Stores
	logger    *logger.Logger
	config    *config.Configuration
	now       time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	cfg := config.GetDefaultConfig()
	s.config = cfg

	var err error
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

func (s *BaseServiceTestSuite) setupStores() {
	s.blobStore = NewInstrumentedBlobStore()
	s.stores = Stores{
		UsageRepo:   repository.NewUsageRepository(s.blobStore, s.logger),
		BillingRepo: repository.NewBillingRepository(s.blobStore, cache.NewInMemoryCache(s.config), s.logger),
	}
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
}

// ClearStores resets all stores to a fresh state
func (s *BaseServiceTestSuite) ClearStores() {
	s.setupStores()
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) SetContext(ctx context.Context) {
	s.ctx = ctx
}

func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

func (s *BaseServiceTestSuite) GetBlobStore() *InstrumentedBlobStore {
	return s.blobStore
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}
