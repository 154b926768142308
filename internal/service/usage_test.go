package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/bohselecta/luvler-metering/internal/domain/billing"
	"github.com/bohselecta/luvler-metering/internal/domain/usage"
	"github.com/bohselecta/luvler-metering/internal/testutil"
	"github.com/bohselecta/luvler-metering/internal/types"
)

type UsageServiceSuite struct {
	testutil.BaseServiceTestSuite
	service UsageService
}

func TestUsageService(t *testing.T) {
	suite.Run(t, new(UsageServiceSuite))
}

func (s *UsageServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
}

func (s *UsageServiceSuite) setupService() {
	stores := s.GetStores()
	s.service = NewUsageService(ServiceParams{
		Logger:      s.GetLogger(),
		Config:      s.GetConfig(),
		UsageRepo:   stores.UsageRepo,
		BillingRepo: stores.BillingRepo,
	})
}

func (s *UsageServiceSuite) putUsage(userID string, period types.Period, used int64) {
	record := usage.NewUsageRecord(userID, period)
	record.Used = used
	record.UpdatedAt = time.Now().UTC()
	s.NoError(s.GetStores().UsageRepo.Put(s.GetContext(), record))
}

func (s *UsageServiceSuite) TestGetUsageRequiresUserID() {
	resp, err := s.service.GetUsage(s.GetContext(), "")
	s.Error(err)
	s.Nil(resp)
}

func (s *UsageServiceSuite) TestGetUsageNewUserIsZero() {
	puts := s.GetBlobStore().PutCalls

	resp, err := s.service.GetUsage(s.GetContext(), "user_new")
	s.NoError(err)
	s.Equal(int64(0), resp.Used)
	s.Equal(types.TierFree, resp.Tier)
	s.Equal(int64(5), resp.Limit)
	s.Equal(int64(5), resp.Remaining)
	s.Equal(types.CurrentPeriod(), resp.Period)

	s.Equal(puts, s.GetBlobStore().PutCalls, "reads must never create records")
}

func (s *UsageServiceSuite) TestGetUsageReflectsTier() {
	s.NoError(s.GetStores().BillingRepo.SetForUser(s.GetContext(), "user_1", &billing.BillingRecord{
		Tier:      types.TierClinician,
		Status:    types.SubscriptionStatusActive,
		UpdatedAt: time.Now().UTC(),
	}))
	s.putUsage("user_1", types.CurrentPeriod(), 30)

	resp, err := s.service.GetUsage(s.GetContext(), "user_1")
	s.NoError(err)
	s.Equal(types.TierClinician, resp.Tier)
	s.Equal(int64(150), resp.Limit)
	s.Equal(int64(30), resp.Used)
	s.Equal(int64(120), resp.Remaining)
}

func (s *UsageServiceSuite) TestGetUsageRemainingClampedAtZero() {
	// counter above the limit, e.g. after a downgrade mid-month
	s.putUsage("user_1", types.CurrentPeriod(), 12)

	resp, err := s.service.GetUsage(s.GetContext(), "user_1")
	s.NoError(err)
	s.Equal(int64(12), resp.Used)
	s.Equal(int64(5), resp.Limit)
	s.Equal(int64(0), resp.Remaining)
}

func (s *UsageServiceSuite) TestIncrementValidation() {
	_, err := s.service.Increment(s.GetContext(), "", 1)
	s.Error(err)

	_, err = s.service.Increment(s.GetContext(), "user_1", 0)
	s.Error(err)

	_, err = s.service.Increment(s.GetContext(), "user_1", -3)
	s.Error(err)
}

func (s *UsageServiceSuite) TestIncrementIsAdditive() {
	record, err := s.service.Increment(s.GetContext(), "user_1", 1)
	s.NoError(err)
	s.Equal(int64(1), record.Used)

	record, err = s.service.Increment(s.GetContext(), "user_1", 1)
	s.NoError(err)
	s.Equal(int64(2), record.Used)

	resp, err := s.service.GetUsage(s.GetContext(), "user_1")
	s.NoError(err)
	s.Equal(int64(2), resp.Used)
}

func (s *UsageServiceSuite) TestIncrementScopedToCurrentMonth() {
	s.putUsage("user_1", types.CurrentPeriod().Prev(), 40)

	record, err := s.service.Increment(s.GetContext(), "user_1", 1)
	s.NoError(err)
	s.Equal(int64(1), record.Used)
	s.Equal(types.CurrentPeriod(), record.Period)
}

func (s *UsageServiceSuite) TestGetUsageHistoryMostRecentFirst() {
	current := types.CurrentPeriod()
	s.putUsage("user_1", current.Prev().Prev(), 3)
	s.putUsage("user_1", current.Prev(), 7)
	s.putUsage("user_1", current, 1)

	resp, err := s.service.GetUsageHistory(s.GetContext(), "user_1")
	s.NoError(err)
	s.Equal(3, resp.Total)
	s.Equal(current, resp.Items[0].Period)
	s.Equal(int64(1), resp.Items[0].Used)
	s.Equal(current.Prev(), resp.Items[1].Period)
	s.Equal(current.Prev().Prev(), resp.Items[2].Period)
}

func (s *UsageServiceSuite) TestGetUsageHistoryEmpty() {
	resp, err := s.service.GetUsageHistory(s.GetContext(), "user_new")
	s.NoError(err)
	s.Equal(0, resp.Total)
	s.Empty(resp.Items)
}
