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

type MeteringServiceSuite struct {
	testutil.BaseServiceTestSuite
	service MeteringService
}

func TestMeteringService(t *testing.T) {
	suite.Run(t, new(MeteringServiceSuite))
}

func (s *MeteringServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
}

func (s *MeteringServiceSuite) setupService() {
	stores := s.GetStores()
	s.service = NewMeteringService(ServiceParams{
		Logger:      s.GetLogger(),
		Config:      s.GetConfig(),
		UsageRepo:   stores.UsageRepo,
		BillingRepo: stores.BillingRepo,
	})
}

func (s *MeteringServiceSuite) setUserTier(userID string, tier types.Tier) {
	err := s.GetStores().BillingRepo.SetForUser(s.GetContext(), userID, &billing.BillingRecord{
		Tier:      tier,
		Status:    types.SubscriptionStatusActive,
		UpdatedAt: time.Now().UTC(),
	})
	s.NoError(err)
}

func (s *MeteringServiceSuite) putUsage(userID string, period types.Period, used int64) {
	record := usage.NewUsageRecord(userID, period)
	record.Used = used
	record.UpdatedAt = time.Now().UTC()
	s.NoError(s.GetStores().UsageRepo.Put(s.GetContext(), record))
}

func (s *MeteringServiceSuite) TestAnonymousCallerIsSkipped() {
	decision := s.service.Check(s.GetContext(), "", "")

	s.Equal(OutcomeSkipped, decision.Outcome)
	s.True(decision.Allowed())
	s.Zero(s.GetBlobStore().TotalCalls(), "anonymous checks must not touch storage")
}

func (s *MeteringServiceSuite) TestNewUserAdmittedOnFreeTier() {
	decision := s.service.Check(s.GetContext(), "user_new", "")

	s.Equal(OutcomeAdmitted, decision.Outcome)
	s.Equal(types.TierFree, decision.Tier)
	s.Equal(int64(5), decision.Limit)
	s.Equal(int64(0), decision.Used)
}

func (s *MeteringServiceSuite) TestAdmittedOneBelowLimit() {
	s.putUsage("user_1", types.CurrentPeriod(), 4)

	decision := s.service.Check(s.GetContext(), "user_1", "")

	s.Equal(OutcomeAdmitted, decision.Outcome)
	s.Equal(int64(4), decision.Used)
	s.True(decision.Allowed())
}

func (s *MeteringServiceSuite) TestRejectedAtLimit() {
	s.putUsage("user_1", types.CurrentPeriod(), 5)

	decision := s.service.Check(s.GetContext(), "user_1", "")

	s.Equal(OutcomeRejected, decision.Outcome)
	s.False(decision.Allowed())
	s.Equal(types.TierFree, decision.Tier)
	s.Equal(int64(5), decision.Limit)
	s.Equal(int64(5), decision.Used)
}

func (s *MeteringServiceSuite) TestRejectedAboveLimit() {
	s.putUsage("user_1", types.CurrentPeriod(), 9)

	decision := s.service.Check(s.GetContext(), "user_1", "")

	s.Equal(OutcomeRejected, decision.Outcome)
	s.Equal(int64(9), decision.Used)
}

func (s *MeteringServiceSuite) TestPaidTierRaisesLimit() {
	s.setUserTier("user_1", types.TierIndividual)
	s.putUsage("user_1", types.CurrentPeriod(), 10)

	decision := s.service.Check(s.GetContext(), "user_1", "")

	s.Equal(OutcomeAdmitted, decision.Outcome)
	s.Equal(types.TierIndividual, decision.Tier)
	s.Equal(int64(50), decision.Limit)
	s.Equal(int64(10), decision.Used)

	s.putUsage("user_1", types.CurrentPeriod(), 50)
	decision = s.service.Check(s.GetContext(), "user_1", "")
	s.Equal(OutcomeRejected, decision.Outcome)
}

func (s *MeteringServiceSuite) TestOrgTierAppliesToMember() {
	s.NoError(s.GetStores().BillingRepo.SetForOrg(s.GetContext(), "org_1", &billing.BillingRecord{
		Tier:      types.TierClinic,
		Status:    types.SubscriptionStatusActive,
		OrgID:     "org_1",
		UpdatedAt: time.Now().UTC(),
	}))
	s.putUsage("user_1", types.CurrentPeriod(), 399)

	decision := s.service.Check(s.GetContext(), "user_1", "org_1")

	s.Equal(OutcomeAdmitted, decision.Outcome)
	s.Equal(types.TierClinic, decision.Tier)
	s.Equal(int64(400), decision.Limit)
}

func (s *MeteringServiceSuite) TestMonthRolloverResetsCounter() {
	s.putUsage("user_1", types.CurrentPeriod().Prev(), 5)

	decision := s.service.Check(s.GetContext(), "user_1", "")

	s.Equal(OutcomeAdmitted, decision.Outcome)
	s.Equal(int64(0), decision.Used)
}

func (s *MeteringServiceSuite) TestStoreOutageIsIndeterminateAndAllowed() {
	s.putUsage("user_1", types.CurrentPeriod(), 5)
	s.GetBlobStore().FailFetches = true

	decision := s.service.Check(s.GetContext(), "user_1", "")

	s.Equal(OutcomeIndeterminate, decision.Outcome)
	s.True(decision.Allowed(), "infrastructure failures must not block callers")
}

func (s *MeteringServiceSuite) TestRecordSuccessIncrementsCounter() {
	s.service.RecordSuccess(s.GetContext(), "user_1")
	s.service.RecordSuccess(s.GetContext(), "user_1")

	decision := s.service.Check(s.GetContext(), "user_1", "")
	s.Equal(int64(2), decision.Used)
}

func (s *MeteringServiceSuite) TestRecordSuccessIgnoresAnonymous() {
	s.service.RecordSuccess(s.GetContext(), "")
	s.Zero(s.GetBlobStore().TotalCalls())
}

func (s *MeteringServiceSuite) TestRecordSuccessSwallowsWriteFailure() {
	s.GetBlobStore().FailPuts = true
	s.service.RecordSuccess(s.GetContext(), "user_1")
	s.GetBlobStore().FailPuts = false

	decision := s.service.Check(s.GetContext(), "user_1", "")
	s.Equal(int64(0), decision.Used, "failed writes undercount instead of erroring")
}
