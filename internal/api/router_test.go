package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	v1 "github.com/bohselecta/luvler-metering/internal/api/v1"
	"github.com/bohselecta/luvler-metering/internal/auth"
	"github.com/bohselecta/luvler-metering/internal/service"
	"github.com/bohselecta/luvler-metering/internal/testutil"
	"github.com/bohselecta/luvler-metering/internal/types"
)

type RouterSuite struct {
	testutil.BaseServiceTestSuite
	router   *gin.Engine
	provider auth.Provider
	billing  service.BillingService
	usage    service.UsageService
}

func TestRouter(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupSuite() {
	s.BaseServiceTestSuite.SetupSuite()
	gin.SetMode(gin.TestMode)
	s.GetConfig().Auth.AdminKey = "test-admin-key"
}

func (s *RouterSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	stores := s.GetStores()
	params := service.NewServiceParams(s.GetLogger(), s.GetConfig(), stores.UsageRepo, stores.BillingRepo)

	tierService := service.NewTierService(params)
	usageService := service.NewUsageService(params)
	billingService := service.NewBillingService(params)
	meteringService := service.NewMeteringService(params)

	s.billing = billingService
	s.usage = usageService
	s.provider = auth.NewProvider(s.GetConfig())

	handlers := Handlers{
		Health:   v1.NewHealthHandler(s.GetLogger()),
		Tier:     v1.NewTierHandler(tierService, s.GetLogger()),
		Usage:    v1.NewUsageHandler(usageService, s.GetLogger()),
		Metering: v1.NewMeteringHandler(meteringService, s.GetLogger()),
		Billing:  v1.NewBillingHandler(billingService, s.GetLogger()),
	}
	s.router = NewRouter(handlers, s.GetConfig(), s.GetLogger())
}

func (s *RouterSuite) request(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(types.HeaderAuthorization, "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterSuite) adminRequest(method, path, key string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(types.HeaderAdminKey, key)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterSuite) token(userID, orgID string) string {
	token, err := s.provider.GenerateToken(userID, orgID, time.Hour)
	s.NoError(err)
	return token
}

func (s *RouterSuite) TestHealth() {
	w := s.request(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *RouterSuite) TestListTiersIsPublic() {
	w := s.request(http.MethodGet, "/v1/tiers", "", nil)
	s.Equal(http.StatusOK, w.Code)

	var resp struct {
		Total int `json:"total"`
	}
	s.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(5, resp.Total)
}

func (s *RouterSuite) TestCheckAnonymousIsSkipped() {
	w := s.request(http.MethodPost, "/v1/metering/check", "", nil)
	s.Equal(http.StatusOK, w.Code)

	var resp struct {
		Admitted bool `json:"admitted"`
		Skipped  bool `json:"skipped"`
	}
	s.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.True(resp.Admitted)
	s.True(resp.Skipped)
	s.Zero(s.GetBlobStore().TotalCalls())
}

func (s *RouterSuite) TestInvalidTokenFallsBackToAnonymous() {
	w := s.request(http.MethodPost, "/v1/metering/check", "not-a-jwt", nil)
	s.Equal(http.StatusOK, w.Code)

	var resp struct {
		Skipped bool `json:"skipped"`
	}
	s.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.True(resp.Skipped)
}

func (s *RouterSuite) TestCheckAuthenticatedUser() {
	w := s.request(http.MethodPost, "/v1/metering/check", s.token("user_1", ""), nil)
	s.Equal(http.StatusOK, w.Code)

	var resp struct {
		Admitted bool       `json:"admitted"`
		Skipped  bool       `json:"skipped"`
		Tier     types.Tier `json:"tier"`
		Limit    int64      `json:"limit"`
	}
	s.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.True(resp.Admitted)
	s.False(resp.Skipped)
	s.Equal(types.TierFree, resp.Tier)
	s.Equal(int64(5), resp.Limit)
}

func (s *RouterSuite) TestCheckExhaustedAllowanceIs429() {
	token := s.token("user_1", "")
	for i := 0; i < 5; i++ {
		w := s.request(http.MethodPost, "/v1/metering/record", token, nil)
		s.Equal(http.StatusAccepted, w.Code)
	}

	w := s.request(http.MethodPost, "/v1/metering/check", token, nil)
	s.Equal(http.StatusTooManyRequests, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Message string         `json:"message"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	s.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.False(resp.Success)
	s.NotEmpty(resp.Error.Message)
	s.Equal(float64(5), resp.Error.Details["limit"])
	s.Equal(float64(5), resp.Error.Details["used"])
}

func (s *RouterSuite) TestRecordAnonymousIsNotCounted() {
	w := s.request(http.MethodPost, "/v1/metering/record", "", nil)
	s.Equal(http.StatusAccepted, w.Code)

	var resp struct {
		Accepted bool `json:"accepted"`
	}
	s.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.False(resp.Accepted)
	s.Zero(s.GetBlobStore().TotalCalls())
}

func (s *RouterSuite) TestGetUsageRequiresAuth() {
	w := s.request(http.MethodGet, "/v1/usage", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *RouterSuite) TestGetUsageAuthenticated() {
	w := s.request(http.MethodGet, "/v1/usage", s.token("user_1", ""), nil)
	s.Equal(http.StatusOK, w.Code)

	var resp struct {
		Tier      types.Tier `json:"tier"`
		Used      int64      `json:"used"`
		Limit     int64      `json:"limit"`
		Remaining int64      `json:"remaining"`
	}
	s.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(types.TierFree, resp.Tier)
	s.Equal(int64(0), resp.Used)
	s.Equal(int64(5), resp.Remaining)
}

func (s *RouterSuite) TestOrgTokenGetsOrgTier() {
	w := s.adminRequest(http.MethodPut, "/v1/admin/orgs/org_1/tier", "test-admin-key", gin.H{
		"tier":   "clinic",
		"status": "active",
	})
	s.Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodGet, "/v1/usage", s.token("user_1", "org_1"), nil)
	s.Equal(http.StatusOK, w.Code)

	var resp struct {
		Tier  types.Tier `json:"tier"`
		Limit int64      `json:"limit"`
	}
	s.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(types.TierClinic, resp.Tier)
	s.Equal(int64(400), resp.Limit)
}

func (s *RouterSuite) TestAdminRequiresKey() {
	body := gin.H{"tier": "individual", "status": "active"}

	w := s.adminRequest(http.MethodPut, "/v1/admin/users/user_1/tier", "", body)
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.adminRequest(http.MethodPut, "/v1/admin/users/user_1/tier", "wrong-key", body)
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.adminRequest(http.MethodPut, "/v1/admin/users/user_1/tier", "test-admin-key", body)
	s.Equal(http.StatusOK, w.Code)
}

func (s *RouterSuite) TestAdminRejectsUnknownTier() {
	w := s.adminRequest(http.MethodPut, "/v1/admin/users/user_1/tier", "test-admin-key", gin.H{
		"tier":   "platinum",
		"status": "active",
	})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterSuite) TestAdminGetSubscriptionNotFound() {
	w := s.adminRequest(http.MethodGet, "/v1/admin/users/user_missing/subscription", "test-admin-key", nil)
	s.Equal(http.StatusNotFound, w.Code)
}
