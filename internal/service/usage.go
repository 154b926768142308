package service

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/bohselecta/luvler-metering/internal/api/dto"
	"github.com/bohselecta/luvler-metering/internal/domain/usage"
	ierr "github.com/bohselecta/luvler-metering/internal/errors"
	"github.com/bohselecta/luvler-metering/internal/types"
)

// UsageService reads and mutates per-user monthly usage counters
type UsageService interface {
	GetUsage(ctx context.Context, userID string) (*dto.UsageResponse, error)
	GetUsageHistory(ctx context.Context, userID string) (*dto.UsageHistoryResponse, error)

	// Increment adds amount to the current month's counter using a plain
	// read-modify-write. Concurrent increments for the same user can race
	// and lose updates; this is accepted for soft metering.
	Increment(ctx context.Context, userID string, amount int64) (*usage.UsageRecord, error)
}

type usageService struct {
	ServiceParams
	tier TierService
}

func NewUsageService(params ServiceParams) UsageService {
	return &usageService{
		ServiceParams: params,
		tier:          NewTierService(params),
	}
}

func (s *usageService) GetUsage(ctx context.Context, userID string) (*dto.UsageResponse, error) {
	if userID == "" {
		return nil, ierr.NewError("user_id is required").
			WithHint("Please provide a user ID").
			Mark(ierr.ErrValidation)
	}

	record, err := s.UsageRepo.Get(ctx, userID, types.CurrentPeriod())
	if err != nil {
		return nil, err
	}

	tier := s.tier.ResolveTier(ctx, userID, types.GetOrgID(ctx))
	limit := s.tier.LimitFor(tier)

	remaining := limit - record.Used
	if remaining < 0 {
		remaining = 0
	}

	return &dto.UsageResponse{
		Period:    record.Period,
		Tier:      tier,
		Used:      record.Used,
		Limit:     limit,
		Remaining: remaining,
		UpdatedAt: record.UpdatedAt,
	}, nil
}

func (s *usageService) GetUsageHistory(ctx context.Context, userID string) (*dto.UsageHistoryResponse, error) {
	if userID == "" {
		return nil, ierr.NewError("user_id is required").
			WithHint("Please provide a user ID").
			Mark(ierr.ErrValidation)
	}

	periods, err := s.UsageRepo.ListPeriods(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.UsagePeriodResponse, 0, len(periods))
	for _, period := range periods {
		record, err := s.UsageRepo.Get(ctx, userID, period)
		if err != nil {
			s.Logger.Warnw("skipping unreadable usage period",
				"user_id", userID, "period", period, "error", err)
			continue
		}
		items = append(items, dto.ToUsagePeriodResponse(record))
	}

	// most recent month first
	items = lo.Reverse(items)

	return &dto.UsageHistoryResponse{
		Items: items,
		Total: len(items),
	}, nil
}

func (s *usageService) Increment(ctx context.Context, userID string, amount int64) (*usage.UsageRecord, error) {
	if userID == "" {
		return nil, ierr.NewError("user_id is required").
			WithHint("Please provide a user ID").
			Mark(ierr.ErrValidation)
	}
	if amount <= 0 {
		return nil, ierr.NewErrorf("amount must be positive, got %d", amount).
			Mark(ierr.ErrValidation)
	}

	record, err := s.UsageRepo.Get(ctx, userID, types.CurrentPeriod())
	if err != nil {
		return nil, err
	}

	record.Used += amount
	record.UpdatedAt = time.Now().UTC()

	if err := s.UsageRepo.Put(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}
