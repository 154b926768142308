package service

import (
	"github.com/bohselecta/luvler-metering/internal/config"
	"github.com/bohselecta/luvler-metering/internal/domain/billing"
	"github.com/bohselecta/luvler-metering/internal/domain/usage"
	"github.com/bohselecta/luvler-metering/internal/logger"
)

// ServiceParams holds the common dependencies shared by all services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration

	UsageRepo   usage.Repository
	BillingRepo billing.Repository
}

// NewServiceParams creates a new ServiceParams instance
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	usageRepo usage.Repository,
	billingRepo billing.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:      logger,
		Config:      config,
		UsageRepo:   usageRepo,
		BillingRepo: billingRepo,
	}
}
