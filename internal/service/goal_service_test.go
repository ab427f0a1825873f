package service

import (
	"testing"
	"time"

	"github.com/prospera-app/prospera-backend/internal/domain"
	"github.com/prospera-app/prospera-backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupGoalService() (*GoalService, *testutil.MockAccountRepository, *testutil.MockItemRepository, *ForecastService) {
	accountRepo := testutil.NewMockAccountRepository()
	itemRepo := testutil.NewMockItemRepository()
	revisionRepo := testutil.NewMockRevisionRepository()
	forecastService := NewForecastService(accountRepo, itemRepo, revisionRepo, 16, time.Minute)
	forecastService.now = func() time.Time {
		return time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	service := NewGoalService(accountRepo, forecastService)
	return service, accountRepo, itemRepo, forecastService
}

func TestEstimateGoalDate_AssetGrowsToTarget(t *testing.T) {
	service, accountRepo, itemRepo, _ := setupGoalService()

	accountRepo.AddAccount(&domain.Account{
		Name:           "Savings",
		Template:       domain.TemplateSavings,
		AccountType:    domain.AccountTypeAsset,
		InitialBalance: decimal.NewFromInt(1000),
	})
	itemRepo.AddItem(&domain.RecurringItem{
		Description: "Transfer to savings",
		Amount:      decimal.NewFromInt(500),
		Direction:   domain.DirectionInflow,
		Account:     "Savings",
		Frequency:   domain.FrequencyMonthly,
		DayOfMonth:  1,
	})

	estimate, err := service.EstimateGoalDate("Savings", decimal.NewFromInt(2500), 365)
	require.NoError(t, err)

	require.True(t, estimate.Reached)
	// 1000 -> 1500 (Jan 1) -> 2000 (Feb 1) -> 2500 (Mar 1)
	require.NotNil(t, estimate.Date)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), *estimate.Date)
	require.NotNil(t, estimate.Balance)
	assert.True(t, estimate.Balance.Equal(decimal.NewFromInt(2500)))
	assert.Equal(t, 60, estimate.DaysUntil)
}

func TestEstimateGoalDate_LiabilityShrinksToTarget(t *testing.T) {
	service, accountRepo, itemRepo, _ := setupGoalService()

	accountRepo.AddAccount(&domain.Account{
		Name:           "Visa",
		Template:       domain.TemplateCredit,
		AccountType:    domain.AccountTypeLiability,
		InitialBalance: decimal.NewFromInt(900),
	})
	itemRepo.AddItem(&domain.RecurringItem{
		Description: "Card payment",
		Amount:      decimal.NewFromInt(300),
		Direction:   domain.DirectionInflow,
		Account:     "Visa",
		Frequency:   domain.FrequencyMonthly,
		DayOfMonth:  15,
	})

	estimate, err := service.EstimateGoalDate("Visa", decimal.Zero, 365)
	require.NoError(t, err)

	require.True(t, estimate.Reached)
	// 900 -> 600 (Jan 15) -> 300 (Feb 15) -> 0 (Mar 15)
	require.NotNil(t, estimate.Date)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), *estimate.Date)
}

func TestEstimateGoalDate_NotReachedWithinHorizon(t *testing.T) {
	service, accountRepo, _, _ := setupGoalService()

	accountRepo.AddAccount(&domain.Account{
		Name:           "Savings",
		Template:       domain.TemplateSavings,
		AccountType:    domain.AccountTypeAsset,
		InitialBalance: decimal.NewFromInt(100),
	})

	estimate, err := service.EstimateGoalDate("Savings", decimal.NewFromInt(1000000), 30)
	require.NoError(t, err)

	assert.False(t, estimate.Reached)
	assert.Nil(t, estimate.Date)
	assert.Nil(t, estimate.Balance)
}

func TestEstimateGoalDate_UnknownAccount(t *testing.T) {
	service, _, _, _ := setupGoalService()

	_, err := service.EstimateGoalDate("Ghost", decimal.Zero, 30)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}
