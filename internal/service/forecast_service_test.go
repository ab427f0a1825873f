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

func setupForecastService() (*ForecastService, *testutil.MockAccountRepository, *testutil.MockItemRepository, *testutil.MockRevisionRepository) {
	accountRepo := testutil.NewMockAccountRepository()
	itemRepo := testutil.NewMockItemRepository()
	revisionRepo := testutil.NewMockRevisionRepository()
	service := NewForecastService(accountRepo, itemRepo, revisionRepo, 16, time.Minute)
	return service, accountRepo, itemRepo, revisionRepo
}

func seedChecking(accountRepo *testutil.MockAccountRepository, balance int64) {
	accountRepo.AddAccount(&domain.Account{
		Name:           "Checking",
		Template:       domain.TemplateChecking,
		AccountType:    domain.AccountTypeAsset,
		InitialBalance: decimal.NewFromInt(balance),
	})
}

func TestForecast_ProjectsBalances(t *testing.T) {
	service, accountRepo, itemRepo, _ := setupForecastService()
	seedChecking(accountRepo, 1000)
	itemRepo.AddItem(&domain.RecurringItem{
		Description: "Rent",
		Amount:      decimal.NewFromInt(200),
		Direction:   domain.DirectionOutflow,
		Account:     "Checking",
		Frequency:   domain.FrequencyMonthly,
		DayOfMonth:  1,
	})

	start := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	snapshots, err := service.Forecast(start, 60)
	require.NoError(t, err)
	require.Len(t, snapshots, 60)

	// Feb 1 and Mar 1 fall inside the horizon
	last := snapshots[len(snapshots)-1]
	assert.True(t, last.Accounts["Checking"].Balance.Equal(decimal.NewFromInt(600)),
		"expected 600, got %s", last.Accounts["Checking"].Balance)
}

func TestForecast_HorizonClamped(t *testing.T) {
	service, accountRepo, _, _ := setupForecastService()
	seedChecking(accountRepo, 100)

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	snapshots, err := service.Forecast(start, 0)
	require.NoError(t, err)
	assert.Len(t, snapshots, DefaultHorizonDays)

	snapshots, err = service.Forecast(start, -5)
	require.NoError(t, err)
	assert.Len(t, snapshots, DefaultHorizonDays)
}

func TestForecast_CachesUntilInvalidated(t *testing.T) {
	service, accountRepo, itemRepo, _ := setupForecastService()
	seedChecking(accountRepo, 1000)

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	first, err := service.Forecast(start, 30)
	require.NoError(t, err)

	// Mutate the repo behind the service's back: the cached run must win
	// until someone calls Invalidate.
	itemRepo.AddItem(&domain.RecurringItem{
		Description: "Rent",
		Amount:      decimal.NewFromInt(500),
		Direction:   domain.DirectionOutflow,
		Account:     "Checking",
		Frequency:   domain.FrequencyMonthly,
		DayOfMonth:  2,
	})

	cached, err := service.Forecast(start, 30)
	require.NoError(t, err)
	assert.True(t, cached[29].Accounts["Checking"].Balance.Equal(first[29].Accounts["Checking"].Balance))

	service.Invalidate()

	fresh, err := service.Forecast(start, 30)
	require.NoError(t, err)
	assert.True(t, fresh[29].Accounts["Checking"].Balance.Equal(decimal.NewFromInt(500)),
		"expected 500 after invalidation, got %s", fresh[29].Accounts["Checking"].Balance)
}

func TestForecastFromToday_MarksToday(t *testing.T) {
	service, accountRepo, _, _ := setupForecastService()
	seedChecking(accountRepo, 100)

	fixed := time.Date(2024, time.March, 10, 14, 30, 0, 0, time.UTC)
	service.now = func() time.Time { return fixed }

	snapshots, err := service.ForecastFromToday(5)
	require.NoError(t, err)
	require.Len(t, snapshots, 5)

	assert.True(t, snapshots[0].IsToday)
	assert.Equal(t, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC), snapshots[0].Date)
	for _, snapshot := range snapshots[1:] {
		assert.False(t, snapshot.IsToday)
	}
}

func TestBuildInput_PartitionsByDirection(t *testing.T) {
	service, accountRepo, itemRepo, revisionRepo := setupForecastService()
	seedChecking(accountRepo, 100)
	itemRepo.AddItem(&domain.RecurringItem{
		Description: "Salary",
		Amount:      decimal.NewFromInt(3000),
		Direction:   domain.DirectionInflow,
		Account:     "Checking",
		Frequency:   domain.FrequencyMonthly,
		DayOfMonth:  1,
	})
	itemRepo.AddItem(&domain.RecurringItem{
		Description: "Rent",
		Amount:      decimal.NewFromInt(1200),
		Direction:   domain.DirectionOutflow,
		Account:     "Checking",
		Frequency:   domain.FrequencyMonthly,
		DayOfMonth:  1,
	})
	revisionRepo.AddRevision(&domain.BudgetRevision{
		EffectiveDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
	})

	input, err := service.BuildInput(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), 30)
	require.NoError(t, err)

	assert.Len(t, input.Accounts, 1)
	assert.Len(t, input.Inflows, 1)
	assert.Len(t, input.Outflows, 1)
	assert.Len(t, input.Revisions, 1)
	assert.Equal(t, 30, input.HorizonDays)
}
