package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prospera-app/prospera-backend/internal/domain"
	"github.com/prospera-app/prospera-backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupWhatIfService() (*WhatIfService, *testutil.MockAccountRepository, *testutil.MockItemRepository) {
	accountRepo := testutil.NewMockAccountRepository()
	itemRepo := testutil.NewMockItemRepository()
	revisionRepo := testutil.NewMockRevisionRepository()
	forecastService := NewForecastService(accountRepo, itemRepo, revisionRepo, 16, time.Minute)
	service := NewWhatIfService(forecastService)
	return service, accountRepo, itemRepo
}

func TestSuggestTrims_OnlyFlexibleAndDiscretionary(t *testing.T) {
	service, accountRepo, itemRepo := setupWhatIfService()

	accountRepo.AddAccount(&domain.Account{
		Name:           "Checking",
		Template:       domain.TemplateChecking,
		AccountType:    domain.AccountTypeAsset,
		InitialBalance: decimal.NewFromInt(1000),
	})
	itemRepo.AddItem(&domain.RecurringItem{
		ID:          uuid.New(),
		Description: "Rent",
		Amount:      decimal.NewFromInt(1200),
		Direction:   domain.DirectionOutflow,
		Account:     "Checking",
		Frequency:   domain.FrequencyMonthly,
		DayOfMonth:  1,
		Flexibility: domain.FlexibilityFixed,
	})
	itemRepo.AddItem(&domain.RecurringItem{
		ID:          uuid.New(),
		Description: "Dining out",
		Amount:      decimal.NewFromInt(100),
		Direction:   domain.DirectionOutflow,
		Account:     "Checking",
		Frequency:   domain.FrequencyMonthly,
		DayOfMonth:  10,
		Flexibility: domain.FlexibilityDiscretionary,
	})

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	suggestions, err := service.SuggestTrims(context.Background(), start, 31, 10)
	require.NoError(t, err)

	// Only the discretionary item gets a suggestion; rent is untouchable.
	require.Len(t, suggestions, 1)
	s := suggestions[0]
	assert.Equal(t, "Dining out", s.Description)
	assert.True(t, s.CurrentAmount.Equal(decimal.NewFromInt(100)))
	assert.True(t, s.ProposedAmount.Equal(decimal.NewFromInt(90)),
		"expected 90, got %s", s.ProposedAmount)
	// One firing inside the horizon, so the saving is exactly one trim.
	assert.True(t, s.EndBalanceDelta.Equal(decimal.NewFromInt(10)),
		"expected delta 10, got %s", s.EndBalanceDelta)
}

func TestSuggestTrims_NoCandidates(t *testing.T) {
	service, accountRepo, itemRepo := setupWhatIfService()

	accountRepo.AddAccount(&domain.Account{
		Name:           "Checking",
		Template:       domain.TemplateChecking,
		AccountType:    domain.AccountTypeAsset,
		InitialBalance: decimal.NewFromInt(1000),
	})
	itemRepo.AddItem(&domain.RecurringItem{
		ID:          uuid.New(),
		Description: "Mortgage",
		Amount:      decimal.NewFromInt(2000),
		Direction:   domain.DirectionOutflow,
		Account:     "Checking",
		Frequency:   domain.FrequencyMonthly,
		DayOfMonth:  1,
		Flexibility: domain.FlexibilityFixed,
	})

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	suggestions, err := service.SuggestTrims(context.Background(), start, 31, 10)
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestSuggestTrims_LiabilityDeltaCountsAsSaving(t *testing.T) {
	service, accountRepo, itemRepo := setupWhatIfService()

	// Trimming a draw on a credit card lowers the projected debt, which
	// improves net position by the same amount.
	accountRepo.AddAccount(&domain.Account{
		Name:           "Visa",
		Template:       domain.TemplateCredit,
		AccountType:    domain.AccountTypeLiability,
		InitialBalance: decimal.NewFromInt(500),
	})
	itemRepo.AddItem(&domain.RecurringItem{
		ID:          uuid.New(),
		Description: "Subscriptions",
		Amount:      decimal.NewFromInt(50),
		Direction:   domain.DirectionOutflow,
		Account:     "Visa",
		Frequency:   domain.FrequencyMonthly,
		DayOfMonth:  5,
		Flexibility: domain.FlexibilityFlexible,
	})

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	suggestions, err := service.SuggestTrims(context.Background(), start, 31, 20)
	require.NoError(t, err)

	require.Len(t, suggestions, 1)
	assert.True(t, suggestions[0].ProposedAmount.Equal(decimal.NewFromInt(40)))
	assert.True(t, suggestions[0].EndBalanceDelta.Equal(decimal.NewFromInt(10)),
		"expected delta 10, got %s", suggestions[0].EndBalanceDelta)
}
