package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prospera-app/prospera-backend/internal/domain"
	"github.com/prospera-app/prospera-backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupItemService() (*ItemService, *testutil.MockItemRepository, *countingInvalidator, *testutil.MockPublisher) {
	itemRepo := testutil.NewMockItemRepository()
	invalidator := &countingInvalidator{}
	publisher := &testutil.MockPublisher{}
	service := NewItemService(itemRepo, invalidator, publisher)
	return service, itemRepo, invalidator, publisher
}

func TestCreateItem_Success(t *testing.T) {
	service, _, invalidator, publisher := setupItemService()

	item, err := service.CreateItem(ItemInput{
		Description: "Rent",
		Amount:      decimal.NewFromInt(1200),
		Direction:   domain.DirectionOutflow,
		Account:     "Checking",
		Frequency:   domain.FrequencyMonthly,
		DayOfMonth:  1,
		Flexibility: domain.FlexibilityFixed,
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, item.ID)
	assert.Equal(t, "Rent", item.Description)
	assert.Equal(t, 1, invalidator.calls)
	assert.Equal(t, []string{"recurring_item.created"}, publisher.PublishedTypes())
}

func TestCreateItem_UnknownAccountAllowed(t *testing.T) {
	service, _, _, _ := setupItemService()

	// Items referencing accounts that do not exist are stored; the engine
	// drops them from projection until the account appears.
	item, err := service.CreateItem(ItemInput{
		Description: "Gym",
		Amount:      decimal.NewFromInt(40),
		Direction:   domain.DirectionOutflow,
		Account:     "NoSuchAccount",
		Frequency:   domain.FrequencyMonthly,
	})
	require.NoError(t, err)
	assert.Equal(t, "NoSuchAccount", item.Account)
}

func TestCreateItem_Validation(t *testing.T) {
	service, _, invalidator, _ := setupItemService()

	_, err := service.CreateItem(ItemInput{Description: " ", Direction: domain.DirectionInflow})
	assert.ErrorIs(t, err, domain.ErrNameRequired)

	_, err = service.CreateItem(ItemInput{
		Description: "Refund",
		Amount:      decimal.NewFromInt(-5),
		Direction:   domain.DirectionInflow,
	})
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)

	_, err = service.CreateItem(ItemInput{Description: "Rent", Direction: "sideways"})
	assert.ErrorIs(t, err, domain.ErrInvalidDirection)

	assert.Equal(t, 0, invalidator.calls)
}

func TestUpdateItem_ReplacesDefinition(t *testing.T) {
	service, repo, invalidator, publisher := setupItemService()

	seeded := &domain.RecurringItem{
		ID:          uuid.New(),
		Description: "Paycheck",
		Amount:      decimal.NewFromInt(2000),
		Direction:   domain.DirectionInflow,
		Account:     "Checking",
		Frequency:   domain.FrequencyMonthly,
		DayOfMonth:  1,
	}
	repo.AddItem(seeded)

	weekday := time.Friday
	ref := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	updated, err := service.UpdateItem(seeded.ID, ItemInput{
		Description:   "Paycheck",
		Amount:        decimal.NewFromInt(2100),
		Direction:     domain.DirectionInflow,
		Account:       "Checking",
		Frequency:     domain.FrequencyBiweekly,
		Weekday:       &weekday,
		ReferenceDate: &ref,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.FrequencyBiweekly, updated.Frequency)
	require.NotNil(t, updated.Weekday)
	assert.Equal(t, time.Friday, *updated.Weekday)
	assert.True(t, updated.Amount.Equal(decimal.NewFromInt(2100)))
	assert.Equal(t, 1, invalidator.calls)
	assert.Equal(t, []string{"recurring_item.updated"}, publisher.PublishedTypes())
}

func TestUpdateItem_NotFound(t *testing.T) {
	service, _, _, _ := setupItemService()

	_, err := service.UpdateItem(uuid.New(), ItemInput{
		Description: "Rent",
		Direction:   domain.DirectionOutflow,
	})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestDeleteItem(t *testing.T) {
	service, repo, invalidator, publisher := setupItemService()

	seeded := &domain.RecurringItem{
		ID:          uuid.New(),
		Description: "Netflix",
		Amount:      decimal.NewFromFloat(15.99),
		Direction:   domain.DirectionOutflow,
		Account:     "Checking",
		Frequency:   domain.FrequencyMonthly,
	}
	repo.AddItem(seeded)

	require.NoError(t, service.DeleteItem(seeded.ID))
	assert.Empty(t, repo.Items)
	assert.Equal(t, 1, invalidator.calls)
	assert.Equal(t, []string{"recurring_item.deleted"}, publisher.PublishedTypes())

	assert.ErrorIs(t, service.DeleteItem(seeded.ID), domain.ErrItemNotFound)
}
