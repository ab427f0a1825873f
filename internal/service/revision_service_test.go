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

func setupRevisionService() (*RevisionService, *testutil.MockRevisionRepository, *countingInvalidator, *testutil.MockPublisher) {
	revisionRepo := testutil.NewMockRevisionRepository()
	invalidator := &countingInvalidator{}
	publisher := &testutil.MockPublisher{}
	service := NewRevisionService(revisionRepo, invalidator, publisher)
	return service, revisionRepo, invalidator, publisher
}

func TestCreateRevision_Success(t *testing.T) {
	service, repo, invalidator, publisher := setupRevisionService()

	revision, err := service.CreateRevision(CreateRevisionInput{
		EffectiveDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		Outflows: []domain.RecurringItem{{
			ID:          uuid.New(),
			Description: "Bigger Rent",
			Amount:      decimal.NewFromInt(1500),
			Direction:   domain.DirectionOutflow,
			Account:     "Checking",
			Frequency:   domain.FrequencyMonthly,
			DayOfMonth:  1,
		}},
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, revision.ID)
	assert.Len(t, repo.Revisions, 1)
	assert.Equal(t, 1, invalidator.calls)
	assert.Equal(t, []string{"budget_revision.created"}, publisher.PublishedTypes())
}

func TestCreateRevision_ZeroDateRejected(t *testing.T) {
	service, repo, invalidator, _ := setupRevisionService()

	_, err := service.CreateRevision(CreateRevisionInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, repo.Revisions)
	assert.Equal(t, 0, invalidator.calls)
}

func TestCreateRevision_EmptyListsAllowed(t *testing.T) {
	service, _, _, _ := setupRevisionService()

	// A revision with no items is a valid full replacement: it silences the
	// whole catalogue from its effective date.
	revision, err := service.CreateRevision(CreateRevisionInput{
		EffectiveDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Empty(t, revision.Inflows)
	assert.Empty(t, revision.Outflows)
}

func TestDeleteRevision(t *testing.T) {
	service, repo, invalidator, publisher := setupRevisionService()

	seeded := &domain.BudgetRevision{
		ID:            uuid.New(),
		EffectiveDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
	}
	repo.AddRevision(seeded)

	require.NoError(t, service.DeleteRevision(seeded.ID))
	assert.Empty(t, repo.Revisions)
	assert.Equal(t, 1, invalidator.calls)
	assert.Equal(t, []string{"budget_revision.deleted"}, publisher.PublishedTypes())

	assert.ErrorIs(t, service.DeleteRevision(seeded.ID), domain.ErrRevisionNotFound)
}
