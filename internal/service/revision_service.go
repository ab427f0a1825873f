package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/prospera-app/prospera-backend/internal/domain"
	"github.com/prospera-app/prospera-backend/internal/websocket"
)

// RevisionService handles budget-revision business logic
type RevisionService struct {
	revisionRepo domain.RevisionRepository
	invalidator  ForecastInvalidator
	publisher    websocket.EventPublisher
}

// NewRevisionService creates a new RevisionService
func NewRevisionService(revisionRepo domain.RevisionRepository, invalidator ForecastInvalidator, publisher websocket.EventPublisher) *RevisionService {
	return &RevisionService{
		revisionRepo: revisionRepo,
		invalidator:  invalidator,
		publisher:    publisher,
	}
}

// CreateRevisionInput holds the input for creating a budget revision. The
// inflow and outflow lists fully replace the base catalogue from the
// effective date onward.
type CreateRevisionInput struct {
	EffectiveDate time.Time
	Inflows       []domain.RecurringItem
	Outflows      []domain.RecurringItem
}

// CreateRevision creates a new budget revision
func (s *RevisionService) CreateRevision(input CreateRevisionInput) (*domain.BudgetRevision, error) {
	if input.EffectiveDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	revision := &domain.BudgetRevision{
		ID:            uuid.New(),
		EffectiveDate: input.EffectiveDate,
		Inflows:       input.Inflows,
		Outflows:      input.Outflows,
	}

	created, err := s.revisionRepo.Create(revision)
	if err != nil {
		return nil, err
	}

	s.invalidator.Invalidate()
	s.publisher.Publish(websocket.RevisionCreated(created))
	return created, nil
}

// GetRevisions retrieves all revisions
func (s *RevisionService) GetRevisions() ([]*domain.BudgetRevision, error) {
	return s.revisionRepo.GetAll()
}

// GetRevisionByID retrieves a revision by ID
func (s *RevisionService) GetRevisionByID(id uuid.UUID) (*domain.BudgetRevision, error) {
	return s.revisionRepo.GetByID(id)
}

// DeleteRevision removes a revision; projections revert to the base
// catalogue (or the next-latest revision) for the affected dates.
func (s *RevisionService) DeleteRevision(id uuid.UUID) error {
	if err := s.revisionRepo.Delete(id); err != nil {
		return err
	}

	s.invalidator.Invalidate()
	s.publisher.Publish(websocket.RevisionDeleted(map[string]string{"id": id.String()}))
	return nil
}
