package domain

import (
	"time"

	"github.com/google/uuid"
)

// BudgetRevision is a dated override of the recurring-item catalogue. From
// its effective date until superseded, its inflow and outflow lists fully
// replace the base catalogue (no merging).
type BudgetRevision struct {
	ID            uuid.UUID       `json:"id"`
	EffectiveDate time.Time       `json:"effectiveDate"`
	Inflows       []RecurringItem `json:"inflows"`
	Outflows      []RecurringItem `json:"outflows"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type RevisionRepository interface {
	Create(revision *BudgetRevision) (*BudgetRevision, error)
	GetByID(id uuid.UUID) (*BudgetRevision, error)
	GetAll() ([]*BudgetRevision, error)
	Delete(id uuid.UUID) error
}
