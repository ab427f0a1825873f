package forecast

import (
	"time"

	"github.com/prospera-app/prospera-backend/internal/domain"
)

// EffectiveBudget is the recurring-item catalogue in effect on a given date.
type EffectiveBudget struct {
	Inflows      []domain.RecurringItem
	Outflows     []domain.RecurringItem
	Overridden   bool
	OverrideDate time.Time
}

// Resolve selects, among revisions whose effective date is on or before
// date, the one with the latest effective date; ties go to whichever is
// encountered last in input order. A qualifying revision fully replaces both
// lists. Revisions with a zero effective date (the unparsable-date case,
// dropped by callers before reaching the engine) are ignored. When nothing
// qualifies the base catalogue is returned unchanged.
func Resolve(date time.Time, baseInflows, baseOutflows []domain.RecurringItem, revisions []domain.BudgetRevision) EffectiveBudget {
	day := DateUTC(date)

	var best *domain.BudgetRevision
	for i := range revisions {
		rev := &revisions[i]
		if rev.EffectiveDate.IsZero() {
			continue
		}
		effective := DateUTC(rev.EffectiveDate)
		if effective.After(day) {
			continue
		}
		if best == nil || !effective.Before(DateUTC(best.EffectiveDate)) {
			best = rev
		}
	}

	if best == nil {
		return EffectiveBudget{Inflows: baseInflows, Outflows: baseOutflows}
	}
	return EffectiveBudget{
		Inflows:      best.Inflows,
		Outflows:     best.Outflows,
		Overridden:   true,
		OverrideDate: DateUTC(best.EffectiveDate),
	}
}
