package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Frequency string

const (
	FrequencyMonthly     Frequency = "monthly"
	FrequencySemiMonthly Frequency = "semimonthly"
	FrequencyBiweekly    Frequency = "biweekly"
	FrequencyWeekly      Frequency = "weekly"
	FrequencyQuarterly   Frequency = "quarterly"
	FrequencyAnnual      Frequency = "annual"
)

// KnownFrequencies lists every frequency the evaluator recognizes. Anything
// else degrades to monthly anchored to day 1.
var KnownFrequencies = map[Frequency]bool{
	FrequencyMonthly:     true,
	FrequencySemiMonthly: true,
	FrequencyBiweekly:    true,
	FrequencyWeekly:      true,
	FrequencyQuarterly:   true,
	FrequencyAnnual:      true,
}

type Direction string

const (
	DirectionInflow  Direction = "inflow"
	DirectionOutflow Direction = "outflow"
)

// Flexibility is an informational tag consumed by what-if analysis. The
// recurrence evaluator ignores it.
type Flexibility string

const (
	FlexibilityFixed         Flexibility = "fixed"
	FlexibilityFlexible      Flexibility = "flexible"
	FlexibilityDiscretionary Flexibility = "discretionary"
)

// RecurringItem is a template for a budgeted inflow or outflow that repeats
// according to a frequency rule. Anchor fields are optional and frequency
// specific; absent anchors fall back to defaults rather than failing.
type RecurringItem struct {
	ID            uuid.UUID       `json:"id"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Direction     Direction       `json:"direction"`
	Account       string          `json:"account"`
	Frequency     Frequency       `json:"frequency"`
	DayOfMonth    int             `json:"dayOfMonth,omitempty"`
	Weekday       *time.Weekday   `json:"weekday,omitempty"`
	ReferenceDate *time.Time      `json:"referenceDate,omitempty"`
	MonthOfYear   *time.Month     `json:"monthOfYear,omitempty"`
	Flexibility   Flexibility     `json:"flexibility,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// AnchorDay returns the day-of-month anchor, defaulting to 1 when unset.
func (i *RecurringItem) AnchorDay() int {
	if i.DayOfMonth < 1 {
		return 1
	}
	return i.DayOfMonth
}

type RecurringItemRepository interface {
	Create(item *RecurringItem) (*RecurringItem, error)
	GetByID(id uuid.UUID) (*RecurringItem, error)
	GetAll() ([]*RecurringItem, error)
	Update(item *RecurringItem) (*RecurringItem, error)
	Delete(id uuid.UUID) error
}
