package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountDay holds one account's balances and activity for a single
// projected day.
type AccountDay struct {
	Balance      decimal.Decimal `json:"balance"`
	PriorBalance decimal.Decimal `json:"priorBalance"`
	TotalInflow  decimal.Decimal `json:"totalInflow"`
	TotalOutflow decimal.Decimal `json:"totalOutflow"`
	HadActivity  bool            `json:"hadActivity"`
}

// TransferAnnotation marks an account's participation in a correlated
// same-day transfer pair.
type TransferAnnotation struct {
	IsSource    bool            `json:"isSource"`
	Counterpart string          `json:"counterpart"`
	Amount      decimal.Decimal `json:"amount"`
}

// DayTransaction is one firing of a recurring item on a specific day. The
// snapshot carries these raw lists unmodified, flexibility tags included,
// for downstream what-if analysis.
type DayTransaction struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Account     string          `json:"account"`
	Direction   Direction       `json:"direction"`
	Flexibility Flexibility     `json:"flexibility,omitempty"`
}

// DaySnapshot is the engine's per-day output record. Snapshots are produced
// once per projection run in strictly increasing date order and never
// mutated afterwards.
type DaySnapshot struct {
	Date             time.Time                     `json:"date"`
	Accounts         map[string]AccountDay         `json:"accounts"`
	Transfers        map[string]TransferAnnotation `json:"transfers,omitempty"`
	Inflows          []DayTransaction              `json:"inflows,omitempty"`
	Outflows         []DayTransaction              `json:"outflows,omitempty"`
	IsToday          bool                          `json:"isToday"`
	RevisionInEffect bool                          `json:"revisionInEffect"`
	RevisionDate     *time.Time                    `json:"revisionDate,omitempty"`
}
