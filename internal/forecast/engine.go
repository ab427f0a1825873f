package forecast

import (
	"time"

	"github.com/prospera-app/prospera-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// ProjectionInput is the full input tuple for one projection run. The engine
// reads nothing else - no clock, no randomness - so identical inputs always
// produce identical output, and callers may cache results keyed by this
// tuple.
type ProjectionInput struct {
	Accounts []domain.Account

	// InitialBalances optionally overrides each account's stored initial
	// balance, keyed by account name.
	InitialBalances map[string]decimal.Decimal

	Inflows   []domain.RecurringItem
	Outflows  []domain.RecurringItem
	Revisions []domain.BudgetRevision

	StartDate   time.Time
	HorizonDays int

	// Today only controls the IsToday marker on snapshots.
	Today time.Time
}

// Project runs a single forward sweep from StartDate over HorizonDays days
// and returns exactly HorizonDays snapshots in strictly increasing date
// order. It never fails: empty inputs yield flat balances, items referencing
// unknown accounts are excluded from totals, and malformed revisions are
// skipped. Already-emitted snapshots are never revisited.
func Project(in ProjectionInput) []domain.DaySnapshot {
	start := DateUTC(in.StartDate)
	today := DateUTC(in.Today)

	balances := make(map[string]decimal.Decimal, len(in.Accounts))
	accounts := make([]domain.Account, 0, len(in.Accounts))
	for _, a := range in.Accounts {
		if _, dup := balances[a.Name]; dup {
			// Names are unique by invariant; keep the first occurrence.
			continue
		}
		balance := a.InitialBalance
		if override, ok := in.InitialBalances[a.Name]; ok {
			balance = override
		}
		balances[a.Name] = balance
		accounts = append(accounts, a)
	}

	if in.HorizonDays <= 0 {
		return []domain.DaySnapshot{}
	}

	snapshots := make([]domain.DaySnapshot, 0, in.HorizonDays)
	for offset := 0; offset < in.HorizonDays; offset++ {
		day := start.AddDate(0, 0, offset)
		budget := Resolve(day, in.Inflows, in.Outflows, in.Revisions)

		dayInflows, inflowTotals := fireItems(day, budget.Inflows, balances)
		dayOutflows, outflowTotals := fireItems(day, budget.Outflows, balances)
		transfers := CorrelateTransfers(dayInflows, dayOutflows)

		perAccount := make(map[string]domain.AccountDay, len(accounts))
		for i := range accounts {
			account := &accounts[i]
			prior := balances[account.Name]
			inflow := inflowTotals[account.Name]
			outflow := outflowTotals[account.Name]

			var balance decimal.Decimal
			if account.IsLiability() {
				// Payments reduce debt, draws increase it.
				balance = prior.Sub(inflow).Add(outflow)
			} else {
				balance = prior.Add(inflow).Sub(outflow)
			}
			balances[account.Name] = balance

			perAccount[account.Name] = domain.AccountDay{
				Balance:      balance,
				PriorBalance: prior,
				TotalInflow:  inflow,
				TotalOutflow: outflow,
				HadActivity:  !inflow.IsZero() || !outflow.IsZero(),
			}
		}

		snapshot := domain.DaySnapshot{
			Date:             day,
			Accounts:         perAccount,
			Transfers:        transfers,
			Inflows:          dayInflows,
			Outflows:         dayOutflows,
			IsToday:          day.Equal(today),
			RevisionInEffect: budget.Overridden,
		}
		if budget.Overridden {
			overrideDate := budget.OverrideDate
			snapshot.RevisionDate = &overrideDate
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots
}

// fireItems evaluates every item against day, skipping items whose account
// is unknown, and returns the raw transaction list plus per-account totals.
func fireItems(day time.Time, items []domain.RecurringItem, balances map[string]decimal.Decimal) ([]domain.DayTransaction, map[string]decimal.Decimal) {
	var transactions []domain.DayTransaction
	var totals map[string]decimal.Decimal

	for i := range items {
		item := &items[i]
		if _, known := balances[item.Account]; !known {
			continue
		}
		if !Fires(day, *item) {
			continue
		}
		transactions = append(transactions, domain.DayTransaction{
			Description: item.Description,
			Amount:      item.Amount,
			Account:     item.Account,
			Direction:   item.Direction,
			Flexibility: item.Flexibility,
		})
		if totals == nil {
			totals = make(map[string]decimal.Decimal)
		}
		totals[item.Account] = totals[item.Account].Add(item.Amount)
	}

	return transactions, totals
}
