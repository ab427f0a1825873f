package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prospera-app/prospera-backend/internal/domain"
	"github.com/prospera-app/prospera-backend/internal/forecast"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// whatIfConcurrency bounds the number of candidate projections running at
// once; each run is CPU-bound.
const whatIfConcurrency = 4

// WhatIfService proposes amendments to flexible spending by re-projecting
// the ledger with trimmed item amounts and measuring the effect on the
// horizon-end position. Fixed items are never touched.
type WhatIfService struct {
	forecastService *ForecastService
}

// NewWhatIfService creates a new WhatIfService
func NewWhatIfService(forecastService *ForecastService) *WhatIfService {
	return &WhatIfService{forecastService: forecastService}
}

// TrimSuggestion is the measured effect of trimming one flexible outflow
type TrimSuggestion struct {
	ItemID          uuid.UUID          `json:"itemId"`
	Description     string             `json:"description"`
	Account         string             `json:"account"`
	Flexibility     domain.Flexibility `json:"flexibility"`
	CurrentAmount   decimal.Decimal    `json:"currentAmount"`
	ProposedAmount  decimal.Decimal    `json:"proposedAmount"`
	EndBalanceDelta decimal.Decimal    `json:"endBalanceDelta"`
}

// SuggestTrims re-projects once per flexible or discretionary outflow with
// its amount reduced by trimPercent and reports the change in net position
// on the final projected day. Candidate runs are independent pure
// computations and execute in parallel.
func (s *WhatIfService) SuggestTrims(ctx context.Context, start time.Time, horizonDays int, trimPercent int) ([]TrimSuggestion, error) {
	if trimPercent <= 0 || trimPercent > 100 {
		trimPercent = 10
	}
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	if horizonDays > MaxHorizonDays {
		horizonDays = MaxHorizonDays
	}

	input, err := s.forecastService.BuildInput(forecast.DateUTC(start), horizonDays)
	if err != nil {
		return nil, err
	}

	baseline := forecast.Project(input)
	basePosition := netPosition(baseline, input.Accounts)

	var candidates []domain.RecurringItem
	for _, item := range input.Outflows {
		if item.Flexibility == domain.FlexibilityFlexible || item.Flexibility == domain.FlexibilityDiscretionary {
			candidates = append(candidates, item)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	factor := decimal.NewFromInt(int64(100 - trimPercent)).Div(decimal.NewFromInt(100))
	suggestions := make([]TrimSuggestion, len(candidates))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(whatIfConcurrency)
	for i, candidate := range candidates {
		g.Go(func() error {
			trimmed := candidate.Amount.Mul(factor).Round(2)

			variant := input
			variant.Outflows = make([]domain.RecurringItem, len(input.Outflows))
			copy(variant.Outflows, input.Outflows)
			for j := range variant.Outflows {
				if variant.Outflows[j].ID == candidate.ID {
					variant.Outflows[j].Amount = trimmed
				}
			}

			position := netPosition(forecast.Project(variant), variant.Accounts)
			suggestions[i] = TrimSuggestion{
				ItemID:          candidate.ID,
				Description:     candidate.Description,
				Account:         candidate.Account,
				Flexibility:     candidate.Flexibility,
				CurrentAmount:   candidate.Amount,
				ProposedAmount:  trimmed,
				EndBalanceDelta: position.Sub(basePosition),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return suggestions, nil
}

// netPosition sums assets minus liabilities on the final projected day.
func netPosition(snapshots []domain.DaySnapshot, accounts []domain.Account) decimal.Decimal {
	if len(snapshots) == 0 {
		return decimal.Zero
	}

	last := snapshots[len(snapshots)-1]
	position := decimal.Zero
	for i := range accounts {
		day, ok := last.Accounts[accounts[i].Name]
		if !ok {
			continue
		}
		if accounts[i].IsLiability() {
			position = position.Sub(day.Balance)
		} else {
			position = position.Add(day.Balance)
		}
	}
	return position
}
