package service

import (
	"time"

	"github.com/prospera-app/prospera-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// GoalService estimates when an account balance will first cross a target
// threshold by scanning a projection. Snapshots are emitted in strictly
// increasing date order, so a single linear scan suffices.
type GoalService struct {
	accountRepo     domain.AccountRepository
	forecastService *ForecastService
}

// NewGoalService creates a new GoalService
func NewGoalService(accountRepo domain.AccountRepository, forecastService *ForecastService) *GoalService {
	return &GoalService{
		accountRepo:     accountRepo,
		forecastService: forecastService,
	}
}

// GoalEstimate is the result of a goal search
type GoalEstimate struct {
	Account   string           `json:"account"`
	Target    decimal.Decimal  `json:"target"`
	Reached   bool             `json:"reached"`
	Date      *time.Time       `json:"date,omitempty"`
	Balance   *decimal.Decimal `json:"balance,omitempty"`
	DaysUntil int              `json:"daysUntil"`
}

// EstimateGoalDate finds the first projected date on which the account's
// balance crosses target. Asset accounts grow toward the goal (balance >=
// target); liability accounts shrink toward it (balance <= target).
func (s *GoalService) EstimateGoalDate(accountName string, target decimal.Decimal, horizonDays int) (*GoalEstimate, error) {
	account, err := s.accountRepo.GetByName(accountName)
	if err != nil {
		return nil, err
	}

	snapshots, err := s.forecastService.ForecastFromToday(horizonDays)
	if err != nil {
		return nil, err
	}

	estimate := &GoalEstimate{Account: accountName, Target: target}
	for i, snapshot := range snapshots {
		day, ok := snapshot.Accounts[accountName]
		if !ok {
			continue
		}

		var crossed bool
		if account.IsLiability() {
			crossed = day.Balance.LessThanOrEqual(target)
		} else {
			crossed = day.Balance.GreaterThanOrEqual(target)
		}
		if crossed {
			reachedDate := snapshot.Date
			balance := day.Balance
			estimate.Reached = true
			estimate.Date = &reachedDate
			estimate.Balance = &balance
			estimate.DaysUntil = i
			return estimate, nil
		}
	}

	return estimate, nil
}
