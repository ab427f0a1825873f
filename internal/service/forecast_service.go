package service

import (
	"fmt"
	"time"

	"github.com/prospera-app/prospera-backend/internal/cache"
	"github.com/prospera-app/prospera-backend/internal/domain"
	"github.com/prospera-app/prospera-backend/internal/forecast"
)

const (
	// DefaultHorizonDays is the projection length when the caller does not ask
	// for a specific horizon
	DefaultHorizonDays = 365

	// MaxHorizonDays caps a single projection run. The largest horizon seen
	// in practice is about 54 years.
	MaxHorizonDays = 20000
)

// ForecastService loads projection inputs from the repositories, runs the
// engine, and memoizes results. Any write through the account, item, or
// revision services purges the memo.
type ForecastService struct {
	accountRepo  domain.AccountRepository
	itemRepo     domain.RecurringItemRepository
	revisionRepo domain.RevisionRepository
	results      *cache.LRU[[]domain.DaySnapshot]
	now          func() time.Time
}

// NewForecastService creates a new ForecastService
func NewForecastService(
	accountRepo domain.AccountRepository,
	itemRepo domain.RecurringItemRepository,
	revisionRepo domain.RevisionRepository,
	cacheSize int,
	cacheTTL time.Duration,
) *ForecastService {
	return &ForecastService{
		accountRepo:  accountRepo,
		itemRepo:     itemRepo,
		revisionRepo: revisionRepo,
		results:      cache.New[[]domain.DaySnapshot](cacheSize, cacheTTL),
		now:          time.Now,
	}
}

// Invalidate implements ForecastInvalidator by dropping every cached run.
func (s *ForecastService) Invalidate() {
	s.results.Purge()
}

// Forecast projects all account balances day by day from start over
// horizonDays days. A horizon outside (0, MaxHorizonDays] is clamped.
func (s *ForecastService) Forecast(start time.Time, horizonDays int) ([]domain.DaySnapshot, error) {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	if horizonDays > MaxHorizonDays {
		horizonDays = MaxHorizonDays
	}
	start = forecast.DateUTC(start)

	key := fmt.Sprintf("%s|%d", start.Format(time.DateOnly), horizonDays)
	if snapshots, ok := s.results.Get(key); ok {
		return snapshots, nil
	}

	input, err := s.BuildInput(start, horizonDays)
	if err != nil {
		return nil, err
	}

	snapshots := forecast.Project(input)
	s.results.Set(key, snapshots)
	return snapshots, nil
}

// ForecastFromToday projects starting at the current date.
func (s *ForecastService) ForecastFromToday(horizonDays int) ([]domain.DaySnapshot, error) {
	return s.Forecast(s.now(), horizonDays)
}

// BuildInput assembles the full projection input tuple from the
// repositories. Exposed for callers that run engine variants themselves
// (what-if analysis).
func (s *ForecastService) BuildInput(start time.Time, horizonDays int) (forecast.ProjectionInput, error) {
	accounts, err := s.accountRepo.GetAll()
	if err != nil {
		return forecast.ProjectionInput{}, fmt.Errorf("load accounts: %w", err)
	}

	items, err := s.itemRepo.GetAll()
	if err != nil {
		return forecast.ProjectionInput{}, fmt.Errorf("load recurring items: %w", err)
	}

	revisions, err := s.revisionRepo.GetAll()
	if err != nil {
		return forecast.ProjectionInput{}, fmt.Errorf("load revisions: %w", err)
	}

	input := forecast.ProjectionInput{
		Accounts:    make([]domain.Account, 0, len(accounts)),
		Revisions:   make([]domain.BudgetRevision, 0, len(revisions)),
		StartDate:   start,
		HorizonDays: horizonDays,
		Today:       s.now(),
	}
	for _, account := range accounts {
		input.Accounts = append(input.Accounts, *account)
	}
	for _, item := range items {
		switch item.Direction {
		case domain.DirectionInflow:
			input.Inflows = append(input.Inflows, *item)
		case domain.DirectionOutflow:
			input.Outflows = append(input.Outflows, *item)
		}
	}
	for _, revision := range revisions {
		input.Revisions = append(input.Revisions, *revision)
	}

	return input, nil
}
