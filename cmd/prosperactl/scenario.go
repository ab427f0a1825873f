package main

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/prospera-app/prospera-backend/internal/domain"
	"github.com/prospera-app/prospera-backend/internal/forecast"
	"github.com/shopspring/decimal"
)

// Scenario is a self-contained projection input read from a TOML file
type Scenario struct {
	Start     string             `toml:"start"`
	Days      int                `toml:"days"`
	Accounts  []ScenarioAccount  `toml:"accounts"`
	Items     []ScenarioItem     `toml:"items"`
	Revisions []ScenarioRevision `toml:"revisions"`
}

// ScenarioAccount describes one account in the scenario
type ScenarioAccount struct {
	Name           string `toml:"name"`
	Template       string `toml:"template"`
	CreditLimit    string `toml:"credit_limit,omitempty"`
	InitialBalance string `toml:"initial_balance"`
}

// ScenarioItem describes one recurring inflow or outflow
type ScenarioItem struct {
	Description   string `toml:"description"`
	Amount        string `toml:"amount"`
	Direction     string `toml:"direction"`
	Account       string `toml:"account"`
	Frequency     string `toml:"frequency"`
	DayOfMonth    int    `toml:"day_of_month,omitempty"`
	Weekday       *int   `toml:"weekday,omitempty"`
	ReferenceDate string `toml:"reference_date,omitempty"`
	MonthOfYear   *int   `toml:"month_of_year,omitempty"`
	Flexibility   string `toml:"flexibility,omitempty"`
}

// ScenarioRevision describes a dated replacement of the item catalogue
type ScenarioRevision struct {
	EffectiveDate string         `toml:"effective_date"`
	Inflows       []ScenarioItem `toml:"inflows"`
	Outflows      []ScenarioItem `toml:"outflows"`
}

// LoadScenario reads and decodes a scenario file
func LoadScenario(path string) (*Scenario, error) {
	var scenario Scenario
	if _, err := toml.DecodeFile(path, &scenario); err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}
	return &scenario, nil
}

// ProjectionInput converts the scenario into an engine input tuple.
func (s *Scenario) ProjectionInput() (forecast.ProjectionInput, error) {
	input := forecast.ProjectionInput{
		StartDate:   time.Now(),
		HorizonDays: s.Days,
		Today:       time.Now(),
	}
	if s.Start != "" {
		start, err := time.Parse(time.DateOnly, s.Start)
		if err != nil {
			return forecast.ProjectionInput{}, fmt.Errorf("invalid start date %q: %w", s.Start, err)
		}
		input.StartDate = start
	}

	for _, sa := range s.Accounts {
		account, err := sa.toDomain()
		if err != nil {
			return forecast.ProjectionInput{}, err
		}
		input.Accounts = append(input.Accounts, account)
	}

	for _, si := range s.Items {
		item, err := si.toDomain()
		if err != nil {
			return forecast.ProjectionInput{}, err
		}
		switch item.Direction {
		case domain.DirectionInflow:
			input.Inflows = append(input.Inflows, item)
		case domain.DirectionOutflow:
			input.Outflows = append(input.Outflows, item)
		default:
			return forecast.ProjectionInput{}, fmt.Errorf("item %q: direction must be inflow or outflow", si.Description)
		}
	}

	for _, sr := range s.Revisions {
		revision, err := sr.toDomain()
		if err != nil {
			return forecast.ProjectionInput{}, err
		}
		input.Revisions = append(input.Revisions, revision)
	}

	return input, nil
}

func (sa ScenarioAccount) toDomain() (domain.Account, error) {
	accountType, ok := domain.TemplateToType[domain.AccountTemplate(sa.Template)]
	if !ok {
		return domain.Account{}, fmt.Errorf("account %q: unknown template %q", sa.Name, sa.Template)
	}

	balance, err := parseScenarioDecimal(sa.InitialBalance)
	if err != nil {
		return domain.Account{}, fmt.Errorf("account %q: invalid initial_balance: %w", sa.Name, err)
	}

	account := domain.Account{
		Name:           sa.Name,
		Template:       domain.AccountTemplate(sa.Template),
		AccountType:    accountType,
		InitialBalance: balance,
	}
	if sa.CreditLimit != "" {
		limit, err := decimal.NewFromString(sa.CreditLimit)
		if err != nil {
			return domain.Account{}, fmt.Errorf("account %q: invalid credit_limit: %w", sa.Name, err)
		}
		account.CreditLimit = &limit
	}
	return account, nil
}

func (si ScenarioItem) toDomain() (domain.RecurringItem, error) {
	amount, err := parseScenarioDecimal(si.Amount)
	if err != nil {
		return domain.RecurringItem{}, fmt.Errorf("item %q: invalid amount: %w", si.Description, err)
	}

	item := domain.RecurringItem{
		ID:          uuid.New(),
		Description: si.Description,
		Amount:      amount,
		Direction:   domain.Direction(si.Direction),
		Account:     si.Account,
		Frequency:   domain.Frequency(si.Frequency),
		DayOfMonth:  si.DayOfMonth,
		Flexibility: domain.Flexibility(si.Flexibility),
	}
	if si.Weekday != nil {
		w := time.Weekday(*si.Weekday)
		item.Weekday = &w
	}
	if si.ReferenceDate != "" {
		ref, err := time.Parse(time.DateOnly, si.ReferenceDate)
		if err != nil {
			return domain.RecurringItem{}, fmt.Errorf("item %q: invalid reference_date: %w", si.Description, err)
		}
		item.ReferenceDate = &ref
	}
	if si.MonthOfYear != nil {
		m := time.Month(*si.MonthOfYear)
		item.MonthOfYear = &m
	}
	return item, nil
}

func (sr ScenarioRevision) toDomain() (domain.BudgetRevision, error) {
	revision := domain.BudgetRevision{ID: uuid.New()}

	effective, err := time.Parse(time.DateOnly, sr.EffectiveDate)
	if err != nil {
		return domain.BudgetRevision{}, fmt.Errorf("revision: invalid effective_date %q: %w", sr.EffectiveDate, err)
	}
	revision.EffectiveDate = effective

	for _, si := range sr.Inflows {
		item, err := si.toDomain()
		if err != nil {
			return domain.BudgetRevision{}, err
		}
		item.Direction = domain.DirectionInflow
		revision.Inflows = append(revision.Inflows, item)
	}
	for _, si := range sr.Outflows {
		item, err := si.toDomain()
		if err != nil {
			return domain.BudgetRevision{}, err
		}
		item.Direction = domain.DirectionOutflow
		revision.Outflows = append(revision.Outflows, item)
	}
	return revision, nil
}

func parseScenarioDecimal(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(value)
}
