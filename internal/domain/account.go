package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string
type AccountTemplate string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
)

const (
	TemplateChecking   AccountTemplate = "checking"
	TemplateSavings    AccountTemplate = "savings"
	TemplateInvestment AccountTemplate = "investment"
	TemplateCredit     AccountTemplate = "credit"
	TemplateMortgage   AccountTemplate = "mortgage"
)

// TemplateToType maps account templates to their types
var TemplateToType = map[AccountTemplate]AccountType{
	TemplateChecking:   AccountTypeAsset,
	TemplateSavings:    AccountTypeAsset,
	TemplateInvestment: AccountTypeAsset,
	TemplateCredit:     AccountTypeLiability,
	TemplateMortgage:   AccountTypeLiability,
}

// Account is a tracked balance container. The name is the unique key: every
// recurring item references its account by name, and items whose name does
// not resolve are excluded from projection.
type Account struct {
	Name           string           `json:"name"`
	Template       AccountTemplate  `json:"template"`
	AccountType    AccountType      `json:"accountType"`
	CreditLimit    *decimal.Decimal `json:"creditLimit,omitempty"`
	InitialBalance decimal.Decimal  `json:"initialBalance"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// IsLiability reports whether inflows reduce and outflows increase the balance.
func (a *Account) IsLiability() bool {
	return a.AccountType == AccountTypeLiability
}

type AccountRepository interface {
	Create(account *Account) (*Account, error)
	GetByName(name string) (*Account, error)
	GetAll() ([]*Account, error)
	Update(account *Account) (*Account, error)
	Delete(name string) error
}
