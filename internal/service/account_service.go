package service

import (
	"strings"

	"github.com/prospera-app/prospera-backend/internal/domain"
	"github.com/prospera-app/prospera-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// ForecastInvalidator is notified when any projection input changes so that
// cached projections can be discarded.
type ForecastInvalidator interface {
	Invalidate()
}

// AccountService handles account-related business logic
type AccountService struct {
	accountRepo domain.AccountRepository
	invalidator ForecastInvalidator
	publisher   websocket.EventPublisher
}

// NewAccountService creates a new AccountService
func NewAccountService(accountRepo domain.AccountRepository, invalidator ForecastInvalidator, publisher websocket.EventPublisher) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		invalidator: invalidator,
		publisher:   publisher,
	}
}

// CreateAccountInput holds the input for creating an account
type CreateAccountInput struct {
	Name           string
	Template       domain.AccountTemplate
	CreditLimit    *decimal.Decimal
	InitialBalance decimal.Decimal
}

// CreateAccount creates a new account with template-to-type mapping
func (s *AccountService) CreateAccount(input CreateAccountInput) (*domain.Account, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxAccountNameLength {
		return nil, domain.ErrNameTooLong
	}

	accountType, ok := domain.TemplateToType[input.Template]
	if !ok {
		return nil, domain.ErrInvalidTemplate
	}

	// Credit limits only make sense on liability accounts.
	creditLimit := input.CreditLimit
	if accountType != domain.AccountTypeLiability {
		creditLimit = nil
	}

	account := &domain.Account{
		Name:           name,
		AccountType:    accountType,
		Template:       input.Template,
		CreditLimit:    creditLimit,
		InitialBalance: input.InitialBalance,
	}

	created, err := s.accountRepo.Create(account)
	if err != nil {
		return nil, err
	}

	s.invalidator.Invalidate()
	s.publisher.Publish(websocket.AccountCreated(created))
	return created, nil
}

// GetAccounts retrieves all accounts
func (s *AccountService) GetAccounts() ([]*domain.Account, error) {
	return s.accountRepo.GetAll()
}

// GetAccountByName retrieves an account by name
func (s *AccountService) GetAccountByName(name string) (*domain.Account, error) {
	return s.accountRepo.GetByName(name)
}

// UpdateAccountInput holds the editable account fields
type UpdateAccountInput struct {
	CreditLimit    *decimal.Decimal
	InitialBalance decimal.Decimal
}

// UpdateAccount updates an account's balance and credit limit. The name is
// the account's identity and is not editable; items reference it.
func (s *AccountService) UpdateAccount(name string, input UpdateAccountInput) (*domain.Account, error) {
	account, err := s.accountRepo.GetByName(name)
	if err != nil {
		return nil, err
	}

	account.InitialBalance = input.InitialBalance
	if account.IsLiability() {
		account.CreditLimit = input.CreditLimit
	}

	updated, err := s.accountRepo.Update(account)
	if err != nil {
		return nil, err
	}

	s.invalidator.Invalidate()
	s.publisher.Publish(websocket.AccountUpdated(updated))
	return updated, nil
}

// DeleteAccount removes an account. Recurring items referencing it become
// unresolvable and silently drop out of future projections.
func (s *AccountService) DeleteAccount(name string) error {
	if err := s.accountRepo.Delete(name); err != nil {
		return err
	}

	s.invalidator.Invalidate()
	s.publisher.Publish(websocket.AccountDeleted(map[string]string{"name": name}))
	return nil
}
