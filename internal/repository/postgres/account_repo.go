package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prospera-app/prospera-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// AccountRepository implements domain.AccountRepository using PostgreSQL
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const uniqueViolationCode = "23505"

// Create creates a new account
func (r *AccountRepository) Create(account *domain.Account) (*domain.Account, error) {
	ctx := context.Background()
	initialBalance, err := decimalToPgNumeric(account.InitialBalance)
	if err != nil {
		return nil, err
	}
	creditLimit, err := decimalPtrToPgNumeric(account.CreditLimit)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (name, template, account_type, credit_limit, initial_balance)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING name, template, account_type, credit_limit, initial_balance, created_at, updated_at`,
		account.Name, string(account.Template), string(account.AccountType), creditLimit, initialBalance,
	)

	created, err := scanAccount(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return created, nil
}

// GetByName retrieves an account by its name
func (r *AccountRepository) GetByName(name string) (*domain.Account, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT name, template, account_type, credit_limit, initial_balance, created_at, updated_at
		FROM accounts WHERE name = $1`, name)

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// GetAll retrieves all accounts in creation order
func (r *AccountRepository) GetAll() ([]*domain.Account, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT name, template, account_type, credit_limit, initial_balance, created_at, updated_at
		FROM accounts ORDER BY created_at, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// Update updates an account's balance and credit limit. The name is the key
// and cannot change.
func (r *AccountRepository) Update(account *domain.Account) (*domain.Account, error) {
	ctx := context.Background()
	initialBalance, err := decimalToPgNumeric(account.InitialBalance)
	if err != nil {
		return nil, err
	}
	creditLimit, err := decimalPtrToPgNumeric(account.CreditLimit)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE accounts
		SET credit_limit = $2, initial_balance = $3, updated_at = NOW()
		WHERE name = $1
		RETURNING name, template, account_type, credit_limit, initial_balance, created_at, updated_at`,
		account.Name, creditLimit, initialBalance,
	)

	updated, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes an account
func (r *AccountRepository) Delete(name string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE name = $1`, name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// Helper functions

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account        domain.Account
		template       string
		accountType    string
		creditLimit    pgtype.Numeric
		initialBalance pgtype.Numeric
		createdAt      pgtype.Timestamptz
		updatedAt      pgtype.Timestamptz
	)
	err := row.Scan(&account.Name, &template, &accountType, &creditLimit, &initialBalance, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	account.Template = domain.AccountTemplate(template)
	account.AccountType = domain.AccountType(accountType)
	if creditLimit.Valid {
		limit := pgNumericToDecimal(creditLimit)
		account.CreditLimit = &limit
	}
	account.InitialBalance = pgNumericToDecimal(initialBalance)
	account.CreatedAt = createdAt.Time
	account.UpdatedAt = updatedAt.Time
	return &account, nil
}

func decimalToPgNumeric(d decimal.Decimal) (pgtype.Numeric, error) {
	var num pgtype.Numeric
	if err := num.Scan(d.String()); err != nil {
		return pgtype.Numeric{}, err
	}
	return num, nil
}

func decimalPtrToPgNumeric(d *decimal.Decimal) (pgtype.Numeric, error) {
	if d == nil {
		return pgtype.Numeric{}, nil
	}
	return decimalToPgNumeric(*d)
}

func pgNumericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	if n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}
