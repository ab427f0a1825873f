package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prospera-app/prospera-backend/internal/domain"
)

// RecurringItemRepository implements domain.RecurringItemRepository using
// PostgreSQL
type RecurringItemRepository struct {
	pool *pgxpool.Pool
}

// NewRecurringItemRepository creates a new RecurringItemRepository
func NewRecurringItemRepository(pool *pgxpool.Pool) *RecurringItemRepository {
	return &RecurringItemRepository{pool: pool}
}

const itemColumns = `id, description, amount, direction, account, frequency,
	day_of_month, weekday, reference_date, month_of_year, flexibility,
	created_at, updated_at`

// Create creates a new recurring item
func (r *RecurringItemRepository) Create(item *domain.RecurringItem) (*domain.RecurringItem, error) {
	ctx := context.Background()
	amount, err := decimalToPgNumeric(item.Amount)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO recurring_items
			(id, description, amount, direction, account, frequency,
			 day_of_month, weekday, reference_date, month_of_year, flexibility)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+itemColumns,
		item.ID, item.Description, amount, string(item.Direction), item.Account,
		string(item.Frequency), item.DayOfMonth, weekdayToInt(item.Weekday),
		refDateToPgDate(item.ReferenceDate), monthToInt(item.MonthOfYear),
		string(item.Flexibility),
	)
	return scanItem(row)
}

// GetByID retrieves a recurring item by its ID
func (r *RecurringItemRepository) GetByID(id uuid.UUID) (*domain.RecurringItem, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+itemColumns+` FROM recurring_items WHERE id = $1`, id)

	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// GetAll retrieves all recurring items in creation order
func (r *RecurringItemRepository) GetAll() ([]*domain.RecurringItem, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+itemColumns+` FROM recurring_items ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.RecurringItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Update updates a recurring item
func (r *RecurringItemRepository) Update(item *domain.RecurringItem) (*domain.RecurringItem, error) {
	ctx := context.Background()
	amount, err := decimalToPgNumeric(item.Amount)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE recurring_items
		SET description = $2, amount = $3, direction = $4, account = $5,
			frequency = $6, day_of_month = $7, weekday = $8, reference_date = $9,
			month_of_year = $10, flexibility = $11, updated_at = NOW()
		WHERE id = $1
		RETURNING `+itemColumns,
		item.ID, item.Description, amount, string(item.Direction), item.Account,
		string(item.Frequency), item.DayOfMonth, weekdayToInt(item.Weekday),
		refDateToPgDate(item.ReferenceDate), monthToInt(item.MonthOfYear),
		string(item.Flexibility),
	)

	updated, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a recurring item
func (r *RecurringItemRepository) Delete(id uuid.UUID) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM recurring_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// Helper functions

func scanItem(row pgx.Row) (*domain.RecurringItem, error) {
	var (
		item        domain.RecurringItem
		direction   string
		frequency   string
		flexibility pgtype.Text
		weekday     pgtype.Int4
		refDate     pgtype.Date
		monthOfYear pgtype.Int4
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
		amount      pgtype.Numeric
	)
	err := row.Scan(&item.ID, &item.Description, &amount, &direction, &item.Account,
		&frequency, &item.DayOfMonth, &weekday, &refDate, &monthOfYear,
		&flexibility, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	item.Amount = pgNumericToDecimal(amount)
	item.Direction = domain.Direction(direction)
	item.Frequency = domain.Frequency(frequency)
	if flexibility.Valid {
		item.Flexibility = domain.Flexibility(flexibility.String)
	}
	if weekday.Valid {
		w := time.Weekday(weekday.Int32)
		item.Weekday = &w
	}
	if refDate.Valid {
		d := refDate.Time
		item.ReferenceDate = &d
	}
	if monthOfYear.Valid {
		m := time.Month(monthOfYear.Int32)
		item.MonthOfYear = &m
	}
	item.CreatedAt = createdAt.Time
	item.UpdatedAt = updatedAt.Time
	return &item, nil
}

func weekdayToInt(w *time.Weekday) pgtype.Int4 {
	if w == nil {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: int32(*w), Valid: true}
}

func monthToInt(m *time.Month) pgtype.Int4 {
	if m == nil {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: int32(*m), Valid: true}
}

func refDateToPgDate(t *time.Time) pgtype.Date {
	if t == nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: *t, Valid: true}
}
