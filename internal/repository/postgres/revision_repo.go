package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prospera-app/prospera-backend/internal/domain"
)

// RevisionRepository implements domain.RevisionRepository using PostgreSQL.
// Item lists are stored as JSONB documents: a revision is an immutable
// snapshot of the catalogue, so there is nothing to join against.
type RevisionRepository struct {
	pool *pgxpool.Pool
}

// NewRevisionRepository creates a new RevisionRepository
func NewRevisionRepository(pool *pgxpool.Pool) *RevisionRepository {
	return &RevisionRepository{pool: pool}
}

// Create creates a new budget revision
func (r *RevisionRepository) Create(revision *domain.BudgetRevision) (*domain.BudgetRevision, error) {
	ctx := context.Background()
	inflows, err := json.Marshal(revision.Inflows)
	if err != nil {
		return nil, fmt.Errorf("failed to encode inflows: %w", err)
	}
	outflows, err := json.Marshal(revision.Outflows)
	if err != nil {
		return nil, fmt.Errorf("failed to encode outflows: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO budget_revisions (id, effective_date, inflows, outflows)
		VALUES ($1, $2, $3, $4)
		RETURNING id, effective_date, inflows, outflows, created_at`,
		revision.ID, revision.EffectiveDate, inflows, outflows,
	)
	return scanRevision(row)
}

// GetByID retrieves a revision by its ID
func (r *RevisionRepository) GetByID(id uuid.UUID) (*domain.BudgetRevision, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT id, effective_date, inflows, outflows, created_at
		FROM budget_revisions WHERE id = $1`, id)

	revision, err := scanRevision(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRevisionNotFound
		}
		return nil, err
	}
	return revision, nil
}

// GetAll retrieves all revisions in creation order. Creation order is
// significant: revisions sharing an effective date resolve to the one
// created last.
func (r *RevisionRepository) GetAll() ([]*domain.BudgetRevision, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT id, effective_date, inflows, outflows, created_at
		FROM budget_revisions ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var revisions []*domain.BudgetRevision
	for rows.Next() {
		revision, err := scanRevision(rows)
		if err != nil {
			return nil, err
		}
		revisions = append(revisions, revision)
	}
	return revisions, rows.Err()
}

// Delete removes a revision
func (r *RevisionRepository) Delete(id uuid.UUID) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM budget_revisions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRevisionNotFound
	}
	return nil
}

func scanRevision(row pgx.Row) (*domain.BudgetRevision, error) {
	var (
		revision  domain.BudgetRevision
		effective pgtype.Date
		inflows   []byte
		outflows  []byte
		createdAt pgtype.Timestamptz
	)
	err := row.Scan(&revision.ID, &effective, &inflows, &outflows, &createdAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(inflows, &revision.Inflows); err != nil {
		return nil, fmt.Errorf("failed to decode inflows: %w", err)
	}
	if err := json.Unmarshal(outflows, &revision.Outflows); err != nil {
		return nil, fmt.Errorf("failed to decode outflows: %w", err)
	}
	revision.EffectiveDate = effective.Time
	revision.CreatedAt = createdAt.Time
	return &revision, nil
}
