package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/bitebudget/internal/apperr"
	"github.com/MrJamesThe3rd/bitebudget/internal/budget"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectBudgetColumns = `
	id, user_id, name, total_budget, spent_amount, category, period, start_date, end_date, created_at
`

func scanBudget(s scanner) (*budget.Budget, error) {
	var (
		b      budget.Budget
		period string
	)

	if err := s.Scan(
		&b.ID, &b.UserID, &b.Name, &b.TotalBudget, &b.SpentAmount, &b.Category, &period,
		&b.StartDate, &b.EndDate, &b.CreatedAt,
	); err != nil {
		return nil, err
	}

	b.Period = budget.Period(period)

	return &b, nil
}

func (s *Store) CreateBudget(ctx context.Context, b *budget.Budget) error {
	query := `
		INSERT INTO budgets (user_id, name, total_budget, spent_amount, category, period, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		b.UserID,
		b.Name,
		b.TotalBudget,
		b.SpentAmount,
		b.Category,
		b.Period,
		b.StartDate,
		b.EndDate,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return apperr.Store("creating budget", err)
	}

	return nil
}

func (s *Store) ListBudgets(ctx context.Context, userID uuid.UUID) ([]*budget.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + ` FROM budgets WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperr.Store("listing budgets", err)
	}
	defer rows.Close()

	var budgets []*budget.Budget

	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, apperr.Store("scanning budget", err)
		}

		budgets = append(budgets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Store("listing budgets", err)
	}

	return budgets, nil
}

func (s *Store) GetBudget(ctx context.Context, userID, id uuid.UUID) (*budget.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + ` FROM budgets WHERE id = $1 AND user_id = $2`

	b, err := scanBudget(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, budget.ErrNotFound
		}

		return nil, apperr.Store("getting budget", err)
	}

	return b, nil
}

func (s *Store) UpdateBudget(ctx context.Context, b *budget.Budget) error {
	query := `
		UPDATE budgets
		SET name = $1, total_budget = $2, spent_amount = $3, category = $4, end_date = $5
		WHERE id = $6 AND user_id = $7
	`

	res, err := s.db.ExecContext(ctx, query,
		b.Name,
		b.TotalBudget,
		b.SpentAmount,
		b.Category,
		b.EndDate,
		b.ID,
		b.UserID,
	)
	if err != nil {
		return apperr.Store("updating budget", err)
	}

	return requireRow(res, "updating budget")
}

func (s *Store) DeleteBudget(ctx context.Context, userID, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return apperr.Store("deleting budget", err)
	}

	return requireRow(res, "deleting budget")
}

func requireRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Store(op, err)
	}

	if n == 0 {
		return budget.ErrNotFound
	}

	return nil
}
