package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/bitebudget/internal/apperr"
	"github.com/MrJamesThe3rd/bitebudget/internal/product"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// ListProducts returns one page of matching products and the total match count.
func (s *Store) ListProducts(ctx context.Context, filter product.Filter) ([]*product.Product, int, error) {
	where := ` WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Category != "" {
		where += fmt.Sprintf(" AND category = $%d", argIdx)

		args = append(args, filter.Category)
		argIdx++
	}

	if filter.Search != "" {
		where += fmt.Sprintf(" AND name ILIKE '%%' || $%d || '%%'", argIdx)

		args = append(args, filter.Search)
		argIdx++
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, apperr.Store("counting products", err)
	}

	query := `
		SELECT id, name, COALESCE(category, ''), average_price, COALESCE(price_history, ''),
			sustainability_score, created_at
		FROM products` + where +
		fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)

	args = append(args, filter.PerPage, filter.Offset())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, apperr.Store("listing products", err)
	}
	defer rows.Close()

	var products []*product.Product

	for rows.Next() {
		var (
			p     product.Product
			price sql.NullFloat64
		)

		if err := rows.Scan(
			&p.ID, &p.Name, &p.Category, &price, &p.PriceHistory, &p.SustainabilityScore, &p.CreatedAt,
		); err != nil {
			return nil, 0, apperr.Store("scanning product", err)
		}

		if price.Valid {
			p.AveragePrice = &price.Float64
		}

		products = append(products, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, apperr.Store("listing products", err)
	}

	return products, total, nil
}

func (s *Store) Categories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT category FROM products
		WHERE category IS NOT NULL AND category <> ''
		ORDER BY category
	`)
	if err != nil {
		return nil, apperr.Store("listing categories", err)
	}
	defer rows.Close()

	var cats []string

	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, apperr.Store("scanning category", err)
		}

		cats = append(cats, c)
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Store("listing categories", err)
	}

	return cats, nil
}
