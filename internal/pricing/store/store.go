package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/MrJamesThe3rd/bitebudget/internal/apperr"
	"github.com/MrJamesThe3rd/bitebudget/internal/pricing"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateAlert(ctx context.Context, a *pricing.Alert) error {
	query := `
		INSERT INTO price_alerts (user_id, product_name, target_price, stores, alert_type, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		a.UserID,
		a.ProductName,
		a.TargetPrice,
		a.Stores,
		a.AlertType,
		a.IsActive,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return apperr.Store("creating price alert", err)
	}

	return nil
}

func (s *Store) ListAlerts(ctx context.Context, userID uuid.UUID) ([]*pricing.Alert, error) {
	query := `
		SELECT id, user_id, product_name, target_price, stores, alert_type, is_active, created_at
		FROM price_alerts
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperr.Store("listing price alerts", err)
	}
	defer rows.Close()

	// pgtype.Map is not safe for concurrent use.
	types := pgtype.NewMap()

	var alerts []*pricing.Alert

	for rows.Next() {
		var a pricing.Alert
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.ProductName, &a.TargetPrice, types.SQLScanner(&a.Stores),
			&a.AlertType, &a.IsActive, &a.CreatedAt,
		); err != nil {
			return nil, apperr.Store("scanning price alert", err)
		}

		alerts = append(alerts, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Store("listing price alerts", err)
	}

	return alerts, nil
}
