package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/bitebudget/internal/apperr"
	"github.com/MrJamesThe3rd/bitebudget/internal/receipt"
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

const selectReceiptColumns = `id, user_id, store_name, total_amount, purchase_date, purchase_tz_offset, created_at`

// scanReceipt restores the purchase date in the offset it was recorded with,
// so month, weekday and hour follow the shopper's wall clock.
func scanReceipt(s scanner) (*receipt.Receipt, error) {
	var (
		r      receipt.Receipt
		offset int
	)

	if err := s.Scan(&r.ID, &r.UserID, &r.StoreName, &r.TotalAmount, &r.PurchaseDate, &offset, &r.CreatedAt); err != nil {
		return nil, err
	}

	r.PurchaseDate = inOffset(r.PurchaseDate, offset)

	return &r, nil
}

func zoneOffset(t time.Time) int {
	_, offset := t.Zone()
	return offset
}

func inOffset(t time.Time, offset int) time.Time {
	if offset == 0 {
		return t.UTC()
	}

	return t.In(time.FixedZone("", offset))
}

const selectItemColumns = `ri.id, ri.receipt_id, ri.product_name, ri.quantity, ri.unit_price, ri.total_price, ri.category`

func scanItem(s scanner) (receipt.Item, error) {
	var it receipt.Item
	err := s.Scan(&it.ID, &it.ReceiptID, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.TotalPrice, &it.Category)

	return it, err
}

// CreateReceipt inserts the receipt and its items in one transaction.
func (s *Store) CreateReceipt(ctx context.Context, r *receipt.Receipt) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Store("beginning transaction", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO receipts (user_id, store_name, total_amount, purchase_date, purchase_tz_offset, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`
	if err := dbTx.QueryRowContext(ctx, query,
		r.UserID, r.StoreName, r.TotalAmount, r.PurchaseDate, zoneOffset(r.PurchaseDate),
	).Scan(&r.ID, &r.CreatedAt); err != nil {
		return apperr.Store("creating receipt", err)
	}

	itemQuery := `
		INSERT INTO receipt_items (receipt_id, position, product_name, quantity, unit_price, total_price, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	for i := range r.Items {
		it := &r.Items[i]
		it.ReceiptID = r.ID

		if err := dbTx.QueryRowContext(ctx, itemQuery,
			r.ID, i, it.ProductName, it.Quantity, it.UnitPrice, it.TotalPrice, it.Category,
		).Scan(&it.ID); err != nil {
			return apperr.Store(fmt.Sprintf("creating item %d", i), err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return apperr.Store("committing receipt", err)
	}

	return nil
}

func (s *Store) ListReceipts(ctx context.Context, userID uuid.UUID, filter receipt.ListFilter) ([]*receipt.Receipt, error) {
	query := `SELECT ` + selectReceiptColumns + ` FROM receipts WHERE user_id = $1`
	args := []any{userID}
	argIdx := 2

	if filter.From != nil {
		query += fmt.Sprintf(" AND purchase_date >= $%d", argIdx)

		args = append(args, *filter.From)
		argIdx++
	}

	if filter.To != nil {
		query += fmt.Sprintf(" AND purchase_date <= $%d", argIdx)

		args = append(args, *filter.To)
	}

	query += " ORDER BY purchase_date DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Store("listing receipts", err)
	}
	defer rows.Close()

	var (
		receipts []*receipt.Receipt
		byID     = make(map[uuid.UUID]*receipt.Receipt)
		ids      []uuid.UUID
	)

	for rows.Next() {
		r, err := scanReceipt(rows)
		if err != nil {
			return nil, apperr.Store("scanning receipt", err)
		}

		r.Items = []receipt.Item{}
		receipts = append(receipts, r)
		byID[r.ID] = r
		ids = append(ids, r.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Store("listing receipts", err)
	}

	if len(ids) == 0 {
		return receipts, nil
	}

	items, err := s.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, it := range items {
		if r, ok := byID[it.ReceiptID]; ok {
			r.Items = append(r.Items, it)
		}
	}

	return receipts, nil
}

func (s *Store) itemsFor(ctx context.Context, receiptIDs []uuid.UUID) ([]receipt.Item, error) {
	query := `SELECT ` + selectItemColumns + `
		FROM receipt_items ri
		WHERE ri.receipt_id = ANY($1::uuid[])
		ORDER BY ri.receipt_id, ri.position`

	ids := make([]string, len(receiptIDs))
	for i, id := range receiptIDs {
		ids[i] = id.String()
	}

	rows, err := s.db.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, apperr.Store("listing receipt items", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

func collectItems(rows *sql.Rows) ([]receipt.Item, error) {
	var items []receipt.Item

	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, apperr.Store("scanning item", err)
		}

		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Store("iterating items", err)
	}

	return items, nil
}

func (s *Store) GetReceipt(ctx context.Context, userID, id uuid.UUID) (*receipt.Receipt, error) {
	query := `SELECT ` + selectReceiptColumns + ` FROM receipts WHERE id = $1 AND user_id = $2`

	r, err := scanReceipt(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, receipt.ErrNotFound
		}

		return nil, apperr.Store("getting receipt", err)
	}

	items, err := s.itemsFor(ctx, []uuid.UUID{r.ID})
	if err != nil {
		return nil, err
	}

	r.Items = items
	if r.Items == nil {
		r.Items = []receipt.Item{}
	}

	return r, nil
}

// DeleteReceipt removes the receipt; its items go with it through ON DELETE CASCADE.
func (s *Store) DeleteReceipt(ctx context.Context, userID, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM receipts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return apperr.Store("deleting receipt", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Store("deleting receipt", err)
	}

	if n == 0 {
		return receipt.ErrNotFound
	}

	return nil
}

func (s *Store) ListItems(ctx context.Context, userID uuid.UUID) ([]receipt.Item, error) {
	query := `SELECT ` + selectItemColumns + `
		FROM receipt_items ri
		JOIN receipts r ON r.id = ri.receipt_id
		WHERE r.user_id = $1
		ORDER BY r.purchase_date DESC, ri.position`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperr.Store("listing items", err)
	}
	defer rows.Close()

	return collectItems(rows)
}
