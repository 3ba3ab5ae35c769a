package receipt

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/bitebudget/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=receipt
type Repository interface {
	CreateReceipt(ctx context.Context, r *Receipt) error
	ListReceipts(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Receipt, error)
	GetReceipt(ctx context.Context, userID, id uuid.UUID) (*Receipt, error)
	DeleteReceipt(ctx context.Context, userID, id uuid.UUID) error
	ListItems(ctx context.Context, userID uuid.UUID) ([]Item, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create stores a receipt with its items atomically. Purchase date defaults
// to now, item quantity to 1 and item category to DefaultCategory.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, params CreateParams) (*Receipt, error) {
	storeName := strings.TrimSpace(params.StoreName)
	if storeName == "" {
		return nil, apperr.Invalid("store_name", "required")
	}

	if params.TotalAmount < 0 {
		return nil, apperr.Invalid("total_amount", "must not be negative")
	}

	r := &Receipt{
		UserID:       userID,
		StoreName:    storeName,
		TotalAmount:  params.TotalAmount,
		PurchaseDate: s.now(),
		Items:        make([]Item, 0, len(params.Items)),
	}

	if params.PurchaseDate != nil {
		r.PurchaseDate = *params.PurchaseDate
	}

	for i, p := range params.Items {
		item, err := newItem(p)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}

		r.Items = append(r.Items, item)
	}

	if err := s.repo.CreateReceipt(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

func newItem(p ItemParams) (Item, error) {
	name := strings.TrimSpace(p.ProductName)
	if name == "" {
		return Item{}, apperr.Invalid("product_name", "required")
	}

	qty := p.Quantity
	if qty == 0 {
		qty = 1
	}

	if qty < 0 {
		return Item{}, apperr.Invalid("quantity", "must be positive")
	}

	total := p.TotalPrice
	if total == 0 {
		total = p.UnitPrice * float64(qty)
	}

	category := strings.TrimSpace(p.Category)
	if category == "" {
		category = DefaultCategory
	}

	return Item{
		ProductName: name,
		Quantity:    qty,
		UnitPrice:   p.UnitPrice,
		TotalPrice:  total,
		Category:    category,
	}, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Receipt, error) {
	return s.repo.ListReceipts(ctx, userID, filter)
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Receipt, error) {
	return s.repo.GetReceipt(ctx, userID, id)
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteReceipt(ctx, userID, id)
}

// Items returns every item across the user's receipts.
func (s *Service) Items(ctx context.Context, userID uuid.UUID) ([]Item, error) {
	return s.repo.ListItems(ctx, userID)
}
