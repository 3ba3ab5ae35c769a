package receipt

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/bitebudget/internal/apperr"
)

// DefaultCategory is stored for items recorded without a category.
const DefaultCategory = "Other"

var ErrNotFound = fmt.Errorf("receipt %w", apperr.ErrNotFound)

type Receipt struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	StoreName    string
	TotalAmount  float64
	PurchaseDate time.Time
	CreatedAt    time.Time
	Items        []Item
}

// Item is one line of a receipt. Quantity is always positive.
type Item struct {
	ID          uuid.UUID
	ReceiptID   uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   float64
	TotalPrice  float64
	Category    string
}

type ListFilter struct {
	From *time.Time
	To   *time.Time
}

type ItemParams struct {
	ProductName string
	Quantity    int
	UnitPrice   float64
	TotalPrice  float64
	Category    string
}

type CreateParams struct {
	StoreName    string
	TotalAmount  float64
	PurchaseDate *time.Time
	Items        []ItemParams
}
