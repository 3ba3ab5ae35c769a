package receipt

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/bitebudget/internal/receipt"
)

type itemResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	TotalPrice  float64   `json:"total_price"`
	Category    string    `json:"category"`
}

type receiptResponse struct {
	ID           uuid.UUID      `json:"id"`
	StoreName    string         `json:"store_name"`
	TotalAmount  float64        `json:"total_amount"`
	PurchaseDate time.Time      `json:"purchase_date"`
	CreatedAt    time.Time      `json:"created_at"`
	Items        []itemResponse `json:"items"`
}

func toResponse(r *receipt.Receipt) receiptResponse {
	resp := receiptResponse{
		ID:           r.ID,
		StoreName:    r.StoreName,
		TotalAmount:  r.TotalAmount,
		PurchaseDate: r.PurchaseDate,
		CreatedAt:    r.CreatedAt,
		Items:        make([]itemResponse, len(r.Items)),
	}

	for i, it := range r.Items {
		resp.Items[i] = itemResponse{
			ID:          it.ID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice,
			Category:    it.Category,
		}
	}

	return resp
}

func toResponseList(rs []*receipt.Receipt) []receiptResponse {
	resp := make([]receiptResponse, len(rs))
	for i, r := range rs {
		resp[i] = toResponse(r)
	}

	return resp
}
