package product

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/bitebudget/internal/pricing"
	"github.com/MrJamesThe3rd/bitebudget/internal/product"
)

type productResponse struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	Category            string    `json:"category"`
	AveragePrice        *float64  `json:"average_price"`
	SustainabilityScore int       `json:"sustainability_score"`
	CreatedAt           time.Time `json:"created_at"`
}

type pageResponse struct {
	Products    []productResponse `json:"products"`
	Total       int               `json:"total"`
	Pages       int               `json:"pages"`
	CurrentPage int               `json:"current_page"`
	PerPage     int               `json:"per_page"`
}

func toPageResponse(p *product.Page) pageResponse {
	resp := pageResponse{
		Products:    make([]productResponse, len(p.Products)),
		Total:       p.Total,
		Pages:       p.Pages,
		CurrentPage: p.CurrentPage,
		PerPage:     p.PerPage,
	}

	for i, pr := range p.Products {
		resp.Products[i] = productResponse{
			ID:                  pr.ID,
			Name:                pr.Name,
			Category:            pr.Category,
			AveragePrice:        pr.AveragePrice,
			SustainabilityScore: pr.SustainabilityScore,
			CreatedAt:           pr.CreatedAt,
		}
	}

	return resp
}

type recommendationResponse struct {
	ProductName         string  `json:"product_name"`
	Category            string  `json:"category"`
	Reason              string  `json:"reason"`
	AveragePrice        float64 `json:"average_price"`
	SustainabilityScore int     `json:"sustainability_score"`
}

func toRecommendationResponses(rs []product.Recommendation) []recommendationResponse {
	resp := make([]recommendationResponse, len(rs))
	for i, r := range rs {
		resp[i] = recommendationResponse(r)
	}

	return resp
}

type storePriceResponse struct {
	StoreName    string  `json:"store_name"`
	StoreType    string  `json:"store_type"`
	Price        float64 `json:"price"`
	Availability bool    `json:"availability"`
}

type comparisonResponse struct {
	ProductName string               `json:"product_name"`
	Stores      []storePriceResponse `json:"stores"`
}

func toComparisonResponses(cs []pricing.CatalogComparison) []comparisonResponse {
	resp := make([]comparisonResponse, len(cs))
	for i, c := range cs {
		resp[i] = comparisonResponse{ProductName: c.ProductName, Stores: make([]storePriceResponse, len(c.Stores))}

		for j, s := range c.Stores {
			resp[i].Stores[j] = storePriceResponse(s)
		}
	}

	return resp
}
