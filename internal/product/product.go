package product

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Product is a catalog entry shared by every user.
type Product struct {
	ID                  uuid.UUID
	Name                string
	Category            string
	AveragePrice        *float64
	PriceHistory        string
	SustainabilityScore int
	CreatedAt           time.Time
}

type Filter struct {
	Category string
	Search   string
	Page     int
	PerPage  int
}

// normalize clamps paging to page >= 1 and 1 <= per_page <= MaxPerPage.
func (f Filter) normalize() Filter {
	if f.Page < 1 {
		f.Page = 1
	}

	if f.PerPage < 1 {
		f.PerPage = DefaultPerPage
	}

	if f.PerPage > MaxPerPage {
		f.PerPage = MaxPerPage
	}

	return f
}

func (f Filter) Offset() int {
	return (f.Page - 1) * f.PerPage
}

type Page struct {
	Products    []*Product
	Total       int
	Pages       int
	CurrentPage int
	PerPage     int
}

type Recommendation struct {
	ProductName         string
	Category            string
	Reason              string
	AveragePrice        float64
	SustainabilityScore int
}

var recommendations = []Recommendation{
	{
		ProductName:         "Organic Almond Milk",
		Category:            "Dairy Alternatives",
		Reason:              "Based on your purchase of organic products",
		AveragePrice:        4.99,
		SustainabilityScore: 85,
	},
	{
		ProductName:         "Free-Range Eggs",
		Category:            "Eggs",
		Reason:              "Frequently bought together with organic milk",
		AveragePrice:        6.50,
		SustainabilityScore: 78,
	},
	{
		ProductName:         "Quinoa",
		Category:            "Grains",
		Reason:              "Popular among health-conscious shoppers",
		AveragePrice:        8.99,
		SustainabilityScore: 92,
	},
	{
		ProductName:         "Local Honey",
		Category:            "Sweeteners",
		Reason:              "Supports local farmers and has high sustainability score",
		AveragePrice:        12.99,
		SustainabilityScore: 95,
	},
}
