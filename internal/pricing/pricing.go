// Package pricing simulates cross-store grocery prices. No live store is
// contacted: every figure comes from a PricePredictor over fixed base prices.
package pricing

import (
	"hash/fnv"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	Currency         = "MXN"
	DefaultBasePrice = 50.00
	DefaultAlertType = "price_drop"
	trendDays        = 30
)

// Store is a tracked retailer. Multiplier scales the base price.
type Store struct {
	ID         string
	Name       string
	Multiplier float64
}

var Stores = []Store{
	{ID: "walmart", Name: "Walmart", Multiplier: 0.95},
	{ID: "chedraui", Name: "Chedraui", Multiplier: 1.02},
	{ID: "soriana", Name: "Soriana", Multiplier: 1.05},
	{ID: "costco", Name: "Costco", Multiplier: 0.88},
}

var basePrices = map[string]float64{
	"milk":      25.00,
	"bread":     30.00,
	"eggs":      45.00,
	"chicken":   120.00,
	"rice":      35.00,
	"coca-cola": 22.50,
	"bananas":   18.00,
}

// BasePrice looks up a product by lowercase name, falling back to DefaultBasePrice.
func BasePrice(product string) float64 {
	if p, ok := basePrices[strings.ToLower(strings.TrimSpace(product))]; ok {
		return p
	}

	return DefaultBasePrice
}

func storeByID(id string) (Store, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, s := range Stores {
		if s.ID == id {
			return s, true
		}
	}

	return Store{}, false
}

type Quote struct {
	StoreID      string
	StoreName    string
	ProductName  string
	Price        float64
	Currency     string
	Availability string
	Confidence   float64
	LastUpdated  time.Time
}

type BestDeal struct {
	Product   string
	BestPrice float64
	Store     string
	Savings   float64
}

type Comparison struct {
	Timestamp    time.Time
	Products     map[string][]Quote
	BestDeals    []BestDeal
	TotalSavings float64
}

// bestDeal picks the cheapest quote; the first one wins a tie. Savings is the
// gap to the average price and is 0 with fewer than two quotes.
func bestDeal(product string, quotes []Quote) BestDeal {
	best := quotes[0]

	var sum float64
	for _, q := range quotes {
		sum += q.Price

		if q.Price < best.Price {
			best = q
		}
	}

	deal := BestDeal{Product: product, BestPrice: best.Price, Store: best.StoreName}
	if len(quotes) >= 2 {
		deal.Savings = round2(sum/float64(len(quotes)) - best.Price)
	}

	return deal
}

type Alert struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	ProductName string
	TargetPrice float64
	Stores      []string
	AlertType   string
	IsActive    bool
	CreatedAt   time.Time
}

// AlertStatus is an alert checked against the current quotes of its stores.
type AlertStatus struct {
	Alert          *Alert
	CurrentPrice   float64
	StoreName      string
	Triggered      bool
	PercentageDrop float64
}

type CreateAlertParams struct {
	ProductName string
	TargetPrice float64
	Stores      []string
	AlertType   string
}

type PricePoint struct {
	Date  time.Time
	Price float64
	Store string
}

type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

type Prediction struct {
	NextWeek   float64
	Confidence float64
	Trend      Trend
}

type Statistics struct {
	MinPrice   float64
	MaxPrice   float64
	AvgPrice   float64
	Volatility float64
}

type PriceTrend struct {
	ProductName  string
	History      []PricePoint
	CurrentPrice float64
	Prediction   Prediction
	Statistics   Statistics
}

// classifyTrend compares a forecast with the base price using a 2% band.
func classifyTrend(next, base float64) Trend {
	switch {
	case next > base*1.02:
		return TrendUp
	case next < base*0.98:
		return TrendDown
	default:
		return TrendStable
	}
}

type ProductPrediction struct {
	ProductName      string
	CurrentPrice     float64
	PredictedPrice   float64
	Confidence       float64
	Trend            Trend
	Recommendation   string
	SavingsPotential float64
	Factors          []string
}

type Predictions struct {
	Predictions []ProductPrediction
	Algorithm   string
	GeneratedAt time.Time
}

// CatalogStore is a store type used by the catalog price comparison.
type CatalogStore struct {
	Name       string
	Type       string
	Multiplier float64
}

var catalogStores = []CatalogStore{
	{Name: "SuperMart", Type: "supermarket", Multiplier: 1.0},
	{Name: "Fresh Market", Type: "organic", Multiplier: 1.3},
	{Name: "Budget Store", Type: "discount", Multiplier: 0.8},
	{Name: "Corner Shop", Type: "convenience", Multiplier: 1.2},
}

type CatalogPrice struct {
	StoreName    string
	StoreType    string
	Price        float64
	Availability bool
}

type CatalogComparison struct {
	ProductName string
	Stores      []CatalogPrice
}

// CompareCatalog prices each product at every catalog store. The price is a
// hash of product and store in [5, 25) scaled by the store type multiplier.
func CompareCatalog(products []string) []CatalogComparison {
	out := make([]CatalogComparison, 0, len(products))

	for _, name := range products {
		cmp := CatalogComparison{ProductName: name, Stores: make([]CatalogPrice, 0, len(catalogStores))}

		for _, st := range catalogStores {
			h := fnv.New32a()
			h.Write([]byte(name + st.Name))

			base := float64(h.Sum32()%20 + 5)

			cmp.Stores = append(cmp.Stores, CatalogPrice{
				StoreName:    st.Name,
				StoreType:    st.Type,
				Price:        round2(base * st.Multiplier),
				Availability: true,
			})
		}

		out = append(out, cmp)
	}

	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
