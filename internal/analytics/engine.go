// Package analytics derives spending views from a user's receipts and budgets.
// The functions in this file are pure: they never touch storage and take the
// reference instant explicitly, so the same input always yields the same output.
package analytics

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/bitebudget/internal/budget"
	"github.com/MrJamesThe3rd/bitebudget/internal/receipt"
)

const (
	DefaultTrendWindowDays = 365
	DefaultTopProducts     = 10
	topStores              = 5

	organicHintBelow = 20.0
	localHintBelow   = 15.0

	OrganicHint = "Try buying more organic products to reduce environmental impact"
	LocalHint   = "Consider purchasing more locally sourced items to support local farmers"
)

type MonthlyTrend struct {
	// Months is keyed by "YYYY-MM" in each receipt's own location.
	Months         map[string]float64
	Total          float64
	AverageMonthly float64
}

// Trend sums receipts whose purchase date falls in [now-windowDays, now] per
// calendar month. A non-positive window means DefaultTrendWindowDays.
func Trend(receipts []*receipt.Receipt, now time.Time, windowDays int) MonthlyTrend {
	if windowDays <= 0 {
		windowDays = DefaultTrendWindowDays
	}

	from := now.AddDate(0, 0, -windowDays)
	out := MonthlyTrend{Months: make(map[string]float64)}

	for _, r := range receipts {
		if r.PurchaseDate.Before(from) || r.PurchaseDate.After(now) {
			continue
		}

		out.Months[r.PurchaseDate.Format("2006-01")] += r.TotalAmount
		out.Total += r.TotalAmount
	}

	out.AverageMonthly = out.Total / float64(max(len(out.Months), 1))

	return out
}

type CategoryTotal struct {
	Category   string
	TotalSpent float64
	ItemCount  int
}

// CategoryBreakdown groups items by category, folding an empty category into
// receipt.DefaultCategory. Results are ordered by category name.
func CategoryBreakdown(items []receipt.Item) []CategoryTotal {
	groups := make(map[string]*CategoryTotal)

	for _, it := range items {
		cat := it.Category
		if strings.TrimSpace(cat) == "" {
			cat = receipt.DefaultCategory
		}

		g, ok := groups[cat]
		if !ok {
			g = &CategoryTotal{Category: cat}
			groups[cat] = g
		}

		g.TotalSpent += it.TotalPrice
		g.ItemCount++
	}

	out := make([]CategoryTotal, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })

	return out
}

type ProductTotal struct {
	ProductName       string
	TotalSpent        float64
	TotalQuantity     int
	PurchaseFrequency int
	AveragePrice      float64
}

// TopProducts ranks products by total spent, descending. Ties keep the order
// in which products were first seen. A non-positive limit means DefaultTopProducts.
func TopProducts(items []receipt.Item, limit int) []ProductTotal {
	if limit <= 0 {
		limit = DefaultTopProducts
	}

	var (
		order  []string
		groups = make(map[string]*ProductTotal)
	)

	for _, it := range items {
		g, ok := groups[it.ProductName]
		if !ok {
			g = &ProductTotal{ProductName: it.ProductName}
			groups[it.ProductName] = g
			order = append(order, it.ProductName)
		}

		g.TotalSpent += it.TotalPrice
		g.TotalQuantity += it.Quantity
		g.PurchaseFrequency++
	}

	out := make([]ProductTotal, 0, len(order))

	for _, name := range order {
		g := groups[name]
		g.AveragePrice = g.TotalSpent / float64(max(g.TotalQuantity, 1))
		out = append(out, *g)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalSpent > out[j].TotalSpent })

	if len(out) > limit {
		out = out[:limit]
	}

	return out
}

type StoreVisits struct {
	StoreName string
	Visits    int
}

type Patterns struct {
	ByWeekday map[string]int
	ByHour    map[int]int
	TopStores []StoreVisits
}

// ShoppingPatterns tallies receipts by weekday name, hour of day and store.
// TopStores holds at most five stores, ties in first-seen order.
func ShoppingPatterns(receipts []*receipt.Receipt) Patterns {
	out := Patterns{
		ByWeekday: make(map[string]int),
		ByHour:    make(map[int]int),
	}

	var (
		order  []string
		visits = make(map[string]int)
	)

	for _, r := range receipts {
		out.ByWeekday[r.PurchaseDate.Weekday().String()]++
		out.ByHour[r.PurchaseDate.Hour()]++

		if _, ok := visits[r.StoreName]; !ok {
			order = append(order, r.StoreName)
		}

		visits[r.StoreName]++
	}

	stores := make([]StoreVisits, 0, len(order))
	for _, name := range order {
		stores = append(stores, StoreVisits{StoreName: name, Visits: visits[name]})
	}

	sort.SliceStable(stores, func(i, j int) bool { return stores[i].Visits > stores[j].Visits })

	if len(stores) > topStores {
		stores = stores[:topStores]
	}

	out.TopStores = stores

	return out
}

type SustainabilityReport struct {
	Score             float64
	OrganicPercentage float64
	LocalPercentage   float64
	TotalItems        int
	OrganicItems      int
	LocalItems        int
	Recommendations   []string
}

// Sustainability scores items by keyword. An item is organic when its name
// contains "organic" and local when it contains "local" or "farm", ignoring
// case. With no items every figure is 0.
func Sustainability(receipts []*receipt.Receipt) SustainabilityReport {
	var out SustainabilityReport

	for _, r := range receipts {
		for _, it := range r.Items {
			name := strings.ToLower(it.ProductName)

			out.TotalItems++

			if strings.Contains(name, "organic") {
				out.OrganicItems++
			}

			if strings.Contains(name, "local") || strings.Contains(name, "farm") {
				out.LocalItems++
			}
		}
	}

	var organic, local float64

	if out.TotalItems > 0 {
		organic = float64(out.OrganicItems) / float64(out.TotalItems) * 100
		local = float64(out.LocalItems) / float64(out.TotalItems) * 100

		out.OrganicPercentage = round1(organic)
		out.LocalPercentage = round1(local)
		out.Score = round1(math.Min((organic+local)/2, 100))
	}

	out.Recommendations = []string{}

	// Hints compare the unrounded shares.
	if organic < organicHintBelow {
		out.Recommendations = append(out.Recommendations, OrganicHint)
	}

	if local < localHintBelow {
		out.Recommendations = append(out.Recommendations, LocalHint)
	}

	return out
}

// BudgetAnalysis evaluates each budget at now, preserving input order.
func BudgetAnalysis(budgets []*budget.Budget, now time.Time) []budget.Analysis {
	out := make([]budget.Analysis, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, budget.Analyze(b, now))
	}

	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
