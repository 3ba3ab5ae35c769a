package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/bitebudget/internal/analytics"
	"github.com/MrJamesThe3rd/bitebudget/internal/budget"
	"github.com/MrJamesThe3rd/bitebudget/internal/receipt"
)

func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func TestTrend(t *testing.T) {
	now := at(2024, 6, 15, 12)

	receipts := []*receipt.Receipt{
		{TotalAmount: 100, PurchaseDate: at(2024, 6, 1, 10)},
		{TotalAmount: 50, PurchaseDate: at(2024, 6, 10, 10)},
		{TotalAmount: 30, PurchaseDate: at(2024, 5, 20, 10)},
		{TotalAmount: 999, PurchaseDate: at(2023, 1, 1, 10)},
		{TotalAmount: 999, PurchaseDate: at(2024, 7, 1, 10)},
	}

	got := analytics.Trend(receipts, now, 0)

	assert.Equal(t, map[string]float64{"2024-06": 150, "2024-05": 30}, got.Months)
	assert.InDelta(t, 180.0, got.Total, 1e-9)
	assert.InDelta(t, 90.0, got.AverageMonthly, 1e-9)
}

func TestTrend_UsesReceiptLocation(t *testing.T) {
	loc := time.FixedZone("UTC-6", -6*60*60)
	// 2024-06-01 02:00 UTC is still May in UTC-6.
	r := &receipt.Receipt{TotalAmount: 10, PurchaseDate: at(2024, 6, 1, 2).In(loc)}

	got := analytics.Trend([]*receipt.Receipt{r}, at(2024, 6, 2, 0), 30)

	assert.Contains(t, got.Months, "2024-05")
}

func TestTrend_Empty(t *testing.T) {
	got := analytics.Trend(nil, time.Now(), 365)

	assert.Empty(t, got.Months)
	assert.Zero(t, got.Total)
	assert.Zero(t, got.AverageMonthly)
}

func TestCategoryBreakdown(t *testing.T) {
	items := []receipt.Item{
		{Category: "Dairy", TotalPrice: 4.5},
		{Category: "", TotalPrice: 2.0},
	}

	got := analytics.CategoryBreakdown(items)

	assert.Equal(t, []analytics.CategoryTotal{
		{Category: "Dairy", TotalSpent: 4.5, ItemCount: 1},
		{Category: "Other", TotalSpent: 2.0, ItemCount: 1},
	}, got)
}

func TestCategoryBreakdown_MergesEmptyWithOther(t *testing.T) {
	items := []receipt.Item{
		{Category: "Other", TotalPrice: 1},
		{Category: "  ", TotalPrice: 2},
		{Category: "Bakery", TotalPrice: 3},
	}

	got := analytics.CategoryBreakdown(items)

	require.Len(t, got, 2)
	assert.Equal(t, "Bakery", got[0].Category)
	assert.Equal(t, analytics.CategoryTotal{Category: "Other", TotalSpent: 3, ItemCount: 2}, got[1])
}

func TestTopProducts(t *testing.T) {
	items := []receipt.Item{
		{ProductName: "Milk", Quantity: 2, TotalPrice: 50},
		{ProductName: "Chicken", Quantity: 1, TotalPrice: 120},
		{ProductName: "Milk", Quantity: 1, TotalPrice: 25},
		{ProductName: "Bread", Quantity: 1, TotalPrice: 75},
	}

	type testCase struct {
		name  string
		limit int
		want  []string
	}

	tests := []testCase{
		{name: "DefaultLimit", limit: 0, want: []string{"Chicken", "Milk", "Bread"}},
		{name: "LimitOne", limit: 1, want: []string{"Chicken"}},
		{name: "NegativeLimit", limit: -3, want: []string{"Chicken", "Milk", "Bread"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analytics.TopProducts(items, tt.limit)

			names := make([]string, len(got))
			for i, p := range got {
				names[i] = p.ProductName
			}

			assert.Equal(t, tt.want, names)
		})
	}

	milk := analytics.TopProducts(items, 10)[1]
	assert.Equal(t, 3, milk.TotalQuantity)
	assert.Equal(t, 2, milk.PurchaseFrequency)
	assert.InDelta(t, 25.0, milk.AveragePrice, 1e-9)
}

func TestTopProducts_TiesKeepFirstSeen(t *testing.T) {
	items := []receipt.Item{
		{ProductName: "Rice", Quantity: 1, TotalPrice: 35},
		{ProductName: "Eggs", Quantity: 1, TotalPrice: 35},
	}

	got := analytics.TopProducts(items, 1)

	require.Len(t, got, 1)
	assert.Equal(t, "Rice", got[0].ProductName)
}

func TestShoppingPatterns(t *testing.T) {
	// 2024-01-01 was a Monday.
	receipts := []*receipt.Receipt{
		{StoreName: "Walmart", PurchaseDate: at(2024, 1, 1, 9)},
		{StoreName: "Costco", PurchaseDate: at(2024, 1, 1, 18)},
		{StoreName: "Walmart", PurchaseDate: at(2024, 1, 2, 9)},
		{StoreName: "A", PurchaseDate: at(2024, 1, 3, 9)},
		{StoreName: "B", PurchaseDate: at(2024, 1, 3, 9)},
		{StoreName: "C", PurchaseDate: at(2024, 1, 3, 9)},
		{StoreName: "D", PurchaseDate: at(2024, 1, 3, 9)},
	}

	got := analytics.ShoppingPatterns(receipts)

	assert.Equal(t, map[string]int{"Monday": 2, "Tuesday": 1, "Wednesday": 4}, got.ByWeekday)
	assert.Equal(t, map[int]int{9: 6, 18: 1}, got.ByHour)
	assert.Equal(t, []analytics.StoreVisits{
		{StoreName: "Walmart", Visits: 2},
		{StoreName: "Costco", Visits: 1},
		{StoreName: "A", Visits: 1},
		{StoreName: "B", Visits: 1},
		{StoreName: "C", Visits: 1},
	}, got.TopStores)
}

func TestSustainability(t *testing.T) {
	receipts := []*receipt.Receipt{
		{Items: []receipt.Item{
			{ProductName: "Organic Milk"},
			{ProductName: "Local Farm Eggs"},
			{ProductName: "Bread"},
			{ProductName: "Soda"},
		}},
	}

	got := analytics.Sustainability(receipts)

	assert.Equal(t, 4, got.TotalItems)
	assert.Equal(t, 1, got.OrganicItems)
	assert.Equal(t, 1, got.LocalItems)
	assert.InDelta(t, 25.0, got.OrganicPercentage, 1e-9)
	assert.InDelta(t, 25.0, got.LocalPercentage, 1e-9)
	assert.InDelta(t, 25.0, got.Score, 1e-9)
	assert.Empty(t, got.Recommendations)
}

func TestSustainability_NoItems(t *testing.T) {
	for _, receipts := range [][]*receipt.Receipt{nil, {{StoreName: "Empty"}}} {
		got := analytics.Sustainability(receipts)

		assert.Zero(t, got.Score)
		assert.Zero(t, got.OrganicPercentage)
		assert.Zero(t, got.LocalPercentage)
		assert.Equal(t, []string{analytics.OrganicHint, analytics.LocalHint}, got.Recommendations)
	}
}

func TestSustainability_Recommendations(t *testing.T) {
	receipts := []*receipt.Receipt{{Items: []receipt.Item{
		{ProductName: "ORGANIC apples"},
		{ProductName: "Rice"},
	}}}

	got := analytics.Sustainability(receipts)

	assert.InDelta(t, 50.0, got.OrganicPercentage, 1e-9)
	assert.Equal(t, []string{analytics.LocalHint}, got.Recommendations)
}

func TestSustainability_HintsUseUnroundedShares(t *testing.T) {
	items := make([]receipt.Item, 0, 2500)
	for i := range 2500 {
		name := "Rice"
		switch {
		case i < 499:
			name = "Organic rice"
		case i < 499+500:
			name = "Local honey"
		}

		items = append(items, receipt.Item{ProductName: name})
	}

	got := analytics.Sustainability([]*receipt.Receipt{{Items: items}})

	assert.InDelta(t, 20.0, got.OrganicPercentage, 1e-9)
	assert.InDelta(t, 20.0, got.LocalPercentage, 1e-9)
	assert.Equal(t, []string{analytics.OrganicHint}, got.Recommendations)
}

func TestBudgetAnalysis(t *testing.T) {
	now := at(2024, 1, 11, 0)
	budgets := []*budget.Budget{
		{Name: "a", TotalBudget: 100, SpentAmount: 95, StartDate: at(2024, 1, 1, 0), EndDate: at(2024, 1, 31, 0)},
		{Name: "b", TotalBudget: 0, SpentAmount: 0, StartDate: at(2023, 1, 1, 0), EndDate: at(2023, 2, 1, 0)},
	}

	got := analytics.BudgetAnalysis(budgets, now)

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Budget.Name)
	assert.Equal(t, budget.StatusOverBudget, got[0].Status)
	assert.Equal(t, 0, got[1].RemainingDays)
	assert.Zero(t, got[1].DailyRemaining)
	assert.Equal(t, budget.StatusOnTrack, got[1].Status)
}

func TestAggregationsAreIdempotent(t *testing.T) {
	now := at(2024, 3, 1, 0)
	receipts := []*receipt.Receipt{
		{StoreName: "Walmart", TotalAmount: 40, PurchaseDate: at(2024, 2, 3, 10), Items: []receipt.Item{
			{ProductName: "Milk", Quantity: 1, TotalPrice: 25, Category: "Dairy"},
			{ProductName: "Organic Bananas", Quantity: 1, TotalPrice: 15, Category: "Produce"},
		}},
		{StoreName: "Costco", TotalAmount: 120, PurchaseDate: at(2024, 1, 20, 16), Items: []receipt.Item{
			{ProductName: "Chicken", Quantity: 1, TotalPrice: 120, Category: ""},
		}},
	}

	var items []receipt.Item
	for _, r := range receipts {
		items = append(items, r.Items...)
	}

	assert.Equal(t, analytics.Trend(receipts, now, 365), analytics.Trend(receipts, now, 365))
	assert.Equal(t, analytics.CategoryBreakdown(items), analytics.CategoryBreakdown(items))
	assert.Equal(t, analytics.TopProducts(items, 10), analytics.TopProducts(items, 10))
	assert.Equal(t, analytics.ShoppingPatterns(receipts), analytics.ShoppingPatterns(receipts))
	assert.Equal(t, analytics.Sustainability(receipts), analytics.Sustainability(receipts))
}
