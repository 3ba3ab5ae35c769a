package analytics

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/bitebudget/internal/analytics"
	"github.com/MrJamesThe3rd/bitebudget/internal/budget"
)

type trendResponse struct {
	MonthlySpending map[string]float64 `json:"monthly_spending"`
	TotalSpending   float64            `json:"total_spending"`
	AverageMonthly  float64            `json:"average_monthly"`
}

type categoryResponse struct {
	Category   string  `json:"category"`
	TotalSpent float64 `json:"total_spent"`
	ItemCount  int     `json:"item_count"`
}

type productResponse struct {
	ProductName       string  `json:"product_name"`
	TotalSpent        float64 `json:"total_spent"`
	TotalQuantity     int     `json:"total_quantity"`
	PurchaseFrequency int     `json:"purchase_frequency"`
	AveragePrice      float64 `json:"average_price"`
}

type storeResponse struct {
	StoreName string `json:"store_name"`
	Visits    int    `json:"visits"`
}

type patternsResponse struct {
	DayOfWeek      map[string]int  `json:"day_of_week_patterns"`
	HourOfDay      map[int]int     `json:"hour_of_day_patterns"`
	FavoriteStores []storeResponse `json:"favorite_stores"`
}

type sustainabilityResponse struct {
	Score             float64  `json:"sustainability_score"`
	OrganicPercentage float64  `json:"organic_percentage"`
	LocalPercentage   float64  `json:"local_percentage"`
	TotalItems        int      `json:"total_items"`
	Recommendations   []string `json:"recommendations"`
}

type analysisBudget struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	TotalBudget float64       `json:"total_budget"`
	SpentAmount float64       `json:"spent_amount"`
	Category    string        `json:"category"`
	Period      budget.Period `json:"period"`
	StartDate   time.Time     `json:"start_date"`
	EndDate     time.Time     `json:"end_date"`
}

type analysisResponse struct {
	Budget                analysisBudget `json:"budget"`
	UtilizationPercentage float64        `json:"utilization_percentage"`
	RemainingBudget       float64        `json:"remaining_budget"`
	RemainingDays         int            `json:"remaining_days"`
	Status                budget.Status  `json:"status"`
	DailyBudgetRemaining  float64        `json:"daily_budget_remaining"`
}

func toTrendResponse(t analytics.MonthlyTrend) trendResponse {
	return trendResponse{
		MonthlySpending: t.Months,
		TotalSpending:   t.Total,
		AverageMonthly:  t.AverageMonthly,
	}
}

func toCategoryResponses(cs []analytics.CategoryTotal) []categoryResponse {
	resp := make([]categoryResponse, len(cs))
	for i, c := range cs {
		resp[i] = categoryResponse{Category: c.Category, TotalSpent: c.TotalSpent, ItemCount: c.ItemCount}
	}

	return resp
}

func toProductResponses(ps []analytics.ProductTotal) []productResponse {
	resp := make([]productResponse, len(ps))
	for i, p := range ps {
		resp[i] = productResponse{
			ProductName:       p.ProductName,
			TotalSpent:        p.TotalSpent,
			TotalQuantity:     p.TotalQuantity,
			PurchaseFrequency: p.PurchaseFrequency,
			AveragePrice:      p.AveragePrice,
		}
	}

	return resp
}

func toPatternsResponse(p analytics.Patterns) patternsResponse {
	resp := patternsResponse{
		DayOfWeek:      p.ByWeekday,
		HourOfDay:      p.ByHour,
		FavoriteStores: make([]storeResponse, len(p.TopStores)),
	}

	for i, s := range p.TopStores {
		resp.FavoriteStores[i] = storeResponse{StoreName: s.StoreName, Visits: s.Visits}
	}

	return resp
}

func toSustainabilityResponse(s analytics.SustainabilityReport) sustainabilityResponse {
	return sustainabilityResponse{
		Score:             s.Score,
		OrganicPercentage: s.OrganicPercentage,
		LocalPercentage:   s.LocalPercentage,
		TotalItems:        s.TotalItems,
		Recommendations:   s.Recommendations,
	}
}

func toAnalysisResponses(as []budget.Analysis) []analysisResponse {
	resp := make([]analysisResponse, len(as))
	for i, a := range as {
		b := a.Budget
		resp[i] = analysisResponse{
			Budget: analysisBudget{
				ID:          b.ID,
				Name:        b.Name,
				TotalBudget: b.TotalBudget,
				SpentAmount: b.SpentAmount,
				Category:    b.Category,
				Period:      b.Period,
				StartDate:   b.StartDate,
				EndDate:     b.EndDate,
			},
			UtilizationPercentage: a.Utilization,
			RemainingBudget:       a.Remaining,
			RemainingDays:         a.RemainingDays,
			Status:                a.Status,
			DailyBudgetRemaining:  a.DailyRemaining,
		}
	}

	return resp
}
