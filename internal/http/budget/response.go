package budget

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/bitebudget/internal/budget"
)

type budgetResponse struct {
	ID                    uuid.UUID     `json:"id"`
	Name                  string        `json:"name"`
	TotalBudget           float64       `json:"total_budget"`
	SpentAmount           float64       `json:"spent_amount"`
	RemainingBudget       float64       `json:"remaining_budget"`
	Category              string        `json:"category"`
	Period                budget.Period `json:"period"`
	StartDate             time.Time     `json:"start_date"`
	EndDate               time.Time     `json:"end_date"`
	CreatedAt             time.Time     `json:"created_at"`
	UtilizationPercentage float64       `json:"utilization_percentage"`
	Status                budget.Status `json:"status"`
}

func toResponse(b *budget.Budget) budgetResponse {
	return budgetResponse{
		ID:                    b.ID,
		Name:                  b.Name,
		TotalBudget:           b.TotalBudget,
		SpentAmount:           b.SpentAmount,
		RemainingBudget:       b.Remaining(),
		Category:              b.Category,
		Period:                b.Period,
		StartDate:             b.StartDate,
		EndDate:               b.EndDate,
		CreatedAt:             b.CreatedAt,
		UtilizationPercentage: budget.Utilization(b.TotalBudget, b.SpentAmount),
		Status:                budget.Classify(b.TotalBudget, b.SpentAmount),
	}
}

func toResponseList(bs []*budget.Budget) []budgetResponse {
	resp := make([]budgetResponse, len(bs))
	for i, b := range bs {
		resp[i] = toResponse(b)
	}

	return resp
}

type summaryResponse struct {
	TotalBudgets      int     `json:"total_budgets"`
	ActiveBudgets     int     `json:"active_budgets"`
	TotalAllocated    float64 `json:"total_allocated"`
	TotalSpent        float64 `json:"total_spent"`
	TotalRemaining    float64 `json:"total_remaining"`
	BudgetUtilization float64 `json:"budget_utilization"`
}

func toSummaryResponse(s budget.Summary) summaryResponse {
	return summaryResponse{
		TotalBudgets:      s.TotalBudgets,
		ActiveBudgets:     s.ActiveBudgets,
		TotalAllocated:    s.TotalAllocated,
		TotalSpent:        s.TotalSpent,
		TotalRemaining:    s.TotalRemaining,
		BudgetUtilization: s.Utilization,
	}
}
