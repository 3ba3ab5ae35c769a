package budget

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/bitebudget/internal/apperr"
)

type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
	PeriodCustom  Period = "custom"
)

type Status string

const (
	StatusOnTrack    Status = "on_track"
	StatusWarning    Status = "warning"
	StatusOverBudget Status = "over_budget"
)

const DefaultCategory = "General"

var ErrNotFound = fmt.Errorf("budget %w", apperr.ErrNotFound)

// Budget is a spending cap over [StartDate, EndDate]. EndDate is always after StartDate.
type Budget struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	TotalBudget float64
	SpentAmount float64
	Category    string
	Period      Period
	StartDate   time.Time
	EndDate     time.Time
	CreatedAt   time.Time
}

// Remaining may be negative once the budget is overspent.
func (b *Budget) Remaining() float64 {
	return b.TotalBudget - b.SpentAmount
}

type CreateParams struct {
	Name        string
	TotalBudget float64
	SpentAmount float64
	Category    string
	Period      Period
	StartDate   *time.Time
	EndDate     *time.Time
}

// UpdateParams is a patch: nil fields are left untouched.
type UpdateParams struct {
	Name        *string
	TotalBudget *float64
	SpentAmount *float64
	Category    *string
	EndDate     *time.Time
}
