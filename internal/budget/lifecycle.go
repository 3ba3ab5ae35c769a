package budget

import (
	"math"
	"time"

	"github.com/MrJamesThe3rd/bitebudget/internal/apperr"
)

const (
	warningThreshold    = 75.0
	overBudgetThreshold = 90.0
)

// EndDate derives the end of a budget window. Weekly, monthly and yearly
// periods are fixed offsets of 7, 30 and 365 days. Any other period takes
// explicitEnd, which must be present and after start.
func EndDate(start time.Time, period Period, explicitEnd *time.Time) (time.Time, error) {
	switch period {
	case PeriodWeekly:
		return start.AddDate(0, 0, 7), nil
	case PeriodMonthly:
		return start.AddDate(0, 0, 30), nil
	case PeriodYearly:
		return start.AddDate(0, 0, 365), nil
	}

	if explicitEnd == nil {
		return time.Time{}, apperr.Invalid("end_date", "required for "+string(period)+" period")
	}

	if !explicitEnd.After(start) {
		return time.Time{}, apperr.Invalid("end_date", "must be after start_date")
	}

	return *explicitEnd, nil
}

// Utilization is spent as a percentage of total, or 0 when total is not positive.
func Utilization(total, spent float64) float64 {
	if total <= 0 {
		return 0
	}

	return spent / total * 100
}

// Classify maps spend to a status band. Thresholds are strict: exactly
// 90% is still a warning and exactly 75% is still on track.
func Classify(total, spent float64) Status {
	u := Utilization(total, spent)

	switch {
	case u > overBudgetThreshold:
		return StatusOverBudget
	case u > warningThreshold:
		return StatusWarning
	default:
		return StatusOnTrack
	}
}

// RemainingDays counts whole days left until end, never negative.
func RemainingDays(end, now time.Time) int {
	d := end.Sub(now)
	if d <= 0 {
		return 0
	}

	return int(math.Floor(d.Hours() / 24))
}

// DailyRemaining spreads what is left over the remaining days. It is 0 once
// no days remain and goes negative when the budget is overspent.
func DailyRemaining(total, spent float64, remainingDays int) float64 {
	if remainingDays <= 0 {
		return 0
	}

	return (total - spent) / float64(remainingDays)
}

// Analysis is the derived state of one budget at a point in time.
type Analysis struct {
	Budget         *Budget
	Utilization    float64
	Status         Status
	Remaining      float64
	RemainingDays  int
	DailyRemaining float64
}

func Analyze(b *Budget, now time.Time) Analysis {
	days := RemainingDays(b.EndDate, now)

	return Analysis{
		Budget:         b,
		Utilization:    Utilization(b.TotalBudget, b.SpentAmount),
		Status:         Classify(b.TotalBudget, b.SpentAmount),
		Remaining:      b.Remaining(),
		RemainingDays:  days,
		DailyRemaining: DailyRemaining(b.TotalBudget, b.SpentAmount, days),
	}
}

type Summary struct {
	TotalBudgets   int
	ActiveBudgets  int
	TotalAllocated float64
	TotalSpent     float64
	TotalRemaining float64
	Utilization    float64
}

// Summarize rolls up every budget. A budget is active when start <= now <= end.
func Summarize(budgets []*Budget, now time.Time) Summary {
	s := Summary{TotalBudgets: len(budgets)}

	for _, b := range budgets {
		s.TotalAllocated += b.TotalBudget
		s.TotalSpent += b.SpentAmount

		if !now.Before(b.StartDate) && !now.After(b.EndDate) {
			s.ActiveBudgets++
		}
	}

	s.TotalRemaining = s.TotalAllocated - s.TotalSpent
	s.Utilization = Utilization(s.TotalAllocated, s.TotalSpent)

	return s
}
