package view

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/bitebudget/internal/budget"
)

const dbTimeout = 5 * time.Second

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatStatus colors a budget status: green on track, amber warning, red over.
func FormatStatus(s budget.Status) string {
	switch s {
	case budget.StatusOverBudget:
		return errorStyle.Render("over budget")
	case budget.StatusWarning:
		return warningStyle.Render("warning")
	default:
		return successStyle.Render("on track")
	}
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
