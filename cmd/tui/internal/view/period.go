package view

import (
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/bitebudget/internal/receipt"
)

// Period is a window of purchase dates offered when browsing or exporting receipts.
type Period int

const (
	PeriodToday Period = iota
	PeriodThisWeek
	PeriodLast30Days
	PeriodThisMonth
	PeriodLastMonth
	PeriodAllReceipts
	PeriodPickDates
)

var periodLabels = [...]string{
	PeriodToday:       "Today",
	PeriodThisWeek:    "This week",
	PeriodLast30Days:  "Last 30 days",
	PeriodThisMonth:   "This month",
	PeriodLastMonth:   "Last month",
	PeriodAllReceipts: "All receipts",
	PeriodPickDates:   "Pick dates...",
}

func (p Period) String() string {
	if p < 0 || int(p) >= len(periodLabels) {
		return "Unknown"
	}

	return periodLabels[p]
}

// window returns the first and last shopping day of p as seen at now.
// Weeks start on Monday. bounded is false when p has no fixed days.
func (p Period) window(now time.Time) (first, last time.Time, bounded bool) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := today.AddDate(0, 0, 1-today.Day())

	switch p {
	case PeriodToday:
		return today, today, true
	case PeriodThisWeek:
		sinceMonday := (int(today.Weekday()) + 6) % 7
		return today.AddDate(0, 0, -sinceMonday), today, true
	case PeriodLast30Days:
		return today.AddDate(0, 0, -29), today, true
	case PeriodThisMonth:
		return monthStart, today, true
	case PeriodLastMonth:
		return monthStart.AddDate(0, -1, 0), monthStart.AddDate(0, 0, -1), true
	}

	return time.Time{}, time.Time{}, false
}

// filterFor covers whole days, from midnight on first to the last second of last.
func filterFor(first, last time.Time) receipt.ListFilter {
	from := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(last.Year(), last.Month(), last.Day(), 23, 59, 59, 0, time.UTC)

	return receipt.ListFilter{From: &from, To: &to}
}

// PeriodSelectedMsg carries the chosen window. Filter is unbounded for All receipts.
type PeriodSelectedMsg struct {
	Label  string
	Filter receipt.ListFilter
}

func selected(msg PeriodSelectedMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func validateDay(s string) error {
	if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
		return errors.New("use YYYY-MM-DD")
	}

	return nil
}

func parseDates(from, to string) (PeriodSelectedMsg, error) {
	first, err := time.Parse(time.DateOnly, strings.TrimSpace(from))
	if err != nil {
		return PeriodSelectedMsg{}, errors.New("first day: use YYYY-MM-DD")
	}

	last, err := time.Parse(time.DateOnly, strings.TrimSpace(to))
	if err != nil {
		return PeriodSelectedMsg{}, errors.New("last day: use YYYY-MM-DD")
	}

	if last.Before(first) {
		return PeriodSelectedMsg{}, errors.New("last day is before first day")
	}

	return PeriodSelectedMsg{
		Label:  FormatDate(first) + " to " + FormatDate(last),
		Filter: filterFor(first, last),
	}, nil
}

func newDatesForm(from, to string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("from").
				Title("First day").
				Placeholder("YYYY-MM-DD").
				CharLimit(10).
				Validate(validateDay).
				Value(&from),
			huh.NewInput().
				Key("to").
				Title("Last day").
				Placeholder("YYYY-MM-DD").
				CharLimit(10).
				Validate(validateDay).
				Value(&to),
		),
	).WithWidth(30).WithShowHelp(false)
}

// PeriodPicker lists the presets and, for Pick dates, asks for both days.
type PeriodPicker struct {
	cursor  Period
	initial Period
	form    *huh.Form
	err     error
	now     func() time.Time
}

func NewPeriodPicker(initial Period) PeriodPicker {
	return PeriodPicker{cursor: initial, initial: initial, now: time.Now}
}

func (p PeriodPicker) Update(msg tea.Msg) (PeriodPicker, tea.Cmd) {
	if p.form != nil {
		return p.updateDates(msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch key.String() {
	case "up", "k":
		if p.cursor > PeriodToday {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < PeriodPickDates {
			p.cursor++
		}
	case "enter":
		return p.choose()
	}

	return p, nil
}

func (p PeriodPicker) choose() (PeriodPicker, tea.Cmd) {
	p.err = nil

	first, last, bounded := p.cursor.window(p.now())

	switch {
	case p.cursor == PeriodPickDates:
		p.form = newDatesForm("", "")
		return p, p.form.Init()
	case !bounded:
		return p, selected(PeriodSelectedMsg{Label: p.cursor.String()})
	}

	return p, selected(PeriodSelectedMsg{Label: p.cursor.String(), Filter: filterFor(first, last)})
}

func (p PeriodPicker) updateDates(msg tea.Msg) (PeriodPicker, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
		p.form = nil
		p.err = nil

		return p, nil
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State != huh.StateCompleted {
		return p, cmd
	}

	from, to := p.form.GetString("from"), p.form.GetString("to")

	chosen, err := parseDates(from, to)
	if err != nil {
		p.err = err
		p.form = newDatesForm(from, to)

		return p, p.form.Init()
	}

	p.form = nil

	return p, selected(chosen)
}

func (p PeriodPicker) View() string {
	var b strings.Builder

	if p.form != nil {
		b.WriteString("Purchases between:\n\n")
		b.WriteString(p.form.View())
		b.WriteString("\n(Enter: next | Esc: presets)")
	} else {
		b.WriteString("Which purchases?\n\n")

		for pd := PeriodToday; pd <= PeriodPickDates; pd++ {
			marker := "  "
			if pd == p.cursor {
				marker = "> "
			}

			b.WriteString(marker + pd.String() + "\n")
		}

		b.WriteString("\n(Up/Down: move | Enter: choose | Esc: back)")
	}

	if p.err != nil {
		b.WriteString("\n\n" + errorStyle.Render("Error: "+p.err.Error()))
	}

	return b.String()
}

// Browsing reports whether the preset list is showing rather than the dates form.
func (p PeriodPicker) Browsing() bool {
	return p.form == nil
}

func (p *PeriodPicker) Reset() {
	p.cursor = p.initial
	p.form = nil
	p.err = nil
}
