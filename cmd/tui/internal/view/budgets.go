package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/bitebudget/internal/budget"
)

type budgetsState int

const (
	budgetsStateBrowse budgetsState = iota
	budgetsStateCreate
	budgetsStateConfirmDelete
)

type BudgetsModel struct {
	CommonModel
	svc     *budget.Service
	session Session

	state    budgetsState
	table    table.Model
	analyses []budget.Analysis
	summary  budget.Summary
	form     *huh.Form

	loading bool
	err     error
	status  string
}

func NewBudgetsModel(svc *budget.Service, session Session) BudgetsModel {
	columns := []table.Column{
		{Title: "Name", Width: 20},
		{Title: "Category", Width: 14},
		{Title: "Period", Width: 9},
		{Title: "Budget", Width: 10},
		{Title: "Spent", Width: 10},
		{Title: "Used", Width: 8},
		{Title: "Days", Width: 5},
		{Title: "Per Day", Width: 9},
		{Title: "Status", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return BudgetsModel{
		svc:     svc,
		session: session,
		table:   t,
		loading: true,
	}
}

func (m BudgetsModel) Title() string { return "Budgets" }
func (m BudgetsModel) ShortHelp() string {
	switch m.state {
	case budgetsStateCreate:
		return "Navigate form | Esc: cancel"
	case budgetsStateConfirmDelete:
		return "y: delete | any other key: cancel"
	}
	return "Esc: back | n: new | x: delete | r: refresh"
}

func (m BudgetsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m BudgetsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case budgetsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.analyses = msg.analyses
		m.summary = msg.summary
		m.refreshTable()
		return m, nil

	case budgetSavedMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}
		m.state = budgetsStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-12, 5))
		return m, nil
	}

	switch m.state {
	case budgetsStateBrowse:
		return m.updateBrowse(msg)
	case budgetsStateCreate:
		return m.updateCreate(msg)
	case budgetsStateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	return m, nil
}

func (m BudgetsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "n":
			return m.enterCreateMode()
		case "x":
			if _, ok := m.selected(); ok {
				m.state = budgetsStateConfirmDelete
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m BudgetsModel) enterCreateMode() (tea.Model, tea.Cmd) {
	var (
		name     string
		amount   string
		category = budget.DefaultCategory
		period   = string(budget.PeriodMonthly)
	)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Total budget").
				Placeholder("2000.00").
				Value(&amount).
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil || v <= 0 {
						return fmt.Errorf("enter a positive amount")
					}
					return nil
				}),

			huh.NewInput().
				Key("category").
				Title("Category").
				Value(&category),

			huh.NewSelect[string]().
				Key("period").
				Title("Period").
				Options(huh.NewOptions(
					string(budget.PeriodWeekly),
					string(budget.PeriodMonthly),
					string(budget.PeriodYearly),
				)...).
				Value(&period),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = budgetsStateCreate
	m.table.Blur()
	return m, m.form.Init()
}

func (m BudgetsModel) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = budgetsStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.createCmd()
}

func (m BudgetsModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if keyMsg.String() != "y" {
		m.state = budgetsStateBrowse
		return m, nil
	}

	return m, m.deleteCmd()
}

func (m BudgetsModel) selected() (*budget.Budget, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.analyses) {
		return nil, false
	}

	return m.analyses[idx].Budget, true
}

func (m BudgetsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading budgets...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	header := fmt.Sprintf(
		"%s | Active: %d of %d | Allocated: %s | Spent: %s | Remaining: %s | Used: %s",
		activeStyle(m.session.Username),
		m.summary.ActiveBudgets,
		m.summary.TotalBudgets,
		FormatAmount(m.summary.TotalAllocated),
		FormatAmount(m.summary.TotalSpent),
		FormatAmount(m.summary.TotalRemaining),
		FormatPercent(m.summary.Utilization),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	switch m.state {
	case budgetsStateCreate:
		if m.form != nil {
			panel := lipgloss.NewStyle().
				Padding(1, 2).
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63")).
				Width(48).
				Render("New Budget\n\n" + m.form.View())

			content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
		}
	case budgetsStateConfirmDelete:
		if b, ok := m.selected(); ok {
			content += "\n\n" + warningStyle.Render(fmt.Sprintf("Delete budget %q? (y/N)", b.Name))
		}
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *BudgetsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.analyses))
	for _, a := range m.analyses {
		b := a.Budget
		rows = append(rows, table.Row{
			b.Name,
			b.Category,
			string(b.Period),
			FormatAmount(b.TotalBudget),
			FormatAmount(b.SpentAmount),
			FormatPercent(a.Utilization),
			strconv.Itoa(a.RemainingDays),
			FormatAmount(a.DailyRemaining),
			FormatStatus(a.Status),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type budgetsLoadedMsg struct {
	analyses []budget.Analysis
	summary  budget.Summary
	err      error
}

func (m BudgetsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		budgets, err := m.svc.List(ctx, m.session.UserID)
		if err != nil {
			return budgetsLoadedMsg{err: err}
		}

		now := m.svc.Now()
		analyses := make([]budget.Analysis, len(budgets))
		for i, b := range budgets {
			analyses[i] = budget.Analyze(b, now)
		}

		return budgetsLoadedMsg{analyses: analyses, summary: budget.Summarize(budgets, now)}
	}
}

type budgetSavedMsg struct {
	status string
	err    error
}

func (m BudgetsModel) createCmd() tea.Cmd {
	amount, _ := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("amount")), 64)
	params := budget.CreateParams{
		Name:        m.form.GetString("name"),
		TotalBudget: amount,
		Category:    m.form.GetString("category"),
		Period:      budget.Period(m.form.GetString("period")),
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		b, err := m.svc.Create(ctx, m.session.UserID, params)
		if err != nil {
			return budgetSavedMsg{err: err}
		}

		return budgetSavedMsg{status: fmt.Sprintf("Created budget %q ending %s", b.Name, FormatDate(b.EndDate))}
	}
}

func (m BudgetsModel) deleteCmd() tea.Cmd {
	b, ok := m.selected()
	if !ok {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.svc.Delete(ctx, m.session.UserID, b.ID); err != nil {
			return budgetSavedMsg{err: err}
		}

		return budgetSavedMsg{status: fmt.Sprintf("Deleted budget %q", b.Name)}
	}
}
