package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/bitebudget/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/bitebudget/internal/budget"
	budgetStore "github.com/MrJamesThe3rd/bitebudget/internal/budget/store"
	"github.com/MrJamesThe3rd/bitebudget/internal/config"
	"github.com/MrJamesThe3rd/bitebudget/internal/database"
	"github.com/MrJamesThe3rd/bitebudget/internal/export"
	"github.com/MrJamesThe3rd/bitebudget/internal/importer"
	"github.com/MrJamesThe3rd/bitebudget/internal/logging"
	"github.com/MrJamesThe3rd/bitebudget/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/bitebudget/internal/matching/store"
	"github.com/MrJamesThe3rd/bitebudget/internal/receipt"
	receiptStore "github.com/MrJamesThe3rd/bitebudget/internal/receipt/store"
	"github.com/MrJamesThe3rd/bitebudget/internal/user"
	userStore "github.com/MrJamesThe3rd/bitebudget/internal/user/store"
)

// screen is what every TUI view implements.
type screen interface {
	tea.Model
	Title() string
	ShortHelp() string
}

type services struct {
	users    *user.Service
	budgets  *budget.Service
	receipts *receipt.Service
	matching *matching.Service
	importer *importer.Service
	export   *export.Service
}

type model struct {
	svc     services
	session *view.Session

	// active is nil while the menu is shown.
	active screen
}

func newServices(db *sql.DB) services {
	receiptSvc := receipt.NewService(receiptStore.New(db))
	matchSvc := matching.NewService(matchingStore.New(db))

	return services{
		users:    user.NewService(userStore.New(db)),
		budgets:  budget.NewService(budgetStore.New(db)),
		receipts: receiptSvc,
		matching: matchSvc,
		importer: importer.NewService(matchSvc),
		export:   export.NewService(receiptSvc),
	}
}

func initialModel(svc services) model {
	return model{svc: svc, active: view.NewLoginModel(svc.users)}
}

func (m model) Init() tea.Cmd {
	return m.active.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.active == nil {
			return m.updateMenu(msg)
		}
	case view.LoggedInMsg:
		m.session = &msg.Session
		m.active = nil
		return m, nil
	case view.BackMsg:
		m.active = nil
		return m, nil
	}

	if m.active == nil {
		return m, nil
	}

	next, cmd := m.active.Update(msg)
	if s, ok := next.(screen); ok {
		m.active = s
	}

	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := *m.session

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "1":
		m.active = view.NewBudgetsModel(m.svc.budgets, s)
	case "2":
		m.active = view.NewReceiptsModel(m.svc.receipts, m.svc.matching, s)
	case "3":
		m.active = view.NewImportModel(m.svc.receipts, m.svc.importer, s)
	case "4":
		m.active = view.NewExportModel(m.svc.export, s)
	default:
		return m, nil
	}

	return m, m.active.Init()
}

func (m model) View() string {
	if m.active == nil {
		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("BiteBudget TUI (%s)\n\n", m.session.Username) +
				"1. Budgets\n" +
				"2. Receipts\n" +
				"3. Import Receipt CSV\n" +
				"4. Export Receipts\n\n" +
				"q. Quit",
		)
	}

	footer := lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(m.active.Title() + " | " + m.active.ShortHelp())

	return m.active.View() + "\n" + footer
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Log lines would tear through the alt screen.
	logging.New(io.Discard, cfg.App.LogLevel, cfg.App.LogFormat)

	db, err := database.New(context.Background(), cfg.ConnectionString())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	p := tea.NewProgram(initialModel(newServices(db)), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run TUI: %v\n", err)
		os.Exit(1)
	}
}
