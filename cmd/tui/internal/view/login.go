package view

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/bitebudget/internal/user"
)

// LoggedInMsg carries the session once the credentials check out.
type LoggedInMsg struct {
	Session Session
}

type loginFailedMsg struct {
	err error
}

type LoginModel struct {
	CommonModel
	users *user.Service

	form     *huh.Form
	checking bool
	err      error
}

func NewLoginModel(users *user.Service) LoginModel {
	return LoginModel{users: users, form: newLoginForm()}
}

// newLoginForm's values are read back by key with GetString.
func newLoginForm() *huh.Form {
	var login, password string

	notEmpty := func(field string) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s cannot be empty", field)
			}
			return nil
		}
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("login").
				Title("Username or email").
				Value(&login).
				Validate(notEmpty("login")),
			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(notEmpty("password")),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m LoginModel) Title() string     { return "Sign In" }
func (m LoginModel) ShortHelp() string { return "Enter: next | Ctrl+C: quit" }

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if failed, ok := msg.(loginFailedMsg); ok {
		m.checking = false
		m.err = failed.err
		m.form = newLoginForm()

		return m, m.form.Init()
	}

	if m.checking {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.checking = true

	return m, m.authenticateCmd(m.form.GetString("login"), m.form.GetString("password"))
}

func (m LoginModel) View() string {
	header := lipgloss.NewStyle().Bold(true).Render("BiteBudget")

	body := m.form.View()
	if m.checking {
		body = "Signing in..."
	}

	if m.err != nil {
		body = errorStyle.Render(m.err.Error()) + "\n\n" + body
	}

	return lipgloss.NewStyle().Padding(2).Render(header + "\n\n" + body)
}

func (m LoginModel) authenticateCmd(login, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		u, err := m.users.Authenticate(ctx, login, password)
		if err != nil {
			if errors.Is(err, user.ErrInvalidCredentials) {
				return loginFailedMsg{err: errors.New("invalid username or password")}
			}

			return loginFailedMsg{err: err}
		}

		return LoggedInMsg{Session: Session{UserID: u.ID, Username: u.Username}}
	}
}
