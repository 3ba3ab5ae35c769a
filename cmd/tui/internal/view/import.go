package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/bitebudget/internal/importer"
	"github.com/MrJamesThe3rd/bitebudget/internal/receipt"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFilePick importState = iota
	importStateParsing
	importStateReview
	importStateSaving
	importStateResult
)

type ImportModel struct {
	CommonModel
	receipts      *receipt.Service
	importService *importer.Service
	session       Session

	state      importState
	filePicker filepicker.Model
	fileName   string

	parsed    *importer.Result
	itemList  list.Model
	form      *huh.Form
	focusForm bool

	status string
	err    error
}

func NewImportModel(receipts *receipt.Service, impSvc *importer.Service, session Session) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		receipts:      receipts,
		importService: impSvc,
		session:       session,
		filePicker:    fp,
	}
}

func (m ImportModel) Title() string { return "Import Receipt" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateReview {
		return "Ctrl+T: switch items/form | Esc: cancel"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateReview {
			return m.updateReview(msg)
		}

	case parsedMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		if len(msg.result.Items) == 0 {
			m.state = importStateResult
			m.err = fmt.Errorf("no receipt items found")
			m.status = fmt.Sprintf("No receipt items found in %s.", m.fileName)

			return m, nil
		}

		m.parsed = msg.result
		m.state = importStateReview
		m.focusForm = true

		items := make([]list.Item, len(msg.result.Items))
		for i, it := range msg.result.Items {
			items[i] = parsedItem{item: it}
		}

		m.itemList = list.New(items, parsedItemDelegate{}, 60, 14)
		m.itemList.Title = fmt.Sprintf("%s (%s, %s, %d skipped)", m.fileName, msg.result.Profile, msg.result.Charset, msg.result.Skipped)
		m.itemList.SetShowStatusBar(false)
		m.itemList.SetFilteringEnabled(false)
		m.itemList.SetShowHelp(false)

		m.form = newImportForm(strings.TrimSuffix(m.fileName, filepath.Ext(m.fileName)), msg.result.Total())

		return m, m.form.Init()

	case savedMsg:
		m.state = importStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.status = fmt.Sprintf("Saved receipt from %s with %d items, total %s.",
			msg.receipt.StoreName, len(msg.receipt.Items), FormatAmount(msg.receipt.TotalAmount))

		return m, nil
	}

	switch m.state {
	case importStateFilePick:
		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)

		if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
			m.state = importStateParsing
			m.fileName = filepath.Base(path)
			m.status = fmt.Sprintf("Reading %s...", m.fileName)

			return m, m.parseCmd(path)
		}

		return m, cmd

	case importStateReview:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateReview, importStateResult:
		m.state = importStateFilePick
		m.parsed = nil
		m.form = nil
		m.err = nil
		m.status = ""

		return m, m.filePicker.Init()
	}

	return m, Back
}

func (m ImportModel) updateReview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+t" {
		m.focusForm = !m.focusForm
		return m, nil
	}

	if !m.focusForm {
		var cmd tea.Cmd
		m.itemList, cmd = m.itemList.Update(msg)

		return m, cmd
	}

	return m.updateForm(msg)
}

func (m ImportModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	params, err := m.createParams()
	if err != nil {
		m.state = importStateResult
		m.err = err
		m.status = fmt.Sprintf("Error: %v", err)

		return m, nil
	}

	m.state = importStateSaving
	m.status = "Saving receipt..."

	return m, m.saveCmd(params)
}

// newImportForm asks for the receipt header. The total defaults to the sum
// of the parsed items.
func newImportForm(store string, total float64) *huh.Form {
	date := FormatDate(time.Now())
	amount := FormatAmount(total)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("store").
				Title("Store").
				Value(&store).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("store cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("date").
				Title("Purchase date").
				Placeholder("YYYY-MM-DD").
				Value(&date).
				Validate(func(s string) error {
					_, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
					return err
				}),

			huh.NewInput().
				Key("total").
				Title("Total").
				Value(&amount).
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil || v < 0 {
						return fmt.Errorf("enter a non-negative amount")
					}
					return nil
				}),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m ImportModel) createParams() (receipt.CreateParams, error) {
	date, err := time.Parse(time.DateOnly, strings.TrimSpace(m.form.GetString("date")))
	if err != nil {
		return receipt.CreateParams{}, fmt.Errorf("invalid purchase date: %w", err)
	}

	total, err := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("total")), 64)
	if err != nil {
		return receipt.CreateParams{}, fmt.Errorf("invalid total: %w", err)
	}

	return receipt.CreateParams{
		StoreName:    m.form.GetString("store"),
		TotalAmount:  total,
		PurchaseDate: &date,
		Items:        m.parsed.Items,
	}, nil
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select a receipt CSV to import:\n\n%s", m.filePicker.View()),
		)
	case importStateParsing, importStateSaving:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateReview:
		return m.viewReview()
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewReview() string {
	border := func(focused bool) lipgloss.Style {
		color := lipgloss.Color("240")
		if focused {
			color = lipgloss.Color("63")
		}

		return lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(color).Padding(0, 1)
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top,
			border(!m.focusForm).Render(m.itemList.View()),
			border(m.focusForm).Render(m.form.View()),
		),
		lipgloss.NewStyle().Faint(true).Render("Ctrl+T: switch between items and form"),
	))
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(errorStyle.Render(m.status) + "\n\n(Esc to go back)")
	}

	return style.Render(successStyle.Render(m.status) + "\n\n(Esc to import another file)")
}

// Messages

type parsedMsg struct {
	result *importer.Result
	err    error
}

type savedMsg struct {
	receipt *receipt.Receipt
	err     error
}

func (m ImportModel) parseCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return parsedMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		res, err := m.importService.Import(ctx, f)

		return parsedMsg{result: res, err: err}
	}
}

func (m ImportModel) saveCmd(params receipt.CreateParams) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		r, err := m.receipts.Create(ctx, m.session.UserID, params)

		return savedMsg{receipt: r, err: err}
	}
}

// Parsed item list

type parsedItem struct {
	item receipt.ItemParams
}

func (i parsedItem) Title() string       { return i.item.ProductName }
func (i parsedItem) Description() string { return i.item.Category }
func (i parsedItem) FilterValue() string { return i.item.ProductName }

type parsedItemDelegate struct{}

func (d parsedItemDelegate) Height() int                             { return 1 }
func (d parsedItemDelegate) Spacing() int                            { return 0 }
func (d parsedItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d parsedItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(parsedItem)
	if !ok {
		return
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	category := item.item.Category
	if category == "" {
		category = lipgloss.NewStyle().Faint(true).Render(receipt.DefaultCategory)
	}

	fmt.Fprintf(w, "%s%-28s %3d x %8s = %9s  %s",
		cursor,
		item.item.ProductName,
		item.item.Quantity,
		FormatAmount(item.item.UnitPrice),
		FormatAmount(item.item.TotalPrice),
		category,
	)
}
