package view

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/bitebudget/internal/matching"
	"github.com/MrJamesThe3rd/bitebudget/internal/receipt"
)

type receiptsState int

const (
	receiptsStatePeriod receiptsState = iota
	receiptsStateList
	receiptsStateDetail
	receiptsStateLearn
)

// receiptItem wraps a receipt to implement list.Item.
type receiptItem struct {
	r *receipt.Receipt
}

func (i receiptItem) Title() string {
	return fmt.Sprintf("%s  %10s  %s", FormatDate(i.r.PurchaseDate), FormatAmount(i.r.TotalAmount), i.r.StoreName)
}

func (i receiptItem) Description() string {
	names := make([]string, 0, 3)
	for _, it := range i.r.Items {
		if len(names) == cap(names) {
			break
		}
		names = append(names, it.ProductName)
	}

	desc := fmt.Sprintf("%d items", len(i.r.Items))
	if len(names) > 0 {
		desc += ": " + strings.Join(names, ", ")
	}

	return desc
}

func (i receiptItem) FilterValue() string { return i.r.StoreName }

type ReceiptsModel struct {
	CommonModel
	receipts *receipt.Service
	matching *matching.Service
	session  Session

	state    receiptsState
	periods  PeriodPicker
	list     list.Model
	items    table.Model
	form     *huh.Form
	selected *receipt.Receipt

	filter  receipt.ListFilter
	label   string
	loading bool
	status  string
}

func NewReceiptsModel(receipts *receipt.Service, matchSvc *matching.Service, session Session) ReceiptsModel {
	l := list.New([]list.Item{}, receiptItemDelegate{}, 0, 0)
	l.Title = "Receipts"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	items := table.New(
		table.WithColumns([]table.Column{
			{Title: "Product", Width: 30},
			{Title: "Qty", Width: 5},
			{Title: "Unit", Width: 10},
			{Title: "Total", Width: 10},
			{Title: "Category", Width: 16},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	return ReceiptsModel{
		receipts: receipts,
		matching: matchSvc,
		session:  session,
		periods:  NewPeriodPicker(PeriodLast30Days),
		list:     l,
		items:    items,
	}
}

func (m ReceiptsModel) Title() string { return "Receipts" }

func (m ReceiptsModel) ShortHelp() string {
	switch m.state {
	case receiptsStatePeriod:
		return "Esc: back | Enter: select"
	case receiptsStateList:
		return "Esc: back | Enter: open | x: delete | /: filter"
	case receiptsStateDetail:
		return "Esc: back | l: learn category for item"
	case receiptsStateLearn:
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return ""
}

func (m ReceiptsModel) Init() tea.Cmd {
	return nil
}

func (m ReceiptsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PeriodSelectedMsg:
		m.filter = msg.Filter
		m.label = msg.Label
		m.loading = true
		m.state = receiptsStateList

		return m, m.loadCmd()

	case receiptsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		items := make([]list.Item, len(msg.receipts))
		for i, r := range msg.receipts {
			items[i] = receiptItem{r: r}
		}

		m.list.SetItems(items)
		m.list.Title = "Receipts: " + m.label

		m.status = ""
		if len(msg.receipts) == 0 {
			m.status = "No receipts found."
		}

		return m, nil

	case receiptActionMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		if m.state == receiptsStateLearn {
			m.state = receiptsStateDetail
			m.form = nil
			return m, nil
		}

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	switch m.state {
	case receiptsStatePeriod:
		return m.updatePeriod(msg)
	case receiptsStateList:
		return m.updateList(msg)
	case receiptsStateDetail:
		return m.updateDetail(msg)
	case receiptsStateLearn:
		return m.updateLearn(msg)
	}

	return m, nil
}

func (m ReceiptsModel) updatePeriod(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.periods.Browsing() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.periods, cmd = m.periods.Update(msg)

	return m, cmd
}

func (m ReceiptsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch keyMsg.String() {
		case "esc":
			m.state = receiptsStatePeriod
			m.periods.Reset()

			return m, nil
		case "enter":
			return m.openDetail()
		case "x":
			if sel, ok := m.list.SelectedItem().(receiptItem); ok {
				return m, m.deleteCmd(sel.r)
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m ReceiptsModel) openDetail() (tea.Model, tea.Cmd) {
	sel, ok := m.list.SelectedItem().(receiptItem)
	if !ok {
		return m, nil
	}

	m.selected = sel.r

	rows := make([]table.Row, len(sel.r.Items))
	for i, it := range sel.r.Items {
		rows[i] = table.Row{
			it.ProductName,
			strconv.Itoa(it.Quantity),
			FormatAmount(it.UnitPrice),
			FormatAmount(it.TotalPrice),
			it.Category,
		}
	}

	m.items.SetRows(rows)
	m.items.SetCursor(0)
	m.state = receiptsStateDetail
	m.status = ""

	return m, nil
}

func (m ReceiptsModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.state = receiptsStateList
			m.selected = nil

			return m, nil
		case "l":
			return m.startLearning()
		}
	}

	var cmd tea.Cmd
	m.items, cmd = m.items.Update(msg)

	return m, cmd
}

// startLearning opens a form that maps a product name pattern to a category
// for future imports.
func (m ReceiptsModel) startLearning() (tea.Model, tea.Cmd) {
	idx := m.items.Cursor()
	if m.selected == nil || idx < 0 || idx >= len(m.selected.Items) {
		return m, nil
	}

	item := m.selected.Items[idx]
	pattern := item.ProductName
	category := item.Category

	required := func(field string) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s cannot be empty", field)
			}
			return nil
		}
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("pattern").
				Title("Products containing").
				Value(&pattern).
				Validate(required("pattern")),

			huh.NewInput().
				Key("category").
				Title("Belong to category").
				Value(&category).
				Validate(required("category")),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = receiptsStateLearn

	return m, m.form.Init()
}

func (m ReceiptsModel) updateLearn(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = receiptsStateDetail
			m.form = nil

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

	return m, m.learnCmd(matching.Mapping{
		Pattern:  m.form.GetString("pattern"),
		Category: m.form.GetString("category"),
	})
}

func (m ReceiptsModel) View() string {
	statusLine := ""
	if m.status != "" {
		statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
	}

	switch m.state {
	case receiptsStatePeriod:
		return lipgloss.NewStyle().Padding(1).Render(m.periods.View())

	case receiptsStateList:
		if m.loading {
			return lipgloss.NewStyle().Padding(2).Render("Loading receipts...")
		}

		return lipgloss.NewStyle().Padding(1).Render(statusLine + m.list.View())

	case receiptsStateDetail, receiptsStateLearn:
		content := statusLine + m.receiptInfoView() + "\n" + m.items.View()
		if m.state == receiptsStateLearn && m.form != nil {
			content += "\n\n" + m.form.View()
		}

		return lipgloss.NewStyle().Padding(1).Render(content)
	}

	return ""
}

func (m ReceiptsModel) receiptInfoView() string {
	if m.selected == nil {
		return ""
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(fmt.Sprintf(
			"Store: %s  |  Date: %s  |  Total: %s",
			m.selected.StoreName,
			FormatDate(m.selected.PurchaseDate),
			FormatAmount(m.selected.TotalAmount),
		))
}

// Messages

type receiptsLoadedMsg struct {
	receipts []*receipt.Receipt
	err      error
}

func (m ReceiptsModel) loadCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		receipts, err := m.receipts.List(ctx, m.session.UserID, filter)

		return receiptsLoadedMsg{receipts: receipts, err: err}
	}
}

type receiptActionMsg struct {
	status string
	err    error
}

func (m ReceiptsModel) deleteCmd(r *receipt.Receipt) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.receipts.Delete(ctx, m.session.UserID, r.ID); err != nil {
			return receiptActionMsg{err: err}
		}

		return receiptActionMsg{status: fmt.Sprintf("Deleted receipt from %s on %s.", r.StoreName, FormatDate(r.PurchaseDate))}
	}
}

func (m ReceiptsModel) learnCmd(mapping matching.Mapping) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.matching.Learn(ctx, mapping); err != nil {
			return receiptActionMsg{err: err}
		}

		return receiptActionMsg{status: fmt.Sprintf("Products containing %q will be filed under %s.", mapping.Pattern, mapping.Category)}
	}
}

// receiptItemDelegate renders receipts in the list.
type receiptItemDelegate struct{}

func (d receiptItemDelegate) Height() int                             { return 2 }
func (d receiptItemDelegate) Spacing() int                            { return 0 }
func (d receiptItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d receiptItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(receiptItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintf(w, "    %s\n", lipgloss.NewStyle().Faint(true).Render(i.Description()))
}
