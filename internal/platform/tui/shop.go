package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tile-arcade/internal/storage"
	"github.com/vovakirdan/tile-arcade/internal/wallet"
)

// ShopKeyMap defines the key bindings for the shop.
type ShopKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Buy     key.Binding
	Coupons key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ShopKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Buy, k.Coupons, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ShopKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Buy},
		{k.Coupons, k.Back, k.Quit},
	}
}

// DefaultShopKeyMap returns default key bindings.
func DefaultShopKeyMap() ShopKeyMap {
	return ShopKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Buy: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "buy"),
		),
		Coupons: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "my coupons"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var (
	shopOKStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	shopErrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	shopDimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// ShopModel is the Bubble Tea model for the points store.
type ShopModel struct {
	wallet  *wallet.Wallet
	items   []wallet.Item
	balance storage.Balance
	coupons []storage.Coupon
	table   table.Model
	help    help.Model
	keys    ShopKeyMap
	width   int
	height  int

	message     string
	messageErr  bool
	showCoupons bool
	quitting    bool
	goingBack   bool
}

// NewShopModel creates a shop over w.
func NewShopModel(w *wallet.Wallet, width, height int) ShopModel {
	m := ShopModel{
		wallet: w,
		items:  w.Catalog().Items(),
		help:   help.New(),
		keys:   DefaultShopKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.refresh()
	return m
}

func (m *ShopModel) createTable() table.Model {
	rows := make([]table.Row, len(m.items))
	for i, it := range m.items {
		rows[i] = table.Row{it.Label, fmt.Sprintf("%d", it.Price), it.ID}
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Item", Width: 28},
			{Title: "Price", Width: 10},
			{Title: "ID", Width: 10},
		}),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(len(rows)+1, max(m.height-10, 3))),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// refresh reloads the balance and coupon list.
func (m *ShopModel) refresh() {
	if b, err := m.wallet.Balance(); err == nil {
		m.balance = b
	} else {
		m.setMessage(fmt.Sprintf("Could not read wallet: %v", err), true)
	}
	if c, err := m.wallet.Coupons(); err == nil {
		m.coupons = c
	}
}

func (m *ShopModel) setMessage(msg string, isErr bool) {
	m.message = msg
	m.messageErr = isErr
}

// buy purchases the highlighted item.
func (m *ShopModel) buy() {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.items) {
		return
	}
	item := m.items[i]

	receipt, err := m.wallet.Buy(item.ID)
	switch {
	case errors.Is(err, wallet.ErrInsufficientPoints):
		m.setMessage(fmt.Sprintf("Not enough points for %s (%d needed)", item.Label, item.Price), true)
	case err != nil:
		m.setMessage(fmt.Sprintf("Purchase failed: %v", err), true)
	case receipt.Coupon != nil:
		m.setMessage(fmt.Sprintf("Coupon code: %s (%s)", receipt.Coupon.Code, m.wallet.Catalog().Coupon().FaceValueString()), false)
	default:
		m.setMessage("Bought "+item.Label, false)
	}
	m.refresh()
}

// Init initializes the shop model.
func (m ShopModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the shop.
func (m ShopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			if m.showCoupons {
				m.showCoupons = false
				return m, nil
			}
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Coupons):
			m.showCoupons = !m.showCoupons
			return m, nil

		case key.Matches(msg, m.keys.Buy):
			if !m.showCoupons {
				m.buy()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the shop.
func (m ShopModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString(centerText(titleStyle.Render("SHOP"), m.width))
	b.WriteString("\n\n")

	balance := fmt.Sprintf("Points: %d  |  Bonus: +%d moves, +%ds",
		m.balance.Points, m.balance.ExtraMoves, m.balance.ExtraSeconds)
	b.WriteString(centerText(balance, m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if m.showCoupons {
		b.WriteString(centerText(boxStyle.Render(m.renderCoupons()), m.width))
	} else {
		b.WriteString(centerText(boxStyle.Render(m.table.View()), m.width))
	}
	b.WriteString("\n")

	if m.message != "" {
		style := shopOKStyle
		if m.messageErr {
			style = shopErrStyle
		}
		b.WriteString(centerText(style.Render(m.message), m.width))
	}
	b.WriteString("\n\n")

	b.WriteString(shopDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ShopModel) renderCoupons() string {
	if len(m.coupons) == 0 {
		return shopDimStyle.Italic(true).Render("No coupons yet.")
	}
	var b strings.Builder
	for i, c := range m.coupons {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s  %s %s  %s", c.Code, c.FaceValue, c.Currency, c.CreatedAt.Format("Jan 02 15:04"))
	}
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ShopModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ShopModel) IsQuitting() bool {
	return m.quitting
}

// RunShop runs the shop screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunShop(w *wallet.Wallet, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewShopModel(w, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ShopModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
