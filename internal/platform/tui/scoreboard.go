package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tile-arcade/internal/registry"
	"github.com/vovakirdan/tile-arcade/internal/storage"
)

const (
	scoreboardLimit    = 100
	statsPanelMinWidth = 72 // below this the stats sit above the table
	statsPanelWidth    = 22
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextMode, k.PrevMode},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev mode"),
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
	scoreTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	scoreTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	scoreActiveTab  = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	scoreBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// ScoreboardModel lists the best final scores per game mode.
type ScoreboardModel struct {
	modes  []registry.GameInfo
	mode   int
	store  *storage.Store
	scores []storage.ScoreEntry
	stats  *storage.GameStats // nil until a game of this mode is saved

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a scoreboard over store, showing the first
// registered mode.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  registry.List(),
		store:  store,
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *ScoreboardModel) wide() bool {
	return m.width >= statsPanelMinWidth
}

func (m *ScoreboardModel) createTable() table.Model {
	dateW := 16
	if m.wide() {
		dateW = min(max(m.width-statsPanelWidth-34, 12), 20)
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 10},
			{Title: "Played", Width: dateW},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
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

// load reads scores and stats for the current mode.
func (m *ScoreboardModel) load() {
	m.scores, m.stats = nil, nil
	if m.store != nil && len(m.modes) > 0 {
		id := m.modes[m.mode].ID
		if scores, err := m.store.TopScores(id, scoreboardLimit); err == nil {
			m.scores = scores
		}
		if stats, err := m.store.GetGameStats(id); err == nil && stats.GamesCount > 0 {
			m.stats = stats
		}
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", s.Score),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) cycle(step int) {
	if len(m.modes) == 0 {
		return
	}
	m.mode = (m.mode + step + len(m.modes)) % len(m.modes)
	m.load()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextMode):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.cycle(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table = m.createTable()
		m.load()
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerText(scoreTitleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	scores := scoreBoxStyle.Render(m.renderScores())
	if m.wide() {
		stats := scoreBoxStyle.Width(statsPanelWidth).Render(m.renderStats())
		b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, scores, "  ", stats), m.width))
	} else {
		b.WriteString(centerText(shopDimStyle.Render(m.statsLine()), m.width))
		b.WriteString("\n")
		b.WriteString(centerText(scores, m.width))
	}

	b.WriteString("\n")
	b.WriteString(shopDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) renderTabs() string {
	tabs := make([]string, len(m.modes))
	for i, g := range m.modes {
		if i == m.mode {
			tabs[i] = scoreActiveTab.Render(g.Title)
		} else {
			tabs[i] = scoreTabStyle.Render(g.Title)
		}
	}
	return strings.Join(tabs, " ")
}

func (m ScoreboardModel) renderScores() string {
	if len(m.scores) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 2).
			Render("No games finished in this mode yet.")
	}
	return m.table.View()
}

func (m ScoreboardModel) renderStats() string {
	if m.stats == nil {
		return "Games: 0"
	}
	return fmt.Sprintf("Games: %d\nBest: %d\nAverage: %.0f\nTotal: %d\n\nLast played\n%s",
		m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore, m.stats.TotalScore,
		m.stats.LastPlayed.Format("Jan 02 15:04"))
}

func (m ScoreboardModel) statsLine() string {
	if m.stats == nil {
		return ""
	}
	return fmt.Sprintf("Games: %d  Best: %d  Average: %.0f",
		m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard full screen. goBack is false when the
// player quit instead of returning to the menu.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
