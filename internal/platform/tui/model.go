package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tile-arcade/internal/core"
	"github.com/vovakirdan/tile-arcade/internal/notify"
	"github.com/vovakirdan/tile-arcade/internal/registry"
	"github.com/vovakirdan/tile-arcade/internal/storage"
	"github.com/vovakirdan/tile-arcade/internal/wallet"
)

// Notifier is implemented by games that publish notifications.
type Notifier interface {
	Bus() *notify.Bus
}

type controlsHinter interface {
	Controls() string
}

// GameOptions are the services a game model may use. All are optional.
type GameOptions struct {
	Store  *storage.Store
	Wallet *wallet.Wallet
	Logger *log.Logger
}

// GameModel is the Bubble Tea model for running a single game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	opts       GameOptions
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper

	cues     *notify.ChannelSubscriber
	detach   []func()
	cue      string
	cueTicks int

	embedded   bool // Back returns to a host menu instead of quitting
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewGameModel creates a model for game. Purchased bonuses are read from the
// wallet and score changes flow back into it.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	m := GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
	m.applyBonus()

	if n, ok := game.(Notifier); ok {
		bus := n.Bus()
		m.cues = notify.NewChannelSubscriber(16)
		m.detach = append(m.detach,
			bus.Subscribe(notify.NameCue, m.cues.Handle),
			bus.Subscribe(notify.NameGameOver, m.cues.Handle),
		)
		if opts.Wallet != nil {
			sync := wallet.NewScoreSync(opts.Wallet, opts.Logger)
			m.detach = append(m.detach, sync.Attach(bus))
		}
	}

	return m
}

// applyBonus copies the wallet's extra moves and seconds into the runtime
// config used by the next Reset.
func (m *GameModel) applyBonus() {
	if m.opts.Wallet == nil {
		return
	}
	moves, extra, err := m.opts.Wallet.Bonus()
	if err != nil {
		m.opts.Logger.Warn("could not read wallet bonus", "error", err)
		return
	}
	m.config.ExtraMoves = moves
	m.config.ExtraSeconds = int(extra / time.Second)
}

// Close detaches the model from the game's notification bus.
func (m GameModel) Close() {
	for _, d := range m.detach {
		d()
	}
	if m.cues != nil {
		m.cues.Close()
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back leaves the game once it is over or paused
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		if m.embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}

	// Games without Resize restart at the new size
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.applyBonus()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.drainCues()

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved && m.gameState.Score > 0 {
		if m.opts.Store != nil {
			if _, err := m.opts.Store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
				m.opts.Logger.Warn("could not save score", "game", m.game.ID(), "error", err)
			}
		}
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// drainCues pulls pending cues without blocking and keeps the latest on
// screen for about a second.
func (m *GameModel) drainCues() {
	if m.cueTicks > 0 {
		m.cueTicks--
		if m.cueTicks == 0 {
			m.cue = ""
		}
	}
	if m.cues == nil {
		return
	}
	for {
		select {
		case evt := <-m.cues.Events():
			switch e := evt.(type) {
			case notify.Cue:
				m.cue = "♪ " + string(e.Sound)
			case notify.GameOver:
				m.cue = fmt.Sprintf("♪ game over (%s)", e.Reason)
			}
			m.cueTicks = m.config.TickRate
		default:
			return
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("could not save screenshot", "path", path, "error", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	m.renderFooter()
	return RenderScreen(m.screen)
}

// renderFooter writes control hints and the latest cue on the bottom row.
func (m GameModel) renderFooter() {
	y := m.screen.Height() - 1
	w := m.screen.Width()

	cueW := len([]rune(m.cue))
	if h, ok := m.game.(controlsHinter); ok {
		if hint := h.Controls(); len([]rune(hint))+cueW+1 <= w {
			m.screen.DrawTextWithColor(0, y, hint, core.ColorGray)
		}
	}
	if m.cue != "" {
		m.screen.DrawTextWithColor(w-cueW, y, m.cue, core.ColorBrightMagenta)
	}
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) error {
	model := NewGameModel(game, cfg, opts)
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // clicks select tiles
	)

	_, err := p.Run()
	return err
}
