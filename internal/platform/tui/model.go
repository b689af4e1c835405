package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/core"
	bfcore "github.com/vovakirdan/blockfall/internal/games/blockfall/core"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// sessionProvider is implemented by games that expose their simulation
// state for replay persistence. Games without it still get score saves.
type sessionProvider interface {
	Sim() *bfcore.State
	Seed() int64
}

// Model is the Bubble Tea model for running games.
type Model struct {
	game        registry.Game
	screen      *core.Screen
	store       *storage.Store
	config      core.RuntimeConfig
	keys        *KeyMapper
	inputFrame  core.InputFrame
	gameState   core.GameState
	quitting    bool
	resultSaved bool // score and replay saved for the current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keys:       NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Restart only applies after a game over.
	if m.inputFrame.Has(core.ActionRestart) && !m.gameState.GameOver {
		delete(m.inputFrame.Actions, core.ActionRestart)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	restarting := m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if restarting && !m.gameState.GameOver {
		m.resultSaved = false
	}

	// Save score and replay on game over (once)
	if m.gameState.GameOver && !m.resultSaved {
		m.saveResult()
		m.resultSaved = true
	}

	return m, tickCmd(m.config.TickRate)
}

// saveResult persists the final score and, when the game exposes its
// session, the sealed replay with its verification verdict. Best-effort:
// the session ends normally even if persistence fails.
func (m *Model) saveResult() {
	if m.store == nil {
		return
	}

	if m.gameState.Score > 0 {
		if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
			log.Warn("could not save score", "game", m.game.ID(), "err", err)
		}
	}

	provider, ok := m.game.(sessionProvider)
	if !ok {
		return
	}
	sim := provider.Sim()
	if sim == nil || sim.Replay == nil || !sim.Replay.Sealed() {
		return
	}

	payload, err := sim.Replay.MarshalExport()
	if err != nil {
		log.Warn("could not export replay", "err", err)
		return
	}

	if _, err := m.store.SaveReplay(storage.ReplayRecord{
		GameID:     m.game.ID(),
		Seed:       provider.Seed(),
		Mode:       sim.Mode(),
		Score:      sim.Score,
		Frames:     int64(sim.Frame),
		DurationMs: sim.ElapsedMs,
		Verified:   sim.CanSubmitToTournament(),
		VerifyHash: sim.Replay.VerifyHash,
		Payload:    payload,
	}); err != nil {
		log.Warn("could not save replay", "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".blockfall", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
