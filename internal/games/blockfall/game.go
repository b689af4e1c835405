package blockfall

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	bfcore "github.com/vovakirdan/blockfall/internal/games/blockfall/core"
	"github.com/vovakirdan/blockfall/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	// ModeProgressive unlocks special piece kinds as skill grows.
	ModeProgressive Mode = "blockfall"
	// ModeFixed draws only the seven classic kinds.
	ModeFixed Mode = "blockfall_fixed"
)

// Game adapts the pure simulation core to the registry interface. All
// game logic lives in the core package; this layer translates input
// frames into simulation inputs and state into screen cells.
type Game struct {
	mode  Mode
	state *bfcore.State

	seed    int64
	dtMs    float64
	screenW int
	screenH int

	shadows *bfcore.ShadowCache
	lastCue Cue
}

// configPath points at an explicit YAML config; empty means the
// standard search order.
var configPath string

// SetConfigPath sets the config file path used at the next Reset.
func SetConfigPath(path string) {
	configPath = path
}

// New creates a progressive-mode game.
func New() *Game {
	return &Game{mode: ModeProgressive}
}

// NewFixed creates a fixed-set game.
func NewFixed() *Game {
	return &Game{mode: ModeFixed}
}

func init() {
	registry.Register(string(ModeProgressive), func() registry.Game {
		return New()
	})
	registry.Register(string(ModeFixed), func() registry.Game {
		return NewFixed()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeFixed {
		return "Blockfall (Classic Set)"
	}
	return "Blockfall"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	g.dtMs = 1000 / float64(tickRate)

	g.seed = cfg.Seed
	if g.seed == 0 {
		g.seed = time.Now().UnixNano()
	}

	timing := bfcore.DefaultTiming()
	thresholds := bfcore.DefaultValidationThresholds()
	if loaded, err := config.LoadBlockfall(configPath); err == nil {
		timing = bfcore.Timing{
			GravityBaseMs:    loaded.Timing.GravityBaseMs,
			GravityStepMs:    loaded.Timing.GravityStepMs,
			GravityFloorMs:   loaded.Timing.GravityFloorMs,
			LockDelayMs:      loaded.Timing.LockDelayMs,
			FloatLockBonusMs: loaded.Timing.FloatLockBonusMs,
			MaxLockMs:        loaded.Timing.MaxLockMs,
			ClearMs:          loaded.Timing.ClearMs,
			SnapshotEvery:    loaded.Timing.SnapshotEvery,
		}
		thresholds = bfcore.ValidationThresholds{
			MinDurationMs:        loaded.Validation.MinDurationMs,
			MaxPiecesPerSec:      loaded.Validation.MaxPiecesPerSec,
			MinInputVariance:     loaded.Validation.MinInputVariance,
			MinInputsForVariance: loaded.Validation.MinInputsForVariance,
		}
	}

	g.state = bfcore.NewState(timing)
	g.state.Thresholds = thresholds
	g.shadows = bfcore.NewShadowCache(0)
	g.lastCue = CueNone

	progressive := g.mode == ModeProgressive
	// Start cannot fail here: the sequencer is freshly seeded and the
	// classic tier is always available.
	_ = g.state.Start(g.seed, string(g.mode), progressive, time.Now().UnixMilli())
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	if g.state == nil {
		return core.StepResult{}
	}

	if input.Has(core.ActionRestart) && g.state.Phase == bfcore.PhaseGameOver {
		g.Reset(core.RuntimeConfig{
			Seed:     g.seed + 1,
			ScreenW:  g.screenW,
			ScreenH:  g.screenH,
			TickRate: int(1000 / g.dtMs),
		})
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) {
		g.state.TogglePause()
	}

	before := g.Snapshot()
	g.applyInput(input)
	g.state.Tick(g.dtMs)
	g.lastCue = InferCue(before, g.Snapshot())

	return core.StepResult{State: g.State()}
}

// applyInput translates an input frame into simulation inputs, logging
// each to the replay before applying it.
func (g *Game) applyInput(input core.InputFrame) {
	type binding struct {
		action core.Action
		name   string
		input  bfcore.Input
	}

	bindings := []binding{
		{core.ActionLeft, "left", bfcore.Input{Kind: bfcore.InputMove, Dx: -1}},
		{core.ActionRight, "right", bfcore.Input{Kind: bfcore.InputMove, Dx: 1}},
		{core.ActionSoftDrop, "soft_drop", bfcore.Input{Kind: bfcore.InputMove, Dy: 1}},
		{core.ActionRise, "rise", bfcore.Input{Kind: bfcore.InputMove, Dy: -1}},
		{core.ActionRotateCW, "rotate_cw", bfcore.Input{Kind: bfcore.InputRotate, Dir: 1}},
		{core.ActionRotateCCW, "rotate_ccw", bfcore.Input{Kind: bfcore.InputRotate, Dir: -1}},
		{core.ActionHardDrop, "hard_drop", bfcore.Input{Kind: bfcore.InputHardDrop}},
		{core.ActionHold, "hold", bfcore.Input{Kind: bfcore.InputHold}},
	}

	for _, b := range bindings {
		if input.Has(b.action) {
			g.state.RecordInput(b.name)
			g.state.HandleInput(b.input)
		}
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.state == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.state.Score,
		GameOver: g.state.Phase == bfcore.PhaseGameOver,
		Paused:   g.state.Phase == bfcore.PhasePaused,
	}
}

// Sim exposes the simulation state for the platform layer (replay
// export and score persistence at game over).
func (g *Game) Sim() *bfcore.State {
	return g.state
}

// Seed returns the seed the current session was started with.
func (g *Game) Seed() int64 {
	return g.seed
}

// LastCue returns the audio cue inferred from the most recent step.
func (g *Game) LastCue() Cue {
	return g.lastCue
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	var b strings.Builder
	s := g.state
	b.WriteString(fmt.Sprintf("Phase: %s, Frame: %d, Score: %d\n", s.Phase, s.Frame, s.Score))
	b.WriteString(fmt.Sprintf("Level: %d, Lines: %d, Combo: %d, B2B: %d\n", s.Level, s.Lines, s.Combo, s.BackToBack))
	if s.Current != nil {
		b.WriteString(fmt.Sprintf("Current: %s at (%d, %d) rot %d\n", s.Current.Kind, s.Current.X, s.Current.Y, s.Current.Rotation))
	}
	b.WriteString(fmt.Sprintf("Board: %s\n", s.Board.Fingerprint()))
	return b.String()
}
