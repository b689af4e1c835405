package blockfall

import (
	"strings"
	"testing"

	"github.com/vovakirdan/blockfall/internal/core"
	bfcore "github.com/vovakirdan/blockfall/internal/games/blockfall/core"
	"github.com/vovakirdan/blockfall/internal/registry"
)

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestRegistryRegistration(t *testing.T) {
	for _, id := range []string{"blockfall", "blockfall_fixed"} {
		if !registry.Exists(id) {
			t.Errorf("game %q not registered", id)
		}
	}
}

func TestResetStartsFalling(t *testing.T) {
	g := newTestGame(t, 42)

	sim := g.Sim()
	if sim.Phase != bfcore.PhaseFalling {
		t.Errorf("phase = %v, want falling", sim.Phase)
	}
	if sim.Current == nil || sim.Next == nil {
		t.Error("pieces should be drawn at reset")
	}
	if st := g.State(); st.GameOver || st.Paused || st.Score != 0 {
		t.Errorf("unexpected initial state: %+v", st)
	}
}

func TestStepAppliesInput(t *testing.T) {
	g := newTestGame(t, 42)
	x := g.Sim().Current.X

	g.Step(frame(core.ActionLeft))
	if g.Sim().Current.X != x-1 {
		t.Errorf("piece x = %d, want %d", g.Sim().Current.X, x-1)
	}

	g.Step(frame(core.ActionHardDrop))
	if g.Sim().PieceCount != 1 {
		t.Errorf("piece count = %d, want 1", g.Sim().PieceCount)
	}
	if len(g.Sim().Replay.Inputs) != 2 {
		t.Errorf("replay inputs = %d, want 2", len(g.Sim().Replay.Inputs))
	}
}

func TestStepDeterminism(t *testing.T) {
	script := [][]core.Action{
		{core.ActionLeft},
		{},
		{core.ActionRotateCW},
		{core.ActionHardDrop},
		{},
		{core.ActionRight, core.ActionSoftDrop},
		{core.ActionHardDrop},
	}

	run := func() Snapshot {
		g := newTestGame(t, 314159)
		for _, actions := range script {
			g.Step(frame(actions...))
		}
		return g.Snapshot()
	}

	if a, b := run(), run(); a != b {
		t.Errorf("identical scripts diverged:\n%+v\n%+v", a, b)
	}
}

func TestPauseToggle(t *testing.T) {
	g := newTestGame(t, 42)

	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("pause action should pause")
	}
	f := g.Sim().Frame

	g.Step(frame())
	if g.Sim().Frame != f {
		t.Error("frames advanced while paused")
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("second pause action should resume")
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	g := newTestGame(t, 42)
	// Hammer hard drops at the spawn column until the stack tops out.
	for i := 0; i < 400 && !g.State().GameOver; i++ {
		g.Step(frame(core.ActionHardDrop))
	}
	if !g.State().GameOver {
		t.Fatal("stack never topped out")
	}
	if !g.Sim().Replay.Sealed() {
		t.Error("replay should be sealed at game over")
	}

	g.Step(frame(core.ActionRestart))
	if g.State().GameOver {
		t.Error("restart should start a fresh session")
	}
	if g.Sim().Score != 0 || g.Sim().PieceCount != 0 {
		t.Error("restart should reset counters")
	}
}

func TestRenderShowsBoardAndHUD(t *testing.T) {
	g := newTestGame(t, 42)
	g.Step(frame())

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	if !containsAll(out, "Score", "Level", "Lines", "NEXT", "HOLD") {
		t.Errorf("render missing HUD elements:\n%s", out)
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t, 42)
	screen := core.NewScreen(20, 10)
	g.Render(screen)

	if !containsAll(screen.String(), "too small") {
		t.Error("small screens should show the resize hint")
	}
}

func TestCueInference(t *testing.T) {
	lock := Snapshot{Pieces: 1, HasCurrent: true, CurrentGen: 2}
	prev := Snapshot{Pieces: 0, HasCurrent: true, CurrentGen: 1}
	if got := InferCue(prev, lock); got != CueLock {
		t.Errorf("lock cue = %v, want lock", got)
	}

	clear := Snapshot{Lines: 1, Pieces: 1}
	if got := InferCue(Snapshot{Pieces: 1}, clear); got != CueClear {
		t.Errorf("clear cue = %v, want clear", got)
	}

	over := Snapshot{Phase: bfcore.PhaseGameOver}
	if got := InferCue(Snapshot{Phase: bfcore.PhaseFalling}, over); got != CueGameOver {
		t.Errorf("game over cue = %v, want game_over", got)
	}

	move := Snapshot{HasCurrent: true, CurrentGen: 1, CurrentX: 4}
	if got := InferCue(Snapshot{HasCurrent: true, CurrentGen: 1, CurrentX: 3}, move); got != CueMove {
		t.Errorf("move cue = %v, want move", got)
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
