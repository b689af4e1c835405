package core

import "testing"

func startedState(t *testing.T, seed int64, progressive bool) *State {
	t.Helper()
	s := NewState(DefaultTiming())
	if err := s.Start(seed, "blockfall", progressive, 0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return s
}

func TestStartResetsEverything(t *testing.T) {
	s := startedState(t, 42, true)

	if s.Phase != PhaseFalling {
		t.Errorf("phase = %v, want falling", s.Phase)
	}
	if s.Current == nil || s.Next == nil {
		t.Fatal("current and next pieces should be drawn")
	}
	if s.Held != nil || !s.CanHold {
		t.Error("hold slot should start empty and enabled")
	}
	if s.Level != 1 || s.Score != 0 || s.Lines != 0 {
		t.Errorf("counters not reset: level=%d score=%d lines=%d", s.Level, s.Score, s.Lines)
	}
	if !s.Board.IsEmpty() {
		t.Error("board should start empty")
	}
}

func TestGravityDropsPieceOneRow(t *testing.T) {
	s := startedState(t, 42, false)
	startY := s.Current.Y

	// One tick past the level-1 gravity interval.
	s.Tick(1001)
	if s.Current.Y != startY+1 {
		t.Errorf("piece y = %d, want %d", s.Current.Y, startY+1)
	}

	// Sub-interval ticks accumulate without dropping.
	y := s.Current.Y
	s.Tick(400)
	if s.Current.Y != y {
		t.Error("piece dropped before the interval elapsed")
	}
	s.Tick(700)
	if s.Current.Y != y+1 {
		t.Error("accumulated ticks should trigger the drop")
	}
}

func TestSoftDropScoresPerRow(t *testing.T) {
	s := startedState(t, 42, false)
	s.Current = MustPiece(KindO, 99)
	s.Current.Y = 5

	s.HandleInput(Input{Kind: InputMove, Dy: 1})
	if s.Current.Y != 6 {
		t.Errorf("piece y = %d, want 6", s.Current.Y)
	}
	if s.Score != 1 {
		t.Errorf("score = %d, want 1", s.Score)
	}
}

func TestHardDropLocksAndSpawns(t *testing.T) {
	s := startedState(t, 42, false)
	s.Current = MustPiece(KindO, 99)
	rows := Shadow(s.Board, s.Current) - s.Current.Y

	s.HandleInput(Input{Kind: InputHardDrop})
	if s.Score != 2*rows {
		t.Errorf("score = %d, want %d", s.Score, 2*rows)
	}
	if s.PieceCount != 1 {
		t.Errorf("piece count = %d, want 1", s.PieceCount)
	}
	if s.Board.FilledCount() != 4 {
		t.Errorf("board cells = %d, want 4", s.Board.FilledCount())
	}
	if s.Phase != PhaseFalling || s.Current == nil {
		t.Error("next piece should spawn into the falling phase")
	}
}

func TestHorizontalMoveRespectsWalls(t *testing.T) {
	s := startedState(t, 42, false)
	s.Current = MustPiece(KindO, 99)
	s.Current.X = 0
	s.Current.Y = 5

	s.HandleInput(Input{Kind: InputMove, Dx: -1})
	if s.Current.X != 0 {
		t.Error("piece moved through the left wall")
	}
	s.HandleInput(Input{Kind: InputMove, Dx: 1})
	if s.Current.X != 1 {
		t.Errorf("piece x = %d, want 1", s.Current.X)
	}
}

func TestHoldSwapsOncePerLock(t *testing.T) {
	s := startedState(t, 42, false)
	firstKind := s.Current.Kind
	nextKind := s.Next.Kind

	s.HandleInput(Input{Kind: InputHold})
	if s.Held == nil || s.Held.Kind != firstKind {
		t.Fatal("first piece should move to the hold slot")
	}
	if s.Current.Kind != nextKind {
		t.Error("next piece should become current on first hold")
	}
	if s.CanHold {
		t.Error("hold should be disabled until the next lock")
	}

	// Second hold before locking is ignored.
	cur := s.Current.Kind
	s.HandleInput(Input{Kind: InputHold})
	if s.Current.Kind != cur {
		t.Error("second hold before a lock should be ignored")
	}

	// A lock re-enables holding.
	s.HandleInput(Input{Kind: InputHardDrop})
	if !s.CanHold {
		t.Error("lock should re-enable holding")
	}
}

func TestLineClearScoresAndCompacts(t *testing.T) {
	s := startedState(t, 42, false)

	// Bottom row complete except the two columns the O piece will fill.
	for x := 0; x < BoardWidth; x++ {
		if x == 4 || x == 5 {
			continue
		}
		s.Board.set(x, BoardHeight-1, Cell(1))
	}
	s.Current = MustPiece(KindO, 99)
	s.Current.X = 4

	s.HandleInput(Input{Kind: InputHardDrop})
	if s.Phase != PhaseClearing {
		t.Fatalf("phase = %v, want clearing", s.Phase)
	}
	if s.FX == nil || len(s.FX.Rows) != 1 {
		t.Fatal("clear effects should carry the cleared row")
	}

	// Wait out the clear animation.
	for i := 0; i < 30 && s.Phase == PhaseClearing; i++ {
		s.Tick(16)
	}
	if s.Phase != PhaseFalling {
		t.Fatalf("phase after clear = %v, want falling", s.Phase)
	}
	if s.Lines != 1 {
		t.Errorf("lines = %d, want 1", s.Lines)
	}
	// Only the O's top half survives the compaction.
	if s.Board.FilledCount() != 2 {
		t.Errorf("board cells after clear = %d, want 2", s.Board.FilledCount())
	}
	if s.Score < 100 {
		t.Errorf("score = %d, want at least the single-clear base", s.Score)
	}
	if s.Combo != 1 {
		t.Errorf("combo = %d, want 1", s.Combo)
	}
}

func TestLockAboveBoardEndsGame(t *testing.T) {
	s := startedState(t, 42, false)
	for x := 0; x < BoardWidth; x++ {
		s.Board.set(x, 0, Cell(1))
	}
	s.Current = MustPiece(KindO, 99)

	s.Tick(1001) // gravity: blocked, enter locking
	s.Tick(1001) // lock delay expires above the board

	if s.Phase != PhaseGameOver {
		t.Fatalf("phase = %v, want game over", s.Phase)
	}
	if s.DeathPiece == nil {
		t.Error("death piece should be snapshotted for display")
	}
	if s.Current != nil || s.Next != nil {
		t.Error("piece slots should be cleared at game over")
	}
	if !s.Replay.Sealed() {
		t.Error("replay should be sealed at game over")
	}
}

func TestFloatRiseBudget(t *testing.T) {
	s := startedState(t, 42, false)
	s.Current = MustPiece(KindFloat, 99)
	s.Current.X = 4
	s.Current.Y = 10

	for i := 0; i < maxFloatRises; i++ {
		y := s.Current.Y
		s.HandleInput(Input{Kind: InputMove, Dy: -1})
		if s.Current.Y != y-1 {
			t.Fatalf("rise %d rejected", i+1)
		}
	}

	y := s.Current.Y
	s.HandleInput(Input{Kind: InputMove, Dy: -1})
	if s.Current.Y != y {
		t.Error("rise past the budget should be rejected")
	}
}

func TestFloatDriftsDownPastObstacle(t *testing.T) {
	s := startedState(t, 42, false)
	s.Current = MustPiece(KindFloat, 99)
	s.Current.X = 4
	s.Current.Y = 10
	s.Board.set(5, 10, Cell(1)) // blocks the direct rightward move

	s.HandleInput(Input{Kind: InputMove, Dx: 1})
	if s.Current.X != 5 || s.Current.Y != 11 {
		t.Errorf("float at (%d,%d), want drift to (5,11)", s.Current.X, s.Current.Y)
	}
}

func TestNonFloatCannotRise(t *testing.T) {
	s := startedState(t, 42, false)
	s.Current = MustPiece(KindT, 99)
	s.Current.Y = 10

	s.HandleInput(Input{Kind: InputMove, Dy: -1})
	if s.Current.Y != 10 {
		t.Error("non-float piece rose")
	}
}

func TestPauseHaltsSimulation(t *testing.T) {
	s := startedState(t, 42, false)
	s.Tick(16)
	frame := s.Frame

	s.TogglePause()
	if s.Phase != PhasePaused {
		t.Fatalf("phase = %v, want paused", s.Phase)
	}
	s.Tick(16)
	s.Tick(16)
	if s.Frame != frame {
		t.Error("ticks advanced while paused")
	}

	s.TogglePause()
	if s.Phase != PhaseFalling {
		t.Errorf("phase after unpause = %v, want falling", s.Phase)
	}
	s.Tick(16)
	if s.Frame != frame+1 {
		t.Error("ticks should resume after unpause")
	}
}

func TestDeterministicReplay(t *testing.T) {
	script := []Input{
		{Kind: InputMove, Dx: -1},
		{Kind: InputMove, Dx: -1},
		{Kind: InputHardDrop},
		{Kind: InputMove, Dx: 2},
		{Kind: InputRotate, Dir: 1},
		{Kind: InputHardDrop},
		{Kind: InputMove, Dy: 1},
		{Kind: InputHardDrop},
	}

	run := func() *State {
		s := startedState(t, 987654, true)
		for _, in := range script {
			s.Tick(16)
			s.HandleInput(in)
			s.Tick(16)
		}
		return s
	}

	a, b := run(), run()
	if a.Score != b.Score {
		t.Errorf("scores diverged: %d vs %d", a.Score, b.Score)
	}
	if a.Board.Fingerprint() != b.Board.Fingerprint() {
		t.Error("board fingerprints diverged")
	}
	if a.Rng.State() != b.Rng.State() {
		t.Error("sequencer states diverged")
	}
	if a.Frame != b.Frame {
		t.Errorf("frames diverged: %d vs %d", a.Frame, b.Frame)
	}
}

func TestSnapshotCadence(t *testing.T) {
	s := startedState(t, 42, false)
	for i := 0; i < 130; i++ {
		s.Tick(16)
	}
	if len(s.Replay.Snapshots) != 2 {
		t.Errorf("snapshots after 130 frames = %d, want 2", len(s.Replay.Snapshots))
	}
}

func TestLevelAdvancesEveryTenLines(t *testing.T) {
	s := startedState(t, 42, false)
	s.Lines = 9
	s.pendingRows = []int{BoardHeight - 1}
	for x := 0; x < BoardWidth; x++ {
		s.Board.set(x, BoardHeight-1, Cell(1))
	}
	s.Next = MustPiece(KindO, 98)
	s.Phase = PhaseClearing
	s.finalizeClear()

	if s.Lines != 10 {
		t.Fatalf("lines = %d, want 10", s.Lines)
	}
	if s.Level != 2 {
		t.Errorf("level = %d, want 2", s.Level)
	}
}
