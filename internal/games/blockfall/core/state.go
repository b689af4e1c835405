package core

// Phase is the state machine's current phase. MENU is initial; GAME_OVER
// is terminal until an external restart re-enters via Start.
type Phase int

const (
	PhaseMenu Phase = iota
	PhaseFalling
	PhaseLocking
	PhaseClearing
	PhasePaused
	PhaseGameOver
)

// String returns the phase's display name.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhaseFalling:
		return "falling"
	case PhaseLocking:
		return "locking"
	case PhaseClearing:
		return "clearing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// MoveKind describes the last move applied to the current piece.
// The spin-bonus heuristic only fires when the last move was a rotation.
type MoveKind int

const (
	MoveNone MoveKind = iota
	MoveShift
	MoveSoftDrop
	MoveHardDrop
	MoveRotate
	MoveHitBottom
)

// Timing holds the mode-defined simulation timing parameters, all in
// milliseconds unless noted.
type Timing struct {
	GravityBaseMs    float64 // fall interval at level 1
	GravityStepMs    float64 // interval reduction per level
	GravityFloorMs   float64 // minimum fall interval
	LockDelayMs      float64 // resettable lock delay
	FloatLockBonusMs float64 // extra lock delay for the FLOAT kind
	MaxLockMs        float64 // total-lock ceiling, resets notwithstanding
	ClearMs          float64 // clear animation duration
	SnapshotEvery    uint64  // frames between replay snapshots
}

// DefaultTiming returns the standard mode timing.
func DefaultTiming() Timing {
	return Timing{
		GravityBaseMs:    1000,
		GravityStepMs:    83,
		GravityFloorMs:   100,
		LockDelayMs:      500,
		FloatLockBonusMs: 200,
		MaxLockMs:        2000,
		ClearMs:          300,
		SnapshotEvery:    60,
	}
}

// maxFloatRises caps the FLOAT kind's accumulated upward moves per life.
const maxFloatRises = 3

// linesPerLevel is the cleared-line count per level advance.
const linesPerLevel = 10

// InputKind tags a player input.
type InputKind int

const (
	InputMove InputKind = iota
	InputRotate
	InputHardDrop
	InputHold
)

// Input is one player action: a move delta, a rotation direction, a hard
// drop, or a hold swap.
type Input struct {
	Kind   InputKind
	Dx, Dy int // for InputMove
	Dir    int // for InputRotate: +1 clockwise, -1 counter-clockwise
}

// ClearFX is the particle hand-off data computed when lines clear,
// consumed read-only by the rendering collaborator.
type ClearFX struct {
	Rows []int // cleared row indices, ascending
	X    int   // leftmost affected column
	Y    int   // topmost affected row
	W    int   // affected width
}

// State is the canonical, exclusively-owned game state. It is advanced
// only by Tick and HandleInput; no component retains hidden mutable
// fields between calls.
//
// Invariant: a current piece exists only while falling or locking.
type State struct {
	Phase Phase

	Board   *Board
	Current *Piece
	Next    *Piece
	Held    *Piece
	CanHold bool

	Score      int
	Level      int
	Lines      int
	Combo      int
	BackToBack int
	PieceCount int
	LastMove   MoveKind

	Frame     uint64
	ElapsedMs int64

	// DeathPiece is snapshotted for display when a piece locks above the
	// visible board.
	DeathPiece *Piece

	// FX carries clear-animation hand-off data while Phase is CLEARING.
	FX *ClearFX

	Rng    *Sequencer
	Ledger *Ledger
	Replay *ReplayLog

	Timing     Timing
	Thresholds ValidationThresholds

	// Err records a fatal configuration error (unknown piece kind,
	// uninitialized RNG). The session transitions to GAME_OVER when set.
	Err error

	mode        string
	progressive bool
	prevPhase   Phase // phase to restore when unpausing

	gravityAcc  float64
	lockMs      float64
	totalLockMs float64
	clearMs     float64

	pendingRows []int
	pendingSpin bool
	maxCombo    int
	gen         uint64
}

// NewState creates a state in the MENU phase with the given timing.
func NewState(timing Timing) *State {
	return &State{
		Phase:      PhaseMenu,
		Board:      NewBoard(),
		Timing:     timing,
		Thresholds: DefaultValidationThresholds(),
	}
}

// Start begins a session: empty board, seeded sequencer, two drawn
// pieces, fresh ledger and replay, all counters and timers reset.
// Seed the sequencer explicitly for reproducible replays, or from the
// wall clock for a fresh session.
func (s *State) Start(seed int64, mode string, progressive bool, startUnixMs int64) error {
	s.Board = NewBoard()
	s.Rng = NewSequencer(seed, progressive)
	s.Ledger = NewLedger()
	s.Replay = NewReplayLog(seed, mode, startUnixMs)
	s.mode = mode
	s.progressive = progressive

	s.Score = 0
	s.Level = 1
	s.Lines = 0
	s.Combo = 0
	s.BackToBack = 0
	s.PieceCount = 0
	s.Frame = 0
	s.ElapsedMs = 0
	s.LastMove = MoveNone
	s.CanHold = true
	s.Held = nil
	s.DeathPiece = nil
	s.FX = nil
	s.Err = nil
	s.pendingRows = nil
	s.pendingSpin = false
	s.maxCombo = 0
	s.gen = 0
	s.gravityAcc = 0
	s.lockMs = 0
	s.totalLockMs = 0
	s.clearMs = 0

	current, err := s.drawPiece()
	if err != nil {
		return err
	}
	next, err := s.drawPiece()
	if err != nil {
		return err
	}
	s.Current = current
	s.Next = next
	s.Phase = PhaseFalling
	return nil
}

// drawPiece requests a fresh piece kind from the sequencer at the
// current skill score.
func (s *State) drawPiece() (*Piece, error) {
	if s.Rng == nil {
		return nil, ErrUninitializedRNG
	}
	skill := SkillScore(s.ElapsedMs, s.PieceCount, s.Lines, s.Combo)
	kind, err := s.Rng.NextKind(skill)
	if err != nil {
		return nil, err
	}
	s.gen++
	return NewPiece(kind, s.gen)
}

// gravityInterval returns the fall interval for the current level,
// decreasing with level and clamped to the floor.
func (s *State) gravityInterval() float64 {
	interval := s.Timing.GravityBaseMs - float64(s.Level-1)*s.Timing.GravityStepMs
	if interval < s.Timing.GravityFloorMs {
		interval = s.Timing.GravityFloorMs
	}
	return interval
}

// Tick advances the simulation by one fixed timestep. Outside the
// active phases it is a no-op; no timers advance while paused.
func (s *State) Tick(dtMs float64) {
	switch s.Phase {
	case PhaseFalling, PhaseLocking, PhaseClearing:
	default:
		return
	}

	s.Frame++
	s.ElapsedMs += int64(dtMs)

	if s.Timing.SnapshotEvery > 0 && s.Frame%s.Timing.SnapshotEvery == 0 {
		s.Replay.RecordSnapshot(StateSnapshot{
			Frame:     s.Frame,
			Score:     s.Score,
			Level:     s.Level,
			Lines:     s.Lines,
			BoardHash: s.Board.Fingerprint(),
			ElapsedMs: s.ElapsedMs,
		})
	}

	switch s.Phase {
	case PhaseFalling:
		s.tickFalling(dtMs)
	case PhaseLocking:
		s.tickLocking(dtMs)
	case PhaseClearing:
		s.tickClearing(dtMs)
	}
}

// tickFalling accumulates elapsed time against the gravity interval and
// drops the piece one row when it elapses.
func (s *State) tickFalling(dtMs float64) {
	s.gravityAcc += dtMs
	if s.gravityAcc < s.gravityInterval() {
		return
	}
	s.gravityAcc = 0

	if Fits(s.Board, s.Current, s.Current.X, s.Current.Y+1) {
		s.Current.Y++
		if !Fits(s.Board, s.Current, s.Current.X, s.Current.Y+1) {
			s.LastMove = MoveHitBottom
		}
		return
	}

	s.Phase = PhaseLocking
	s.lockMs = 0
	s.totalLockMs = 0
}

// tickLocking runs the resettable lock delay against the total-lock
// ceiling. The FLOAT kind gets a slightly extended delay but respects
// the same ceiling, so a piece can never stall forever.
func (s *State) tickLocking(dtMs float64) {
	if Fits(s.Board, s.Current, s.Current.X, s.Current.Y+1) {
		// Player shifted the piece off its resting cell.
		s.Phase = PhaseFalling
		s.gravityAcc = 0
		return
	}

	s.totalLockMs += dtMs
	s.lockMs += dtMs

	if s.totalLockMs >= s.Timing.MaxLockMs {
		s.lockPiece()
		return
	}

	delay := s.Timing.LockDelayMs
	if s.Current.Kind == KindFloat {
		delay += s.Timing.FloatLockBonusMs
	}
	if s.lockMs >= delay {
		s.lockPiece()
	}
}

// tickClearing waits out the clear animation, then finalizes the clear.
func (s *State) tickClearing(dtMs float64) {
	s.clearMs += dtMs
	if s.clearMs >= s.Timing.ClearMs {
		s.finalizeClear()
	}
}

// HandleInput applies a player action. Out-of-phase or pieceless inputs
// are silently ignored; player input races are expected and harmless.
func (s *State) HandleInput(in Input) {
	if s.Phase != PhaseFalling && s.Phase != PhaseLocking {
		return
	}
	if s.Current == nil {
		return
	}

	switch in.Kind {
	case InputMove:
		s.handleMove(in.Dx, in.Dy)
	case InputRotate:
		s.handleRotate(in.Dir)
	case InputHardDrop:
		s.handleHardDrop()
	case InputHold:
		s.handleHold()
	}
}

// handleMove shifts the piece. A horizontally-moving FLOAT piece that
// cannot fit at its exact target row but fits one row lower is
// redirected there, modeling gentle downward drift. Upward moves are
// permitted only for FLOAT, up to its rise budget.
func (s *State) handleMove(dx, dy int) {
	p := s.Current

	if dy < 0 {
		if p.Kind != KindFloat || p.Rises >= maxFloatRises {
			return
		}
		if Fits(s.Board, p, p.X+dx, p.Y+dy) {
			p.X += dx
			p.Y += dy
			p.Rises++
			s.afterSuccessfulMove(MoveShift)
		}
		return
	}

	if Fits(s.Board, p, p.X+dx, p.Y+dy) {
		p.X += dx
		p.Y += dy
		if dy > 0 {
			s.Score += s.Ledger.ScoreSoftDrop(s.Frame, dy)
			s.afterSuccessfulMove(MoveSoftDrop)
		} else {
			s.afterSuccessfulMove(MoveShift)
		}
		return
	}

	// FLOAT drift: sideways move blocked at this row, open one below.
	if p.Kind == KindFloat && dx != 0 && dy == 0 && Fits(s.Board, p, p.X+dx, p.Y+1) {
		p.X += dx
		p.Y++
		s.afterSuccessfulMove(MoveShift)
	}
}

// handleRotate delegates to the physics engine's kick logic.
func (s *State) handleRotate(dir int) {
	rotated, ok := TryRotate(s.Board, s.Current, dir)
	if !ok {
		return
	}
	s.Current = rotated
	s.afterSuccessfulMove(MoveRotate)
}

// afterSuccessfulMove updates the move descriptor and grants a lock
// delay reset while locking.
func (s *State) afterSuccessfulMove(kind MoveKind) {
	s.LastMove = kind
	if s.Phase == PhaseLocking {
		s.lockMs = 0
	}
}

// handleHardDrop projects the piece to its shadow row and locks it
// immediately.
func (s *State) handleHardDrop() {
	rest := Shadow(s.Board, s.Current)
	rows := rest - s.Current.Y
	s.Current.Y = rest
	if rows > 0 {
		s.Score += s.Ledger.ScoreHardDrop(s.Frame, rows)
		s.LastMove = MoveHardDrop
	}
	s.lockPiece()
}

// handleHold swaps the current piece with the held piece, or with next
// if nothing is held yet. The swapped-in piece resets to spawn pose.
// Holding is disabled until the next successful lock.
func (s *State) handleHold() {
	if !s.CanHold {
		return
	}

	swappedOut := s.Current
	if s.Held != nil {
		s.Current = s.Held
	} else {
		s.Current = s.Next
		next, err := s.drawPiece()
		if err != nil {
			s.fail(err)
			return
		}
		s.Next = next
	}
	s.Held = swappedOut

	s.Held.ResetToSpawn()
	s.Current.ResetToSpawn()
	s.gen++
	s.Current.Gen = s.gen

	s.CanHold = false
	s.LastMove = MoveNone
	s.Phase = PhaseFalling
	s.gravityAcc = 0
}

// lockPiece places the current piece permanently. A piece whose anchor
// row never descended into the visible board ends the game: its cells
// are snapshotted for display and the session finalizes.
func (s *State) lockPiece() {
	if s.Current.Y < 0 {
		s.DeathPiece = s.Current.Clone()
		s.Board = Place(s.Board, s.Current)
		s.gameOver()
		return
	}

	spin := s.Current.Kind == KindT &&
		s.LastMove == MoveRotate &&
		FilledCorners(s.Board, s.Current) >= 3

	s.Board = Place(s.Board, s.Current)
	s.PieceCount++
	s.CanHold = true

	rows := ClearedLines(s.Board)
	if len(rows) > 0 {
		s.pendingRows = rows
		s.pendingSpin = spin
		s.FX = &ClearFX{
			Rows: rows,
			X:    0,
			Y:    rows[0],
			W:    BoardWidth,
		}
		s.Current = nil
		s.Phase = PhaseClearing
		s.clearMs = 0
		return
	}

	s.Combo = 0
	s.spawnNext()
}

// finalizeClear compacts the board, scores the clear, and spawns the
// next piece.
func (s *State) finalizeClear() {
	lines := len(s.pendingRows)
	s.Combo++
	if s.Combo > s.maxCombo {
		s.maxCombo = s.Combo
	}

	after := RemoveLines(s.Board, s.pendingRows)
	points := s.Ledger.ScoreLineClears(ClearContext{
		Frame:      s.Frame,
		Lines:      lines,
		Level:      s.Level,
		Combo:      s.Combo,
		BackToBack: s.BackToBack,
		Spin:       s.pendingSpin,
		BoardAfter: after,
	})

	s.Board = after
	s.Score += points
	s.Lines += lines
	s.Level = s.Lines/linesPerLevel + 1

	if lines == 4 || s.pendingSpin {
		s.BackToBack++
	} else {
		s.BackToBack = 0
	}

	s.pendingRows = nil
	s.pendingSpin = false
	s.FX = nil
	s.spawnNext()
}

// spawnNext promotes next to current and requests a fresh next piece.
// A spawn cell that cannot legally be occupied ends the game.
func (s *State) spawnNext() {
	s.Current = s.Next
	s.Current.ResetToSpawn()
	s.gen++
	s.Current.Gen = s.gen

	next, err := s.drawPiece()
	if err != nil {
		s.fail(err)
		return
	}
	s.Next = next

	if !CanSpawn(s.Board, s.Current) {
		s.gameOver()
		return
	}

	s.Phase = PhaseFalling
	s.gravityAcc = 0
	s.LastMove = MoveNone
}

// fail records a fatal error and ends the session.
func (s *State) fail(err error) {
	s.Err = err
	s.gameOver()
}

// gameOver finalizes the ledger and replay, clears the piece slots, and
// enters the terminal phase.
func (s *State) gameOver() {
	s.Replay.Seal(s.Ledger.LastHash(), s.Score, s.Frame, s.SessionStats())
	s.Current = nil
	s.Next = nil
	s.Phase = PhaseGameOver
}

// SessionStats computes the aggregate statistics for the session so far.
func (s *State) SessionStats() SessionStats {
	secs := float64(s.ElapsedMs) / 1000
	stats := SessionStats{
		Pieces:   s.PieceCount,
		Lines:    s.Lines,
		MaxCombo: s.maxCombo,
	}
	if secs > 0 {
		stats.PiecesPerSec = float64(s.PieceCount) / secs
		stats.AttackPerMin = float64(s.Lines) / secs * 60
	}
	if s.PieceCount > 0 {
		stats.LinesPerPiece = float64(s.Lines) / float64(s.PieceCount)
	}
	return stats
}

// TogglePause halts or resumes tick processing. Pausing is only
// meaningful during active play.
func (s *State) TogglePause() {
	switch s.Phase {
	case PhaseFalling, PhaseLocking, PhaseClearing:
		s.prevPhase = s.Phase
		s.Phase = PhasePaused
	case PhasePaused:
		s.Phase = s.prevPhase
	}
}

// RecordInput logs a player input to the replay at the current frame.
func (s *State) RecordInput(action string) {
	if s.Replay != nil {
		s.Replay.RecordInput(action, s.Frame, s.ElapsedMs)
	}
}

// Verdict runs the replay-submission heuristics against the finalized
// session. Only meaningful after game over.
func (s *State) Verdict() Verdict {
	return ValidateSession(s.Replay, s.Ledger.Events(), s.ElapsedMs, s.Thresholds)
}

// CanSubmitToTournament reports whether the finalized session passed
// every anti-cheat heuristic.
func (s *State) CanSubmitToTournament() bool {
	return s.Verdict().Eligible()
}

// Mode returns the mode identifier the session was started with.
func (s *State) Mode() string {
	return s.mode
}
