package blockfall

import (
	bfcore "github.com/vovakirdan/blockfall/internal/games/blockfall/core"
)

// Snapshot captures the observable game state for determinism testing
// and cue inference.
type Snapshot struct {
	Phase      bfcore.Phase
	Frame      uint64
	Score      int
	Level      int
	Lines      int
	Combo      int
	BackToBack int
	Pieces     int
	BoardHash  string
	RngState   uint64
	LedgerHash string

	HasCurrent  bool
	CurrentKind bfcore.Kind
	CurrentX    int
	CurrentY    int
	CurrentRot  int
	CurrentGen  uint64
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := g.state
	if s == nil {
		return Snapshot{}
	}

	snap := Snapshot{
		Phase:      s.Phase,
		Frame:      s.Frame,
		Score:      s.Score,
		Level:      s.Level,
		Lines:      s.Lines,
		Combo:      s.Combo,
		BackToBack: s.BackToBack,
		Pieces:     s.PieceCount,
		BoardHash:  s.Board.Fingerprint(),
	}
	if s.Rng != nil {
		snap.RngState = s.Rng.State()
	}
	if s.Ledger != nil {
		snap.LedgerHash = s.Ledger.LastHash()
	}
	if s.Current != nil {
		snap.HasCurrent = true
		snap.CurrentKind = s.Current.Kind
		snap.CurrentX = s.Current.X
		snap.CurrentY = s.Current.Y
		snap.CurrentRot = s.Current.Rotation
		snap.CurrentGen = s.Current.Gen
	}
	return snap
}
