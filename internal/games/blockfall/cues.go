package blockfall

import (
	bfcore "github.com/vovakirdan/blockfall/internal/games/blockfall/core"
)

// Cue names a terminal-bell-worthy moment inferred by diffing
// consecutive snapshots. The simulation core stays silent; sound is an
// adapter concern.
type Cue int

const (
	CueNone Cue = iota
	CueMove
	CueRotate
	CueLock
	CueClear
	CueLevelUp
	CueGameOver
)

// String returns the cue's display name.
func (c Cue) String() string {
	switch c {
	case CueNone:
		return "none"
	case CueMove:
		return "move"
	case CueRotate:
		return "rotate"
	case CueLock:
		return "lock"
	case CueClear:
		return "clear"
	case CueLevelUp:
		return "level_up"
	case CueGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// InferCue derives the most significant cue from a before/after snapshot
// pair. Bigger moments win over smaller ones when a single step produces
// several.
func InferCue(before, after Snapshot) Cue {
	switch {
	case after.Phase == bfcore.PhaseGameOver && before.Phase != bfcore.PhaseGameOver:
		return CueGameOver
	case after.Level > before.Level:
		return CueLevelUp
	case after.Lines > before.Lines:
		return CueClear
	case after.Phase == bfcore.PhaseClearing && before.Phase != bfcore.PhaseClearing:
		return CueClear
	case after.Pieces > before.Pieces:
		return CueLock
	case after.HasCurrent && before.HasCurrent && after.CurrentGen == before.CurrentGen &&
		after.CurrentRot != before.CurrentRot:
		return CueRotate
	case after.HasCurrent && before.HasCurrent && after.CurrentGen == before.CurrentGen &&
		(after.CurrentX != before.CurrentX || after.CurrentY != before.CurrentY):
		return CueMove
	default:
		return CueNone
	}
}
