package core

// Replay-submission validation. Failures here are verdicts, not errors:
// a session always completes normally and is merely flagged ineligible
// for competitive submission.

// ValidationThresholds are the anti-cheat heuristics applied to a sealed
// session.
type ValidationThresholds struct {
	// MinDurationMs rejects trivially short sessions.
	MinDurationMs int64
	// MaxPiecesPerSec rejects superhuman or tool-driven input rates.
	MaxPiecesPerSec float64
	// MinInputVariance rejects perfectly metronomic, tool-generated input
	// timing. Applied only when at least MinInputsForVariance inputs exist.
	MinInputVariance float64
	// MinInputsForVariance is the input count below which the variance
	// check is skipped.
	MinInputsForVariance int
}

// DefaultValidationThresholds returns the tournament gate values.
func DefaultValidationThresholds() ValidationThresholds {
	return ValidationThresholds{
		MinDurationMs:        10_000,
		MaxPiecesPerSec:      5,
		MinInputVariance:     10,
		MinInputsForVariance: 10,
	}
}

// Verdict is the composite result of replay validation.
type Verdict struct {
	DurationOK  bool
	PieceRateOK bool
	VarianceOK  bool
	LedgerOK    bool
	SnapshotsOK bool
}

// Eligible reports whether every heuristic passed.
func (v Verdict) Eligible() bool {
	return v.DurationOK && v.PieceRateOK && v.VarianceOK && v.LedgerOK && v.SnapshotsOK
}

// ValidateSession applies every heuristic to a sealed session and
// returns the per-check verdict.
func ValidateSession(replay *ReplayLog, events []ScoreEvent, elapsedMs int64, thresholds ValidationThresholds) Verdict {
	return Verdict{
		DurationOK:  elapsedMs > thresholds.MinDurationMs,
		PieceRateOK: replay.Stats.PiecesPerSec < thresholds.MaxPiecesPerSec,
		VarianceOK:  inputVarianceOK(replay.Inputs, thresholds),
		LedgerOK:    ValidateScoreLedger(events),
		SnapshotsOK: snapshotsMonotonic(replay.Snapshots),
	}
}

// ExportVerdict is the subset of checks reproducible from an exported
// replay. Exports carry run-length-compressed inputs and no ledger
// events, so the variance and ledger checks cannot be re-run offline.
type ExportVerdict struct {
	DurationOK  bool
	PieceRateOK bool
	SnapshotsOK bool
	ScoreOK     bool
}

// Eligible reports whether every offline check passed.
func (v ExportVerdict) Eligible() bool {
	return v.DurationOK && v.PieceRateOK && v.SnapshotsOK && v.ScoreOK
}

// ValidateExport re-runs the offline checks on an exported replay.
// Duration is taken from the last snapshot's elapsed time.
func ValidateExport(exp *ReplayExport, thresholds ValidationThresholds) ExportVerdict {
	var elapsedMs int64
	lastScore := 0
	if n := len(exp.Snapshots); n > 0 {
		elapsedMs = exp.Snapshots[n-1].ElapsedMs
		lastScore = exp.Snapshots[n-1].Score
	}

	return ExportVerdict{
		DurationOK:  elapsedMs > thresholds.MinDurationMs,
		PieceRateOK: exp.Stats.PiecesPerSec < thresholds.MaxPiecesPerSec,
		SnapshotsOK: snapshotsMonotonic(exp.Snapshots),
		ScoreOK:     lastScore <= exp.FinalScore,
	}
}

// inputVarianceOK computes the variance of inter-input timing deltas.
// Too-regular input is the signature of a replaying tool; human play is
// noisy. Sessions with few inputs are given the benefit of the doubt.
func inputVarianceOK(inputs []InputRecord, thresholds ValidationThresholds) bool {
	if len(inputs) < thresholds.MinInputsForVariance {
		return true
	}

	deltas := make([]float64, 0, len(inputs)-1)
	for i := 1; i < len(inputs); i++ {
		deltas = append(deltas, float64(inputs[i].ElapsedMs-inputs[i-1].ElapsedMs))
	}

	mean := 0.0
	for _, d := range deltas {
		mean += d
	}
	mean /= float64(len(deltas))

	variance := 0.0
	for _, d := range deltas {
		diff := d - mean
		variance += diff * diff
	}
	variance /= float64(len(deltas))

	return variance > thresholds.MinInputVariance
}

// snapshotsMonotonic verifies that each snapshot's frame strictly
// exceeds, and its score never falls below, the prior one.
func snapshotsMonotonic(snaps []StateSnapshot) bool {
	for i := 1; i < len(snaps); i++ {
		if snaps[i].Frame <= snaps[i-1].Frame {
			return false
		}
		if snaps[i].Score < snaps[i-1].Score {
			return false
		}
	}
	return true
}
