package core

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// ReplayVersion is bumped whenever the exported format changes shape.
const ReplayVersion = 1

// InputRecord is one logged player input.
type InputRecord struct {
	Frame     uint64 `json:"frame"`
	Action    string `json:"action"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

// StateSnapshot is a periodic checkpoint of observable state, used by
// replay validation to detect spliced or rewound sessions.
type StateSnapshot struct {
	Frame     uint64 `json:"frame"`
	Score     int    `json:"score"`
	Level     int    `json:"level"`
	Lines     int    `json:"lines"`
	BoardHash string `json:"board_hash"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

// SessionStats are the aggregate statistics computed at finalization.
type SessionStats struct {
	Pieces        int     `json:"pieces"`
	Lines         int     `json:"lines"`
	MaxCombo      int     `json:"max_combo"`
	PiecesPerSec  float64 `json:"pieces_per_sec"`
	AttackPerMin  float64 `json:"attack_per_min"` // lines/sec * 60
	LinesPerPiece float64 `json:"lines_per_piece"`
}

// ReplayLog records everything needed to reproduce and audit a session.
// Created at game start, appended each tick and input, sealed at game
// end; immutable thereafter.
type ReplayLog struct {
	Seed        int64           `json:"seed"`
	Mode        string          `json:"mode"`
	StartUnixMs int64           `json:"start_unix_ms"`
	Inputs      []InputRecord   `json:"inputs"`
	Snapshots   []StateSnapshot `json:"snapshots"`
	FinalScore  int             `json:"final_score"`
	Stats       SessionStats    `json:"stats"`
	VerifyHash  string          `json:"verify_hash"`

	sealed bool
}

// NewReplayLog starts a replay for the given seed and mode.
func NewReplayLog(seed int64, mode string, startUnixMs int64) *ReplayLog {
	return &ReplayLog{
		Seed:        seed,
		Mode:        mode,
		StartUnixMs: startUnixMs,
	}
}

// RecordInput appends a player input. Sealed replays ignore the call.
func (r *ReplayLog) RecordInput(action string, frame uint64, elapsedMs int64) {
	if r.sealed {
		return
	}
	r.Inputs = append(r.Inputs, InputRecord{
		Frame:     frame,
		Action:    action,
		ElapsedMs: elapsedMs,
	})
}

// RecordSnapshot appends a state checkpoint. Sealed replays ignore the call.
func (r *ReplayLog) RecordSnapshot(snap StateSnapshot) {
	if r.sealed {
		return
	}
	r.Snapshots = append(r.Snapshots, snap)
}

// Seal fixes the final score and statistics and computes the top-level
// verification hash over the ledger hash, final score, input count,
// frame count, and statistics. After sealing the log is immutable.
func (r *ReplayLog) Seal(ledgerHash string, finalScore int, frames uint64, stats SessionStats) {
	if r.sealed {
		return
	}
	r.FinalScore = finalScore
	r.Stats = stats

	payload := fmt.Sprintf("%s|%d|%d|%d|%.4f|%.4f|%.4f",
		ledgerHash, finalScore, len(r.Inputs), frames,
		stats.PiecesPerSec, stats.AttackPerMin, stats.LinesPerPiece)
	sum := sha256.Sum256([]byte(payload))
	r.VerifyHash = hex.EncodeToString(sum[:])
	r.sealed = true
}

// Sealed reports whether the log has been finalized.
func (r *ReplayLog) Sealed() bool {
	return r.sealed
}

// RLEInput collapses a run of consecutive identical input actions into
// (action, repeat count, starting frame).
type RLEInput struct {
	Action     string `json:"action"`
	Count      int    `json:"count"`
	StartFrame uint64 `json:"start_frame"`
}

// CompressInputs run-length-encodes the input list to reduce export size.
func CompressInputs(inputs []InputRecord) []RLEInput {
	var out []RLEInput
	for _, in := range inputs {
		if n := len(out); n > 0 && out[n-1].Action == in.Action {
			out[n-1].Count++
			continue
		}
		out = append(out, RLEInput{
			Action:     in.Action,
			Count:      1,
			StartFrame: in.Frame,
		})
	}
	return out
}

// ReplayExport is the JSON-serializable form of a sealed replay,
// suitable for file or network transmission.
type ReplayExport struct {
	Version    int             `json:"version"`
	Seed       int64           `json:"seed"`
	Mode       string          `json:"mode"`
	Inputs     []RLEInput      `json:"inputs"`
	Snapshots  []StateSnapshot `json:"snapshots"`
	FinalScore int             `json:"final_score"`
	Stats      SessionStats    `json:"stats"`
	VerifyHash string          `json:"verify_hash"`
}

// Export converts the replay into its compressed wire form.
func (r *ReplayLog) Export() ReplayExport {
	return ReplayExport{
		Version:    ReplayVersion,
		Seed:       r.Seed,
		Mode:       r.Mode,
		Inputs:     CompressInputs(r.Inputs),
		Snapshots:  r.Snapshots,
		FinalScore: r.FinalScore,
		Stats:      r.Stats,
		VerifyHash: r.VerifyHash,
	}
}

// MarshalExport serializes the replay export as indented JSON.
func (r *ReplayLog) MarshalExport() ([]byte, error) {
	data, err := json.MarshalIndent(r.Export(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("replay export: %w", err)
	}
	return data, nil
}

// ParseExport deserializes an exported replay.
func ParseExport(data []byte) (*ReplayExport, error) {
	var exp ReplayExport
	if err := json.Unmarshal(data, &exp); err != nil {
		return nil, fmt.Errorf("replay parse: %w", err)
	}
	if exp.Version != ReplayVersion {
		return nil, fmt.Errorf("replay parse: unsupported version %d", exp.Version)
	}
	return &exp, nil
}
