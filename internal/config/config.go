// Package config provides YAML-based configuration loading for the
// blockfall platform.
package config

// BlockfallConfig contains all tunable parameters for a blockfall
// session. The defaults reproduce the reference timings; tournament
// play requires the defaults, so loaded overrides are for practice.
type BlockfallConfig struct {
	Timing     TimingConfig     `yaml:"timing"`
	Generator  GeneratorConfig  `yaml:"generator"`
	Validation ValidationConfig `yaml:"validation"`
}

// TimingConfig defines the simulation timing parameters in milliseconds.
type TimingConfig struct {
	GravityBaseMs    float64 `yaml:"gravity_base_ms"`
	GravityStepMs    float64 `yaml:"gravity_step_ms"`
	GravityFloorMs   float64 `yaml:"gravity_floor_ms"`
	LockDelayMs      float64 `yaml:"lock_delay_ms"`
	FloatLockBonusMs float64 `yaml:"float_lock_bonus_ms"`
	MaxLockMs        float64 `yaml:"max_lock_ms"`
	ClearMs          float64 `yaml:"clear_ms"`
	SnapshotEvery    uint64  `yaml:"snapshot_every_frames"`
}

// GeneratorConfig defines piece generator behavior.
type GeneratorConfig struct {
	Progressive bool `yaml:"progressive"`
}

// ValidationConfig defines the replay-submission heuristics.
type ValidationConfig struct {
	MinDurationMs        int64   `yaml:"min_duration_ms"`
	MaxPiecesPerSec      float64 `yaml:"max_pieces_per_sec"`
	MinInputVariance     float64 `yaml:"min_input_variance"`
	MinInputsForVariance int     `yaml:"min_inputs_for_variance"`
}
