package config

import (
	_ "embed"
)

//go:embed defaults/blockfall.yaml
var defaultBlockfallYAML []byte

// DefaultBlockfallConfig returns the default blockfall configuration.
// These values match the embedded YAML and the reference timings.
func DefaultBlockfallConfig() BlockfallConfig {
	return BlockfallConfig{
		Timing: TimingConfig{
			GravityBaseMs:    1000,
			GravityStepMs:    83,
			GravityFloorMs:   100,
			LockDelayMs:      500,
			FloatLockBonusMs: 200,
			MaxLockMs:        2000,
			ClearMs:          300,
			SnapshotEvery:    60,
		},
		Generator: GeneratorConfig{
			Progressive: true,
		},
		Validation: ValidationConfig{
			MinDurationMs:        10_000,
			MaxPiecesPerSec:      5,
			MinInputVariance:     10,
			MinInputsForVariance: 10,
		},
	}
}
