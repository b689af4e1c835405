package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadBlockfallEmbeddedDefault(t *testing.T) {
	cfg, err := LoadBlockfall("")
	if err != nil {
		t.Fatalf("LoadBlockfall() failed: %v", err)
	}

	want := DefaultBlockfallConfig()
	if cfg.Timing != want.Timing {
		t.Errorf("embedded timing = %+v, want %+v", cfg.Timing, want.Timing)
	}
	if cfg.Validation != want.Validation {
		t.Errorf("embedded validation = %+v, want %+v", cfg.Validation, want.Validation)
	}
	if !cfg.Generator.Progressive {
		t.Error("default generator should be progressive")
	}
}

func TestLoadBlockfallCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("timing:\n  gravity_base_ms: 750\n  lock_delay_ms: 400\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := LoadBlockfall(path)
	if err != nil {
		t.Fatalf("LoadBlockfall() failed: %v", err)
	}
	if cfg.Timing.GravityBaseMs != 750 {
		t.Errorf("gravity_base_ms = %v, want 750", cfg.Timing.GravityBaseMs)
	}
	if cfg.Timing.LockDelayMs != 400 {
		t.Errorf("lock_delay_ms = %v, want 400", cfg.Timing.LockDelayMs)
	}
}

func TestLoadBlockfallMissingCustomPath(t *testing.T) {
	if _, err := LoadBlockfall(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing explicit config path should error")
	}
}

func TestLoadBlockfallMalformedCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("timing: ["), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	if _, err := LoadBlockfall(path); err == nil {
		t.Error("malformed explicit config should error")
	}
}
