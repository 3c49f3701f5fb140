package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Model != DefaultModel {
		t.Errorf("Model = %q, want %q", cfg.Model, DefaultModel)
	}
	if cfg.Solver != "euler" {
		t.Errorf("Solver = %q, want euler", cfg.Solver)
	}
	if cfg.Start != 0.0 || cfg.End != 100.0 {
		t.Errorf("interval = [%v, %v], want [0, 100]", cfg.Start, cfg.End)
	}
	if cfg.StepSize != 0.001 {
		t.Errorf("StepSize = %v, want 0.001", cfg.StepSize)
	}
	if cfg.Repeat != 0 {
		t.Errorf("Repeat = %d, want 0", cfg.Repeat)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	content := "solver: bdf\nend: 50.0\nrepeat: 5\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Solver != "bdf" {
		t.Errorf("Solver = %q, want bdf", cfg.Solver)
	}
	if cfg.End != 50.0 {
		t.Errorf("End = %v, want 50", cfg.End)
	}
	if cfg.Repeat != 5 {
		t.Errorf("Repeat = %d, want 5", cfg.Repeat)
	}
	// Untouched fields keep their defaults.
	if cfg.Model != DefaultModel {
		t.Errorf("Model = %q, want default %q", cfg.Model, DefaultModel)
	}
	if cfg.StepSize != DefaultStepSize {
		t.Errorf("StepSize = %v, want default %v", cfg.StepSize, DefaultStepSize)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("solver: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")

	want := Default()
	want.Model = "vanderpol"
	want.Solver = "dopri5"
	want.StepSize = 0.5

	if err := Save(path, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if *got != *want {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}
}
