package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Kinematics.Substeps != 50 {
		t.Errorf("substeps = %d, want 50", cfg.Kinematics.Substeps)
	}
	if cfg.Kinematics.TurnRate != 5 || cfg.Kinematics.MaxWheelAngle != 30 || cfg.Kinematics.MaxSpeed != 80 {
		t.Errorf("unexpected kinematics defaults: %+v", cfg.Kinematics)
	}
	if cfg.Driver.FollowDistance != 20 || cfg.Driver.FollowSpeed != 80 || cfg.Driver.WanderSpeed != 65 {
		t.Errorf("unexpected driver defaults: %+v", cfg.Driver)
	}
	if cfg.Driver.Score != ScoreRedChannel {
		t.Errorf("score = %q, want %q", cfg.Driver.Score, ScoreRedChannel)
	}
	if cfg.Population.Count != 500 || cfg.Population.NamePrefix != "Sedan" {
		t.Errorf("unexpected population defaults: %+v", cfg.Population)
	}
	if cfg.Derived.SpawnExtent != 1000 || cfg.Derived.ScreenW32 != 1000 {
		t.Errorf("derived values not computed: %+v", cfg.Derived)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	overlay := "population:\n  count: 12\ndriver:\n  score: distance\n"
	if err := os.WriteFile(path, []byte(overlay), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load overlay: %v", err)
	}
	if cfg.Population.Count != 12 {
		t.Errorf("count = %d, want 12", cfg.Population.Count)
	}
	// Fields absent from the overlay keep their defaults
	if cfg.Population.NamePrefix != "Sedan" {
		t.Errorf("name prefix = %q, want default", cfg.Population.NamePrefix)
	}
	if cfg.Driver.Score != ScoreDistance {
		t.Errorf("score = %q, want %q", cfg.Driver.Score, ScoreDistance)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		overlay string
		wantErr string
	}{
		{"zero substeps", "kinematics:\n  substeps: 0\n", "substeps"},
		{"bad score", "driver:\n  score: manhattan\n", "driver.score"},
		{"empty accel range", "kinematics:\n  min_acceleration: 5\n  max_acceleration: 5\n", "acceleration"},
		{"negative count", "population:\n  count: -1\n", "population.count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.overlay), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Population.Count = 3

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Population.Count != 3 {
		t.Errorf("count = %d after reload, want 3", reloaded.Population.Count)
	}
}

func TestCfgBeforeInitPanics(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Cfg()
}
