package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/traffic/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}
	// Nil manager ignores writes
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Errorf("WriteTelemetry on nil manager: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close on nil manager: %v", err)
	}
}

func TestOutputManagerWritesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	info := NewRunInfo(42, 500, true)

	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if err := om.WriteRunInfo(info); err != nil {
		t.Fatalf("WriteRunInfo: %v", err)
	}
	for i := 1; i <= 3; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEndTick: i * 10, Cars: 500}); err != nil {
			t.Fatalf("WriteTelemetry: %v", err)
		}
		if err := om.WritePerf(PerfStats{}, i*10); err != nil {
			t.Fatalf("WritePerf: %v", err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	for name, header := range map[string]string{
		"telemetry.csv": "window_end,sim_time,cars,",
		"perf.csv":      "window_end,avg_tick_us,",
	} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 4 {
			t.Errorf("%s has %d lines, want header + 3 rows", name, len(lines))
		}
		if !strings.HasPrefix(lines[0], header) {
			t.Errorf("%s header = %q, want prefix %q", name, lines[0], header)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "run.yaml"))
	if err != nil {
		t.Fatalf("reading run.yaml: %v", err)
	}
	var got RunInfo
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("parsing run.yaml: %v", err)
	}
	if got.ID != info.ID || got.Seed != 42 || got.Cars != 500 {
		t.Errorf("run.yaml = %+v, want %+v", got, info)
	}

	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("written config does not load: %v", err)
	}
}
