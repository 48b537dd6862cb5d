package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/psantana5/agentdeco/internal/agent"
	"github.com/psantana5/agentdeco/internal/program"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Defaults != agent.DefaultPayments() {
		t.Errorf("Defaults = %+v, want %+v", cfg.Defaults, agent.DefaultPayments())
	}
	if cfg.Nap != 2*time.Second {
		t.Errorf("Nap = %v, want 2s", cfg.Nap)
	}
	if cfg.LogLevel != "warn" || cfg.LogFormat != "text" {
		t.Errorf("Unexpected log settings %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
	if len(cfg.Steps()) != len(program.Default()) {
		t.Errorf("Expected the built-in program, got %d steps", len(cfg.Steps()))
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
nap: 150ms
defaults:
  agent0: 1000000000
program:
  - target: BibleThump
    agent: "0"
    args: [3]
  - target: LUL
    agent: "2"
    payment: 500000
`)

	cfg, err := Load(viper.New(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Nap != 150*time.Millisecond {
		t.Errorf("Nap = %v, want 150ms", cfg.Nap)
	}
	if cfg.Defaults.Agent0 != 1000000000 || cfg.Defaults.Agent1 != 20000 {
		t.Errorf("Defaults = %+v", cfg.Defaults)
	}

	steps := cfg.Steps()
	if len(steps) != 2 {
		t.Fatalf("Expected 2 steps, got %d", len(steps))
	}
	if steps[0].Payment != nil {
		t.Errorf("First step should use the default payment, got %d", *steps[0].Payment)
	}
	if len(steps[0].Args) != 1 || steps[0].Args[0] != 3 {
		t.Errorf("First step args = %v", steps[0].Args)
	}
	if steps[1].Payment == nil || *steps[1].Payment != 500000 {
		t.Errorf("Second step payment = %v", steps[1].Payment)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AGENTDECO_DEFAULTS_AGENT2", "400000")
	t.Setenv("AGENTDECO_NAP", "10ms")

	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Defaults.Agent2 != 400000 {
		t.Errorf("Agent2 default = %d, want 400000", cfg.Defaults.Agent2)
	}
	if cfg.Nap != 10*time.Millisecond {
		t.Errorf("Nap = %v, want 10ms", cfg.Nap)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Expected an error for a missing config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"negative nap", Config{LogFormat: "text", Nap: -time.Second}, ErrInvalid},
		{"bad format", Config{LogFormat: "xml"}, ErrInvalid},
		{"unknown target", Config{LogFormat: "text", Program: []program.Step{{Target: "Kappa", Agent: "0"}}}, program.ErrUnknownTarget},
		{"unknown agent", Config{LogFormat: "json", Program: []program.Step{{Target: "LUL", Agent: "7"}}}, agent.ErrUnknownAgent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}

	ok := Config{LogFormat: "text", Program: program.Default()}
	if err := ok.Validate(); err != nil {
		t.Errorf("Built-in program should validate: %v", err)
	}
}

func TestJSONNapRoundTrips(t *testing.T) {
	cfg := Config{LogLevel: "info", LogFormat: "json", Nap: 1500 * time.Millisecond, Defaults: agent.DefaultPayments()}

	data, err := json.Marshal(&cfg)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if raw["nap"] != "1.5s" {
		t.Errorf("nap = %v, want \"1.5s\"", raw["nap"])
	}

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	back, err := Load(viper.New(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if back.Nap != cfg.Nap || back.Defaults != cfg.Defaults || back.LogFormat != "json" {
		t.Errorf("Round trip = %+v, want %+v", back, cfg)
	}
}
