package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/psantana5/agentdeco/internal/agent"
	"github.com/psantana5/agentdeco/internal/program"
)

// EnvPrefix prefixes every environment override, e.g. AGENTDECO_NAP=500ms
const EnvPrefix = "AGENTDECO"

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// Config is everything a run can be tuned with. The zero program means
// the five built-in steps.
type Config struct {
	LogLevel  string         `mapstructure:"log_level" json:"log_level" yaml:"log_level"`
	LogFormat string         `mapstructure:"log_format" json:"log_format" yaml:"log_format"`
	Nap       time.Duration  `mapstructure:"nap" json:"nap" yaml:"nap"`
	Defaults  agent.Defaults `mapstructure:"defaults" json:"defaults" yaml:"defaults"`
	Program   []program.Step `mapstructure:"program" json:"program,omitempty" yaml:"program,omitempty"`
}

// MarshalJSON renders Nap as a duration string ("2s") so the output can be
// fed back through --config, matching the YAML form.
func (c Config) MarshalJSON() ([]byte, error) {
	type plain Config
	return json.Marshal(struct {
		plain
		Nap string `json:"nap"`
	}{plain: plain(c), Nap: c.Nap.String()})
}

// SetDefaults registers defaults on v so env overrides resolve nested keys
func SetDefaults(v *viper.Viper) {
	d := agent.DefaultPayments()
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "text")
	v.SetDefault("nap", 2*time.Second)
	v.SetDefault("defaults.agent0", d.Agent0)
	v.SetDefault("defaults.agent1", d.Agent1)
	v.SetDefault("defaults.agent2", d.Agent2)
}

// Load reads config into a fresh Config. An explicit path must exist;
// without one, $HOME/.agentdeco/config.yaml is used when present.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".agentdeco"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the nap and every configured step
func (c *Config) Validate() error {
	if c.Nap < 0 {
		return fmt.Errorf("%w: nap must not be negative (%s)", ErrInvalid, c.Nap)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalid, c.LogFormat)
	}
	for i, s := range c.Program {
		if !program.IsBuiltin(s.Target) {
			return fmt.Errorf("%w: program[%d]: %w %q", ErrInvalid, i, program.ErrUnknownTarget, s.Target)
		}
		if !agent.Known(s.Agent) {
			return fmt.Errorf("%w: program[%d]: %w %q", ErrInvalid, i, agent.ErrUnknownAgent, s.Agent)
		}
	}
	return nil
}

// Steps returns the configured program, or the built-in one when none is set
func (c *Config) Steps() []program.Step {
	if len(c.Program) == 0 {
		return program.Default()
	}
	return c.Program
}
