package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Smith-Tools/smith-validation/pkg/model"
	"github.com/Smith-Tools/smith-validation/pkg/rules"
)

const FileName = ".smith-validation.yaml"

// RuleConfig adjusts one rule: enablement, severity, and numeric thresholds.
type RuleConfig struct {
	Enabled    *bool          `yaml:"enabled,omitempty"`
	Severity   string         `yaml:"severity,omitempty"`
	Thresholds map[string]int `yaml:"thresholds,omitempty"`
}

type IgnoreRule struct {
	Rule   string `yaml:"rule,omitempty"`
	Path   string `yaml:"path,omitempty"`
	Reason string `yaml:"reason,omitempty"`
}

type CacheConfig struct {
	TTLSeconds int `yaml:"ttl_seconds"`
	Capacity   int `yaml:"capacity"`
}

type Config struct {
	Include       []string `yaml:"include,omitempty"`
	Exclude       []string `yaml:"exclude,omitempty"`
	MinSeverity   string   `yaml:"min_severity"`
	FailOn        string   `yaml:"fail_on,omitempty"`
	MaxViolations int      `yaml:"max_violations,omitempty"`
	Level         string   `yaml:"level"`
	Baseline      string   `yaml:"baseline,omitempty"`

	Cache  CacheConfig           `yaml:"cache"`
	Health map[string]int        `yaml:"health,omitempty"`
	Ignore []IgnoreRule          `yaml:"ignore,omitempty"`
	Rules  map[string]RuleConfig `yaml:"rules,omitempty"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

func Default() Config {
	var c Config
	c.Include = []string{"**/*.go"}
	c.Exclude = []string{"vendor/**", "testdata/**"}
	c.MinSeverity = string(model.SeverityInfo)
	c.Level = "standard"
	c.Cache = CacheConfig{TTLSeconds: 300, Capacity: 100}
	c.Logging.Level = "info"
	return c
}

// Load searches upward from startDir for a .smith-validation.yaml, returning
// the defaults when none is found. The second return is the path actually
// loaded, empty when defaults were used.
func Load(startDir string) (Config, string, error) {
	cfg := Default()
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return cfg, "", err
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			b, err := os.ReadFile(candidate)
			if err != nil {
				return cfg, candidate, err
			}
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, candidate, fmt.Errorf("parse %s: %w", candidate, err)
			}
			return cfg, candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return cfg, "", nil
}

// Write serializes cfg to dir/.smith-validation.yaml.
func Write(cfg Config, dir string) error {
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, FileName), b, 0o644)
}

// Overrides converts per-rule configuration into registry overrides, the only
// channel by which configuration reaches rule construction.
func (c Config) Overrides() map[string]rules.Override {
	out := make(map[string]rules.Override, len(c.Rules))
	for id, rc := range c.Rules {
		ov := rules.Override{Enabled: rc.Enabled, Thresholds: rc.Thresholds}
		if rc.Severity != "" {
			ov.Severity = model.ParseSeverity(rc.Severity)
		}
		out[id] = ov
	}
	return out
}

// Deductions returns the health deduction table, falling back to defaults.
func (c Config) Deductions() map[model.Severity]int {
	if len(c.Health) == 0 {
		return model.DefaultDeductions
	}
	out := make(map[model.Severity]int, len(c.Health))
	for sev, d := range c.Health {
		out[model.ParseSeverity(sev)] = d
	}
	return out
}
