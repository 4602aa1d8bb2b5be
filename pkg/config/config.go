// Package config loads guardrail's layered configuration: built-in defaults,
// the user config file, the project .guardrail.yml found by walking up from
// the project root, and GUARDRAIL_* environment variables, in rising
// precedence. Command-line flags outrank all of it at the command layer.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the merged configuration for one invocation.
type Config struct {
	// Stack forces the detected stack label; empty means auto-detect.
	Stack string `mapstructure:"stack"`
	// RequireTests toggles the missing-test check. Nil means the default
	// (enabled); a pointer so an explicit false survives merging.
	RequireTests *bool `mapstructure:"require_tests"`
	// Exempt adds project globs to the test-exemption list.
	Exempt []string `mapstructure:"exempt"`
	// DisabledRules removes rules by ID from every evaluation.
	DisabledRules []string `mapstructure:"disabled_rules"`
	// RulesFile points at the project-defined rule definitions.
	RulesFile string `mapstructure:"rules_file"`

	Output OutputConfig `mapstructure:"output"`
}

// OutputConfig holds rendering settings.
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// TestsRequired resolves the RequireTests default.
func (c *Config) TestsRequired() bool {
	return c.RequireTests == nil || *c.RequireTests
}

// Load merges all configuration layers for a project rooted at root. Missing
// config files are fine; a file that exists but does not parse is an error
// for the command layer to report.
func Load(root string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if userDir, err := os.UserConfigDir(); err == nil {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(userDir, UserConfigDirName))
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, fmt.Errorf("reading user config: %w", err)
			}
		}
	}

	if projectConfig := findProjectConfig(root); projectConfig != "" {
		pv := viper.New()
		pv.SetConfigFile(projectConfig)
		pv.SetConfigType("yaml")
		if err := pv.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", projectConfig, err)
		}
		if err := v.MergeConfigMap(pv.AllSettings()); err != nil {
			return nil, fmt.Errorf("merging %s: %w", projectConfig, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// require_tests has no default, so AutomaticEnv alone never sees it.
	v.BindEnv("require_tests")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	switch cfg.Output.Format {
	case FormatText, FormatJSON:
	default:
		return nil, fmt.Errorf("unknown output format %q", cfg.Output.Format)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("stack", "")
	v.SetDefault("exempt", []string{})
	v.SetDefault("disabled_rules", []string{})
	v.SetDefault("rules_file", DefaultRulesFile)
	v.SetDefault("output.format", DefaultOutputFormat)
}

// findProjectConfig walks up from root looking for .guardrail.yml, so checks
// run from a subdirectory still see the project's settings.
func findProjectConfig(root string) string {
	dir, err := filepath.Abs(root)
	if err != nil {
		return ""
	}

	for {
		candidate := filepath.Join(dir, ProjectConfigName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
