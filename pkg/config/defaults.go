package config

// File names and environment settings
const (
	// ProjectConfigName is the per-project configuration file, found by
	// walking up from the project root.
	ProjectConfigName = ".guardrail.yml"

	// UserConfigDirName is the directory under the user config root that
	// holds the global configuration file.
	UserConfigDirName = "guardrail"

	// EnvPrefix namespaces environment overrides (GUARDRAIL_STACK, ...).
	EnvPrefix = "GUARDRAIL"
)

// Defaults
const (
	// DefaultRulesFile is where project-defined rules live.
	DefaultRulesFile = ".guardrail/rules.yml"

	// DefaultOutputFormat renders reports for humans; "json" is the
	// automation alternative.
	DefaultOutputFormat = "text"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)
