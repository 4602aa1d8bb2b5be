package rules

import (
	"bytes"
	"fmt"
	"io/fs"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Definition is one project-defined forbidden-pattern rule, loaded from the
// rules file named in the configuration.
type Definition struct {
	ID       string   `yaml:"id"`
	Severity string   `yaml:"severity"`
	Summary  string   `yaml:"summary"`
	Doc      string   `yaml:"doc"`
	Message  string   `yaml:"message"`
	Suffixes []string `yaml:"suffixes"`
	Patterns []string `yaml:"patterns"`
	Regex    string   `yaml:"regex"`
}

type definitionFile struct {
	Rules []Definition `yaml:"rules"`
}

// ParseDefinitions decodes and validates a rule definition document.
func ParseDefinitions(data []byte) ([]Definition, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("rule definitions are empty")
	}

	var file definitionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing rule definitions: %w", err)
	}

	seen := map[string]bool{}
	for i := range file.Rules {
		def := &file.Rules[i]
		if err := def.validate(); err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i, def.ID, err)
		}
		if seen[def.ID] {
			return nil, fmt.Errorf("duplicate rule id %q", def.ID)
		}
		seen[def.ID] = true
		def.normalize()
	}

	return file.Rules, nil
}

func (d *Definition) validate() error {
	if d.ID == "" {
		return fmt.Errorf("missing id")
	}
	if d.Severity != "" {
		if _, err := ParseSeverity(d.Severity); err != nil {
			return err
		}
	}
	if len(d.Patterns) == 0 && d.Regex == "" {
		return fmt.Errorf("needs patterns or a regex")
	}
	if d.Regex != "" {
		if _, err := regexp.Compile(d.Regex); err != nil {
			return fmt.Errorf("invalid regex: %w", err)
		}
	}
	return nil
}

func (d *Definition) normalize() {
	if d.Severity == "" {
		d.Severity = Warn.String()
	}
	if d.Message == "" {
		d.Message = d.Summary
	}
	if d.Message == "" {
		d.Message = "forbidden pattern matched"
	}
}

// Compile turns validated definitions into ordinary rules, evaluated by the
// same engine as the built-in sets.
func Compile(defs []Definition) []Rule {
	out := make([]Rule, 0, len(defs))
	for _, def := range defs {
		sev, _ := ParseSeverity(def.Severity)

		applies := func(string) bool { return true }
		if len(def.Suffixes) > 0 {
			applies = matchSuffixes(def.Suffixes...)
		}

		if def.Regex != "" {
			out = append(out, regexRule(def.ID, sev, def.Summary, def.Doc, def.Message, applies, regexp.MustCompile(def.Regex)))
			continue
		}
		out = append(out, substringRule(def.ID, sev, def.Summary, def.Doc, def.Message, applies, def.Patterns...))
	}
	return out
}

// LoadCustom reads, validates, and compiles the project rules file. A missing
// file is not an error; a malformed one is, and the caller reports it.
func LoadCustom(fsys fs.FS, path string) ([]Rule, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, nil
	}
	defs, err := ParseDefinitions(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return Compile(defs), nil
}
