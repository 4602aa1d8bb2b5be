// Package envfile reads Laravel .env files for environment diagnosis. It is
// deliberately not part of classification: a broken .env must not change how
// a project is detected, only what doctor reports.
package envfile

import (
	"fmt"
	"sort"

	"gopkg.in/ini.v1"
)

// File is a parsed .env file.
type File struct {
	section *ini.Section
}

// Load reads and parses the .env file at path. Unlike manifest gathering this
// returns errors: doctor wants to tell the user the file is missing or broken.
func Load(path string) (*File, error) {
	cfg, err := ini.LoadSources(loadOptions(), path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return &File{section: cfg.Section("")}, nil
}

// Parse reads .env content from memory.
func Parse(data []byte) (*File, error) {
	cfg, err := ini.LoadSources(loadOptions(), data)
	if err != nil {
		return nil, fmt.Errorf("parsing env content: %w", err)
	}
	return &File{section: cfg.Section("")}, nil
}

func loadOptions() ini.LoadOptions {
	return ini.LoadOptions{
		// APP_KEY values carry base64: payloads; a # inside them is data.
		IgnoreInlineComment: true,
	}
}

// Has reports whether the key is declared, even with an empty value.
func (f *File) Has(key string) bool {
	return f.section.HasKey(key)
}

// Get returns the key's value, unquoted, or "" when absent.
func (f *File) Get(key string) string {
	if !f.section.HasKey(key) {
		return ""
	}
	return f.section.Key(key).String()
}

// Keys returns the declared keys, sorted.
func (f *File) Keys() []string {
	keys := f.section.KeyStrings()
	sort.Strings(keys)
	return keys
}
