package util

import (
	"fmt"
	"os"
	"path/filepath"
)

// Resolve validates and cleans a project path
// Returns the cleaned absolute path or an error
func Resolve(projectPath string) (string, error) {
	// Clean the path
	projectPath = filepath.Clean(projectPath)

	// Check if path exists
	info, err := os.Stat(projectPath)
	if err != nil {
		return "", fmt.Errorf("cannot access path '%s': %w", projectPath, err)
	}

	// Check if it's a directory
	if !info.IsDir() {
		return "", fmt.Errorf("path '%s' is not a directory", projectPath)
	}

	// Return absolute path
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return projectPath, nil // Return cleaned path if we can't get absolute
	}

	return absPath, nil
}

// FindRoot walks up from start looking for a Laravel project root, marked by
// an artisan script or a composer.json. When no marker exists on the way up,
// it returns the resolved starting directory so callers still have somewhere
// sensible to operate.
func FindRoot(start string) (string, error) {
	dir, err := Resolve(start)
	if err != nil {
		return "", err
	}

	current := dir
	for {
		for _, marker := range []string{"artisan", "composer.json"} {
			if _, err := os.Stat(filepath.Join(current, marker)); err == nil {
				return current, nil
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			return dir, nil
		}
		current = parent
	}
}
