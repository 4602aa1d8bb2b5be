// Package changes extracts the files touched by a unified diff, so checks in
// CI can scope themselves to what a commit actually changed.
package changes

import (
	"fmt"
	"io"
	"strings"

	"github.com/sourcegraph/go-diff/diff"
)

// FromDiff parses a unified diff (git diff output) and returns the new-side
// file paths in diff order, without the b/ prefix git adds. Deleted files are
// skipped; there is nothing left to check.
func FromDiff(r io.Reader) ([]string, error) {
	fileDiffs, err := diff.NewMultiFileDiffReader(r).ReadAllFiles()
	if err != nil {
		return nil, fmt.Errorf("parsing diff: %w", err)
	}

	seen := make(map[string]bool, len(fileDiffs))
	var paths []string
	for _, fd := range fileDiffs {
		name := fd.NewName
		if name == "" || name == "/dev/null" {
			continue
		}
		name = strings.TrimPrefix(name, "b/")
		if seen[name] {
			continue
		}
		seen[name] = true
		paths = append(paths, name)
	}
	return paths, nil
}
