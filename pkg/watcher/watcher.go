// Package watcher follows a project tree and delivers debounced batches of
// changed files. Each batch is meant to start a fresh check invocation;
// nothing from a previous batch is carried over.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce groups editor save bursts into one batch.
const DefaultDebounce = 300 * time.Millisecond

// Directories that churn constantly and never carry project source.
var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	".git":         true,
	"storage":      true,
	".idea":        true,
	".vscode":      true,
}

// skipSubtrees are deeper paths excluded relative to the root.
var skipSubtrees = []string{
	"public/build",
	"bootstrap/cache",
}

// Batch is one debounced group of filesystem changes.
type Batch struct {
	// Paths are root-relative changed files, sorted.
	Paths []string
	// ManifestChanged is set when composer.json, package.json, or the
	// artisan marker moved, so the caller re-detects the stack.
	ManifestChanged bool
}

// Watcher follows one project root.
type Watcher struct {
	root     string
	fsw      *fsnotify.Watcher
	logger   *zap.Logger
	debounce time.Duration
}

// New builds a recursive watcher rooted at root.
func New(root string, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		root:     root,
		fsw:      fsw,
		logger:   logger,
		debounce: DefaultDebounce,
	}

	if err := w.watchTree(root); err != nil {
		fsw.Close()
		return nil, err
	}

	return w, nil
}

// Close stops the underlying watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run delivers batches to onBatch until the context ends. Watch errors are
// logged and swallowed; a watcher hiccup must not kill the session.
func (w *Watcher) Run(ctx context.Context, onBatch func(Batch)) error {
	pending := make(map[string]bool)
	manifestChanged := false

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	flush := func() {
		if len(pending) == 0 && !manifestChanged {
			return
		}
		batch := Batch{ManifestChanged: manifestChanged}
		for p := range pending {
			batch.Paths = append(batch.Paths, p)
		}
		sort.Strings(batch.Paths)
		pending = make(map[string]bool)
		manifestChanged = false
		onBatch(batch)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			rel, skip := w.relevant(event.Name)
			if skip {
				continue
			}
			w.logger.Debug("fs event", zap.String("op", event.Op.String()), zap.String("path", rel))

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.watchTree(event.Name); err != nil {
						w.logger.Debug("watching new directory", zap.Error(err))
					}
					continue
				}
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}

			if isManifest(rel) {
				manifestChanged = true
			}
			// Remove and Rename fire for paths that no longer exist;
			// they still debounce but add nothing to check.
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				pending[rel] = true
			}

			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			flush()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))
		}
	}
}

func isManifest(rel string) bool {
	switch rel {
	case "composer.json", "package.json", "artisan":
		return true
	}
	return false
}

// relevant converts an absolute event path to root-relative form and decides
// whether it lies in a skipped subtree.
func (w *Watcher) relevant(name string) (string, bool) {
	rel, err := filepath.Rel(w.root, name)
	if err != nil {
		return "", true
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || strings.HasPrefix(rel, "..") {
		return "", true
	}
	for _, seg := range strings.Split(rel, "/") {
		if skipDirs[seg] {
			return "", true
		}
	}
	for _, subtree := range skipSubtrees {
		if rel == subtree || strings.HasPrefix(rel, subtree+"/") {
			return "", true
		}
	}
	return rel, false
}

// watchTree registers dir and every directory below it, minus skipped ones.
func (w *Watcher) watchTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != dir {
			if _, skip := w.relevant(path); skip {
				return filepath.SkipDir
			}
		}
		if err := w.fsw.Add(path); err != nil {
			w.logger.Debug("adding watch", zap.String("path", path), zap.Error(err))
		}
		return nil
	})
}
