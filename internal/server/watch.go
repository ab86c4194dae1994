package server

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ChicagoDave/wren/pkg/spec"
)

// SettleDelay is how long Watch waits after the last change before solving.
// Editors often write a file in several steps.
var SettleDelay = 150 * time.Millisecond

// Watch re-solves the project whenever its spec file changes. The containing
// directory is watched so that editors which replace the file by rename are
// still seen. It returns when ctx is done.
func (s *Server) Watch(ctx context.Context) error {
	dir, names, err := s.watchTargets()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !slices.Contains(names, filepath.Base(event.Name)) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			s.log.Debug("spec changed", "file", event.Name, "op", event.Op.String())
			pending = time.After(SettleDelay)
		case <-pending:
			pending = nil
			s.Solve()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Warn("watcher error", "error", err)
		}
	}
}

// watchTargets returns the directory to watch and the file names in it that
// trigger a solve.
func (s *Server) watchTargets() (string, []string, error) {
	info, err := os.Stat(s.projectPath)
	if err != nil {
		return "", nil, fmt.Errorf("opening project: %w", err)
	}
	if info.IsDir() {
		return s.projectPath, spec.ProjectFiles, nil
	}
	return filepath.Dir(s.projectPath), []string{filepath.Base(s.projectPath)}, nil
}
