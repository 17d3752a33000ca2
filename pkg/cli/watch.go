// This file implements watch mode: re-run validation whenever one of the
// input files changes on disk.
package cli

import (
	"fmt"
	"path/filepath"

	"github.com/actionvet/actionvet/pkg/console"
	"github.com/actionvet/actionvet/pkg/logger"
	"github.com/fsnotify/fsnotify"
)

var watchLog = logger.New("cli:watch")

// WatchAndValidate runs one validation pass, then watches the workflow,
// contract, and manifest files and re-validates whenever one changes.
// It blocks until the watcher is closed or fails.
func WatchAndValidate(config ValidateConfig) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch parent directories rather than files: editors replace files on
	// save, which drops file-level watches.
	watched := make(map[string]bool)
	dirs := make(map[string]bool)
	addTarget := func(path string) {
		if path == "" {
			return
		}
		clean := filepath.Clean(path)
		watched[clean] = true
		dirs[filepath.Dir(clean)] = true
	}
	for _, file := range config.WorkflowFiles {
		addTarget(file)
	}
	addTarget(config.ContractPath)
	addTarget(config.ManifestPath)

	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		watchLog.Printf("Watching directory: %s", dir)
	}

	runPass := func() {
		passed, err := ValidateWorkflows(config)
		switch {
		case err != nil:
			fmt.Fprintln(config.Out, console.FormatErrorMessage(err.Error()))
		case passed:
			fmt.Fprintln(config.Out, console.FormatInfoMessage("watching for changes..."))
		default:
			fmt.Fprintln(config.Out, console.FormatInfoMessage("watching for changes after failures..."))
		}
	}
	runPass()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !watched[filepath.Clean(event.Name)] {
				continue
			}
			watchLog.Printf("Change detected: %s (%s)", event.Name, event.Op)
			fmt.Fprintln(config.Out, console.FormatInfoMessage(fmt.Sprintf("%s changed, re-validating", event.Name)))
			runPass()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			watchLog.Printf("Watcher error: %v", err)
			fmt.Fprintln(config.Out, console.FormatWarningMessage(fmt.Sprintf("watch error: %v", err)))
		}
	}
}
