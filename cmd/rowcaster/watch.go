package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"rowcaster/internal/mapping"
)

const watchDebounce = 300 * time.Millisecond

var errNothingToWatch = errors.New("no directory could be watched")

// watch regenerates after every relevant change to the mapping file, the
// mapped package or its schema files, until ctx is cancelled. Generation
// errors are logged and do not stop watching.
func watch(ctx context.Context, e *env) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	suffix := mapping.DefaultSuffix
	watched := make(map[string]bool)

	rebuild := func() {
		c, err := generate(ctx, e)
		if err != nil {
			e.log.Error(err.Error())
		}

		if c != nil {
			suffix = c.mapping.Output.Suffix
		}

		for _, dir := range watchDirs(e.opts.Mapping, c) {
			if watched[dir] {
				continue
			}

			if err := watcher.Add(dir); err != nil {
				e.log.Warnf("watching %s: %v", dir, err)
				continue
			}

			watched[dir] = true
			e.log.Debugf("watching %s", dir)
		}
	}

	rebuild()

	if len(watched) == 0 {
		return errNothingToWatch
	}

	e.log.Info("Watching for changes; Ctrl-C to stop")

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}

			e.log.Info("Stopped watching")

			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !relevantChange(event, suffix) {
				continue
			}

			e.log.Debugf("changed: %s", event.Name)

			if timer != nil {
				timer.Stop()
			}

			timer = time.NewTimer(watchDebounce)
			pending = timer.C
		case <-pending:
			pending = nil

			rebuild()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			e.log.Warnf("watcher: %v", err)
		}
	}
}

// watchDirs lists the directories holding the inputs of a compile.
func watchDirs(mappingPath string, c *compiled) []string {
	var dirs []string

	if abs, err := filepath.Abs(mappingPath); err == nil {
		dirs = append(dirs, filepath.Dir(abs))
	}

	if c == nil {
		return dirs
	}

	dirs = append(dirs, c.plan.Package.Dir)

	for _, rec := range c.plan.Models() {
		if rec.SchemaCheck == "" {
			continue
		}

		path := rec.SchemaCheck
		if !filepath.IsAbs(path) {
			path = filepath.Join(rec.Dir, path)
		}

		dirs = append(dirs, filepath.Dir(path))
	}

	return dirs
}

// relevantChange reports whether event touches an input of generation.
// Files written by rowcaster itself are ignored.
func relevantChange(event fsnotify.Event, suffix string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	name := filepath.Base(event.Name)
	if strings.HasSuffix(name, suffix+".go") || strings.HasSuffix(name, suffix+"_check_test.go") ||
		strings.HasSuffix(name, ".unformatted.go") {
		return false
	}

	switch filepath.Ext(name) {
	case ".go", ".yaml", ".yml", ".sql":
		return true
	default:
		return false
	}
}
