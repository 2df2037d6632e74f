package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

func runWatch(args []string) error {
	var opts generateOptions
	flags := newGenerateFlags("watch", &opts)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := opts.validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watchCatalog(ctx, &opts)
}

// watchCatalog regenerates once up front and again on every write to the
// catalog file until ctx is done. Failed regenerations are logged and the
// previous output is left in place.
func watchCatalog(ctx context.Context, opts *generateOptions) error {
	path, err := filepath.Abs(opts.catalog)
	if err != nil {
		return fmt.Errorf("resolve catalog path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory; editors often replace the file on save.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	logger := zap.S()
	regenerate := func() {
		encoded, err := render(opts)
		if err != nil {
			logger.Errorw("regeneration failed", "catalog", path, "error", err)
			return
		}
		if err := writeOutput(opts.out, encoded); err != nil {
			logger.Errorw("write failed", "catalog", path, "error", err)
		}
	}

	regenerate()
	filename := filepath.Base(path)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				logger.Debugw("catalog changed", "event", event.Op.String(), "file", event.Name)
				regenerate()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Errorw("file watcher error", "error", err)
		case <-ctx.Done():
			return nil
		}
	}
}
