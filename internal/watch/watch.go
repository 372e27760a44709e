// Package watch reports changes to a single file, such as the manifest cache
// being rewritten by "rainstash update" while the picker is open.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"rainstash/internal/logger"
)

// DefaultDebounce coalesces the write+rename bursts of an atomic replace.
const DefaultDebounce = 150 * time.Millisecond

// File calls onChange after path is created, written or renamed into place.
// Events within debounce of each other produce one call. The parent directory
// is watched so replacing the file by rename is seen. File blocks until ctx is
// done and returns nil, or returns the error that stopped the watcher.
func File(ctx context.Context, path string, debounce time.Duration, onChange func()) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	logger.Logger.Debug("watching file", "path", abs)

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	fire := func() {
		if ctx.Err() == nil {
			onChange()
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Rename) {
				continue
			}
			logger.Logger.Debug("file event", "path", ev.Name, "op", ev.Op.String())

			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, fire)
			mu.Unlock()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}
