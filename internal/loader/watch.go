package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tctrl/cli/internal/output"
)

// DefaultDebounce collapses the burst of events editors emit for one save.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reports changes to a single file.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
}

// NewWatcher starts watching path. The parent directory is watched so that
// editors which save by renaming a new file into place are noticed.
func NewWatcher(path string) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("absolute path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch directory: %w", err)
	}

	return &Watcher{path: absPath, watcher: watcher, debounce: DefaultDebounce}, nil
}

// SetDebounce changes the quiet period before onChange fires.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run calls onChange after every write to or re-creation of the file, until
// ctx is done. It closes the underlying watcher before returning.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	defer w.watcher.Close()

	filename := filepath.Base(w.path)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			output.Debug("schema file changed", "event", event.Op.String(), "file", event.Name)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			onChange()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			output.Warn("file watcher error", "err", err)

		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()
		}
	}
}
