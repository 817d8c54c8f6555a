package theme

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce is the quiet period after the last write before a change is
// reported. Editors often write a file several times per save.
const debounce = 100 * time.Millisecond

// Watcher reports changes to a set of files. It watches their directories
// so that files replaced by rename are still seen.
type Watcher struct {
	watcher *fsnotify.Watcher
	files   map[string]bool

	// Events receives the cleaned path of each changed file.
	Events chan string
	// Errors receives watcher errors.
	Errors chan error

	closeCh chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

// NewWatcher starts watching files.
func NewWatcher(files ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	w := &Watcher{
		watcher: fw,
		files:   make(map[string]bool, len(files)),
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("watch %s: %w", f, err)
		}
		w.files[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Close stops the watcher. Events and Errors are closed once the
// background goroutine has exited.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		w.wg.Wait()
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()
	pending := make(map[string]bool)
	flush := time.NewTimer(debounce)
	flush.Stop()
	defer flush.Stop()
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name, err := filepath.Abs(ev.Name)
			if err != nil || !w.files[name] {
				continue
			}
			pending[name] = true
			flush.Reset(debounce)
		case <-flush.C:
			for name := range pending {
				select {
				case w.Events <- name:
				case <-w.closeCh:
					return
				}
			}
			clear(pending)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// Watch reloads path into the store whenever it changes, until ctx is
// done. A failed reload is logged and the previous palettes stay active.
func (s *Store) Watch(ctx context.Context, path string, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	w, err := NewWatcher(path)
	if err != nil {
		return err
	}
	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case name, ok := <-w.Events:
				if !ok {
					return
				}
				if err := s.LoadFile(name); err != nil {
					log.Warn("theme reload failed", "path", name, "err", err)
					continue
				}
				log.Info("theme reloaded", "path", name, "theme", s.Theme())
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn("theme watcher", "err", err)
			}
		}
	}()
	return nil
}
