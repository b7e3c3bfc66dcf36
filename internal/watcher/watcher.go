// Package watcher invalidates the content snapshot when files under the
// content root change.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/unchartedsh/site/internal/logfields"
)

const DefaultDebounce = 250 * time.Millisecond

// ContentWatcher watches a directory tree and calls onChange once per burst
// of file system events.
type ContentWatcher struct {
	root     string
	onChange func()
	debounce time.Duration

	watcher  *fsnotify.Watcher
	changes  chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func New(root string, debounce time.Duration, onChange func()) (*ContentWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to resolve content path: %w", err)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &ContentWatcher{
		root:     absRoot,
		onChange: onChange,
		debounce: debounce,
		watcher:  w,
		changes:  make(chan struct{}, 1),
		stop:     make(chan struct{}),
	}, nil
}

// Start adds every directory under the root and begins delivering changes.
func (cw *ContentWatcher) Start(ctx context.Context) error {
	if err := cw.addTree(cw.root); err != nil {
		return fmt.Errorf("failed to watch content directory %s: %w", cw.root, err)
	}

	slog.Info("Starting content watcher", logfields.Path(cw.root))

	cw.wg.Add(2)
	go cw.watchLoop(ctx)
	go cw.debounceLoop(ctx)
	return nil
}

// Stop closes the watcher and waits for its goroutines to exit. Safe to call
// more than once.
func (cw *ContentWatcher) Stop() error {
	var err error
	cw.stopOnce.Do(func() {
		close(cw.stop)
		err = cw.watcher.Close()
		cw.wg.Wait()
	})
	return err
}

func (cw *ContentWatcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return cw.watcher.Add(path)
	})
}

func (cw *ContentWatcher) watchLoop(ctx context.Context) {
	defer cw.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-cw.stop:
			return
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}

			slog.Debug("Content change detected", logfields.Path(event.Name), "op", event.Op.String())
			if event.Has(fsnotify.Create) {
				// New directories need their own watch; files are ignored by addTree.
				if err := cw.addTree(event.Name); err != nil {
					slog.Debug("Could not watch new path", logfields.Path(event.Name), logfields.Error(err))
				}
			}
			cw.trigger()

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Content watcher error", logfields.Error(err))
		}
	}
}

func (cw *ContentWatcher) trigger() {
	select {
	case cw.changes <- struct{}{}:
	default:
	}
}

func (cw *ContentWatcher) debounceLoop(ctx context.Context) {
	defer cw.wg.Done()

	timer := time.NewTimer(cw.debounce)
	timer.Stop()
	defer timer.Stop()

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case <-cw.stop:
			return
		case <-cw.changes:
			timer.Reset(cw.debounce)
			fire = timer.C
		case <-fire:
			fire = nil
			cw.onChange()
		}
	}
}
