// Package watch reruns a computation when declarative config files in the
// catalog cache change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/bayleafwalker/operator-upgradepath/internal/catalog"
)

// DefaultDebounce is how long the tree must be quiet before a change is reported.
const DefaultDebounce = 250 * time.Millisecond

// Watcher monitors a directory tree for declarative config changes.
type Watcher struct {
	Root     string
	Debounce time.Duration

	log logr.Logger
	fw  *fsnotify.Watcher
}

// New creates a watcher for root and every directory below it.
func New(root string, log logr.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{Root: root, Debounce: DefaultDebounce, log: log, fw: fw}
	if err := w.addTree(root); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fw.Close()
}

// Run calls onChange with the changed files, sorted, each time a burst of
// changes settles. It returns when ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context, files []string)) error {
	pending := sets.New[string]()
	timer := time.NewTimer(w.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						w.log.Error(err, "watching new directory", "dir", event.Name)
					}
					continue
				}
			}
			if !catalog.IsConfigFile(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				w.log.V(2).Info("change", "file", event.Name, "op", event.Op.String())
				pending.Insert(event.Name)
				timer.Reset(w.Debounce)
			}

		case <-timer.C:
			if pending.Len() == 0 {
				continue
			}
			files := sets.List(pending)
			pending = sets.New[string]()
			w.log.V(1).Info("catalog changed", "files", len(files))
			onChange(ctx, files)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			// Watch errors are not fatal.
			w.log.Error(err, "watch error")
		}
	}
}

func (w *Watcher) addTree(root string) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fw.Add(path)
		}
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	return nil
}
