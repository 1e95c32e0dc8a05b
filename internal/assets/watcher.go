package assets

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/vortex/internal/logger"
)

// changeBuffer bounds the number of undelivered change notifications.
const changeBuffer = 64

// Watcher reports files that changed under a set of asset roots as
// slash-separated paths relative to their root.
type Watcher struct {
	w       *fsnotify.Watcher
	roots   []string
	changes chan string
	done    chan struct{}
	wg      sync.WaitGroup
	log     *zap.Logger
}

// NewWatcher watches every directory below each root.
func NewWatcher(roots ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	w := &Watcher{
		w:       fw,
		changes: make(chan string, changeBuffer),
		done:    make(chan struct{}),
		log:     logger.Named("watcher"),
	}
	for _, r := range roots {
		abs, err := filepath.Abs(r)
		if err != nil {
			fw.Close()
			return nil, err
		}
		if err := w.addTree(abs); err != nil {
			fw.Close()
			return nil, err
		}
		w.roots = append(w.roots, abs)
	}

	w.wg.Add(1)
	go w.run()
	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.w.Add(p); err != nil {
			return fmt.Errorf("watching %s: %w", p, err)
		}
		return nil
	})
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.w.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.log.Warn("watch new directory", zap.String("dir", event.Name), zap.Error(err))
			}
			return
		}
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	rel, ok := w.relative(event.Name)
	if !ok {
		return
	}
	select {
	case w.changes <- rel:
	default:
		w.log.Debug("change dropped", zap.String("path", rel))
	}
}

func (w *Watcher) relative(name string) (string, bool) {
	for _, r := range w.roots {
		rel, err := filepath.Rel(r, name)
		if err != nil || rel == "." || !filepath.IsLocal(rel) {
			continue
		}
		return filepath.ToSlash(rel), true
	}
	return "", false
}

// Changes returns the paths changed since the last call without blocking.
// Repeated events for one path are reported once, in first-seen order.
func (w *Watcher) Changes() []string {
	var out []string
	seen := make(map[string]bool)
	for {
		select {
		case p := <-w.changes:
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		default:
			return out
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.w.Close()
	w.wg.Wait()
	return err
}
