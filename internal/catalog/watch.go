package catalog

import (
	"os"
	"sync"
	"time"
)

// FileWatcher polls catalog file modification times and triggers a callback
// on change. The file list is re-read every tick so new version files are
// picked up too.
type FileWatcher struct {
	Interval  time.Duration
	list      func() ([]string, error)
	onChange  func(string) // called with path that changed
	stopCh    chan struct{}
	stopOnce  sync.Once
	lastMTime map[string]time.Time
}

// NewFileWatcher creates a watcher over the files of paths.
func NewFileWatcher(paths Paths, interval time.Duration, onChange func(string)) *FileWatcher {
	return &FileWatcher{
		Interval:  interval,
		list:      paths.Files,
		onChange:  onChange,
		stopCh:    make(chan struct{}),
		lastMTime: make(map[string]time.Time),
	}
}

// WatchCatalog invalidates c's cache whenever one of its files changes, then
// calls notify (which may be nil).
func WatchCatalog(c *Catalog, interval time.Duration, notify func(string)) *FileWatcher {
	return NewFileWatcher(c.loader.Paths(), interval, func(path string) {
		c.loader.Invalidate()
		if notify != nil {
			notify(path)
		}
	})
}

// Start begins polling in a goroutine.
func (w *FileWatcher) Start() {
	ticker := time.NewTicker(w.Interval)
	// prime cache
	w.scanAll(true)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.scanAll(false)
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Stop terminates the watcher. It is safe to call more than once.
func (w *FileWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

// scanAll checks mtimes and invokes onChange for files that changed, appeared
// or disappeared since last scan.
func (w *FileWatcher) scanAll(prime bool) {
	files, err := w.list()
	if err != nil {
		return
	}
	present := make(map[string]bool, len(files))
	for _, p := range files {
		fi, err := os.Stat(p)
		if err != nil {
			// missing files fall through to the removal check below
			continue
		}
		present[p] = true
		mt := fi.ModTime()
		last, ok := w.lastMTime[p]
		w.lastMTime[p] = mt
		if prime {
			continue
		}
		if !ok || mt.After(last) {
			w.notify(p)
		}
	}
	for p := range w.lastMTime {
		if !present[p] {
			delete(w.lastMTime, p)
			if !prime {
				w.notify(p)
			}
		}
	}
}

func (w *FileWatcher) notify(path string) {
	if w.onChange != nil {
		w.onChange(path)
	}
}
