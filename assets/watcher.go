package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/smasonuk/shoeview/internal/logging"
)

// DefaultDebounce collapses the burst of events an editor or exporter makes
// while saving.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reports when a model file, or any .ply file in a model directory,
// changes on disk.
type Watcher struct {
	fsnotify *fsnotify.Watcher
	debounce time.Duration
	changes  chan string
	done     chan struct{}
	wg       sync.WaitGroup

	mutex    sync.RWMutex
	files    map[string]bool
	dirs     map[string]bool
	isClosed bool
}

func NewWatcher(debounce time.Duration) (*Watcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{
		fsnotify: fsWatch,
		debounce: debounce,
		changes:  make(chan string, 1),
		done:     make(chan struct{}),
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
	}
	w.wg.Add(1)
	go w.start()
	return w, nil
}

// Watch adds a model path. Files are watched through their directory so
// saves that replace the file by rename are still seen.
func (w *Watcher) Watch(path string) error {
	path = filepath.Clean(path)
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.isClosed {
		return errors.New("watcher already closed")
	}
	if info.IsDir() {
		w.dirs[path] = true
		return w.fsnotify.Add(path)
	}
	w.files[path] = true
	return w.fsnotify.Add(filepath.Dir(path))
}

// Changes delivers the watched path after a burst of events settles.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

func (w *Watcher) match(name string) (string, bool) {
	name = filepath.Clean(name)
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	if w.files[name] {
		return name, true
	}
	dir := filepath.Dir(name)
	if w.dirs[dir] && strings.EqualFold(filepath.Ext(name), ".ply") {
		return dir, true
	}
	return "", false
}

func (w *Watcher) start() {
	defer w.wg.Done()

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending string
	)
	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			target, ok := w.match(e.Name)
			if !ok {
				continue
			}
			logging.Debug("model file event", "name", e.Name, "op", e.Op.String())
			pending = target
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			select {
			case w.changes <- pending:
			default:
				// a change is already queued for the reader
			}

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			logging.Warn("model watcher error", "err", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *Watcher) Close() error {
	w.mutex.Lock()
	if w.isClosed {
		w.mutex.Unlock()
		return nil
	}
	w.isClosed = true
	w.mutex.Unlock()

	close(w.done)
	err := w.fsnotify.Close()
	w.wg.Wait()
	return err
}
