package assets

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/smasonuk/shoeview"
	"github.com/smasonuk/shoeview/internal/logging"
)

// LoadFunc turns a model path into a finished model.
type LoadFunc func(path string) (*shoeview.Model, error)

// Result is the outcome of one background load.
type Result struct {
	Generation string
	Path       string
	Model      *shoeview.Model
	Err        error
	Elapsed    time.Duration
}

// Loader runs model loads off the render goroutine. Every Begin starts a new
// generation; results from older generations are dropped by Poll, so a slow
// load can never replace the model of a newer request.
type Loader struct {
	load    LoadFunc
	results chan Result
	done    chan struct{}
	wg      sync.WaitGroup

	mu      sync.Mutex
	current string
	closed  bool
}

func NewLoader(load LoadFunc) *Loader {
	if load == nil {
		load = Load
	}
	return &Loader{
		load:    load,
		results: make(chan Result, 4),
		done:    make(chan struct{}),
	}
}

// Begin starts loading path and returns the generation token of the request.
// It returns the empty token once the loader is closed.
func (l *Loader) Begin(path string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ""
	}
	gen := uuid.NewString()
	l.current = gen
	l.wg.Add(1)
	go l.run(gen, path)
	logging.Debug("model load started", "path", path, "generation", gen)
	return gen
}

func (l *Loader) run(gen, path string) {
	defer l.wg.Done()
	start := time.Now()
	m, err := l.safeLoad(path)
	r := Result{Generation: gen, Path: path, Model: m, Err: err, Elapsed: time.Since(start)}
	select {
	case l.results <- r:
	case <-l.done:
	}
}

// safeLoad turns a panic in a parser into a load error so a malformed file
// cannot take the process down.
func (l *Loader) safeLoad(path string) (m *shoeview.Model, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.Error("model loader panicked", "path", path, "panic", rec)
			m, err = nil, fmt.Errorf("load %s: %w: %v", path, ErrLoadPanicked, rec)
		}
	}()
	return l.load(path)
}

// Current returns the generation of the latest Begin.
func (l *Loader) Current() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}

func (l *Loader) IsCurrent(gen string) bool {
	return gen != "" && gen == l.Current()
}

// Poll returns the result of the current generation if it has arrived,
// discarding stale results on the way. It never blocks.
func (l *Loader) Poll() (Result, bool) {
	for {
		select {
		case r := <-l.results:
			if !l.IsCurrent(r.Generation) {
				logging.Debug("dropping stale model load", "path", r.Path, "generation", r.Generation)
				continue
			}
			return r, true
		default:
			return Result{}, false
		}
	}
}

// Close abandons pending results and waits for running loads to return.
func (l *Loader) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	close(l.done)
	l.mu.Unlock()
	l.wg.Wait()
}
