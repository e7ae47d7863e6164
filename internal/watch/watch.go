// Package watch re-verifies proof scripts whenever they change on disk.
// Rapid saves are debounced so each edit burst triggers one verification.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"eternalmath/internal/proof"
	"eternalmath/internal/script"
)

// Outcome is delivered to the handler after each verification pass.
type Outcome struct {
	Path    string
	Theorem *proof.Theorem
	Results []proof.Result
	Err     error
}

// Handler receives the outcome of re-verifying one changed script.
type Handler func(Outcome)

// Options configure a Watcher.
type Options struct {
	// Debounce is how long a file must be quiet before re-verification.
	Debounce time.Duration
	// MaxSteps bounds each verification; zero keeps the default ceiling.
	MaxSteps int
	// Setup runs against the fresh session built for each verification,
	// typically to register predicates.
	Setup func(*proof.Session)
}

// Watcher monitors a directory of YAML proof scripts.
type Watcher struct {
	mu          sync.Mutex
	fs          *fsnotify.Watcher
	dir         string
	opts        Options
	handler     Handler
	log         *zap.Logger
	debounceMap map[string]time.Time
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
}

// New creates a watcher over dir. The handler is called after every
// verification pass, including failed loads.
func New(dir string, handler Handler, opts Options, log *zap.Logger) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 500 * time.Millisecond
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		fs:          fs,
		dir:         dir,
		opts:        opts,
		handler:     handler,
		log:         log,
		debounceMap: make(map[string]time.Time),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; the event loop runs in a goroutine
// until Stop is called or the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		w.log.Warn("creating watch directory", zap.String("dir", w.dir), zap.Error(err))
	}
	if err := w.fs.Add(w.dir); err != nil {
		return err
	}
	w.log.Info("watching proof scripts", zap.String("dir", w.dir))

	go w.run(ctx)
	return nil
}

// Stop halts the event loop and closes the underlying watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.fs.Close(); err != nil {
		w.log.Error("closing watcher", zap.Error(err))
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Error("watch error", zap.Error(err))
		case <-ticker.C:
			w.processSettled()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !isScript(event.Name) {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}
	w.log.Debug("script changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))

	w.mu.Lock()
	w.debounceMap[event.Name] = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) processSettled() {
	w.mu.Lock()
	now := time.Now()
	var settled []string
	for path, at := range w.debounceMap {
		if now.Sub(at) >= w.opts.Debounce {
			settled = append(settled, path)
			delete(w.debounceMap, path)
		}
	}
	w.mu.Unlock()

	for _, path := range settled {
		w.handler(w.verify(path))
	}
}

// verify loads and checks one script in a fresh session so repeated runs
// never collide on axiom names.
func (w *Watcher) verify(path string) Outcome {
	out := Outcome{Path: path}

	f, err := script.LoadFile(path)
	if err != nil {
		out.Err = err
		return out
	}

	s := proof.NewSession()
	if w.opts.Setup != nil {
		w.opts.Setup(s)
	}
	th, err := f.Build(s)
	if err != nil {
		out.Err = err
		return out
	}

	var vopts []proof.Option
	if w.opts.MaxSteps > 0 {
		vopts = append(vopts, proof.WithMaxSteps(w.opts.MaxSteps))
	}
	vopts = append(vopts, proof.WithLogger(w.log))

	out.Theorem = th
	out.Results = th.Verify(proof.NewVerifier(s, vopts...))
	return out
}

func isScript(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
