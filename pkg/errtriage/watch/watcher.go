// Package watch follows a log file and translates failure lines as they are
// written.
package watch

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/errtriage/errtriage-go/internal/logfinder"
	"github.com/errtriage/errtriage-go/internal/tailer"
	"github.com/errtriage/errtriage-go/pkg/errtriage"
)

// errBuffer is the buffer size for the error channel.
const errBuffer = 16

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Diagnosis is one translated log line.
type Diagnosis struct {
	Time        time.Time             `json:"time" yaml:"time"`
	Path        string                `json:"path" yaml:"path"`
	Line        string                `json:"line" yaml:"line"`
	Explanation errtriage.Explanation `json:"diagnosis" yaml:"diagnosis"`
}

// Watcher follows a log file and emits a Diagnosis for each matching line.
type Watcher struct {
	cfg config
	log *slog.Logger

	mu       sync.Mutex
	closed   bool
	watching bool
	cancel   context.CancelFunc
	doneCh   chan struct{}
}

// NewWatcher validates the options and returns a Watcher.
func NewWatcher(opts ...Option) (*Watcher, error) {
	cfg := applyOptions(opts)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.dir != "" {
		dir, err := logfinder.FindLogDir(cfg.dir)
		if err != nil {
			return nil, err
		}
		cfg.dir = dir
	}

	log := cfg.logger
	if log == nil {
		log = discardLogger
	}
	return &Watcher{cfg: *cfg, log: log}, nil
}

// Watch starts following and returns the diagnosis and error channels.
// Both channels are closed when ctx is done, Close is called, or the
// source cannot be opened. Watch can only be called once.
func (w *Watcher) Watch(ctx context.Context) (<-chan Diagnosis, <-chan error, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, nil, ErrWatcherClosed
	}
	if w.watching {
		return nil, nil, ErrAlreadyWatching
	}
	w.watching = true

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.doneCh = make(chan struct{})

	diagCh := make(chan Diagnosis)
	errCh := make(chan error, errBuffer)

	go w.run(ctx, diagCh, errCh)

	return diagCh, errCh, nil
}

// Close stops the watcher and waits for its goroutine to exit.
// Safe to call multiple times.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.cancel != nil {
		w.cancel()
	}
	doneCh := w.doneCh
	w.mu.Unlock()

	if doneCh != nil {
		<-doneCh
	}
	return nil
}

func (w *Watcher) run(ctx context.Context, diagCh chan<- Diagnosis, errCh chan<- error) {
	defer close(w.doneCh)
	defer close(diagCh)
	defer close(errCh)

	current, err := w.source()
	if err != nil {
		sendError(ctx, errCh, &WatchError{Op: OpFindLatest, Path: w.cfg.dir, Err: err})
		return
	}

	cfg := tailer.DefaultConfig()
	cfg.FromStart = w.cfg.fromStart
	cfg.Poll = w.cfg.poll
	t, err := tailer.New(ctx, current, cfg)
	if err != nil {
		sendError(ctx, errCh, &WatchError{Op: OpTail, Path: current, Err: err})
		return
	}
	defer func() { _ = t.Stop() }()
	w.log.Debug("started tailing", "path", current, "from_start", cfg.FromStart)

	// Rotation only applies to directory mode; a nil channel never fires.
	var rotation <-chan time.Time
	if w.cfg.dir != "" {
		ticker := time.NewTicker(w.cfg.pollInterval)
		defer ticker.Stop()
		rotation = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-t.Lines():
			if !ok {
				// The tailer reports why it ended before closing.
				for err := range t.Errors() {
					sendError(ctx, errCh, &WatchError{Op: OpRead, Path: current, Err: err})
				}
				return
			}
			w.processLine(ctx, current, line, diagCh)
		case err, ok := <-t.Errors():
			if !ok {
				return
			}
			sendError(ctx, errCh, &WatchError{Op: OpRead, Path: current, Err: err})
		case <-rotation:
			newest, err := logfinder.FindLatestLogFile(w.cfg.dir, w.cfg.pattern)
			if err != nil {
				sendError(ctx, errCh, &WatchError{Op: OpRotation, Path: w.cfg.dir, Err: err})
				continue
			}
			if newest == current {
				continue
			}
			w.log.Debug("log rotation detected", "from", current, "to", newest)
			_ = t.Stop()
			cfg := tailer.DefaultConfig()
			cfg.FromStart = true
			cfg.Poll = w.cfg.poll
			next, err := tailer.New(ctx, newest, cfg)
			if err != nil {
				sendError(ctx, errCh, &WatchError{Op: OpTail, Path: newest, Err: err})
				return
			}
			t = next
			current = newest
		}
	}
}

// source returns the file to follow.
func (w *Watcher) source() (string, error) {
	if w.cfg.file != "" {
		return w.cfg.file, nil
	}
	return logfinder.FindLatestLogFile(w.cfg.dir, w.cfg.pattern)
}

func (w *Watcher) processLine(ctx context.Context, path, line string, diagCh chan<- Diagnosis) {
	if strings.TrimSpace(line) == "" {
		return
	}
	if w.cfg.match != nil && !w.cfg.match.MatchString(line) {
		return
	}

	d := Diagnosis{
		Time:        time.Now(),
		Path:        path,
		Line:        line,
		Explanation: errtriage.Explain(line),
	}
	select {
	case diagCh <- d:
	case <-ctx.Done():
	}
}

func sendError(ctx context.Context, errCh chan<- error, err error) {
	select {
	case errCh <- err:
	case <-ctx.Done():
	}
}
