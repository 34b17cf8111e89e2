// Package tailer streams lines appended to a file.
package tailer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/nxadm/tail"
)

// ErrStopped is reported when the underlying tail ends on its own, for
// example because the file was removed.
var ErrStopped = errors.New("tailing stopped")

// Config controls how a file is tailed.
type Config struct {
	// FromStart reads the existing content before following.
	FromStart bool

	// Poll uses stat polling instead of inotify/kqueue.
	Poll bool

	// MaxLineSize splits lines longer than this many bytes (0 = unlimited).
	MaxLineSize int
}

// DefaultConfig follows from the current end of the file.
func DefaultConfig() Config {
	return Config{MaxLineSize: 64 * 1024}
}

// Tailer follows a single file.
type Tailer struct {
	t      *tail.Tail
	lines  chan string
	errs   chan error
	stop   chan struct{}
	done   chan struct{}
	once   sync.Once
	stopMu sync.Mutex
	err    error
}

// New starts following path. The file must exist.
// Lines and Errors are closed when ctx is done or Stop is called.
func New(ctx context.Context, path string, cfg Config) (*Tailer, error) {
	whence := io.SeekEnd
	if cfg.FromStart {
		whence = io.SeekStart
	}

	t, err := tail.TailFile(path, tail.Config{
		Follow:      true,
		MustExist:   true,
		Poll:        cfg.Poll,
		MaxLineSize: cfg.MaxLineSize,
		Location:    &tail.SeekInfo{Offset: 0, Whence: whence},
		Logger:      tail.DiscardingLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("tail file: %w", err)
	}

	tl := &Tailer{
		t:     t,
		lines: make(chan string),
		errs:  make(chan error, 1),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go tl.run(ctx)
	return tl, nil
}

// Lines returns the channel of appended lines, without line terminators.
func (tl *Tailer) Lines() <-chan string {
	return tl.lines
}

// Errors returns read errors reported by the underlying tail. If the tail
// ends before Stop or ctx, a final error wrapping ErrStopped is sent before
// the channels close.
func (tl *Tailer) Errors() <-chan error {
	return tl.errs
}

// Stop stops following and waits for the reader goroutine to exit.
// Safe to call multiple times.
func (tl *Tailer) Stop() error {
	tl.once.Do(func() {
		close(tl.stop)
		// The tail goroutine blocks on an unbuffered send; drain until it
		// closes its channel so Stop can return.
		go func() {
			for range tl.t.Lines {
			}
		}()
		err := tl.t.Stop()
		tl.t.Cleanup()
		tl.stopMu.Lock()
		tl.err = err
		tl.stopMu.Unlock()
	})
	<-tl.done
	tl.stopMu.Lock()
	defer tl.stopMu.Unlock()
	return tl.err
}

func (tl *Tailer) run(ctx context.Context) {
	defer close(tl.done)
	defer close(tl.lines)
	defer close(tl.errs)

	for {
		select {
		case <-ctx.Done():
			return
		case <-tl.stop:
			return
		case line, ok := <-tl.t.Lines:
			if !ok {
				tl.reportExit(ctx)
				return
			}
			if line.Err != nil {
				if !tl.sendErr(ctx, line.Err) {
					return
				}
				continue
			}
			select {
			case tl.lines <- strings.TrimRight(line.Text, "\r"):
			case <-ctx.Done():
				return
			case <-tl.stop:
				return
			}
		}
	}
}

// reportExit sends the reason the tail goroutine ended.
func (tl *Tailer) reportExit(ctx context.Context) {
	select {
	case <-tl.t.Dead():
	case <-ctx.Done():
		return
	case <-tl.stop:
		return
	}
	if err := tl.t.Err(); err != nil {
		tl.sendErr(ctx, fmt.Errorf("%w: %w", ErrStopped, err))
		return
	}
	tl.sendErr(ctx, ErrStopped)
}

// sendErr blocks until err is delivered or the tailer is stopped.
func (tl *Tailer) sendErr(ctx context.Context, err error) bool {
	select {
	case tl.errs <- err:
		return true
	case <-ctx.Done():
		return false
	case <-tl.stop:
		return false
	}
}
