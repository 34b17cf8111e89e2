package watch

import (
	"errors"
	"fmt"

	"github.com/errtriage/errtriage-go/internal/logfinder"
)

// Sentinel errors.
var (
	ErrWatcherClosed   = errors.New("watcher is closed")
	ErrAlreadyWatching = errors.New("watch already started")
	ErrNoSource        = errors.New("either a file or a directory must be set")
	ErrBothSources     = errors.New("file and directory are mutually exclusive")

	// ErrLogDirNotFound is returned by NewWatcher when the directory does
	// not exist.
	ErrLogDirNotFound = logfinder.ErrLogDirNotFound

	// ErrNoLogFiles is wrapped in a WatchError when the directory holds no
	// file matching the pattern.
	ErrNoLogFiles = logfinder.ErrNoLogFiles
)

// Op identifies the step of the watch loop that failed.
type Op string

// Watch operations.
const (
	OpFindLatest Op = "find_latest"
	OpTail       Op = "tail"
	OpRotation   Op = "rotation"
	OpRead       Op = "read"
)

// WatchError wraps an error from the watch loop with the failing step.
type WatchError struct {
	Op   Op
	Path string
	Err  error
}

func (e *WatchError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("watch %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("watch %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *WatchError) Unwrap() error {
	return e.Err
}
