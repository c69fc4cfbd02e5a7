package usecase

import "context"

// DownloadError reports a failed downloader invocation; the wrapped error
// carries the tool's captured stderr.
type DownloadError struct {
	Err error
}

func (e *DownloadError) Error() string { return "download failed: " + e.Err.Error() }
func (e *DownloadError) Unwrap() error { return e.Err }

// ExtractError reports a failed transcoder invocation; the wrapped error
// carries the tool's captured stderr.
type ExtractError struct {
	Err error
}

func (e *ExtractError) Error() string { return "frame extraction failed: " + e.Err.Error() }
func (e *ExtractError) Unwrap() error { return e.Err }

// IOError reports a local filesystem failure such as not being able to
// create the output directory or write the archive.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *IOError) Unwrap() error { return e.Err }

// CancelledError reports an interrupted run. The child process has been
// terminated; partial frame output is left in place.
type CancelledError struct {
	Err error
}

func (e *CancelledError) Error() string { return "cancelled: " + e.Err.Error() }
func (e *CancelledError) Unwrap() error { return e.Err }

// stepFailure maps a step error to the taxonomy, preferring the
// cancellation flavor when the surrounding context was interrupted.
func stepFailure(ctx context.Context, err error, wrap func(error) error) error {
	if ctx.Err() != nil {
		return &CancelledError{Err: err}
	}
	return wrap(err)
}
