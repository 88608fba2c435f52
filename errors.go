package seedforge

import "errors"

var (
	// ErrAlreadyStarted is returned by Start when the search has already
	// been started.
	ErrAlreadyStarted = errors.New("seedforge: search already started")

	// ErrNotStarted is returned by Wait, Pause, and Resume before Start.
	ErrNotStarted = errors.New("seedforge: search not started")

	// ErrClosed is returned when an operation is attempted on a closed
	// search.
	ErrClosed = errors.New("seedforge: search closed")
)
