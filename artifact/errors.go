package artifact

import "fmt"

var (
	// ErrNotFound is returned when no live entry exists for the given id.
	// Absence covers both never-created and already-expired entries; callers
	// are expected to treat it as a recoverable signal, not a failure.
	ErrNotFound = fmt.Errorf("artifact not found")
)
