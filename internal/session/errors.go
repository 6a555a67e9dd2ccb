package session

import "errors"

// Sentinel errors for session control flow.
// Check with errors.Is: errors.Is(err, session.ErrNoDueCards)
var (
	// ErrNoDueCards means the queue for the requested deck and settings
	// came out empty. Recoverable: change the filter or the settings.
	ErrNoDueCards = errors.New("no cards to review")

	// ErrInvalidTransition means a session operation was called outside
	// its valid state. A correct caller gates operations on Snapshot,
	// so this indicates a caller-ordering bug.
	ErrInvalidTransition = errors.New("invalid session state transition")
)
