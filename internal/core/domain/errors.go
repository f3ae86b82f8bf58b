package domain

import "errors"

// Domain errors represent resolution failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates no dereferenceable entry exists after all
	// variant and strategy attempts. Recoverable: surfaced to callers
	// as "no match".
	ErrNotFound = errors.New("not found")

	// ErrRedirectLoop indicates a redirect chain exceeded the hop
	// bound. Raised for malformed or adversarial archives containing
	// redirect cycles.
	ErrRedirectLoop = errors.New("redirect loop")

	// ErrContentUnavailable indicates the archive could not supply
	// content bytes for an entry that exists.
	ErrContentUnavailable = errors.New("content unavailable")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrArchiveClosed indicates an operation on a closed archive.
	ErrArchiveClosed = errors.New("archive closed")
)
