package state

import "errors"

var (
	// ErrStorageUnavailable wraps adapter read/write failures. In-memory
	// state is preserved; the next mutation retries the write.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrMalformedState marks a stored payload that failed to parse. The
	// caller falls back to the mirror copy, then to a fresh envelope.
	ErrMalformedState = errors.New("malformed state payload")

	// ErrWipeRefused is the anti-wipe rule firing: a save would drop the
	// entry count from non-zero to zero without explicit authorization.
	// It is an expected control outcome, not a fault.
	ErrWipeRefused = errors.New("destructive save refused: entries would drop to zero (authorize the wipe to proceed)")

	// ErrImportRejected marks a backup file that failed minimal validation.
	ErrImportRejected = errors.New("import rejected")

	// ErrNotHydrated guards against saving before the initial load finished.
	ErrNotHydrated = errors.New("state not hydrated yet")
)
