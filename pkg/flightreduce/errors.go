package flightreduce

import "errors"

// Sentinel errors for common error conditions
var (
	// Configuration errors
	ErrInvalidConfig     = errors.New("invalid config")
	ErrInvalidChunkCount = errors.New("invalid chunk count")

	// Phase errors
	ErrMapPhase    = errors.New("error during map phase")
	ErrReducePhase = errors.New("error during reduce phase")

	// Shared state errors
	ErrStoreFrozen    = errors.New("intermediate store is frozen")
	ErrStoreNotFrozen = errors.New("intermediate store is not frozen")
	ErrDuplicateKey   = errors.New("duplicate result key")

	// Lifecycle errors
	ErrBusy = errors.New("framework is already executing")

	// Version/compatibility errors
	ErrIncompatibleVersion = errors.New("incompatible version")
)
