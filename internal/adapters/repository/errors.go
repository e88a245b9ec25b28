package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrClosed         = errors.New("store closed")
	ErrCorrupt        = errors.New("store document corrupt")
	ErrUnknownBackend = errors.New("unknown store backend")
	ErrInvalidSeed    = errors.New("invalid seed characters")
)
