package metrics

import (
	"errors"
)

// Sentinel kinds for metrics errors.
var (
	ErrUnknownCheckResult = errors.New("unknown check result label")
)
