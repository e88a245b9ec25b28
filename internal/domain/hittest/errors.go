package hittest

import "errors"

// ErrInvalidInput marks a click that cannot be hit-tested.
var ErrInvalidInput = errors.New("invalid check input")
