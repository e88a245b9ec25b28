package client

import "errors"

var (
	// ErrUnexpectedStatus is returned when the server answers with a status
	// the call does not expect.
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrRejected is returned when the server acknowledges with ok=false.
	ErrRejected = errors.New("request rejected")
	// ErrBadClick is returned by the player for lines that are not "x y".
	ErrBadClick = errors.New("bad click")
)
