package core

import "errors"

var (
	// ErrAlreadyEnded is returned when an auction that has been closed is ended or fed again.
	ErrAlreadyEnded = errors.New("auction is already ended")

	// ErrNoBids is returned when an auction is ended without any accepted bid.
	ErrNoBids = errors.New("bid is not found")
)
