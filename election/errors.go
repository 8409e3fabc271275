package election

import "errors"

// Engine errors.
var (
	ErrAlreadyStarted  = errors.New("election engine already started")
	ErrNotStarted      = errors.New("election engine not started")
	ErrNoElection      = errors.New("no election for account")
	ErrHeightMismatch  = errors.New("block height does not match election height")
	ErrUnknownBlock    = errors.New("block hash not a candidate in this election")
	ErrInvalidConfig   = errors.New("invalid election engine configuration")
)
