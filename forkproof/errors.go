package forkproof

import "errors"

var (
	ErrDuplicateProof = errors.New("proof already recorded")
	ErrSameBlockHash  = errors.New("votes for the same block are not a conflict")
)
