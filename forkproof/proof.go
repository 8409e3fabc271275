package forkproof

import (
	"fmt"
	"time"

	"github.com/optional7/Raicoin/election"
	"github.com/optional7/Raicoin/types"
)

// Proof is evidence that a representative cast two conflicting votes for
// the same account/height election.
type Proof struct {
	Account    types.Account
	Height     uint64
	Rep        types.Account
	Kept       election.Vote
	Other      election.Vote
	Weight     types.Amount
	RecordedAt time.Time
}

func (p *Proof) key() string {
	a, b := p.Kept.Hash, p.Other.Hash
	if b.Less(a) {
		a, b = b, a
	}
	return fmt.Sprintf("%s/%d/%s/%s/%s", p.Account, p.Height, p.Rep, a, b)
}
