package node

import (
	"github.com/optional7/Raicoin/election"
	"github.com/optional7/Raicoin/types"
)

// NoRepresentative implements election.LocalRepresentative for a node
// that does not cast votes of its own.
type NoRepresentative struct{}

// IsRepresentative implements election.LocalRepresentative.
func (NoRepresentative) IsRepresentative() bool { return false }

// Vote implements election.LocalRepresentative.
func (NoRepresentative) Vote(types.Account, uint64) (election.Vote, bool) {
	return election.Vote{}, false
}
