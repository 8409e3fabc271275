package election

import "github.com/optional7/Raicoin/types"

// Ledger is the read-only view of representative weights the tally step
// needs. The on-disk ledger itself is out of scope for this module.
type Ledger interface {
	// RepresentativeWeights returns the current weight delegated to each
	// online representative.
	RepresentativeWeights() map[types.Account]types.Amount
	// OnlineWeight returns the total weight currently considered online,
	// the denominator for the confirmation supermajority threshold.
	OnlineWeight() types.Amount
}

// Network is the broadcast/solicitation surface the engine drives at the
// end of every wake-up.
type Network interface {
	// BroadcastConfirm announces the local node's vote for winner on this
	// election's account/height. Called only when the local node is a
	// representative holding an eligible vote.
	BroadcastConfirm(account types.Account, height uint64, winner types.Hash) error
	// RequestConfirm solicits votes from representatives that have not
	// yet voted in this election.
	RequestConfirm(account types.Account, height uint64, peers []types.Account) error
}

// LocalRepresentative exposes whether, and with what vote, the local
// node participates as a representative. A node that is not a
// representative always reports ok=false.
type LocalRepresentative interface {
	// IsRepresentative reports whether the local node casts votes.
	IsRepresentative() bool
	// Vote returns the local node's current vote for (account, height),
	// if it holds an eligible, not-yet-cast one.
	Vote(account types.Account, height uint64) (Vote, bool)
}
