package election

import (
	"time"

	"github.com/optional7/Raicoin/types"
)

// Vote is a representative's signed endorsement of one block hash at one
// logical timestamp. Two votes from the same representative at equal
// timestamps for different hashes constitute a fork proof.
type Vote struct {
	Timestamp uint64
	Signature types.Signature
	Hash      types.Hash
}

// RepVoteInfo is the per-representative record inside an Election.
type RepVoteInfo struct {
	ConflictFound bool
	Weight        types.Amount
	LastVote      Vote
}

// BlockReference is a candidate block in an election together with the
// number of representatives currently pointing their last vote at it.
type BlockReference struct {
	Refs  uint32
	Block *types.Block
}

// Election is the per-account, per-height in-memory voting record. It is
// created lazily when the engine is first asked to decide an
// account/height and destroyed on confirmation, expiry, or shutdown —
// nothing about it is persisted.
type Election struct {
	Account    types.Account
	Height     uint64
	ForkFound  bool
	Rounds     uint32
	RoundsFork uint32
	Wins       uint32
	Confirms   uint32
	Winner     types.Hash
	Wakeup     time.Time

	Blocks    map[types.Hash]*BlockReference
	Votes     map[types.Account]*RepVoteInfo
	Conflicts map[types.Account]*Vote

	// heapIndex is maintained by the wake-up heap (container.go); it is
	// not part of the Election's logical state.
	heapIndex int
}

func newElection(account types.Account, height uint64, wakeup time.Time) *Election {
	return &Election{
		Account:   account,
		Height:    height,
		Wakeup:    wakeup,
		Blocks:    make(map[types.Hash]*BlockReference),
		Votes:     make(map[types.Account]*RepVoteInfo),
		Conflicts: make(map[types.Account]*Vote),
	}
}

// addBlock inserts or increments the reference count of a candidate
// block. Returns the (possibly newly created) BlockReference.
func (e *Election) addBlock(b *types.Block) *BlockReference {
	ref, ok := e.Blocks[b.Hash]
	if !ok {
		ref = &BlockReference{Refs: 0, Block: b}
		e.Blocks[b.Hash] = ref
	}
	ref.Refs++
	return ref
}

// delBlock decrements a candidate's reference count, removing it from
// the candidate set once it drops to zero.
func (e *Election) delBlock(h types.Hash) {
	ref, ok := e.Blocks[h]
	if !ok {
		return
	}
	if ref.Refs <= 1 {
		delete(e.Blocks, h)
		return
	}
	ref.Refs--
}

// Status describes the terminal outcome of an election, delivered once
// when the election is destroyed.
type Status struct {
	Error   bool
	Win     bool
	Confirm bool
	Block   *types.Block
}
