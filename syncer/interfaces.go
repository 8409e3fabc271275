package syncer

import (
	"context"
	"time"

	"github.com/optional7/Raicoin/types"
)

// Ledger is the read-only ledger surface the syncer needs. The
// underlying storage and transaction model are out of scope here; ctx
// is used to scope the lifetime of whatever read access the embedding
// node performs.
type Ledger interface {
	// AccountInfoGet reports the account's current chain head. valid is
	// false for an account that has never been opened.
	AccountInfoGet(ctx context.Context, account types.Account) (headHeight uint64, headHash types.Hash, valid bool)
	// BlockGet resolves a block by hash, used to find a change block's
	// previous representative.
	BlockGet(ctx context.Context, hash types.Hash) (*types.Block, error)
	// RewardableInfoGet reports whether a representative has a reward
	// tied to previous that is or will become claimable, and when.
	RewardableInfoGet(ctx context.Context, rep types.Account, previous types.Hash) (validTimestamp time.Time, valid bool)
}

// BlockProcessor accepts blocks pulled from peers.
type BlockProcessor interface {
	Add(block *types.Block) error
}

// Operation identifies the kind of outcome the block processor reports.
type Operation int

const (
	OperationAppend Operation = iota
	OperationDrop
	OperationOther
)

// ErrorCode is the processor's detailed outcome for an Append/Drop.
type ErrorCode int

const (
	ErrorCodeSuccess ErrorCode = iota
	ErrorCodeExists
	ErrorCodeGapReceiveSource
	ErrorCodeGapRewardSource
	ErrorCodeUnrewardable
	ErrorCodeOther
)

// ProcessorResult is the event the block processor's observer bus
// carries.
type ProcessorResult struct {
	Operation Operation
	Code      ErrorCode
}

// QueryStatus is a single peer ack's outcome.
type QueryStatus int

const (
	QuerySuccess QueryStatus = iota
	QueryMiss
	QueryFork
	QueryPruned
	QueryTimeout
)

// QueryAck is one peer's response to an outstanding query.
type QueryAck struct {
	Status QueryStatus
	Block  *types.Block
}

// Disposition tells the query dispatcher whether to keep polling other
// peers (Continue) or stop (Finish).
type Disposition int

const (
	Continue Disposition = iota
	Finish
)

// QueryCallback is invoked once per peer ack until it returns Finish.
type QueryCallback func(ack QueryAck) Disposition

// BlockQueries is the asynchronous peer query surface.
type BlockQueries interface {
	QueryByHeight(account types.Account, height uint64, priority bool, cb QueryCallback)
	QueryByPrevious(account types.Account, height uint64, previous types.Hash, priority bool, cb QueryCallback)
	QueryByHash(hash types.Hash, priority bool, cb QueryCallback)
}
