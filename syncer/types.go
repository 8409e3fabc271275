package syncer

import "github.com/optional7/Raicoin/types"

// Status is the per-account sync state machine's current phase.
type Status int

const (
	// StatusQuery means a peer query is outstanding for this account.
	StatusQuery Status = iota
	// StatusProcess means a block has been submitted to the processor
	// and the syncer is waiting for its outcome.
	StatusProcess
)

func (s Status) String() string {
	if s == StatusProcess {
		return "process"
	}
	return "query"
}

// SyncInfo is the per-account pull-sync state.
type SyncInfo struct {
	Status   Status
	First    bool // true until the account's very first query has succeeded
	BatchID  uint32
	Height   uint64
	Previous types.Hash
	Current  types.Hash // set while Status == StatusProcess
}

// Stat holds observability counters: Total counts syncs started by Add
// with trackStat set (follow-up queries for later heights are not
// counted), and Miss counts first-queries that never found a block.
type Stat struct {
	Total uint64
	Miss  uint64
}
