package node

import (
	"sync"

	"github.com/optional7/Raicoin/syncer"
	"github.com/optional7/Raicoin/types"
)

// ManualQueries implements syncer.BlockQueries by holding outstanding
// callbacks until a test or operator resolves them with Resolve*. A real
// node would dispatch these over its peer transport instead.
type ManualQueries struct {
	mu      sync.Mutex
	pending map[uint64]syncer.QueryCallback
	next    uint64
}

// NewManualQueries builds an empty ManualQueries.
func NewManualQueries() *ManualQueries {
	return &ManualQueries{pending: make(map[uint64]syncer.QueryCallback)}
}

func (q *ManualQueries) register(cb syncer.QueryCallback) uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	id := q.next
	q.next++
	q.pending[id] = cb
	return id
}

// QueryByHeight implements syncer.BlockQueries.
func (q *ManualQueries) QueryByHeight(account types.Account, height uint64, priority bool, cb syncer.QueryCallback) {
	q.register(cb)
}

// QueryByPrevious implements syncer.BlockQueries.
func (q *ManualQueries) QueryByPrevious(account types.Account, height uint64, previous types.Hash, priority bool, cb syncer.QueryCallback) {
	q.register(cb)
}

// QueryByHash implements syncer.BlockQueries.
func (q *ManualQueries) QueryByHash(hash types.Hash, priority bool, cb syncer.QueryCallback) {
	q.register(cb)
}

// ResolveOldest delivers ack to the longest-outstanding query and drops
// it from the pending set if the callback returns Finish.
func (q *ManualQueries) ResolveOldest(ack syncer.QueryAck) bool {
	q.mu.Lock()
	if len(q.pending) == 0 {
		q.mu.Unlock()
		return false
	}
	var oldest uint64
	found := false
	for id := range q.pending {
		if !found || id < oldest {
			oldest, found = id, true
		}
	}
	cb := q.pending[oldest]
	q.mu.Unlock()

	if cb(ack) == syncer.Finish {
		q.mu.Lock()
		delete(q.pending, oldest)
		q.mu.Unlock()
	}
	return true
}

// Outstanding returns the number of queries awaiting resolution.
func (q *ManualQueries) Outstanding() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
