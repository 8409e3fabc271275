package node

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/optional7/Raicoin/types"
)

type accountHead struct {
	height uint64
	hash   types.Hash
}

// MemoryLedger is an in-memory stand-in for the real on-disk ledger,
// enough to satisfy election.Ledger and syncer.Ledger so this package
// can demonstrate real wiring rather than interfaces with nothing
// behind them. It is not a production store: no persistence, no
// concurrent-writer isolation beyond its own mutex.
type MemoryLedger struct {
	mu sync.RWMutex

	weights map[types.Account]types.Amount
	online  types.Amount

	heads      map[types.Account]accountHead
	blocks     map[types.Hash]*types.Block
	rewardable map[string]time.Time
}

// NewMemoryLedger builds an empty MemoryLedger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		weights:    make(map[types.Account]types.Amount),
		online:     types.ZeroAmount(),
		heads:      make(map[types.Account]accountHead),
		blocks:     make(map[types.Hash]*types.Block),
		rewardable: make(map[string]time.Time),
	}
}

// RepresentativeWeights implements election.Ledger.
func (l *MemoryLedger) RepresentativeWeights() map[types.Account]types.Amount {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[types.Account]types.Amount, len(l.weights))
	for a, w := range l.weights {
		out[a] = w
	}
	return out
}

// OnlineWeight implements election.Ledger.
func (l *MemoryLedger) OnlineWeight() types.Amount {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.online
}

// AccountInfoGet implements syncer.Ledger.
func (l *MemoryLedger) AccountInfoGet(ctx context.Context, account types.Account) (uint64, types.Hash, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	h, ok := l.heads[account]
	if !ok {
		return 0, types.ZeroHash, false
	}
	return h.height, h.hash, true
}

// BlockGet implements syncer.Ledger.
func (l *MemoryLedger) BlockGet(ctx context.Context, hash types.Hash) (*types.Block, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	b, ok := l.blocks[hash]
	if !ok {
		return nil, fmt.Errorf("block %s not found", hash)
	}
	return b, nil
}

// RewardableInfoGet implements syncer.Ledger.
func (l *MemoryLedger) RewardableInfoGet(ctx context.Context, rep types.Account, previous types.Hash) (time.Time, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	at, ok := l.rewardable[rewardKey(rep, previous)]
	return at, ok
}

// SetWeight seeds a representative's delegated weight.
func (l *MemoryLedger) SetWeight(rep types.Account, weight types.Amount) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.weights[rep] = weight
}

// SetOnlineWeight seeds the total online weight.
func (l *MemoryLedger) SetOnlineWeight(weight types.Amount) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.online = weight
}

// SetRewardable marks a representative's reward against previous as
// claimable at validTimestamp.
func (l *MemoryLedger) SetRewardable(rep types.Account, previous types.Hash, validTimestamp time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rewardable[rewardKey(rep, previous)] = validTimestamp
}

// Append appends block to account's chain and stores it for BlockGet,
// used by the wired BlockProcessor on a successful sync.
func (l *MemoryLedger) Append(block *types.Block) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.blocks[block.Hash] = block
	l.heads[block.Account] = accountHead{height: block.Height, hash: block.Hash}
}

func rewardKey(rep types.Account, previous types.Hash) string {
	return rep.String() + "/" + previous.String()
}
