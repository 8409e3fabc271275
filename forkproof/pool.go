package forkproof

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/optional7/Raicoin/election"
	"github.com/optional7/Raicoin/types"
)

// Pool collects the conflicting-vote proofs the election engine latches.
// It is meant to be wired directly to election.Engine.SetOnConflict.
type Pool struct {
	mu     sync.Mutex
	config Config

	pending   []*Proof
	seen      map[string]struct{}
	committed map[string]struct{}

	metrics *Metrics
	log     *zap.Logger
}

// NewPool creates an empty Pool.
func NewPool(config Config, metrics *Metrics, log *zap.Logger) *Pool {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pool{
		config:    config,
		seen:      make(map[string]struct{}),
		committed: make(map[string]struct{}),
		metrics:   metrics,
		log:       log,
	}
}

// OnConflict has the election.ConflictFunc signature; pass it directly to
// Engine.SetOnConflict to feed the pool from live elections.
func (p *Pool) OnConflict(account types.Account, height uint64, rep types.Account, kept, other election.Vote, weight types.Amount) {
	if _, err := p.Record(account, height, rep, kept, other, weight, time.Now()); err != nil {
		p.log.Debug("conflict not recorded",
			zap.Stringer("account", account),
			zap.Uint64("height", height),
			zap.Error(err))
	}
}

// Record adds a proof, rejecting a same-hash pair (not a conflict) and a
// proof already seen. now is the recording time, passed in rather than
// read from the clock so callers control testability.
func (p *Pool) Record(account types.Account, height uint64, rep types.Account, kept, other election.Vote, weight types.Amount, now time.Time) (*Proof, error) {
	if kept.Hash.Equal(other.Hash) {
		return nil, ErrSameBlockHash
	}

	proof := &Proof{
		Account:    account,
		Height:     height,
		Rep:        rep,
		Kept:       kept,
		Other:      other,
		Weight:     weight,
		RecordedAt: now,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	key := proof.key()
	if _, ok := p.seen[key]; ok {
		return nil, ErrDuplicateProof
	}

	if len(p.pending) >= MaxProofs {
		p.pruneOldestLocked(MaxProofs / 10)
	}

	p.seen[key] = struct{}{}
	p.pending = append(p.pending, proof)
	if p.metrics != nil {
		p.metrics.Recorded.Inc()
		p.metrics.Pending.Set(float64(len(p.pending)))
	}
	return proof, nil
}

// Prune drops proofs older than config.MaxAge as of now.
func (p *Pool) Prune(now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pruneExpiredLocked(now)
}

// Pending returns a snapshot of the proofs not yet marked committed.
func (p *Pool) Pending() []Proof {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Proof, len(p.pending))
	for i, pr := range p.pending {
		out[i] = *pr
	}
	return out
}

// MarkCommitted removes proofs, by key, from the pending set and records
// them as committed so a later Record of the same pair is rejected.
func (p *Pool) MarkCommitted(proofs []Proof) {
	p.mu.Lock()
	defer p.mu.Unlock()

	remove := make(map[string]struct{}, len(proofs))
	for i := range proofs {
		remove[proofs[i].key()] = struct{}{}
	}

	var kept []*Proof
	for _, pr := range p.pending {
		if _, ok := remove[pr.key()]; ok {
			p.committed[pr.key()] = struct{}{}
			continue
		}
		kept = append(kept, pr)
	}
	p.pending = kept
	if p.metrics != nil {
		p.metrics.Pending.Set(float64(len(p.pending)))
	}
}

// Size returns the number of pending proofs.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

// pruneExpiredLocked drops pending proofs older than config.MaxAge.
// Caller must hold p.mu.
func (p *Pool) pruneExpiredLocked(now time.Time) {
	var kept []*Proof
	for _, pr := range p.pending {
		if now.Sub(pr.RecordedAt) <= p.config.MaxAge {
			kept = append(kept, pr)
			continue
		}
		delete(p.seen, pr.key())
	}
	p.pending = kept
	if p.metrics != nil {
		p.metrics.Pending.Set(float64(len(p.pending)))
	}
}

// pruneOldestLocked removes the n oldest pending proofs to bound memory.
// Caller must hold p.mu.
func (p *Pool) pruneOldestLocked(n int) {
	if n <= 0 || len(p.pending) == 0 {
		return
	}
	sortByRecordedAt(p.pending)
	if n > len(p.pending) {
		n = len(p.pending)
	}
	for _, pr := range p.pending[:n] {
		delete(p.seen, pr.key())
	}
	p.pending = p.pending[n:]
}

func sortByRecordedAt(proofs []*Proof) {
	for i := 1; i < len(proofs); i++ {
		for j := i; j > 0 && proofs[j].RecordedAt.Before(proofs[j-1].RecordedAt); j-- {
			proofs[j], proofs[j-1] = proofs[j-1], proofs[j]
		}
	}
}
