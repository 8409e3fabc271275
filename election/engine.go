package election

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/optional7/Raicoin/types"
)

// StatusFunc is invoked once, off the worker goroutine is not guaranteed
// (it runs on the worker itself — keep it fast), when an Election is
// destroyed: confirmed, expired, or otherwise terminated.
type StatusFunc func(account types.Account, height uint64, status Status)

// ConflictFunc is invoked, on the worker goroutine, the instant a fork is
// latched for a representative: kept is the vote still counted toward
// tally, other is the one moved aside as conflicting evidence.
type ConflictFunc func(account types.Account, height uint64, rep types.Account, kept, other Vote, weight types.Amount)

// Engine is the dual-indexed collection of in-flight elections driven by
// a single worker goroutine. All election mutation happens under mu; the
// worker blocks on a timer sized to the earliest wakeup and is woken
// early by wakeCh whenever a caller inserts a sooner one.
type Engine struct {
	mu  sync.Mutex
	set *electionSet

	config  Config
	ledger  Ledger
	network Network
	local   LocalRepresentative
	onStatus   StatusFunc
	onConflict ConflictFunc

	weights *weightCache
	metrics *Metrics
	log     *zap.Logger

	checkConflict func(existing, incoming Vote) bool

	started bool
	stopped bool
	wakeCh  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewEngine builds an Engine. peers, used to solicit confirmations, and
// representative weights come from ledger; network carries broadcasts.
func NewEngine(config Config, ledger Ledger, network Network, local LocalRepresentative, metrics *Metrics, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		set:           newElectionSet(),
		config:        config,
		ledger:        ledger,
		network:       network,
		local:         local,
		weights:       newWeightCache(ledger),
		metrics:       metrics,
		log:           log,
		checkConflict: defaultCheckConflict,
		wakeCh:        make(chan struct{}, 1),
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
	}
}

// SetOnStatus registers the callback invoked when an election is
// destroyed.
func (e *Engine) SetOnStatus(fn StatusFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onStatus = fn
}

// SetOnConflict registers the callback invoked when a fork is latched.
func (e *Engine) SetOnConflict(fn ConflictFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onConflict = fn
}

// SetCheckConflict overrides the fork-detection predicate with one
// sourced from the embedding ledger (see design notes, Open Question).
func (e *Engine) SetCheckConflict(fn func(existing, incoming Vote) bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.checkConflict = fn
}

// defaultCheckConflict implements the fork rule: two votes from the same
// representative conflict when the existing vote's timestamp is greater
// than or equal to the incoming one's and the hashes differ. A strictly
// newer vote for a different block replaces the existing one instead.
func defaultCheckConflict(existing, incoming Vote) bool {
	return existing.Timestamp >= incoming.Timestamp && !incoming.Hash.Equal(existing.Hash)
}

// Start launches the worker goroutine.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return ErrAlreadyStarted
	}
	e.started = true
	go e.run()
	return nil
}

// Stop signals the worker to exit and waits for it to finish.
func (e *Engine) Stop() error {
	e.mu.Lock()
	if !e.started {
		e.mu.Unlock()
		return ErrNotStarted
	}
	e.stopped = true
	e.mu.Unlock()

	close(e.stopCh)
	<-e.doneCh
	return nil
}

// Add offers candidate blocks to the engine. For each block: if no
// Election exists for its account, one is created at the block's height
// with wakeup = now + NON_FORK_ELECTION_DELAY. If an Election already
// exists at the same height, the block is added to its candidate set.
// Blocks for any other height are ignored. Offered candidates start with
// zero refs; only votes add references.
func (e *Engine) Add(blocks []*types.Block) {
	e.mu.Lock()
	defer e.mu.Unlock()

	signalEarlier := false
	for _, b := range blocks {
		el, ok := e.set.get(b.Account)
		if !ok {
			el = newElection(b.Account, b.Height, time.Now().Add(NonForkElectionDelay))
			el.Blocks[b.Hash] = &BlockReference{Block: b}
			e.set.insert(el)
			signalEarlier = true
			continue
		}
		if el.Height != b.Height {
			continue
		}
		if _, known := el.Blocks[b.Hash]; !known {
			el.Blocks[b.Hash] = &BlockReference{Block: b}
		}
	}
	if signalEarlier {
		e.signalWake()
	}
}

// ProcessConfirm absorbs a confirmation vote from representative rep.
func (e *Engine) ProcessConfirm(rep types.Account, timestamp uint64, sig types.Signature, block *types.Block, weight types.Amount) {
	e.mu.Lock()

	el, ok := e.set.get(block.Account)
	if !ok || el.Height != block.Height {
		e.mu.Unlock()
		return
	}

	incoming := Vote{Timestamp: timestamp, Signature: sig, Hash: block.Hash}

	existing, hadVote := el.Votes[rep]
	if hadVote && !existing.LastVote.Hash.Equal(incoming.Hash) && e.checkConflict(existing.LastVote, incoming) {
		kept, other := e.latchConflict(el, rep, existing, incoming)
		account, height, cb := el.Account, el.Height, e.onConflict
		e.mu.Unlock()
		if cb != nil {
			cb(account, height, rep, kept, other, weight)
		}
		return
	}

	if hadVote {
		el.delBlock(existing.LastVote.Hash)
	}
	el.addBlock(block)

	el.Votes[rep] = &RepVoteInfo{
		ConflictFound: hadVote && existing.ConflictFound,
		Weight:        weight,
		LastVote:      incoming,
	}
	e.mu.Unlock()
}

// latchConflict implements the fork rule: the newer-timestamped vote
// (existing wins ties) remains last_vote; the other is recorded in
// Conflicts. Caller holds e.mu.
func (e *Engine) latchConflict(el *Election, rep types.Account, existing *RepVoteInfo, incoming Vote) (kept, other Vote) {
	el.ForkFound = true
	if e.metrics != nil {
		e.metrics.Forked.Inc()
	}

	kept = existing.LastVote
	other = incoming
	if incoming.Timestamp > existing.LastVote.Timestamp {
		kept, other = incoming, existing.LastVote
	}

	otherCopy := other
	el.Conflicts[rep] = &otherCopy
	existing.ConflictFound = true
	existing.LastVote = kept
	return kept, other
}

// ProcessConflict directly injects a fork proof: two validly signed
// votes from the same representative for different blocks.
func (e *Engine) ProcessConflict(rep types.Account, ts1, ts2 uint64, sig1, sig2 types.Signature, block1, block2 *types.Block, weight types.Amount) {
	e.mu.Lock()

	el, ok := e.set.get(block1.Account)
	if !ok || el.Height != block1.Height {
		e.mu.Unlock()
		return
	}

	el.ForkFound = true
	if e.metrics != nil {
		e.metrics.Forked.Inc()
	}

	v1 := Vote{Timestamp: ts1, Signature: sig1, Hash: block1.Hash}
	v2 := Vote{Timestamp: ts2, Signature: sig2, Hash: block2.Hash}

	kept, other := v1, v2
	keptBlock := block1
	if ts2 > ts1 {
		kept, other = v2, v1
		keptBlock = block2
	}

	el.addBlock(keptBlock)
	el.Votes[rep] = &RepVoteInfo{ConflictFound: true, Weight: weight, LastVote: kept}
	otherCopy := other
	el.Conflicts[rep] = &otherCopy

	account, height, cb := el.Account, el.Height, e.onConflict
	e.mu.Unlock()
	if cb != nil {
		cb(account, height, rep, kept, other, weight)
	}
}

// signalWake wakes the worker if it might be sleeping past a newer,
// sooner wakeup. Caller holds e.mu.
func (e *Engine) signalWake() {
	select {
	case e.wakeCh <- struct{}{}:
	default:
	}
}

func (e *Engine) run() {
	defer close(e.doneCh)
	for {
		e.mu.Lock()
		if e.stopped {
			e.mu.Unlock()
			return
		}
		el, ok := e.set.earliest()
		var wait time.Duration
		if !ok {
			wait = time.Hour
		} else {
			wait = time.Until(el.Wakeup)
		}
		e.mu.Unlock()

		if ok && wait <= 0 {
			e.processReady()
			continue
		}

		timer := time.NewTimer(wait)
		select {
		case <-e.wakeCh:
			timer.Stop()
		case <-timer.C:
		case <-e.stopCh:
			timer.Stop()
			return
		}
	}
}

// processReady pops the earliest election if it is actually due,
// processes it outside the lock, and either destroys it or reinserts it
// with its new wakeup.
func (e *Engine) processReady() {
	e.mu.Lock()
	el, ok := e.set.earliest()
	if !ok || el.Wakeup.After(time.Now()) {
		e.mu.Unlock()
		return
	}
	lag := time.Since(el.Wakeup)
	e.set.remove(el)
	e.mu.Unlock()

	if e.metrics != nil {
		e.metrics.WakeLag.Observe(lag.Seconds())
	}

	status, destroy := e.processElection(el)

	if destroy {
		e.log.Debug("election destroyed",
			zap.Stringer("account", el.Account),
			zap.Uint64("height", el.Height),
			zap.Bool("win", status.Win),
			zap.Bool("error", status.Error))
		e.mu.Lock()
		cb := e.onStatus
		e.mu.Unlock()
		if cb != nil {
			cb(el.Account, el.Height, status)
		}
		return
	}

	e.mu.Lock()
	if !e.stopped {
		e.set.insert(el)
		if earliest, ok := e.set.earliest(); ok && earliest == el {
			e.signalWake()
		}
	}
	e.mu.Unlock()
}
