package syncer

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/optional7/Raicoin/observer"
	"github.com/optional7/Raicoin/types"
)

// ProcessorEvent is what the block processor's observer bus carries: one
// outcome for one block.
type ProcessorEvent struct {
	Result ProcessorResult
	Block  *types.Block
}

// Syncer drives per-account pull-sync. It owns syncs, queries and stat
// under a single mutex; callbacks arrive on whatever goroutine the
// query/processor pipeline runs on.
type Syncer struct {
	mu          sync.Mutex
	syncs       map[types.Account]*SyncInfo
	queries     map[uint64]uint32
	nextQueryID uint64
	stat        Stat

	config    Config
	ledger    Ledger
	processor BlockProcessor
	queriesIF BlockQueries
	limiter   *rate.Limiter

	alive      atomic.Bool
	unsubscribe func()

	metrics *Metrics
	log     *zap.Logger
}

// NewSyncer builds a Syncer and subscribes its processor callback to
// bus, the sole writer of PROCESS→QUERY transitions.
func NewSyncer(config Config, ledger Ledger, processor BlockProcessor, queries BlockQueries, bus *observer.Bus[ProcessorEvent], metrics *Metrics, log *zap.Logger) *Syncer {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Syncer{
		syncs:     make(map[types.Account]*SyncInfo),
		queries:   make(map[uint64]uint32),
		config:    config,
		ledger:    ledger,
		processor: processor,
		queriesIF: queries,
		limiter:   rate.NewLimiter(config.QueryRateLimit, config.QueryBurst),
		metrics:   metrics,
		log:       log,
	}
	s.alive.Store(true)
	s.unsubscribe = bus.Subscribe(s.processorCallback)
	return s
}

// Stop marks the syncer dead so late callbacks return quiet completion,
// unsubscribes from the processor's observer bus, and drops every
// tracked sync/query so Finished reports true for any batch once Stop
// returns.
func (s *Syncer) Stop() {
	s.alive.Store(false)
	if s.unsubscribe != nil {
		s.unsubscribe()
	}

	s.mu.Lock()
	s.syncs = make(map[types.Account]*SyncInfo)
	s.queries = make(map[uint64]uint32)
	s.updateActiveMetric()
	s.mu.Unlock()
}

// Add begins a pull-sync for account at height with predecessor
// previous, unless one is already pending. When previous is zero or
// height is zero the first query is by height; otherwise by previous.
func (s *Syncer) Add(account types.Account, height uint64, previous types.Hash, trackStat bool, batchID uint32) error {
	s.mu.Lock()
	if _, exists := s.syncs[account]; exists {
		s.mu.Unlock()
		return ErrAlreadySyncing
	}
	if len(s.syncs) >= s.config.BusySize {
		s.mu.Unlock()
		return ErrBusy
	}

	info := &SyncInfo{
		Status:   StatusQuery,
		First:    true,
		BatchID:  batchID,
		Height:   height,
		Previous: previous,
	}
	s.syncs[account] = info
	if trackStat {
		s.stat.Total++
	}
	s.updateActiveMetric()
	s.mu.Unlock()

	s.dispatchQuery(account, info, batchID)
	return nil
}

// SyncAccount looks up account's chain head and starts (or continues) a
// sync from the right place: height 0 for a never-opened account, or
// head_height+1 otherwise.
func (s *Syncer) SyncAccount(ctx context.Context, account types.Account, batchID uint32) error {
	headHeight, headHash, valid := s.ledger.AccountInfoGet(ctx, account)
	if !valid {
		return s.Add(account, 0, types.ZeroHash, false, batchID)
	}
	return s.Add(account, headHeight+1, headHash, false, batchID)
}

// Busy reports whether the syncer is at its concurrency cap.
func (s *Syncer) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.syncs) >= s.config.BusySize
}

// Empty reports whether there are no in-flight syncs.
func (s *Syncer) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.syncs) == 0
}

// Size returns the number of in-flight per-account syncs.
func (s *Syncer) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.syncs)
}

// Queries returns the number of outstanding peer queries.
func (s *Syncer) Queries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queries)
}

// Finished reports whether no in-flight sync and no outstanding query
// references batchID.
func (s *Syncer) Finished(batchID uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, info := range s.syncs {
		if info.BatchID == batchID {
			return false
		}
	}
	for _, b := range s.queries {
		if b == batchID {
			return false
		}
	}
	return true
}

// Stat returns a snapshot of the observability counters.
func (s *Syncer) Stat() Stat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stat
}

// ResetStat zeroes the counters and clears every account's First flag
// so a subsequent miss on an account already mid-sync doesn't inflate
// the fresh stat window.
func (s *Syncer) ResetStat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stat = Stat{}
	for _, info := range s.syncs {
		info.First = false
	}
}

// Erase drops account's sync entry, used by callbacks on cancellation.
func (s *Syncer) Erase(account types.Account) {
	s.mu.Lock()
	delete(s.syncs, account)
	s.updateActiveMetric()
	s.mu.Unlock()
}

// EraseQuery drops a single outstanding query registration.
func (s *Syncer) EraseQuery(queryID uint64) {
	s.mu.Lock()
	delete(s.queries, queryID)
	s.mu.Unlock()
}

func (s *Syncer) updateActiveMetric() {
	if s.metrics != nil {
		s.metrics.Active.Set(float64(len(s.syncs)))
	}
}

// addQuery allocates the next query id, skipping any still in use, and
// registers its batch. Caller must not hold s.mu.
func (s *Syncer) addQuery(batchID uint32) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		id := s.nextQueryID
		s.nextQueryID++
		if _, exists := s.queries[id]; !exists {
			s.queries[id] = batchID
			return id
		}
	}
}

// dispatchQuery issues the next peer query for account per its current
// SyncInfo: by height if there is no known predecessor, by previous
// otherwise.
func (s *Syncer) dispatchQuery(account types.Account, info *SyncInfo, batchID uint32) {
	_ = s.limiter.Wait(context.Background())

	queryID := s.addQuery(batchID)
	if s.metrics != nil {
		s.metrics.Queries.Inc()
	}

	cb := s.queryCallbackByAccount(account, queryID)
	if info.Height == 0 || info.Previous.IsZero() {
		s.queriesIF.QueryByHeight(account, info.Height, false, cb)
		return
	}
	s.queriesIF.QueryByPrevious(account, info.Height, info.Previous, false, cb)
}

// blockQueryByHash issues a by-hash discovery query, used to resolve the
// account behind a send/reward source the local ledger doesn't know yet.
func (s *Syncer) blockQueryByHash(hash types.Hash, batchID uint32) {
	_ = s.limiter.Wait(context.Background())

	queryID := s.addQuery(batchID)
	if s.metrics != nil {
		s.metrics.Queries.Inc()
	}
	s.queriesIF.QueryByHash(hash, true, s.queryCallbackByHash(queryID))
}

// queryCallbackByAccount implements the by-account query ack handling:
// SUCCESS transitions QUERY→PROCESS and hands the block to the block
// processor; FORK drops the sync; MISS retries up to MissRetryLimit
// times before counting as a definitive miss; PRUNED/TIMEOUT retry
// indefinitely against other peers.
func (s *Syncer) queryCallbackByAccount(account types.Account, queryID uint64) QueryCallback {
	misses := 0
	return func(ack QueryAck) Disposition {
		if !s.alive.Load() {
			return Finish
		}

		switch ack.Status {
		case QuerySuccess:
			s.onAccountQuerySuccess(account, queryID, ack.Block)
			return Finish

		case QueryFork:
			s.Erase(account)
			s.EraseQuery(queryID)
			return Finish

		case QueryMiss:
			misses++
			if misses >= MissRetryLimit {
				s.onAccountQueryMiss(account, queryID)
				return Finish
			}
			return Continue

		case QueryPruned, QueryTimeout:
			return Continue

		default:
			s.Erase(account)
			s.EraseQuery(queryID)
			return Finish
		}
	}
}

func (s *Syncer) onAccountQuerySuccess(account types.Account, queryID uint64, block *types.Block) {
	s.mu.Lock()
	info, ok := s.syncs[account]
	if !ok || block.Height != info.Height {
		delete(s.syncs, account)
		s.updateActiveMetric()
		s.mu.Unlock()
		s.EraseQuery(queryID)
		return
	}
	info.First = false
	info.Status = StatusProcess
	info.Current = block.Hash
	s.mu.Unlock()

	s.EraseQuery(queryID)
	_ = s.processor.Add(block)
}

func (s *Syncer) onAccountQueryMiss(account types.Account, queryID uint64) {
	s.mu.Lock()
	if info, ok := s.syncs[account]; ok && info.First {
		s.stat.Miss++
		if s.metrics != nil {
			s.metrics.Misses.Inc()
		}
	}
	delete(s.syncs, account)
	s.updateActiveMetric()
	s.mu.Unlock()
	s.EraseQuery(queryID)
}

// queryCallbackByHash implements the by-hash query ack handling used to
// discover the account behind a send/reward source: SUCCESS resolves
// the owning account and starts (or continues) its sync; MISS applies
// the same retry cap but never touches syncs.
func (s *Syncer) queryCallbackByHash(queryID uint64) QueryCallback {
	misses := 0
	return func(ack QueryAck) Disposition {
		if !s.alive.Load() {
			return Finish
		}

		switch ack.Status {
		case QuerySuccess:
			s.mu.Lock()
			batchID := s.queries[queryID]
			s.mu.Unlock()
			s.EraseQuery(queryID)
			_ = s.SyncAccount(context.Background(), ack.Block.Account, batchID)
			return Finish

		case QueryMiss:
			misses++
			if misses >= MissRetryLimit {
				s.EraseQuery(queryID)
				return Finish
			}
			return Continue

		case QueryTimeout, QueryFork, QueryPruned:
			return Continue

		default:
			s.EraseQuery(queryID)
			return Finish
		}
	}
}

// processorCallback is the block processor observer bus subscriber: the
// sole writer of PROCESS→QUERY transitions.
func (s *Syncer) processorCallback(event ProcessorEvent) {
	if !s.alive.Load() {
		return
	}
	if event.Result.Operation != OperationAppend && event.Result.Operation != OperationDrop {
		return
	}
	block := event.Block

	s.mu.Lock()
	info, ok := s.syncs[block.Account]
	if !ok || info.Status != StatusProcess || !info.Current.Equal(block.Hash) {
		s.mu.Unlock()
		return
	}

	if event.Result.Operation == OperationDrop {
		info.Status = StatusQuery
		info.Current = types.ZeroHash
		batchID := info.BatchID
		s.mu.Unlock()
		s.dispatchQuery(block.Account, info, batchID)
		return
	}

	switch event.Result.Code {
	case ErrorCodeSuccess, ErrorCodeExists:
		info.Height = block.Height + 1
		info.Previous = block.Hash
		info.Current = types.ZeroHash
		info.Status = StatusQuery
		batchID := info.BatchID
		s.mu.Unlock()
		s.dispatchQuery(block.Account, info, batchID)
		s.syncRelated(block, batchID)

	case ErrorCodeGapReceiveSource, ErrorCodeGapRewardSource, ErrorCodeUnrewardable:
		batchID := info.BatchID
		delete(s.syncs, block.Account)
		s.updateActiveMetric()
		s.mu.Unlock()
		s.blockQueryByHash(block.Link, batchID)

	default:
		delete(s.syncs, block.Account)
		s.updateActiveMetric()
		s.mu.Unlock()
	}
}

// syncRelated fans a successfully appended block out to the accounts it
// references: a send's destination, and a representative whose reward
// has matured.
func (s *Syncer) syncRelated(block *types.Block, batchID uint32) {
	ctx := context.Background()

	if block.Kind == types.BlockKindSend {
		_ = s.SyncAccount(ctx, types.Account(block.Link), batchID)
		if s.metrics != nil {
			s.metrics.Related.Inc()
		}
	}

	if !block.HasRepresentative() || block.Height == 0 {
		return
	}

	rep := block.Representative
	if block.Kind == types.BlockKindChange {
		prev, err := s.ledger.BlockGet(ctx, block.Previous)
		if err != nil || prev == nil {
			// Can't resolve the representative this change superseded;
			// block.Representative is the *new* one, not a safe stand-in,
			// so there is nothing to reward-sync here.
			return
		}
		rep = prev.Representative
	}

	validTimestamp, valid := s.ledger.RewardableInfoGet(ctx, rep, block.Previous)
	if !valid || validTimestamp.After(time.Now()) {
		return
	}
	_ = s.SyncAccount(ctx, rep, batchID)
	if s.metrics != nil {
		s.metrics.Related.Inc()
	}
}
