package node

import (
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/optional7/Raicoin/election"
	"github.com/optional7/Raicoin/forkproof"
	"github.com/optional7/Raicoin/observer"
	"github.com/optional7/Raicoin/syncer"
)

// Node wires the election engine, syncer and fork-proof pool to a single
// in-memory ledger, the way an embedding binary would wire them to its
// real storage and transport layers.
type Node struct {
	RunID uuid.UUID

	Ledger    *MemoryLedger
	Election  *election.Engine
	Syncer    *syncer.Syncer
	Forkproof *forkproof.Pool
	Queries   *ManualQueries

	log *zap.Logger
}

// New builds a fully wired Node. reg may be nil to skip metrics
// registration (e.g. in tests).
func New(config Config, reg prometheus.Registerer, log *zap.Logger) *Node {
	if log == nil {
		log = zap.NewNop()
	}
	runID := uuid.New()
	log = log.With(zap.Stringer("run_id", runID))

	ledger := NewMemoryLedger()
	network := NewLoggingNetwork(log)
	queries := NewManualQueries()
	bus := observer.NewBus[syncer.ProcessorEvent]()
	processor := NewLedgerProcessor(ledger, bus)

	electionMetrics := election.NewMetrics(reg, "raicoin")
	engine := election.NewEngine(config.Election, ledger, network, NoRepresentative{}, electionMetrics, log.Named("election"))

	forkMetrics := forkproof.NewMetrics(reg, "raicoin")
	pool := forkproof.NewPool(config.Forkproof, forkMetrics, log.Named("forkproof"))
	engine.SetOnConflict(pool.OnConflict)

	syncMetrics := syncer.NewMetrics(reg, "raicoin")
	sync := syncer.NewSyncer(config.Syncer, ledger, processor, queries, bus, syncMetrics, log.Named("syncer"))

	return &Node{
		RunID:     runID,
		Ledger:    ledger,
		Election:  engine,
		Syncer:    sync,
		Forkproof: pool,
		Queries:   queries,
		log:       log,
	}
}

// Start launches the election engine's worker goroutine. The syncer has
// no background goroutine of its own: it is driven entirely by Add,
// SyncAccount and the processor's observer callbacks.
func (n *Node) Start() error {
	return n.Election.Start()
}

// Stop tears the node down: stops the election engine's worker and
// unsubscribes the syncer from the processor bus.
func (n *Node) Stop() error {
	n.Syncer.Stop()
	return n.Election.Stop()
}
