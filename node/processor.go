package node

import (
	"context"

	"github.com/optional7/Raicoin/observer"
	"github.com/optional7/Raicoin/syncer"
	"github.com/optional7/Raicoin/types"
)

// LedgerProcessor implements syncer.BlockProcessor by appending directly
// to a MemoryLedger and publishing the outcome on bus, closing the loop
// the real block-validation pipeline would otherwise own.
type LedgerProcessor struct {
	ledger *MemoryLedger
	bus    *observer.Bus[syncer.ProcessorEvent]
}

// NewLedgerProcessor builds a LedgerProcessor over ledger, publishing
// outcomes to bus.
func NewLedgerProcessor(ledger *MemoryLedger, bus *observer.Bus[syncer.ProcessorEvent]) *LedgerProcessor {
	return &LedgerProcessor{ledger: ledger, bus: bus}
}

// Add implements syncer.BlockProcessor: it always succeeds (no
// signature or balance validation here, see package doc) and reports
// ErrorCodeSuccess unless the block is already known.
func (p *LedgerProcessor) Add(block *types.Block) error {
	result := syncer.ProcessorResult{Operation: syncer.OperationAppend, Code: syncer.ErrorCodeSuccess}
	if _, err := p.ledger.BlockGet(context.Background(), block.Hash); err == nil {
		result.Code = syncer.ErrorCodeExists
	} else {
		p.ledger.Append(block)
	}
	p.bus.Publish(syncer.ProcessorEvent{Result: result, Block: block})
	return nil
}
