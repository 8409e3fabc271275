// Package node wires the election engine, syncer and fork-proof pool
// together behind a single concrete Ledger/Network implementation, the
// way an embedding binary would. It is a reference wiring, not a real
// storage or networking layer.
package node
