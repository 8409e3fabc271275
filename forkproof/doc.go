// Package forkproof keeps a bounded, age-pruned record of the conflicting
// votes the election engine latches, so a node can surface or gossip
// proof that a representative double-voted.
package forkproof
