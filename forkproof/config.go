package forkproof

import "time"

// MaxProofs bounds memory use: once the pool holds this many proofs the
// oldest are pruned to make room, mirroring the election engine's own
// preference for bounded, amortized bookkeeping over unbounded growth.
const MaxProofs = 100000

// Config holds the fork-proof pool's tunables.
type Config struct {
	// MaxAge is how long a proof stays eligible for Pending once recorded.
	MaxAge time.Duration
}

// DefaultConfig returns production-sized defaults.
func DefaultConfig() Config {
	return Config{MaxAge: 48 * time.Hour}
}
