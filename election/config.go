package election

import "time"

// Timing constants from the embedding ledger's fork-vs-non-fork wake-up
// schedule. A forked election backs off hard: it is unlikely to resolve
// quickly, and busy-polling it wastes tally work.
const (
	ForkElectionDelay       = 60 * time.Second
	ForkElectionInterval    = 30 * time.Second
	NonForkElectionDelay    = 1 * time.Second
	NonForkElectionInterval = 1 * time.Second
)

// Config holds node-supplied tunables the spec leaves as "node
// configuration": the confirmation threshold ratio, round caps, and the
// number of consecutive confirming rounds required before an election is
// considered won. These are Open Questions in the source spec resolved
// here with conservative production-sized defaults (see DESIGN.md).
type Config struct {
	// ConfirmNumerator / ConfirmDenominator express the supermajority
	// threshold as a fraction of online weight, e.g. 2/3.
	ConfirmNumerator   uint64
	ConfirmDenominator uint64

	// ConfirmsRequired is the number of consecutive wake-ups the winner
	// must clear the confirmation threshold before the election is
	// declared won.
	ConfirmsRequired uint32

	// RoundsMax is the soft cap on total wake-ups before a non-forked
	// election is declared unresolved.
	RoundsMax uint32

	// RoundsForkMax is the soft cap on wake-ups since fork detection
	// before a forked election is declared unresolved.
	RoundsForkMax uint32
}

// DefaultConfig returns the engine's default tunables.
func DefaultConfig() Config {
	return Config{
		ConfirmNumerator:   2,
		ConfirmDenominator: 3,
		ConfirmsRequired:   2,
		RoundsMax:          1000,
		RoundsForkMax:      2000,
	}
}

// ValidateBasic performs basic sanity checks on the configuration.
func (c Config) ValidateBasic() error {
	if c.ConfirmDenominator == 0 || c.ConfirmNumerator == 0 {
		return ErrInvalidConfig
	}
	if c.ConfirmNumerator > c.ConfirmDenominator {
		return ErrInvalidConfig
	}
	if c.ConfirmsRequired == 0 {
		return ErrInvalidConfig
	}
	return nil
}
