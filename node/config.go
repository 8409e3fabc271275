package node

import (
	"github.com/optional7/Raicoin/election"
	"github.com/optional7/Raicoin/forkproof"
	"github.com/optional7/Raicoin/syncer"
)

// Config bundles the three subsystems' tunables under one value, the
// way an embedding binary would load them from a single config file.
type Config struct {
	Election  election.Config
	Syncer    syncer.Config
	Forkproof forkproof.Config
}

// DefaultConfig returns production-sized defaults for every subsystem.
func DefaultConfig() Config {
	return Config{
		Election:  election.DefaultConfig(),
		Syncer:    syncer.DefaultConfig(),
		Forkproof: forkproof.DefaultConfig(),
	}
}
