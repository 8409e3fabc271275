package node

import (
	"go.uber.org/zap"

	"github.com/optional7/Raicoin/types"
)

// LoggingNetwork implements election.Network by logging what a real
// network layer would broadcast or solicit. Actual peer transport is
// out of scope for this module.
type LoggingNetwork struct {
	log *zap.Logger
}

// NewLoggingNetwork builds a LoggingNetwork.
func NewLoggingNetwork(log *zap.Logger) *LoggingNetwork {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoggingNetwork{log: log}
}

// BroadcastConfirm implements election.Network.
func (n *LoggingNetwork) BroadcastConfirm(account types.Account, height uint64, winner types.Hash) error {
	n.log.Debug("broadcast confirm",
		zap.Stringer("account", account),
		zap.Uint64("height", height),
		zap.Stringer("winner", winner))
	return nil
}

// RequestConfirm implements election.Network.
func (n *LoggingNetwork) RequestConfirm(account types.Account, height uint64, peers []types.Account) error {
	n.log.Debug("request confirm",
		zap.Stringer("account", account),
		zap.Uint64("height", height),
		zap.Int("peers", len(peers)))
	return nil
}
