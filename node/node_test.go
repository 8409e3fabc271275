package node

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/optional7/Raicoin/syncer"
	"github.com/optional7/Raicoin/types"
)

func acct(b byte) types.Account {
	buf := make([]byte, types.AccountSize)
	buf[0] = b
	return types.MustNewAccount(buf)
}

func hsh(b byte) types.Hash {
	buf := make([]byte, types.HashSize)
	buf[0] = b
	return types.MustNewHash(buf)
}

func TestNewAssignsDistinctRunIDs(t *testing.T) {
	n1 := New(DefaultConfig(), nil, nil)
	n2 := New(DefaultConfig(), nil, nil)
	require.NotEqual(t, n1.RunID, n2.RunID)
}

func TestNodeSyncsAccountThroughLedgerProcessor(t *testing.T) {
	n := New(DefaultConfig(), nil, nil)
	a := acct(1)
	h0 := hsh(0x10)

	require.NoError(t, n.Syncer.Add(a, 0, types.ZeroHash, true, syncer.DefaultBatchID))
	require.Equal(t, 1, n.Queries.Outstanding())

	block0 := &types.Block{Hash: h0, Account: a, Height: 0, Kind: types.BlockKindOpen}
	require.True(t, n.Queries.ResolveOldest(syncer.QueryAck{Status: syncer.QuerySuccess, Block: block0}))

	require.Eventually(t, func() bool {
		_, _, valid := n.Ledger.AccountInfoGet(context.Background(), a)
		return valid
	}, time.Second, time.Millisecond, "ledger append happens synchronously from the processor callback")

	height, hash, valid := n.Ledger.AccountInfoGet(context.Background(), a)
	require.True(t, valid)
	require.Equal(t, uint64(0), height)
	require.Equal(t, h0, hash)

	require.Equal(t, 1, n.Queries.Outstanding(), "syncer re-queried for the next height")
}

func TestNodeStartStop(t *testing.T) {
	n := New(DefaultConfig(), nil, nil)
	require.NoError(t, n.Start())
	require.NoError(t, n.Stop())
}
