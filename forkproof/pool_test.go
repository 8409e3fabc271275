package forkproof

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/optional7/Raicoin/election"
	"github.com/optional7/Raicoin/types"
)

func account(b byte) types.Account {
	buf := make([]byte, types.AccountSize)
	buf[0] = b
	return types.MustNewAccount(buf)
}

func hash(b byte) types.Hash {
	buf := make([]byte, types.HashSize)
	buf[0] = b
	return types.MustNewHash(buf)
}

func TestRecordRejectsSameBlockHash(t *testing.T) {
	p := NewPool(DefaultConfig(), nil, nil)
	v := election.Vote{Timestamp: 1, Hash: hash(1)}

	_, err := p.Record(account(1), 5, account(9), v, v, types.ZeroAmount(), time.Now())
	require.ErrorIs(t, err, ErrSameBlockHash)
}

func TestRecordRejectsDuplicateProof(t *testing.T) {
	p := NewPool(DefaultConfig(), nil, nil)
	a, rep := account(1), account(9)
	v1 := election.Vote{Timestamp: 1, Hash: hash(1)}
	v2 := election.Vote{Timestamp: 2, Hash: hash(2)}
	now := time.Now()

	_, err := p.Record(a, 5, rep, v1, v2, types.ZeroAmount(), now)
	require.NoError(t, err)

	_, err = p.Record(a, 5, rep, v2, v1, types.ZeroAmount(), now)
	require.ErrorIs(t, err, ErrDuplicateProof, "order-independent key catches the mirrored pair")
}

func TestPendingAndMarkCommitted(t *testing.T) {
	p := NewPool(DefaultConfig(), nil, nil)
	a, rep := account(1), account(9)
	v1 := election.Vote{Timestamp: 1, Hash: hash(1)}
	v2 := election.Vote{Timestamp: 2, Hash: hash(2)}
	now := time.Now()

	proof, err := p.Record(a, 5, rep, v1, v2, types.ZeroAmount(), now)
	require.NoError(t, err)
	require.Equal(t, 1, p.Size())

	p.MarkCommitted([]Proof{*proof})
	require.Equal(t, 0, p.Size())

	_, err = p.Record(a, 5, rep, v1, v2, types.ZeroAmount(), now)
	require.ErrorIs(t, err, ErrDuplicateProof, "committed proofs stay rejected")
}

func TestPruneDropsExpiredProofs(t *testing.T) {
	cfg := Config{MaxAge: time.Minute}
	p := NewPool(cfg, nil, nil)
	old := time.Now().Add(-time.Hour)

	_, err := p.Record(account(1), 5, account(9), election.Vote{Hash: hash(1)}, election.Vote{Hash: hash(2)}, types.ZeroAmount(), old)
	require.NoError(t, err)
	require.Equal(t, 1, p.Size())

	p.Prune(time.Now())
	require.Equal(t, 0, p.Size())
}

func TestOnConflictWiresElectionEngineCallback(t *testing.T) {
	p := NewPool(DefaultConfig(), nil, nil)
	a, rep := account(1), account(9)
	v1 := election.Vote{Timestamp: 1, Hash: hash(1)}
	v2 := election.Vote{Timestamp: 2, Hash: hash(2)}

	p.OnConflict(a, 5, rep, v1, v2, types.ZeroAmount())
	require.Equal(t, 1, p.Size())
}
