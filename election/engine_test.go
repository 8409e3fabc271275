package election

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/optional7/Raicoin/types"
)

type fakeLedger struct {
	weights map[types.Account]types.Amount
	online  types.Amount
}

func (f *fakeLedger) RepresentativeWeights() map[types.Account]types.Amount {
	return f.weights
}

func (f *fakeLedger) OnlineWeight() types.Amount {
	return f.online
}

type fakeNetwork struct {
	broadcasts int
	requests   int
}

func (f *fakeNetwork) BroadcastConfirm(types.Account, uint64, types.Hash) error {
	f.broadcasts++
	return nil
}

func (f *fakeNetwork) RequestConfirm(types.Account, uint64, []types.Account) error {
	f.requests++
	return nil
}

type noLocalRep struct{}

func (noLocalRep) IsRepresentative() bool                          { return false }
func (noLocalRep) Vote(types.Account, uint64) (Vote, bool)          { return Vote{}, false }

func newTestEngine(ledger *fakeLedger, net *fakeNetwork) *Engine {
	cfg := DefaultConfig()
	return NewEngine(cfg, ledger, net, noLocalRep{}, nil, nil)
}

func TestAddCreatesElectionAtNonForkDelay(t *testing.T) {
	e := newTestEngine(&fakeLedger{weights: map[types.Account]types.Amount{}, online: types.ZeroAmount()}, &fakeNetwork{})
	acct := account(1)
	b := &types.Block{Hash: hash(1), Account: acct, Height: 5}

	e.Add([]*types.Block{b})

	el, ok := e.set.get(acct)
	require.True(t, ok)
	require.Equal(t, uint64(5), el.Height)
	require.WithinDuration(t, time.Now().Add(NonForkElectionDelay), el.Wakeup, 500*time.Millisecond)
	require.Equal(t, uint32(0), el.Blocks[b.Hash].Refs, "no representative has voted yet")
}

func TestAddIgnoresBlockAtDifferentHeight(t *testing.T) {
	e := newTestEngine(&fakeLedger{}, &fakeNetwork{})
	acct := account(1)
	e.Add([]*types.Block{{Hash: hash(1), Account: acct, Height: 5}})
	e.Add([]*types.Block{{Hash: hash(2), Account: acct, Height: 6}})

	el, _ := e.set.get(acct)
	require.Len(t, el.Blocks, 1)
	_, has := el.Blocks[hash(2)]
	require.False(t, has)
}

func TestProcessConfirmRecordsVoteAndMovesRefs(t *testing.T) {
	e := newTestEngine(&fakeLedger{}, &fakeNetwork{})
	acct := account(1)
	rep := account(10)
	b1 := &types.Block{Hash: hash(1), Account: acct, Height: 5}
	b2 := &types.Block{Hash: hash(2), Account: acct, Height: 5}
	e.Add([]*types.Block{b1, b2})

	e.ProcessConfirm(rep, 100, types.Signature{}, b1, types.NewAmount(50))
	el, _ := e.set.get(acct)
	require.Equal(t, uint32(1), el.Blocks[b1.Hash].Refs)

	e.ProcessConfirm(rep, 200, types.Signature{}, b2, types.NewAmount(50))
	el, _ = e.set.get(acct)
	_, b1StillCandidate := el.Blocks[b1.Hash]
	require.False(t, b1StillCandidate, "old vote target loses its only ref and leaves the candidate set")
	require.Equal(t, uint32(1), el.Blocks[b2.Hash].Refs)
	require.Equal(t, hash(2), el.Votes[rep].LastVote.Hash)
}

func TestProcessConfirmLatchesConflictOnEqualTimestampDifferentHash(t *testing.T) {
	e := newTestEngine(&fakeLedger{}, &fakeNetwork{})
	acct := account(1)
	rep := account(10)
	b1 := &types.Block{Hash: hash(1), Account: acct, Height: 5}
	b2 := &types.Block{Hash: hash(2), Account: acct, Height: 5}
	e.Add([]*types.Block{b1, b2})

	e.ProcessConfirm(rep, 100, types.Signature{}, b1, types.NewAmount(50))
	e.ProcessConfirm(rep, 100, types.Signature{}, b2, types.NewAmount(50))

	el, _ := e.set.get(acct)
	require.True(t, el.ForkFound)
	require.True(t, el.Votes[rep].ConflictFound)
	_, hasConflict := el.Conflicts[rep]
	require.True(t, hasConflict)
}

func TestSetOnConflictFiresOnLatch(t *testing.T) {
	e := newTestEngine(&fakeLedger{}, &fakeNetwork{})
	acct := account(1)
	rep := account(10)
	b1 := &types.Block{Hash: hash(1), Account: acct, Height: 5}
	b2 := &types.Block{Hash: hash(2), Account: acct, Height: 5}
	e.Add([]*types.Block{b1, b2})

	var gotAccount types.Account
	var gotRep types.Account
	calls := 0
	e.SetOnConflict(func(account types.Account, height uint64, conflictRep types.Account, kept, other Vote, weight types.Amount) {
		calls++
		gotAccount = account
		gotRep = conflictRep
	})

	e.ProcessConfirm(rep, 100, types.Signature{}, b1, types.NewAmount(50))
	e.ProcessConfirm(rep, 100, types.Signature{}, b2, types.NewAmount(50))

	require.Equal(t, 1, calls)
	require.Equal(t, acct, gotAccount)
	require.Equal(t, rep, gotRep)
}

func TestProcessConflictLatchesForkDirectly(t *testing.T) {
	e := newTestEngine(&fakeLedger{}, &fakeNetwork{})
	acct := account(1)
	rep := account(10)
	b1 := &types.Block{Hash: hash(1), Account: acct, Height: 5}
	b2 := &types.Block{Hash: hash(2), Account: acct, Height: 5}
	e.Add([]*types.Block{b1})

	e.ProcessConflict(rep, 100, 200, types.Signature{}, types.Signature{}, b1, b2, types.NewAmount(50))

	el, _ := e.set.get(acct)
	require.True(t, el.ForkFound)
	require.Equal(t, hash(2), el.Votes[rep].LastVote.Hash, "higher timestamp vote kept as last_vote")
	conflict, ok := el.Conflicts[rep]
	require.True(t, ok)
	require.Equal(t, hash(1), conflict.Hash)
}

func TestProcessElectionConfirmsAfterEnoughRounds(t *testing.T) {
	rep1, rep2 := account(10), account(11)
	ledger := &fakeLedger{
		weights: map[types.Account]types.Amount{
			rep1: types.NewAmount(60),
			rep2: types.NewAmount(40),
		},
		online: types.NewAmount(100),
	}
	net := &fakeNetwork{}
	e := newTestEngine(ledger, net)
	acct := account(1)
	b1 := &types.Block{Hash: hash(1), Account: acct, Height: 5}
	e.Add([]*types.Block{b1})
	e.ProcessConfirm(rep1, 1, types.Signature{}, b1, types.NewAmount(60))
	e.ProcessConfirm(rep2, 1, types.Signature{}, b1, types.NewAmount(40))

	el, _ := e.set.get(acct)
	e.set.remove(el)

	_, destroy := e.processElection(el)
	require.False(t, destroy)
	require.Equal(t, uint32(1), el.Confirms)

	status, destroy := e.processElection(el)
	require.True(t, destroy)
	require.True(t, status.Win)
	require.True(t, status.Confirm)
	require.NotNil(t, status.Block)
	require.Equal(t, hash(1), status.Block.Hash)
}

func TestProcessElectionExpiresAfterRoundCap(t *testing.T) {
	ledger := &fakeLedger{weights: map[types.Account]types.Amount{}, online: types.ZeroAmount()}
	e := newTestEngine(ledger, &fakeNetwork{})
	cfg := e.config
	cfg.RoundsMax = 1
	e.config = cfg

	acct := account(1)
	b1 := &types.Block{Hash: hash(1), Account: acct, Height: 5}
	e.Add([]*types.Block{b1})
	el, _ := e.set.get(acct)
	e.set.remove(el)

	_, destroy := e.processElection(el)
	require.False(t, destroy)
	status, destroy := e.processElection(el)
	require.True(t, destroy)
	require.True(t, status.Error)
}
