package election

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/optional7/Raicoin/types"
)

func TestElectionSetOrdersByWakeup(t *testing.T) {
	s := newElectionSet()
	now := time.Now()

	a := newElection(types.MustNewAccount(bytesOf(1)), 1, now.Add(3*time.Second))
	b := newElection(types.MustNewAccount(bytesOf(2)), 1, now.Add(1*time.Second))
	c := newElection(types.MustNewAccount(bytesOf(3)), 1, now.Add(2*time.Second))

	s.insert(a)
	s.insert(b)
	s.insert(c)

	earliest, ok := s.earliest()
	require.True(t, ok)
	require.Equal(t, b.Account, earliest.Account)

	s.remove(b)
	earliest, ok = s.earliest()
	require.True(t, ok)
	require.Equal(t, c.Account, earliest.Account)
	require.Equal(t, 2, s.len())
}

func TestElectionSetGetByAccount(t *testing.T) {
	s := newElectionSet()
	acct := types.MustNewAccount(bytesOf(7))
	el := newElection(acct, 5, time.Now())
	s.insert(el)

	got, ok := s.get(acct)
	require.True(t, ok)
	require.Same(t, el, got)

	_, ok = s.get(types.MustNewAccount(bytesOf(9)))
	require.False(t, ok)
}

func bytesOf(b byte) []byte {
	buf := make([]byte, types.AccountSize)
	buf[0] = b
	return buf
}
