package election

import (
	"math/big"
	"time"

	"github.com/optional7/Raicoin/types"
)

// processElection runs the ten-step per-wake algorithm. It returns the
// terminal Status and true if the election should be destroyed, or a
// zero Status and false if it should be rescheduled (el.Wakeup is
// updated in place either way it matters for the destroy=false case).
func (e *Engine) processElection(el *Election) (Status, bool) {
	now := time.Now()

	// 1. Current representative weights and total online weight.
	snap := e.weights.snapshot(now)

	// 2. Tally.
	result := tally(el, snap.weights)

	// 3. Track leading-block stability.
	if result.found {
		if el.Winner.IsZero() || !el.Winner.Equal(result.leader) {
			el.Winner = result.leader
			el.Wins = 1
		} else {
			el.Wins++
		}
	}

	// 4. Confirmation threshold check. A candidate with no real backing
	// (zero online weight, or zero weight behind the leader — no
	// representative has actually voted for it) can never clear the
	// threshold, no matter how small the ratio: ceil(0 * n/d) is 0, and
	// ceil(0)>=0 is trivially satisfiable otherwise.
	threshold := confirmThreshold(snap.online, e.config.ConfirmNumerator, e.config.ConfirmDenominator)
	backed := result.found && !snap.online.IsZero() && !result.leaderWeight.IsZero()
	if backed && result.leaderWeight.GreaterOrEqual(threshold) {
		el.Confirms++
	} else {
		el.Confirms = 0
	}

	// 5. Confirmed?
	if el.Confirms >= e.config.ConfirmsRequired {
		if e.metrics != nil {
			e.metrics.Confirmed.Inc()
		}
		var block *types.Block
		if ref, ok := el.Blocks[el.Winner]; ok {
			block = ref.Block
		}
		return Status{Win: true, Confirm: true, Block: block}, true
	}

	// 6. Broadcast our vote, or request confirmations from reps who
	// haven't voted yet.
	e.solicitOrBroadcast(el, snap.weights)

	// 7. Round counters.
	el.Rounds++
	if el.ForkFound {
		el.RoundsFork++
	}

	// 8. Timeouts.
	if el.ForkFound {
		if el.RoundsFork > e.config.RoundsForkMax {
			if e.metrics != nil {
				e.metrics.Expired.Inc()
			}
			return Status{Error: true}, true
		}
	} else if el.Rounds > e.config.RoundsMax {
		if e.metrics != nil {
			e.metrics.Expired.Inc()
		}
		return Status{Error: true}, true
	}

	// 9. Next wakeup.
	el.Wakeup = nextWakeup(el, now)

	return Status{}, false
}

// confirmThreshold computes ceil(online * numerator / denominator) so
// that an exact fractional split still needs at least the stated share,
// never rounds the bar down.
func confirmThreshold(online types.Amount, numerator, denominator uint64) types.Amount {
	n := new(big.Int).Mul(online.BigInt(), new(big.Int).SetUint64(numerator))
	d := new(big.Int).SetUint64(denominator)
	q, r := new(big.Int).QuoRem(n, d, new(big.Int))
	if r.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return types.NewAmountFromBigInt(q)
}

// nextWakeup implements the fork/non-fork backoff schedule: the first
// wake after a state change uses the *_DELAY, subsequent ones use the
// matching *_INTERVAL.
func nextWakeup(el *Election, now time.Time) time.Time {
	if el.ForkFound {
		if el.RoundsFork <= 1 {
			return now.Add(ForkElectionDelay)
		}
		return now.Add(ForkElectionInterval)
	}
	if el.Rounds <= 1 {
		return now.Add(NonForkElectionDelay)
	}
	return now.Add(NonForkElectionInterval)
}

// solicitOrBroadcast implements step 6: if the local node is a
// representative holding an eligible, uncast vote for this
// account/height, broadcast it; otherwise ask the known representatives
// who have not yet voted in this election to confirm.
func (e *Engine) solicitOrBroadcast(el *Election, weights map[types.Account]types.Amount) {
	if e.local != nil && e.local.IsRepresentative() {
		if _, ok := e.local.Vote(el.Account, el.Height); ok {
			_ = e.network.BroadcastConfirm(el.Account, el.Height, el.Winner)
			return
		}
	}

	outstanding := make([]types.Account, 0)
	for rep := range weights {
		if _, voted := el.Votes[rep]; !voted {
			outstanding = append(outstanding, rep)
		}
	}
	if len(outstanding) > 0 {
		_ = e.network.RequestConfirm(el.Account, el.Height, outstanding)
	}
}
