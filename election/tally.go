package election

import "github.com/optional7/Raicoin/types"

// tallyResult is the outcome of summing RepVoteInfo weights per
// candidate block for one wake-up.
type tallyResult struct {
	leader       types.Hash
	leaderWeight types.Amount
	found        bool
}

// tally sums the weight of every representative's last vote per
// candidate block hash and returns the leader, breaking ties
// deterministically by the lexicographically smaller hash. It never
// relies on map iteration order.
func tally(e *Election, weights map[types.Account]types.Amount) tallyResult {
	totals := make(map[types.Hash]types.Amount, len(e.Blocks))
	for h := range e.Blocks {
		totals[h] = types.ZeroAmount()
	}

	for rep, info := range e.Votes {
		w, ok := weights[rep]
		if !ok {
			w = info.Weight
		}
		h := info.LastVote.Hash
		totals[h] = totals[h].Add(w)
	}

	var result tallyResult
	for h, w := range totals {
		if !result.found {
			result = tallyResult{leader: h, leaderWeight: w, found: true}
			continue
		}
		switch w.Cmp(result.leaderWeight) {
		case 1:
			result = tallyResult{leader: h, leaderWeight: w, found: true}
		case 0:
			if h.Less(result.leader) {
				result.leader = h
			}
		}
	}
	return result
}
