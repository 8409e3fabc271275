package election

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/optional7/Raicoin/types"
)

// weightSnapshot is one call's worth of the ledger's representative
// weight view.
type weightSnapshot struct {
	weights map[types.Account]types.Amount
	online  types.Amount
}

// weightCache memoizes Ledger.RepresentativeWeights()/OnlineWeight() per
// one-second bucket. A burst of elections waking in the same instant
// (common right after a quiet period) would otherwise each pay for a
// full representative-set read; bucketing by second lets them share one.
type weightCache struct {
	ledger Ledger
	cache  *lru.Cache[int64, weightSnapshot]
}

func newWeightCache(ledger Ledger) *weightCache {
	c, err := lru.New[int64, weightSnapshot](8)
	if err != nil {
		panic(err)
	}
	return &weightCache{ledger: ledger, cache: c}
}

func (w *weightCache) snapshot(now time.Time) weightSnapshot {
	bucket := now.Unix()
	if snap, ok := w.cache.Get(bucket); ok {
		return snap
	}
	snap := weightSnapshot{
		weights: w.ledger.RepresentativeWeights(),
		online:  w.ledger.OnlineWeight(),
	}
	w.cache.Add(bucket, snap)
	return snap
}
