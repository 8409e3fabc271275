package election

import (
	"container/heap"

	"github.com/optional7/Raicoin/types"
)

// wakeHeap orders *Election by ascending Wakeup time. It is the ordered
// index of the dual-indexed container described in the design notes; the
// primary by-account index is the plain map in electionSet.
type wakeHeap []*Election

func (h wakeHeap) Len() int            { return len(h) }
func (h wakeHeap) Less(i, j int) bool  { return h[i].Wakeup.Before(h[j].Wakeup) }
func (h wakeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIndex = i
	h[j].heapIndex = j
}

func (h *wakeHeap) Push(x any) {
	e := x.(*Election)
	e.heapIndex = len(*h)
	*h = append(*h, e)
}

func (h *wakeHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.heapIndex = -1
	*h = old[:n-1]
	return e
}

// electionSet is the dual-indexed collection: O(1) lookup by account,
// ordered access by earliest wake-up.
type electionSet struct {
	byAccount map[types.Account]*Election
	byWakeup  wakeHeap
}

func newElectionSet() *electionSet {
	return &electionSet{
		byAccount: make(map[types.Account]*Election),
	}
}

func (s *electionSet) get(account types.Account) (*Election, bool) {
	e, ok := s.byAccount[account]
	return e, ok
}

func (s *electionSet) insert(e *Election) {
	s.byAccount[e.Account] = e
	heap.Push(&s.byWakeup, e)
}

// reschedule updates e's position in the wake-up index after its Wakeup
// field has been mutated by the caller.
func (s *electionSet) reschedule(e *Election) {
	heap.Fix(&s.byWakeup, e.heapIndex)
}

func (s *electionSet) remove(e *Election) {
	delete(s.byAccount, e.Account)
	if e.heapIndex >= 0 && e.heapIndex < len(s.byWakeup) {
		heap.Remove(&s.byWakeup, e.heapIndex)
	}
}

func (s *electionSet) len() int {
	return len(s.byAccount)
}

// earliest returns the election with the smallest Wakeup, if any.
func (s *electionSet) earliest() (*Election, bool) {
	if len(s.byWakeup) == 0 {
		return nil, false
	}
	return s.byWakeup[0], true
}
