// Package election implements representative-weighted voting and fork
// resolution for a single chain height per account.
//
// An Election is created the first time the engine is asked to decide a
// block for an account. A single worker goroutine wakes the earliest-due
// election, re-tallies weighted votes across its candidate blocks,
// advances win/confirm counters, broadcasts or solicits confirmations,
// and reschedules under either the fork or non-fork backoff depending on
// whether a conflicting vote has been latched for this election.
//
// Elections are purely in-memory and transient: nothing here is
// persisted, and an Election's lifetime ends the moment it is confirmed,
// expires past its round cap, or the engine is stopped.
package election
