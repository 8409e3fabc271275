package syncer

import "golang.org/x/time/rate"

// DefaultBatchID is the reserved sentinel batch identifier used for
// syncs not tied to any caller-tracked batch.
const DefaultBatchID uint32 = 0

// MissRetryLimit is the number of consecutive MISS acks a query callback
// tolerates before treating the query as a definitive miss.
const MissRetryLimit = 5

// Config holds the syncer's tunables.
type Config struct {
	// BusySize caps the number of concurrent per-account syncs.
	BusySize int

	// QueryRateLimit bounds how fast the syncer dispatches new peer
	// queries; Burst allows a short burst above the steady rate (useful
	// right after a large SyncRelated fan-out).
	QueryRateLimit rate.Limit
	QueryBurst     int
}

// DefaultConfig returns production-sized defaults.
func DefaultConfig() Config {
	return Config{
		BusySize:       4096,
		QueryRateLimit: 200,
		QueryBurst:     50,
	}
}
