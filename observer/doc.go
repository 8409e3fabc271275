// Package observer provides a minimal thread-safe publish/subscribe bus.
// The block processor publishes its (result, block) outcome events here;
// the syncer's processor callback is, today, the bus's only subscriber,
// but nothing about Bus assumes that.
package observer
