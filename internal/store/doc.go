// Package store provides SQLite-backed persistence for the two things the
// engine's callers keep between runs: journal entries and recorded reading
// fingerprints.
//
// The engine itself stores nothing; everything here is owned by the caller.
//
// # Ordering
//
//   - Every row carries a seq INTEGER assigned at insert time
//   - Listings order by seq, never by timestamps
//   - Journal listings are newest first; readings are ordered by day
//
// # Idempotency
//
// RecordReading uses ON CONFLICT(day) DO NOTHING. The first fingerprint
// recorded for a day is the one later verifications compare against.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON
package store
