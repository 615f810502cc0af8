// Package store provides SQLite-backed run history for generated spawn
// groups.
//
// Every generate run records:
//   - Runs: one row per run, ordered by a logical seq, never by timestamps
//   - Rosters: one row per area, slots stored as JSON, with a content hash
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Roster hashes are SHA-256 with domain separation, so identical rosters
// across runs share a hash and changed areas are easy to spot.
package store
