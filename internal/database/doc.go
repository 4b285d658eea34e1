// Package database provides SQLite-based storage for KeyHound scan
// history.
//
// Only masked summaries are persisted: timestamps, scan targets,
// file counts, and per-type finding counts. Raw artifact text and key
// material never reach the database, so a stolen history file
// discloses at most that a scan happened and what categories it found.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of
// other databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package database
