// Package database provides SQLite-based storage for logpuzzle run history.
//
// HistoryDB stores one row per recorded run: summary columns for listing
// plus the complete run report as JSON, so `logpuzzle history` can show
// earlier runs without touching the downloaded files.
//
// SQLite is used via modernc.org/sqlite, a CGO-free driver, so the binary
// cross-compiles without a C toolchain. The database is a single file in
// the XDG data directory.
package database
