// Package client bootstraps the local persistence used by the easyinvoice
// CLI.
//
// # Overview
//
// The package provides:
//  1. InitDatabase / RunMigrations: open an SQLite database (pure-Go
//     modernc.org/sqlite driver) and apply the embedded goose migrations that
//     create the key/value table backing every record namespace.
//  2. InitRedis: connect to a Redis server used as an alternative key/value
//     backend.
//
// # Error Handling
//
// Connection failures to a remote backend are reported as ErrUnavailable,
// which callers can match with errors.Is.
package client
