// Package store executes translated SQL through database/sql.
//
// Supported drivers:
//   - sqlite3 (github.com/mattn/go-sqlite3)
//   - postgres (github.com/lib/pq)
//   - mysql (github.com/go-sql-driver/mysql)
//
// A Store knows the Dialect of its driver, so a caller can translate with
// the quoting the database expects and run the result in one step. Query
// reads the whole result into a ResultSet; results are small by nature of
// the read-only pattern queries this module emits.
package store
