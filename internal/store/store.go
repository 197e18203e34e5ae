package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/cypher2sql/internal/querysql"
)

// Driver names registered with database/sql.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

//go:embed movies.sql
var moviesSQL string

// MoviesScript creates and fills the people/movies example tables used by
// the CLI demo and the integration tests.
func MoviesScript() string {
	return moviesSQL
}

var driverAliases = map[string]string{
	"sqlite":     DriverSQLite,
	"sqlite3":    DriverSQLite,
	"postgres":   DriverPostgres,
	"postgresql": DriverPostgres,
	"mysql":      DriverMySQL,
}

// DriverByName resolves a driver name or alias (sqlite, postgresql).
func DriverByName(name string) (string, error) {
	if d, ok := driverAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return d, nil
	}
	names := make([]string, 0, len(driverAliases))
	for n := range driverAliases {
		names = append(names, n)
	}
	sort.Strings(names)
	return "", fmt.Errorf("unknown driver %q (want one of: %s)", name, strings.Join(names, ", "))
}

// Store runs rendered SQL against a database.
type Store struct {
	db     *sql.DB
	driver string
}

// Open connects to the database named by driver and dsn and verifies the
// connection.
//
// SQLite connections are limited to one so an in-memory database
// (":memory:") is shared by every query on the Store. MySQL DSNs are parsed
// before connecting so a malformed DSN fails without a network round trip.
func Open(driver, dsn string) (*Store, error) {
	driver, err := DriverByName(driver)
	if err != nil {
		return nil, err
	}

	if driver == DriverMySQL {
		if _, err := mysql.ParseDSN(dsn); err != nil {
			return nil, fmt.Errorf("invalid mysql dsn: %w", err)
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		if err := applyPragmas(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply pragmas: %w", err)
		}
	}

	return &Store{db: db, driver: driver}, nil
}

// OpenDB wraps an existing connection pool. driver selects the dialect.
func OpenDB(driver string, db *sql.DB) *Store {
	return &Store{db: db, driver: driver}
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Driver returns the resolved driver name.
func (s *Store) Driver() string {
	return s.driver
}

// Dialect returns the identifier quoting that matches the driver.
func (s *Store) Dialect() querysql.Dialect {
	switch s.driver {
	case DriverPostgres:
		return querysql.Postgres{}
	case DriverMySQL:
		return querysql.MySQL{}
	case DriverSQLite:
		return querysql.SQLite{}
	default:
		return querysql.Basic{}
	}
}

// ExecScript runs a script of one or more statements.
func (s *Store) ExecScript(ctx context.Context, script string) error {
	if _, err := s.db.ExecContext(ctx, script); err != nil {
		return fmt.Errorf("exec script: %w", err)
	}
	return nil
}

// ResultSet is a fully read query result.
type ResultSet struct {
	Columns []string
	Rows    [][]any
}

// Records returns the rows keyed by column name. When a column name repeats
// (t0.*, t1.* over tables with the same columns) the later value wins.
func (r *ResultSet) Records() []map[string]any {
	out := make([]map[string]any, 0, len(r.Rows))
	for _, row := range r.Rows {
		rec := make(map[string]any, len(r.Columns))
		for i, c := range r.Columns {
			rec[c] = row[i]
		}
		out = append(out, rec)
	}
	return out
}

// Query runs query and reads every row. []byte values are returned as
// strings.
//
// Returns an empty (non-nil) Rows slice when nothing matches.
func (s *Store) Query(ctx context.Context, query string, args ...any) (*ResultSet, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	result := &ResultSet{Columns: columns, Rows: [][]any{}}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return result, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}
