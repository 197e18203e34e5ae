package querysql

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lib/pq"
)

// Dialect is the identifier-quoting policy used by Render.
type Dialect interface {
	Name() string
	QuoteIdentifier(identifier string) string
}

// Basic wraps identifiers in double quotes without escaping.
type Basic struct{}

func (Basic) Name() string { return "basic" }

func (Basic) QuoteIdentifier(identifier string) string {
	return `"` + identifier + `"`
}

// Postgres quotes like lib/pq: double quotes, embedded quotes doubled.
type Postgres struct{}

func (Postgres) Name() string { return "postgres" }

func (Postgres) QuoteIdentifier(identifier string) string {
	return pq.QuoteIdentifier(identifier)
}

// MySQL quotes with backticks, embedded backticks doubled.
type MySQL struct{}

func (MySQL) Name() string { return "mysql" }

func (MySQL) QuoteIdentifier(identifier string) string {
	return "`" + strings.ReplaceAll(identifier, "`", "``") + "`"
}

// SQLite quotes with double quotes, embedded quotes doubled.
type SQLite struct{}

func (SQLite) Name() string { return "sqlite" }

func (SQLite) QuoteIdentifier(identifier string) string {
	return `"` + strings.ReplaceAll(identifier, `"`, `""`) + `"`
}

var dialects = map[string]Dialect{
	"basic":    Basic{},
	"postgres": Postgres{},
	"mysql":    MySQL{},
	"sqlite":   SQLite{},
}

// DialectByName returns the named dialect. Aliases: postgresql, sqlite3.
func DialectByName(name string) (Dialect, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "postgresql":
		key = "postgres"
	case "sqlite3":
		key = "sqlite"
	}
	if d, ok := dialects[key]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("unknown dialect %q (want one of %s)", name, strings.Join(DialectNames(), ", "))
}

// DialectNames lists the registered dialect names, sorted.
func DialectNames() []string {
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
