package querysql

import (
	"errors"
	"strings"
)

// JoinKind is the SQL join operator.
type JoinKind string

const (
	InnerJoin JoinKind = "INNER"
	LeftJoin  JoinKind = "LEFT"
)

// JoinClause is one JOIN of a SelectQuery. On is an already-qualified
// predicate such as "t0.id = j2.person_id".
type JoinClause struct {
	Kind  JoinKind
	Table string
	Alias string
	On    string
}

// Inner creates an INNER JOIN clause.
func Inner(table, alias, on string) JoinClause {
	return JoinClause{Kind: InnerJoin, Table: table, Alias: alias, On: on}
}

// SelectQuery is the relational statement the translator produces: a root
// table and alias, ordered joins, ordered select columns (duplicates are
// kept) and an optional WHERE list.
type SelectQuery struct {
	Columns []string
	From    string
	Alias   string
	Joins   []JoinClause
	Where   []string
}

// SelectFrom starts a query over table under alias.
func SelectFrom(table, alias string) *SelectQuery {
	return &SelectQuery{From: table, Alias: alias}
}

// SelectAllFrom starts a query projecting alias.*.
func SelectAllFrom(table, alias string) *SelectQuery {
	return SelectFrom(table, alias).AddColumn(alias + ".*")
}

// AddColumn appends a select column.
func (q *SelectQuery) AddColumn(column string) *SelectQuery {
	q.Columns = append(q.Columns, column)
	return q
}

// AddJoin appends a join clause.
func (q *SelectQuery) AddJoin(j JoinClause) *SelectQuery {
	q.Joins = append(q.Joins, j)
	return q
}

// AddWhere appends a predicate. Predicates are joined with AND.
func (q *SelectQuery) AddWhere(predicate string) *SelectQuery {
	q.Where = append(q.Where, predicate)
	return q
}

// Render produces SQL text:
//
//	SELECT <cols> FROM <table> <alias>[ <KIND> JOIN <table> <alias> ON <pred>]*[ WHERE <p> AND ...]
//
// Table names go through d.QuoteIdentifier; columns and predicates are
// emitted as given. The WHERE clause is omitted when there are no
// predicates.
func (q *SelectQuery) Render(d Dialect) (string, error) {
	if d == nil {
		return "", errors.New("render select: nil dialect")
	}
	if q.From == "" {
		return "", errors.New("render select: no FROM table")
	}
	if len(q.Columns) == 0 {
		return "", errors.New("render select: no columns")
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(q.Columns, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(d.QuoteIdentifier(q.From))
	sb.WriteString(" ")
	sb.WriteString(q.Alias)

	for _, j := range q.Joins {
		sb.WriteString(" ")
		sb.WriteString(string(j.Kind))
		sb.WriteString(" JOIN ")
		sb.WriteString(d.QuoteIdentifier(j.Table))
		sb.WriteString(" ")
		sb.WriteString(j.Alias)
		sb.WriteString(" ON ")
		sb.WriteString(j.On)
	}

	if len(q.Where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(q.Where, " AND "))
	}
	return sb.String(), nil
}
