package querysql

import (
	"errors"
	"fmt"
)

// Statement is anything that renders to SQL text.
type Statement interface {
	Render(d Dialect) (string, error)
}

var (
	_ Statement = (*SelectQuery)(nil)
	_ Statement = (*InsertQuery)(nil)
	_ Statement = (*UpdateQuery)(nil)
	_ Statement = (*DeleteQuery)(nil)
)

// WriteDisabledError is returned by every write statement's Render. The
// translator is read-only.
type WriteDisabledError struct {
	// Statement names the builder, e.g. "InsertQuery".
	Statement string
}

func (e *WriteDisabledError) Error() string {
	return fmt.Sprintf("write queries are disabled in read-only mode. %s is reserved for future enhancement", e.Statement)
}

// IsWriteDisabled reports whether err is a WriteDisabledError.
func IsWriteDisabled(err error) bool {
	var wd *WriteDisabledError
	return errors.As(err, &wd)
}

// assignment keeps column order stable for builders.
type assignment struct {
	Column     string
	Expression string
}

func setAssignment(list []assignment, column, expression string) []assignment {
	for i := range list {
		if list[i].Column == column {
			list[i].Expression = expression
			return list
		}
	}
	return append(list, assignment{Column: column, Expression: expression})
}

// InsertQuery collects column values for an INSERT.
type InsertQuery struct {
	Table  string
	values []assignment
}

// InsertInto starts an INSERT into table.
func InsertInto(table string) *InsertQuery {
	return &InsertQuery{Table: table}
}

// Value sets column to expression, replacing an earlier value.
func (q *InsertQuery) Value(column, expression string) *InsertQuery {
	q.values = setAssignment(q.values, column, expression)
	return q
}

// IsEmpty reports whether no values were set.
func (q *InsertQuery) IsEmpty() bool { return len(q.values) == 0 }

// Render always fails with WriteDisabledError.
func (q *InsertQuery) Render(Dialect) (string, error) {
	return "", &WriteDisabledError{Statement: "InsertQuery"}
}

// UpdateQuery collects assignments and predicates for an UPDATE.
type UpdateQuery struct {
	Table       string
	assignments []assignment
	where       []string
}

// UpdateTable starts an UPDATE of table.
func UpdateTable(table string) *UpdateQuery {
	return &UpdateQuery{Table: table}
}

// Set assigns expression to column, replacing an earlier assignment.
func (q *UpdateQuery) Set(column, expression string) *UpdateQuery {
	q.assignments = setAssignment(q.assignments, column, expression)
	return q
}

// Where appends a predicate.
func (q *UpdateQuery) Where(predicate string) *UpdateQuery {
	q.where = append(q.where, predicate)
	return q
}

// HasAssignments reports whether any column was set.
func (q *UpdateQuery) HasAssignments() bool { return len(q.assignments) > 0 }

// HasWhereClause reports whether any predicate was added.
func (q *UpdateQuery) HasWhereClause() bool { return len(q.where) > 0 }

// Render always fails with WriteDisabledError.
func (q *UpdateQuery) Render(Dialect) (string, error) {
	return "", &WriteDisabledError{Statement: "UpdateQuery"}
}

// DeleteQuery collects predicates for a DELETE.
type DeleteQuery struct {
	Table string
	where []string
}

// DeleteFrom starts a DELETE from table.
func DeleteFrom(table string) *DeleteQuery {
	return &DeleteQuery{Table: table}
}

// Where appends a predicate.
func (q *DeleteQuery) Where(predicate string) *DeleteQuery {
	q.where = append(q.where, predicate)
	return q
}

// HasWhereClause reports whether any predicate was added.
func (q *DeleteQuery) HasWhereClause() bool { return len(q.where) > 0 }

// Render always fails with WriteDisabledError.
func (q *DeleteQuery) Render(Dialect) (string, error) {
	return "", &WriteDisabledError{Statement: "DeleteQuery"}
}
