// Package querysql models relational statements and renders them to SQL
// text.
//
// SelectQuery is the translator's output: a root table, ordered joins and
// ordered select columns. Rendering quotes table names through a Dialect;
// column references and ON predicates are already alias-qualified and are
// written verbatim.
//
// The write builders (InsertQuery, UpdateQuery, DeleteQuery) accept input
// but their Render always returns WriteDisabledError. The module is
// read-only and this is a permanent contract.
package querysql
