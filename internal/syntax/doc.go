// Package syntax turns Cypher query text into a generic parse tree.
//
// The tree is exposed only through the Tree interface (kind, children, text),
// which is all the pattern extractor in internal/cypher relies on. Any parser
// that can present its output in that shape (a hand-written one like the one
// in this package, or an adapter over a generated grammar) can feed the
// translator.
//
// # Grammar
//
// The parser accepts the read-only subset of Cypher the translator understands:
//
//	script       := clause+ EOF
//	clause       := [OPTIONAL] MATCH pattern [WHERE expr]
//	              | WHERE expr
//	              | RETURN [DISTINCT] ('*' | item (',' item)*) [ORDER BY expr] [SKIP expr] [LIMIT expr]
//	pattern      := part (',' part)*
//	part         := [ident '='] element
//	element      := node (rel node)*
//	node         := '(' ... ')'
//	rel          := ['<'] '-' ['[' ... ']'] '-' ['>']
//	item         := expr [AS ident]
//
// Node and relationship bodies are kept as flat token runs. Interpreting them
// (variables, labels, property maps) is the extractor's job.
//
// Write clauses (CREATE, MERGE, SET, DELETE, REMOVE) are rejected: the
// translator is read-only.
//
// # Text
//
// Text() of an interior node is the concatenation of its terminals' source
// text with whitespace dropped, matching how ANTLR's getText renders a rule
// context. "(p:Person {name: 'Ann'})" therefore reads "(p:Person{name:'Ann'})".
package syntax
