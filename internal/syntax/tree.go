package syntax

import "strings"

// Tree is a read-only view of one parse tree node.
//
// Kind identifies the grammar rule (or KindTerminal for tokens), Children
// returns sub-nodes in source order, and Text returns the node's source text.
// A node with no children is a terminal.
type Tree interface {
	Kind() string
	Children() []Tree
	Text() string
}

// Rule kinds produced by Parse.
const (
	KindScript              = "script"
	KindMatchClause         = "match-clause"
	KindWhereClause         = "where-clause"
	KindReturnClause        = "return-clause"
	KindReturnItems         = "return-items"
	KindReturnItem          = "return-item"
	KindOrderClause         = "order-clause"
	KindSkipClause          = "skip-clause"
	KindLimitClause         = "limit-clause"
	KindPattern             = "pattern"
	KindPatternPart         = "pattern-part"
	KindPatternElement      = "pattern-element"
	KindNodePattern         = "node-pattern"
	KindRelationshipPattern = "relationship-pattern"
	KindExpression          = "expression"
	KindTerminal            = "terminal"
)

// Node is the concrete Tree built by Parse. Tests and adapters may also
// assemble trees by hand with NewNode and NewTerminal.
type Node struct {
	kind     string
	children []Tree
	text     string
}

// NewNode creates an interior node of the given kind.
func NewNode(kind string, children ...Tree) *Node {
	return &Node{kind: kind, children: children}
}

// NewTerminal creates a leaf holding one token's source text.
func NewTerminal(text string) *Node {
	return &Node{kind: KindTerminal, text: text}
}

// Kind implements Tree.
func (n *Node) Kind() string { return n.kind }

// Children implements Tree.
func (n *Node) Children() []Tree { return n.children }

// Text implements Tree. Interior nodes concatenate their terminals.
func (n *Node) Text() string {
	if len(n.children) == 0 {
		return n.text
	}
	var sb strings.Builder
	for _, c := range n.children {
		sb.WriteString(c.Text())
	}
	return sb.String()
}

func (n *Node) add(children ...Tree) {
	n.children = append(n.children, children...)
}

// IsTerminal reports whether t is a leaf.
func IsTerminal(t Tree) bool {
	return len(t.Children()) == 0
}

// Walk visits t and its descendants in pre-order (parents before children,
// children left to right). Returning false from fn skips that node's subtree.
func Walk(t Tree, fn func(Tree) bool) {
	if t == nil {
		return
	}
	if !fn(t) {
		return
	}
	for _, c := range t.Children() {
		Walk(c, fn)
	}
}

// FindFirst returns the first node in pre-order for which match is true, or nil.
func FindFirst(t Tree, match func(Tree) bool) Tree {
	var found Tree
	Walk(t, func(n Tree) bool {
		if found != nil {
			return false
		}
		if match(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindAll returns every node in pre-order for which match is true.
// Matches nested inside a match are included.
func FindAll(t Tree, match func(Tree) bool) []Tree {
	var out []Tree
	Walk(t, func(n Tree) bool {
		if match(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}
