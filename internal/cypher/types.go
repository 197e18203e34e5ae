package cypher

// Direction is the arrow direction of a relationship pattern.
type Direction int

const (
	// Undirected is a relationship written without an arrow: (a)-[r]-(b).
	Undirected Direction = iota

	// LeftToRight is (a)-[r]->(b).
	LeftToRight

	// RightToLeft is (a)<-[r]-(b).
	RightToLeft
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case LeftToRight:
		return "LEFT_TO_RIGHT"
	case RightToLeft:
		return "RIGHT_TO_LEFT"
	default:
		return "UNDIRECTED"
	}
}

// Node is one matched node. An empty Variable is an anonymous node and an
// empty Label must be inferred from adjacent edges. Identity is positional.
type Node struct {
	Variable string
	Label    string
}

// Edge is one matched relationship.
type Edge struct {
	Variable  string
	Type      string
	Direction Direction
}

// Pattern is a linear chain: edge i connects node i and node i+1, so a
// well-formed pattern has len(Edges) == len(Nodes)-1.
type Pattern struct {
	Nodes []Node
	Edges []Edge
}

// NodeAt returns the node at index i.
func (p Pattern) NodeAt(i int) Node {
	return p.Nodes[i]
}

// EdgeAt returns the edge at index i.
func (p Pattern) EdgeAt(i int) Edge {
	return p.Edges[i]
}

// IsLinear reports whether the edge count matches the node count.
func (p Pattern) IsLinear() bool {
	return len(p.Nodes) > 0 && len(p.Edges) == len(p.Nodes)-1
}

// ReturnItem is one projection: a variable and an optional property. An
// empty Property selects all columns of the referenced entity.
type ReturnItem struct {
	Variable string
	Property string
}

// String renders the item the way it was written.
func (r ReturnItem) String() string {
	if r.Property == "" {
		return r.Variable
	}
	return r.Variable + "." + r.Property
}

// Query is a parsed read query: the raw text, the extracted patterns (at
// most one is extracted) and the projection list in RETURN order.
type Query struct {
	Raw         string
	Patterns    []Pattern
	ReturnItems []ReturnItem
}
