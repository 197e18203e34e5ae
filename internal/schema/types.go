package schema

import (
	"fmt"
	"strings"
)

// RelationKind selects how an edge type is realized in SQL.
type RelationKind string

const (
	// JoinTable edges go through an association table with two foreign keys.
	JoinTable RelationKind = "JOIN_TABLE"

	// SelfReferential edges join a table to itself through a key pair.
	SelfReferential RelationKind = "SELF_REFERENTIAL"

	// OneToMany edges are a foreign key on the child row pointing at the
	// parent's primary key.
	OneToMany RelationKind = "ONE_TO_MANY"
)

// ParseRelationKind accepts the canonical names case-insensitively, with
// '-' or '_' as the word separator.
func ParseRelationKind(s string) (RelationKind, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	switch RelationKind(normalized) {
	case JoinTable, SelfReferential, OneToMany:
		return RelationKind(normalized), nil
	default:
		return "", fmt.Errorf("unknown relation kind %q (want JOIN_TABLE, SELF_REFERENTIAL or ONE_TO_MANY)", s)
	}
}

// NodeMapping maps a node label to its backing table.
type NodeMapping struct {
	Label      string `json:"label"`
	Table      string `json:"table"`
	PrimaryKey string `json:"primaryKey"`
}

// NewNodeMapping creates a NodeMapping.
func NewNodeMapping(label, table, primaryKey string) NodeMapping {
	return NodeMapping{Label: label, Table: table, PrimaryKey: primaryKey}
}

// EdgeMapping maps an edge type to a relation strategy and its keys.
//
// FromLabel and ToLabel are the endpoint labels for every kind. For
// SelfReferential both are the same label; for OneToMany FromLabel is the
// parent and ToLabel the child. Only the key fields of Kind are meaningful.
type EdgeMapping struct {
	Type      string       `json:"type"`
	Kind      RelationKind `json:"kind"`
	FromLabel string       `json:"fromLabel"`
	ToLabel   string       `json:"toLabel"`

	// JoinTable
	JoinTable   string `json:"joinTable,omitempty"`
	FromJoinKey string `json:"fromJoinKey,omitempty"`
	ToJoinKey   string `json:"toJoinKey,omitempty"`

	// SelfReferential
	FromKey string `json:"fromKey,omitempty"`
	ToKey   string `json:"toKey,omitempty"`

	// OneToMany
	ParentPrimaryKey string `json:"parentPrimaryKey,omitempty"`
	ChildForeignKey  string `json:"childForeignKey,omitempty"`
}

// ForJoinTable creates a JoinTable edge mapping.
func ForJoinTable(typ, fromLabel, toLabel, joinTable, fromJoinKey, toJoinKey string) EdgeMapping {
	return EdgeMapping{
		Type:        typ,
		Kind:        JoinTable,
		FromLabel:   fromLabel,
		ToLabel:     toLabel,
		JoinTable:   joinTable,
		FromJoinKey: fromJoinKey,
		ToJoinKey:   toJoinKey,
	}
}

// ForSelfReferential creates a SelfReferential edge mapping on one label.
func ForSelfReferential(typ, label, fromKey, toKey string) EdgeMapping {
	return EdgeMapping{
		Type:      typ,
		Kind:      SelfReferential,
		FromLabel: label,
		ToLabel:   label,
		FromKey:   fromKey,
		ToKey:     toKey,
	}
}

// ForOneToMany creates a OneToMany edge mapping.
func ForOneToMany(typ, parentLabel, childLabel, parentPrimaryKey, childForeignKey string) EdgeMapping {
	return EdgeMapping{
		Type:             typ,
		Kind:             OneToMany,
		FromLabel:        parentLabel,
		ToLabel:          childLabel,
		ParentPrimaryKey: parentPrimaryKey,
		ChildForeignKey:  childForeignKey,
	}
}

// ParentLabel is the parent side of a OneToMany edge.
func (e EdgeMapping) ParentLabel() string { return e.FromLabel }

// ChildLabel is the child side of a OneToMany edge.
func (e EdgeMapping) ChildLabel() string { return e.ToLabel }
