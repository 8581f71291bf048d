package entities

import "fmt"

// ParseError reports a malformed input document: a missing id, a wrong
// value type, or a negative edge number.
type ParseError struct {
	Field  string
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s: %s", e.Field, e.Detail)
}

// InvalidGraph reports an edge referencing an unknown node, or a node whose
// declared predecessors disagree with the edge set.
type InvalidGraph struct {
	Detail string
}

func (e *InvalidGraph) Error() string {
	return fmt.Sprintf("invalid graph: %s", e.Detail)
}

// InvalidLLC reports a node with a negative low-level code at Run time.
type InvalidLLC struct {
	NodeID string
	LLC    int
}

func (e *InvalidLLC) Error() string {
	return fmt.Sprintf("node %s has an invalid llc: %d", e.NodeID, e.LLC)
}

// NegativeStock reports an attempt to assign a negative stock value.
type NegativeStock struct {
	NodeID string
	SKU    string
	Value  int
}

func (e *NegativeStock) Error() string {
	return fmt.Sprintf("node %s: stock for %s would go negative: %d", e.NodeID, e.SKU, e.Value)
}

// MissingLeadTime reports a lead-time lookup with no queue entry and no
// default for the given period.
type MissingLeadTime struct {
	NodeID string
	Period int
}

func (e *MissingLeadTime) Error() string {
	return fmt.Sprintf("node %s: no lead time for period %d", e.NodeID, e.Period)
}

// IncompatibleStrategy reports a strategy argument that does not satisfy
// the capability set the caller expected.
type IncompatibleStrategy struct {
	Strategy string
	Missing  string
}

func (e *IncompatibleStrategy) Error() string {
	return fmt.Sprintf("strategy %s does not implement %s", e.Strategy, e.Missing)
}
