package entities

import "fmt"

// Edge is a directed BOM relationship: Number units of Source's SKU are
// consumed per unit of Destination assembled.
type Edge struct {
	Source      string
	Destination string
	Number      int
}

// ID returns a stable identifier for the edge, used for dedup/lookup.
func (e Edge) ID() string {
	return fmt.Sprintf("%s->%s", e.Source, e.Destination)
}

func (e Edge) String() string {
	return fmt.Sprintf("Edge(source=%s, destination=%s, number=%d)", e.Source, e.Destination, e.Number)
}
