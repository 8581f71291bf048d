package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// WriteText renders summary as a plain-text report, one block per node in
// id order.
func WriteText(w io.Writer, summary *Summary) error {
	nodes := make([]NodeSummary, len(summary.Nodes))
	copy(nodes, summary.Nodes)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	if _, err := fmt.Fprintf(w, "period %d\n", summary.Period); err != nil {
		return err
	}
	for _, n := range nodes {
		if _, err := fmt.Fprintf(w, "\nnode %s\n", n.ID); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  stock:      %v\n", n.Stock); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  backorders: %d\n", n.Backorders); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  orders:     %v\n", n.Orders); err != nil {
			return err
		}
		for _, r := range n.Pipeline {
			if _, err := fmt.Fprintf(w, "  pipeline:   %s\n", r); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteJSON renders summary as indented JSON.
func WriteJSON(w io.Writer, summary *Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
