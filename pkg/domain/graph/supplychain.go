// Package graph owns the SupplyChain: the set of Nodes and Edges that form
// the BOM DAG, its low-level-code (echelon) indexing, and the graph-level
// operations (inventory snapshots, order creation, release shipping) that
// read or mutate more than one node at a time.
package graph

import (
	"fmt"
	"sort"

	"github.com/chain-stock/suppy/pkg/domain/entities"
)

// SupplyChain owns a DAG of Nodes connected by Edges. Nodes are kept in
// insertion order: the echelon sweep in the scheduler (and any other
// caller that needs a deterministic node ordering) iterates nodes in the
// order they were added, never Go's randomized map order.
type SupplyChain struct {
	nodeOrder []string
	nodes     map[string]*entities.Node
	edges     map[string]entities.Edge
}

// New builds an empty SupplyChain.
func New() *SupplyChain {
	return &SupplyChain{
		nodes: make(map[string]*entities.Node),
		edges: make(map[string]entities.Edge),
	}
}

// AddNode registers a node, wiring its declared predecessors into the edge
// set if they aren't already present. If node.Predecessors is empty but
// edges naming it as a destination were already added, AddNode fills
// Predecessors in from those edges, ordered by edge id.
func (sc *SupplyChain) AddNode(node *entities.Node) {
	if _, exists := sc.nodes[node.ID]; !exists {
		sc.nodeOrder = append(sc.nodeOrder, node.ID)
	}
	sc.nodes[node.ID] = node
	if len(node.Predecessors) == 0 {
		var ids []string
		for id, e := range sc.edges {
			if e.Destination == node.ID {
				ids = append(ids, id)
			}
		}
		sort.Strings(ids)
		for _, id := range ids {
			node.Predecessors = append(node.Predecessors, sc.edges[id])
		}
	}
	for _, e := range node.Predecessors {
		sc.addEdge(e)
	}
}

// AddEdge registers an edge. If the destination node is already present
// and does not already carry this edge among its Predecessors, the edge is
// appended there too.
func (sc *SupplyChain) AddEdge(e entities.Edge) {
	sc.addEdge(e)
	if dest, ok := sc.nodes[e.Destination]; ok {
		found := false
		for _, existing := range dest.Predecessors {
			if existing.ID() == e.ID() {
				found = true
				break
			}
		}
		if !found {
			dest.Predecessors = append(dest.Predecessors, e)
		}
	}
}

func (sc *SupplyChain) addEdge(e entities.Edge) {
	sc.edges[e.ID()] = e
}

// Node returns the node with the given id, or nil if absent.
func (sc *SupplyChain) Node(id string) *entities.Node {
	return sc.nodes[id]
}

// NodeExists reports whether id names a known node.
func (sc *SupplyChain) NodeExists(id string) bool {
	_, ok := sc.nodes[id]
	return ok
}

// Nodes returns every node in insertion order.
func (sc *SupplyChain) Nodes() []*entities.Node {
	out := make([]*entities.Node, len(sc.nodeOrder))
	for i, id := range sc.nodeOrder {
		out[i] = sc.nodes[id]
	}
	return out
}

// Edges returns every edge; order is not significant for the edge set.
func (sc *SupplyChain) Edges() []entities.Edge {
	out := make([]entities.Edge, 0, len(sc.edges))
	for _, e := range sc.edges {
		out = append(out, e)
	}
	return out
}

// Validate checks the graph invariants the scheduler relies on: every
// edge resolves to known nodes on both ends, and every edge a node declares
// among its Predecessors has that node as its destination.
func (sc *SupplyChain) Validate() error {
	for _, e := range sc.edges {
		if !sc.NodeExists(e.Source) {
			return &entities.InvalidGraph{Detail: fmt.Sprintf("edge %s references unknown source node %s", e.ID(), e.Source)}
		}
		if !sc.NodeExists(e.Destination) {
			return &entities.InvalidGraph{Detail: fmt.Sprintf("edge %s references unknown destination node %s", e.ID(), e.Destination)}
		}
	}
	for _, id := range sc.nodeOrder {
		for _, e := range sc.nodes[id].Predecessors {
			if e.Destination != id {
				return &entities.InvalidGraph{Detail: fmt.Sprintf("node %s declares predecessor edge %s whose destination is %s", id, e.ID(), e.Destination)}
			}
		}
	}
	return nil
}

// DetectCycles runs an optional DAG validation pass and returns every cycle
// found as a path of node ids. The scheduler itself does not call this -
// callers that accept externally supplied graphs should call it before
// Run.
func (sc *SupplyChain) DetectCycles() [][]string {
	adjacency := make(map[string][]string, len(sc.nodes))
	for _, e := range sc.edges {
		adjacency[e.Destination] = append(adjacency[e.Destination], e.Source)
	}
	return detectCycles(adjacency)
}

// ComputeLLC assigns each node's low-level code: finished-goods nodes (no
// successors reachable within the traversal) have llc 0, each hop upstream
// increments, and a node reachable from multiple downstream customers
// takes the maximum depth observed from any of them.
//
// For every intercompany node v, this walks the predecessor chain
// level-by-level starting at v itself (echelon_nr = 0), raising
// nodes[id].llc to echelon_nr whenever that is larger than the node's
// current llc. Suppliers never start a walk but are still visited (and
// have their llc raised) by walks started elsewhere.
func (sc *SupplyChain) ComputeLLC() {
	for _, v := range sc.nodeOrder {
		node := sc.nodes[v]
		if node.Supplier() {
			continue
		}

		echelonNr := 0
		echelon := []string{v}

		for len(echelon) > 0 {
			seen := make(map[string]bool, len(echelon))
			var next []string

			for _, id := range echelon {
				n := sc.nodes[id]
				if echelonNr > n.LLC {
					n.LLC = echelonNr
				}
				for _, e := range n.Predecessors {
					if !seen[e.Source] {
						seen[e.Source] = true
						next = append(next, e.Source)
					}
				}
			}

			echelonNr++
			echelon = next
		}
	}
}

// MaxLLC returns the highest llc assigned to any node.
func (sc *SupplyChain) MaxLLC() int {
	max := 0
	for _, id := range sc.nodeOrder {
		if llc := sc.nodes[id].LLC; llc > max {
			max = llc
		}
	}
	return max
}

// NodesByLLC returns every node with the given llc, in insertion order.
func (sc *SupplyChain) NodesByLLC(llc int) []*entities.Node {
	var out []*entities.Node
	for _, id := range sc.nodeOrder {
		if n := sc.nodes[id]; n.LLC == llc {
			out = append(out, n)
		}
	}
	return out
}

// Inventory computes a virtual inventory snapshot for node: pipeline
// receipts, predecessor orders-plus-stock, the node's own stock net of
// backorders and outstanding orders. The result may be negative.
func (sc *SupplyChain) Inventory(node *entities.Node) map[string]int {
	inv := make(map[string]int)

	for _, r := range node.Pipeline.Receipts() {
		inv[r.SKUCode] += r.Quantity
	}

	for _, e := range node.Predecessors {
		source := sc.nodes[e.Source]
		inv[e.Source] += source.Orders.Get(node.ID)
		inv[e.Source] += node.Stock[e.Source]
	}

	inv[node.ID] += node.Stock[node.ID]
	inv[node.ID] -= node.Backorders
	inv[node.ID] -= node.Orders.Sum()

	return inv
}

// InventoryAssembliesFeasible returns the number of finished units that
// could be produced from the virtual inventory snapshot, including
// whatever is already on hand of the node's own SKU.
func (sc *SupplyChain) InventoryAssembliesFeasible(node *entities.Node) int {
	inv := sc.Inventory(node)
	return node.AssembliesFeasible(inv) + inv[node.ID]
}

// EchelonInventory sums InventoryAssembliesFeasible over node and its
// entire downstream closure (every node reachable by following edges
// toward their destinations), used by multi-echelon control strategies.
func (sc *SupplyChain) EchelonInventory(node *entities.Node) int {
	visited := map[string]bool{node.ID: true}
	queue := []string{node.ID}
	total := 0

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		n := sc.nodes[id]
		total += sc.InventoryAssembliesFeasible(n)

		for _, e := range sc.edges {
			if e.Source == id && !visited[e.Destination] {
				visited[e.Destination] = true
				queue = append(queue, e.Destination)
			}
		}
	}

	return total
}

// CreateOrders applies a control strategy's decision for node: for each
// (targetID, qty) pair with qty > 0, either explodes the BOM (or enqueues
// a supplier receipt) when targetID is node's own id, or places demand on
// another node.
func (sc *SupplyChain) CreateOrders(node *entities.Node, orders entities.Orders, period int) error {
	var err error
	orders.Range(func(targetID string, qty int) bool {
		if qty <= 0 {
			return true
		}
		if targetID == node.ID {
			if node.Intercompany() {
				for _, e := range node.Predecessors {
					source := sc.nodes[e.Source]
					source.Orders.Add(node.ID, qty*e.Number)
				}
				return true
			}
			leadTime, lerr := node.GetLeadTime(period)
			if lerr != nil {
				err = lerr
				return false
			}
			node.Pipeline.Add(entities.Receipt{SKUCode: node.ID, ETA: leadTime, Quantity: qty})
			return true
		}

		target := sc.nodes[targetID]
		target.Orders.Add(node.ID, qty)
		return true
	})
	return err
}

// ReleaseOrders applies a release strategy's decision for node: ships up
// to node's own available stock to each requesting receiver, clamping to
// what's on hand and skipping zero-quantity releases.
func (sc *SupplyChain) ReleaseOrders(node *entities.Node, releases entities.Orders, period int) error {
	var err error
	releases.Range(func(receiverID string, qty int) bool {
		qty = min(qty, node.Stock[node.ID])
		if qty <= 0 {
			return true
		}
		receiver := sc.nodes[receiverID]
		leadTime, lerr := receiver.GetLeadTime(period)
		if lerr != nil {
			err = lerr
			return false
		}
		receiver.Pipeline.Add(entities.Receipt{SKUCode: node.ID, ETA: leadTime, Quantity: qty})
		node.Stock[node.ID] -= qty
		node.Orders.Add(receiverID, -qty)
		return true
	})
	return err
}
