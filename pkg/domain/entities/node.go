package entities

// SalesMetrics reports the outcome of a single SatisfySales call so the
// caller can emit it through whatever sink it holds; Node itself never
// depends on the metrics package.
type SalesMetrics struct {
	Demand                int
	Satisfied             int
	Backordered           int
	OrderLines            int
	OrderLinesSatisfied   int
	OrderLinesBackordered int
}

// Node is a single SKU's state within a SupplyChain: its pipeline, stock,
// outstanding orders and backorders, plus the strategy parameters
// (LeadTime, Data) that drive control and release decisions. A Node is
// mutated only by its owning SupplyChain's scheduler.
type Node struct {
	ID           string
	LeadTime     LeadTime
	Sales        Sales
	Predecessors []Edge // edges with Destination == ID; edge.Source is the consumed component
	Pipeline     Pipeline
	Stock        Stock
	Orders       Orders
	Backorders   int
	Data         map[string]any
	LLC          int
}

// NewNode constructs a Node with zero-valued collections ready for use.
func NewNode(id string) *Node {
	return &Node{
		ID:     id,
		Stock:  Stock{},
		Orders: Orders{},
		Data:   map[string]any{},
	}
}

// Intercompany reports whether the node is assembled from predecessors.
func (n *Node) Intercompany() bool {
	return len(n.Predecessors) > 0
}

// Supplier reports whether the node has no predecessors, i.e. its own
// orders enqueue pipeline receipts directly rather than exploding a BOM.
func (n *Node) Supplier() bool {
	return !n.Intercompany()
}

// AssembliesFeasible returns how many units of the node's own SKU could be
// assembled right now given stock. If stock is omitted, the node's own
// Stock is used. Suppliers always return 0.
func (n *Node) AssembliesFeasible(stock ...Stock) int {
	if n.Supplier() {
		return 0
	}
	s := n.Stock
	if len(stock) > 0 {
		s = stock[0]
	}
	feasible := -1
	for _, e := range n.Predecessors {
		units := s[e.Source] / e.Number
		if feasible < 0 || units < feasible {
			feasible = units
		}
	}
	if feasible < 0 {
		feasible = 0
	}
	return feasible
}

// SatisfyReceivedReceipts pops every received (eta <= 0) receipt from the
// pipeline and adds its quantity to the corresponding stock entry.
func (n *Node) SatisfyReceivedReceipts() {
	for _, r := range n.Pipeline.PopReceived() {
		n.Stock[r.SKUCode] += r.Quantity
	}
}

// SatisfyBackorders applies available own-SKU stock against outstanding
// backorders.
func (n *Node) SatisfyBackorders() {
	f := min(n.Stock[n.ID], n.Backorders)
	n.Backorders -= f
	n.Stock[n.ID] -= f
}

// SatisfySales pops the sales lines for period and applies available
// own-SKU stock against their combined demand, backordering the rest.
func (n *Node) SatisfySales(period int) SalesMetrics {
	lines := n.Sales.Pop(period)
	demand := 0
	for _, l := range lines {
		demand += l
	}
	f := min(n.Stock[n.ID], demand)
	n.Stock[n.ID] -= f
	n.Backorders += demand - f

	k := 0
	running := 0
	for _, l := range lines {
		if running+l > f {
			break
		}
		running += l
		k++
	}

	return SalesMetrics{
		Demand:                demand,
		Satisfied:             f,
		Backordered:           demand - f,
		OrderLines:            len(lines),
		OrderLinesSatisfied:   k,
		OrderLinesBackordered: len(lines) - k,
	}
}

// Assemble converts predecessor stock into units of the node's own SKU, at
// the maximum feasible quantity. A no-op for suppliers.
func (n *Node) Assemble() {
	f := n.AssembliesFeasible()
	for _, e := range n.Predecessors {
		n.Stock[e.Source] -= f * e.Number
	}
	n.Stock[n.ID] += f
}

// GetLeadTime delegates to the node's LeadTime for period.
func (n *Node) GetLeadTime(period int) (int, error) {
	return n.LeadTime.Get(n.ID, period)
}
