// Package strategy declares the pluggable capability contracts the
// scheduler drives a node through each period: how much to order, how
// much of what's on hand to release to waiting customers.
package strategy

import "github.com/chain-stock/suppy/pkg/domain/entities"

// Inventory gives a control strategy read access to the parts of the
// SupplyChain it needs without exposing the full graph: a node's own
// virtual inventory position and the echelon (downstream-closure)
// position used by multi-echelon policies.
type Inventory interface {
	InventoryAssembliesFeasible(node *entities.Node) int
	EchelonInventory(node *entities.Node) int
}

// Control decides how much a node should order this period. The returned
// Orders MAY key by the node's own id (explode the BOM / enqueue a
// supplier receipt) and/or other node ids (place direct demand there).
type Control interface {
	GetOrders(inv Inventory, node *entities.Node, period int) (entities.Orders, error)
}

// Release decides how much of a node's own available stock to ship to
// each of its outstanding orders this period.
type Release interface {
	GetReleases(node *entities.Node) (entities.Orders, error)
}
