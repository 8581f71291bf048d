package control

import (
	"github.com/chain-stock/suppy/pkg/domain/entities"
	"github.com/chain-stock/suppy/pkg/domain/strategy"
)

// MultiEchelonRS is the (R,S) ordering policy evaluated against echelon
// inventory: the sum of InventoryAssembliesFeasible over node's entire
// downstream closure, rather than just node's own position.
type MultiEchelonRS struct{}

func (MultiEchelonRS) GetOrders(inv strategy.Inventory, node *entities.Node, period int) (entities.Orders, error) {
	reviewTime, err := intParam("MultiEchelonRS", node.Data, "review_time")
	if err != nil {
		return entities.Orders{}, err
	}
	orderUpToLevel, err := intParam("MultiEchelonRS", node.Data, "order_up_to_level")
	if err != nil {
		return entities.Orders{}, err
	}

	echelonInventory := inv.EchelonInventory(node)

	qty := 0
	if period%reviewTime == 0 {
		qty = max(orderUpToLevel-echelonInventory, 0)
	}

	var orders entities.Orders
	orders.Set(node.ID, qty)
	return orders, nil
}
