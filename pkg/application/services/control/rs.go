package control

import (
	"github.com/chain-stock/suppy/pkg/domain/entities"
	"github.com/chain-stock/suppy/pkg/domain/strategy"
)

// RS is the single-echelon (R,S) ordering policy: review every review_time
// periods and order up to order_up_to_level.
type RS struct{}

func (RS) GetOrders(inv strategy.Inventory, node *entities.Node, period int) (entities.Orders, error) {
	reviewTime, err := intParam("RS", node.Data, "review_time")
	if err != nil {
		return entities.Orders{}, err
	}
	orderUpToLevel, err := intParam("RS", node.Data, "order_up_to_level")
	if err != nil {
		return entities.Orders{}, err
	}

	position := inv.InventoryAssembliesFeasible(node)

	qty := 0
	if period%reviewTime == 0 {
		qty = max(orderUpToLevel-position, 0)
	}

	var orders entities.Orders
	orders.Set(node.ID, qty)
	return orders, nil
}
