package control

import (
	"github.com/shopspring/decimal"

	"github.com/chain-stock/suppy/pkg/domain/entities"
	"github.com/chain-stock/suppy/pkg/domain/strategy"
)

// RSQ is the single-echelon (R,s,Q) ordering policy: review the node every
// review_time periods, and when the inventory position falls under
// reorder_level, order up in multiples of order_quantity.
type RSQ struct{}

func (RSQ) GetOrders(inv strategy.Inventory, node *entities.Node, period int) (entities.Orders, error) {
	reviewTime, err := intParam("RSQ", node.Data, "review_time")
	if err != nil {
		return entities.Orders{}, err
	}
	reorderLevel, err := intParam("RSQ", node.Data, "reorder_level")
	if err != nil {
		return entities.Orders{}, err
	}
	orderQuantity, err := intParam("RSQ", node.Data, "order_quantity")
	if err != nil {
		return entities.Orders{}, err
	}

	position := inv.InventoryAssembliesFeasible(node)

	qty := 0
	if period%reviewTime == 0 && position < reorderLevel {
		qty = ceilDiv(reorderLevel-position, orderQuantity) * orderQuantity
	}

	var orders entities.Orders
	orders.Set(node.ID, qty)
	return orders, nil
}

// ceilDiv returns ceil(a/b) using decimal.Decimal so integer division never
// silently truncates a remainder the way a naive a/b would.
func ceilDiv(a, b int) int {
	return int(decimal.NewFromInt(int64(a)).
		Div(decimal.NewFromInt(int64(b))).
		Ceil().
		IntPart())
}
