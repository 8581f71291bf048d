package release

import (
	"github.com/shopspring/decimal"

	"github.com/chain-stock/suppy/pkg/domain/entities"
)

// AllocationFraction divides shortage using a fixed allocation_fraction
// from node.Data instead of each order's proportional share of demand.
// Otherwise identical to Fractional, including the downward correction.
type AllocationFraction struct{}

func (AllocationFraction) GetReleases(node *entities.Node) (entities.Orders, error) {
	fraction, err := fractionParam(node.Data, "allocation_fraction")
	if err != nil {
		return entities.Orders{}, err
	}

	orders := node.Orders
	total := orders.Sum()
	if total == 0 {
		return entities.Orders{}, nil
	}

	stock := node.Stock[node.ID]
	shortage := max(total-stock, 0)

	var releases entities.Orders
	orders.Range(func(target string, qty int) bool {
		release := decimal.NewFromInt(int64(qty)).
			Sub(decimal.NewFromInt(int64(shortage)).Mul(fraction)).
			Ceil().
			IntPart()
		releases.Set(target, int(release))
		return true
	})

	correctDownward(&releases, stock)
	return releases, nil
}

func fractionParam(data map[string]any, key string) (decimal.Decimal, error) {
	v, ok := data[key]
	if !ok {
		return decimal.Decimal{}, &entities.IncompatibleStrategy{Strategy: "AllocationFraction", Missing: key}
	}
	switch n := v.(type) {
	case decimal.Decimal:
		return n, nil
	case float64:
		return decimal.NewFromFloat(n), nil
	default:
		return decimal.Decimal{}, &entities.IncompatibleStrategy{Strategy: "AllocationFraction", Missing: key}
	}
}
