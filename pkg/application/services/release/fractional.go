// Package release implements ReleaseStrategy: how to divide a node's
// available own-SKU stock across its outstanding orders when there isn't
// enough to go around.
package release

import (
	"github.com/shopspring/decimal"

	"github.com/chain-stock/suppy/pkg/domain/entities"
)

// Fractional allocates shortage proportionally to each order's share of
// total demand, then corrects the rounding by shaving units off the
// largest release(s) until the total fits in stock.
type Fractional struct{}

func (Fractional) GetReleases(node *entities.Node) (entities.Orders, error) {
	orders := node.Orders
	total := orders.Sum()
	if total == 0 {
		return entities.Orders{}, nil
	}

	stock := node.Stock[node.ID]
	shortage := max(total-stock, 0)

	var releases entities.Orders
	orders.Range(func(target string, qty int) bool {
		releases.Set(target, ceilFraction(qty, shortage, qty, total))
		return true
	})

	correctDownward(&releases, stock)
	return releases, nil
}

// ceilFraction computes ceil(qty - shortage*numerator/denominator) using
// decimal.Decimal, whose division is carried to 16 decimal places, rather
// than float64, whose precision shrinks for the larger shortages these
// chains can reach.
func ceilFraction(qty, shortage, numerator, denominator int) int {
	frac := decimal.NewFromInt(int64(shortage)).
		Mul(decimal.NewFromInt(int64(numerator))).
		Div(decimal.NewFromInt(int64(denominator)))
	return int(decimal.NewFromInt(int64(qty)).Sub(frac).Ceil().IntPart())
}

// correctDownward repeatedly decrements the release with the largest
// value - the first such key in insertion order on a tie - until the
// total released no longer exceeds stock.
func correctDownward(releases *entities.Orders, stock int) {
	for releases.Sum() > stock {
		var bestKey string
		bestVal := -1
		releases.Range(func(target string, qty int) bool {
			if qty > bestVal {
				bestVal = qty
				bestKey = target
			}
			return true
		})
		if bestKey == "" {
			break
		}
		releases.Set(bestKey, releases.Get(bestKey)-1)
	}
}
