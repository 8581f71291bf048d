package release

import (
	"testing"

	"github.com/chain-stock/suppy/pkg/domain/entities"
)

func buildOrderedNode(stock int, orderKeys []string, orderValues []int) *entities.Node {
	n := entities.NewNode("A")
	n.Stock = entities.Stock{"A": stock}
	for i, k := range orderKeys {
		n.Orders.Set(k, orderValues[i])
	}
	return n
}

func TestFractional_Feasible(t *testing.T) {
	node := buildOrderedNode(70, []string{"A", "B"}, []int{20, 40})

	releases, err := Fractional{}.GetReleases(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if releases.Get("A") != 20 || releases.Get("B") != 40 {
		t.Errorf("releases = %+v, want {A:20 B:40}", releases.Keys())
	}
}

func TestFractional_Infeasible(t *testing.T) {
	node := buildOrderedNode(7, []string{"A", "B"}, []int{20, 40})

	releases, err := Fractional{}.GetReleases(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if releases.Get("A") != 3 || releases.Get("B") != 4 {
		t.Errorf("releases = A:%d B:%d, want A:3 B:4", releases.Get("A"), releases.Get("B"))
	}
	if releases.Sum() > 7 {
		t.Errorf("Sum() = %d, exceeds stock 7", releases.Sum())
	}
}

func TestFractional_NoOrders(t *testing.T) {
	node := buildOrderedNode(7, []string{"A", "B"}, []int{0, 0})

	releases, err := Fractional{}.GetReleases(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if releases.Len() != 0 {
		t.Errorf("expected empty releases, got %+v", releases.Keys())
	}
}

func TestFractional_TieBreak_FirstInsertedWins(t *testing.T) {
	// Both targets round up to 1 with stock 1 available, forcing a single
	// downward correction; the one inserted first must take it.
	node := buildOrderedNode(1, []string{"X", "Y"}, []int{3, 3})

	releases, err := Fractional{}.GetReleases(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if releases.Sum() != 1 {
		t.Fatalf("Sum() = %d, want 1", releases.Sum())
	}
	if releases.Get("X") != 0 || releases.Get("Y") != 1 {
		t.Errorf("expected X (inserted first) to take the correction (X:0 Y:1), got X:%d Y:%d", releases.Get("X"), releases.Get("Y"))
	}
}
