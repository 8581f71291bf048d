package entities

import "testing"

func TestEdge_ID(t *testing.T) {
	e := Edge{Source: "B", Destination: "A", Number: 2}
	if got, want := e.ID(), "B->A"; got != want {
		t.Errorf("ID() = %q, want %q", got, want)
	}
}
