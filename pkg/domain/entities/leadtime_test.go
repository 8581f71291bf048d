package entities

import (
	"errors"
	"testing"
)

func TestLeadTime_QueueOverridesDefault(t *testing.T) {
	def := 5
	lt := NewLeadTime(map[int]int{2: 9}, &def)

	got, err := lt.Get("A", 2)
	if err != nil || got != 9 {
		t.Errorf("Get(2) = (%d, %v), want (9, nil)", got, err)
	}
}

func TestLeadTime_FallsBackToDefault(t *testing.T) {
	def := 5
	lt := NewLeadTime(nil, &def)

	got, err := lt.Get("A", 1)
	if err != nil || got != 5 {
		t.Errorf("Get(1) = (%d, %v), want (5, nil)", got, err)
	}
}

func TestLeadTime_MissingWithNoDefault(t *testing.T) {
	lt := NewLeadTime(nil, nil)

	_, err := lt.Get("A", 1)
	if err == nil {
		t.Fatal("expected MissingLeadTime error, got nil")
	}
	var missing *MissingLeadTime
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingLeadTime, got %T", err)
	}
	if missing.NodeID != "A" || missing.Period != 1 {
		t.Errorf("unexpected MissingLeadTime fields: %+v", missing)
	}
}
