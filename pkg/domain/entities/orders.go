package entities

// Orders maps a target node id to the quantity of outstanding demand placed
// on the owning node by that target. A missing key reads as 0.
//
// Iteration order matters: the Fractional release strategy's downward
// correction tie-break is defined as "first key with the maximum value in
// insertion order" (design notes), so Orders tracks the order keys were
// first seen rather than relying on Go's randomized map iteration.
type Orders struct {
	keys   []string
	values map[string]int
}

// NewOrders builds an Orders from an initial map. Since a plain map has no
// defined iteration order, the resulting insertion order is the order Go
// happens to range over values - callers that care about a specific
// insertion order should build incrementally with Add instead.
func NewOrders(values map[string]int) Orders {
	o := Orders{values: make(map[string]int, len(values))}
	for k, v := range values {
		o.Set(k, v)
	}
	return o
}

// Get returns the outstanding quantity for target, or 0 if absent.
func (o *Orders) Get(target string) int {
	if o.values == nil {
		return 0
	}
	return o.values[target]
}

// Set assigns qty to target, recording target's insertion position the
// first time it is seen.
func (o *Orders) Set(target string, qty int) {
	if o.values == nil {
		o.values = make(map[string]int)
	}
	if _, ok := o.values[target]; !ok {
		o.keys = append(o.keys, target)
	}
	o.values[target] = qty
}

// Add adds delta to the outstanding quantity for target.
func (o *Orders) Add(target string, delta int) {
	o.Set(target, o.Get(target)+delta)
}

// Sum returns the total outstanding demand across all targets.
func (o Orders) Sum() int {
	total := 0
	for _, v := range o.values {
		total += v
	}
	return total
}

// Len returns the number of distinct targets.
func (o Orders) Len() int {
	return len(o.keys)
}

// Keys returns the target ids in insertion order.
func (o Orders) Keys() []string {
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Range calls fn for each (target, quantity) pair in insertion order,
// stopping early if fn returns false.
func (o Orders) Range(fn func(target string, qty int) bool) {
	for _, k := range o.keys {
		if !fn(k, o.values[k]) {
			return
		}
	}
}

// Equal reports whether o and other hold the same target->quantity pairs,
// ignoring insertion order.
func (o Orders) Equal(other Orders) bool {
	if len(o.values) != len(other.values) {
		return false
	}
	for k, v := range o.values {
		if other.values[k] != v {
			return false
		}
	}
	return true
}
