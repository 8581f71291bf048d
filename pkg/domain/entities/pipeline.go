package entities

// Pipeline is the insertion-ordered, non-deduplicated sequence of Receipts
// in transit to a node.
type Pipeline struct {
	receipts []Receipt
}

// NewPipeline builds a Pipeline from an initial set of receipts, preserving
// their order.
func NewPipeline(receipts ...Receipt) Pipeline {
	p := Pipeline{receipts: make([]Receipt, len(receipts))}
	copy(p.receipts, receipts)
	return p
}

// Add appends a receipt to the pipeline.
func (p *Pipeline) Add(r Receipt) {
	p.receipts = append(p.receipts, r)
}

// Age decrements the ETA of every receipt by 1.
func (p *Pipeline) Age() {
	for i := range p.receipts {
		p.receipts[i].ETA--
	}
}

// PopReceived removes and returns all receipts with ETA <= 0, preserving
// the order of the receipts that remain.
func (p *Pipeline) PopReceived() []Receipt {
	var received []Receipt
	remaining := p.receipts[:0:0]
	for _, r := range p.receipts {
		if r.ETA <= 0 {
			received = append(received, r)
		} else {
			remaining = append(remaining, r)
		}
	}
	p.receipts = remaining
	return received
}

// Receipts returns a copy of the current in-transit receipts, in order.
func (p Pipeline) Receipts() []Receipt {
	out := make([]Receipt, len(p.receipts))
	copy(out, p.receipts)
	return out
}

// Len reports the number of in-transit receipts.
func (p Pipeline) Len() int {
	return len(p.receipts)
}
