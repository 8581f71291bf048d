package entities

import "fmt"

// Receipt is an in-transit shipment of a SKU, owned by exactly one node's
// Pipeline. An ETA of 0 means "received this period".
type Receipt struct {
	SKUCode  string
	ETA      int
	Quantity int
}

func (r Receipt) String() string {
	return fmt.Sprintf("Receipt(sku_code=%s, eta=%d, quantity=%d)", r.SKUCode, r.ETA, r.Quantity)
}
