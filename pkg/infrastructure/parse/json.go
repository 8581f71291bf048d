// Package parse builds a *graph.SupplyChain from the canonical JSON
// document spec.md §4.9 describes, and serializes one back out. Structured
// the way the teacher's pkg/infrastructure/repositories/csv/csv_loader.go
// is structured: small parseXxx helpers per field, each wrapping its error
// with the offending node/field, adapted here from CSV-with-header
// validation to JSON-with-shape validation.
package parse

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/chain-stock/suppy/pkg/domain/entities"
	"github.com/chain-stock/suppy/pkg/domain/graph"
)

type document struct {
	Nodes []nodeDoc `json:"nodes"`
	Edges []edgeDoc `json:"edges"`
}

type edgeDoc struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Number      int    `json:"number"`
}

type receiptDoc struct {
	SKUCode  string `json:"sku_code"`
	ETA      int    `json:"eta"`
	Quantity int    `json:"quantity"`
}

type nodeDoc struct {
	ID           string          `json:"id"`
	Backorders   int             `json:"backorders,omitempty"`
	Data         map[string]any  `json:"data,omitempty"`
	LeadTime     json.RawMessage `json:"lead_time,omitempty"`
	LLC          *int            `json:"llc,omitempty"`
	Orders       map[string]int  `json:"orders,omitempty"`
	Pipeline     []receiptDoc    `json:"pipeline,omitempty"`
	Predecessors []edgeDoc       `json:"predecessors,omitempty"`
	Sales        json.RawMessage `json:"sales,omitempty"`
	Stock        map[string]int  `json:"stock,omitempty"`
}

type leadTimeDoc struct {
	Queue   json.RawMessage `json:"queue,omitempty"`
	Default *int            `json:"default,omitempty"`
}

// Parse builds a *graph.SupplyChain from a canonical JSON document,
// validates the graph, and calls ComputeLLC before returning it.
func Parse(data []byte) (*graph.SupplyChain, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &entities.ParseError{Field: "document", Detail: err.Error()}
	}

	chain := graph.New()

	for _, nd := range doc.Nodes {
		node, err := parseNode(nd)
		if err != nil {
			return nil, err
		}
		chain.AddNode(node)
	}

	for _, ed := range doc.Edges {
		if ed.Number < 1 {
			return nil, &entities.ParseError{
				Field:  "number",
				Detail: fmt.Sprintf("edge %s->%s: number must be >= 1, got %d", ed.Source, ed.Destination, ed.Number),
			}
		}
		chain.AddEdge(entities.Edge{Source: ed.Source, Destination: ed.Destination, Number: ed.Number})
	}

	if err := chain.Validate(); err != nil {
		return nil, err
	}

	chain.ComputeLLC()
	return chain, nil
}

func parseNode(nd nodeDoc) (*entities.Node, error) {
	if nd.ID == "" {
		return nil, &entities.ParseError{Field: "id", Detail: "node is missing an id"}
	}

	node := entities.NewNode(nd.ID)

	if nd.Backorders < 0 {
		return nil, &entities.ParseError{
			Field:  "backorders",
			Detail: fmt.Sprintf("node %s: backorders must be >= 0, got %d", nd.ID, nd.Backorders),
		}
	}
	node.Backorders = nd.Backorders

	if nd.Data != nil {
		node.Data = nd.Data
	}

	leadTime, err := parseLeadTime(nd.ID, nd.LeadTime)
	if err != nil {
		return nil, err
	}
	node.LeadTime = leadTime

	sales, err := parseSales(nd.ID, nd.Sales)
	if err != nil {
		return nil, err
	}
	node.Sales = sales

	stock, err := entities.NewStock(nd.ID, nd.Stock)
	if err != nil {
		return nil, err
	}
	node.Stock = stock

	var orders entities.Orders
	for _, target := range sortedKeys(nd.Orders) {
		qty := nd.Orders[target]
		if qty < 0 {
			return nil, &entities.ParseError{
				Field:  "orders",
				Detail: fmt.Sprintf("node %s: order for %s must be >= 0, got %d", nd.ID, target, qty),
			}
		}
		orders.Set(target, qty)
	}
	node.Orders = orders

	var pipeline entities.Pipeline
	for _, r := range nd.Pipeline {
		if r.Quantity < 0 {
			return nil, &entities.ParseError{
				Field:  "pipeline",
				Detail: fmt.Sprintf("node %s: receipt %s quantity must be >= 0, got %d", nd.ID, r.SKUCode, r.Quantity),
			}
		}
		pipeline.Add(entities.Receipt{SKUCode: r.SKUCode, ETA: r.ETA, Quantity: r.Quantity})
	}
	node.Pipeline = pipeline

	for _, e := range nd.Predecessors {
		if e.Number < 1 {
			return nil, &entities.ParseError{
				Field:  "number",
				Detail: fmt.Sprintf("node %s: predecessor edge %s->%s: number must be >= 1, got %d", nd.ID, e.Source, e.Destination, e.Number),
			}
		}
		node.Predecessors = append(node.Predecessors, entities.Edge{Source: e.Source, Destination: e.Destination, Number: e.Number})
	}

	return node, nil
}

// parseLeadTime accepts either a bare integer (becomes Default) or
// {"queue": ..., "default": ...}. A missing field yields a LeadTime with
// no queue and no default - MissingLeadTime only surfaces if the
// simulation later asks for a period it can't resolve.
func parseLeadTime(nodeID string, raw json.RawMessage) (entities.LeadTime, error) {
	if len(raw) == 0 {
		return entities.NewLeadTime(nil, nil), nil
	}

	var asInt int
	if err := json.Unmarshal(raw, &asInt); err == nil {
		def := asInt
		return entities.NewLeadTime(nil, &def), nil
	}

	var wrapped leadTimeDoc
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return entities.LeadTime{}, &entities.ParseError{
			Field:  "lead_time",
			Detail: fmt.Sprintf("node %s: %v", nodeID, err),
		}
	}

	queue, err := parseIntQueue(wrapped.Queue)
	if err != nil {
		return entities.LeadTime{}, &entities.ParseError{
			Field:  "lead_time.queue",
			Detail: fmt.Sprintf("node %s: %v", nodeID, err),
		}
	}
	for period, v := range queue {
		if v < 0 {
			return entities.LeadTime{}, &entities.ParseError{
				Field:  "lead_time.queue",
				Detail: fmt.Sprintf("node %s: lead time for period %d must be >= 0, got %d", nodeID, period, v),
			}
		}
	}

	return entities.NewLeadTime(queue, wrapped.Default), nil
}

// parseIntQueue accepts either a 1-indexed list or a period->value map.
func parseIntQueue(raw json.RawMessage) (map[int]int, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var asMap map[string]int
	if err := json.Unmarshal(raw, &asMap); err == nil {
		out := make(map[int]int, len(asMap))
		for k, v := range asMap {
			period, perr := strconv.Atoi(k)
			if perr != nil {
				return nil, fmt.Errorf("queue key %q is not an integer period", k)
			}
			out[period] = v
		}
		return out, nil
	}

	var asList []int
	if err := json.Unmarshal(raw, &asList); err == nil {
		out := make(map[int]int, len(asList))
		for i, v := range asList {
			out[i+1] = v
		}
		return out, nil
	}

	return nil, fmt.Errorf("must be a list or a period->value map")
}

// parseSales accepts either a list-of-lists (1-indexed by position) or a
// period->lines map.
func parseSales(nodeID string, raw json.RawMessage) (entities.Sales, error) {
	if len(raw) == 0 {
		return entities.NewSales(nil), nil
	}

	var asMap map[string][]int
	if err := json.Unmarshal(raw, &asMap); err == nil {
		out := make(map[int][]int, len(asMap))
		for k, v := range asMap {
			period, perr := strconv.Atoi(k)
			if perr != nil {
				return entities.Sales{}, &entities.ParseError{
					Field:  "sales",
					Detail: fmt.Sprintf("node %s: period key %q is not an integer", nodeID, k),
				}
			}
			out[period] = v
		}
		return validateSales(nodeID, out)
	}

	var asList [][]int
	if err := json.Unmarshal(raw, &asList); err == nil {
		out := make(map[int][]int, len(asList))
		for i, lines := range asList {
			out[i+1] = lines
		}
		return validateSales(nodeID, out)
	}

	return entities.Sales{}, &entities.ParseError{
		Field:  "sales",
		Detail: fmt.Sprintf("node %s: must be a list-of-lists or a period->lines map", nodeID),
	}
}

func validateSales(nodeID string, lines map[int][]int) (entities.Sales, error) {
	for period, ls := range lines {
		for _, v := range ls {
			if v < 0 {
				return entities.Sales{}, &entities.ParseError{
					Field:  "sales",
					Detail: fmt.Sprintf("node %s: sales line for period %d must be >= 0, got %d", nodeID, period, v),
				}
			}
		}
	}
	return entities.NewSales(lines), nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Serialize emits chain as the canonical JSON document, plus llc and
// predecessors per node (spec.md §6.2). Map-typed fields (stock, orders,
// sales, lead_time.queue) rely on encoding/json's own key sorting for
// determinism; the top-level edges are sorted explicitly since the graph
// keeps them in a map, while pipeline and predecessors keep their stored
// order, which Parse preserves. The result satisfies the round-trip law: parsing this
// output and re-serializing yields byte-identical JSON.
func Serialize(chain *graph.SupplyChain) ([]byte, error) {
	doc := document{}

	for _, n := range chain.Nodes() {
		llc := n.LLC
		nd := nodeDoc{
			ID:         n.ID,
			Backorders: n.Backorders,
			Data:       n.Data,
			LLC:        &llc,
		}

		if lines := n.Sales.Lines(); len(lines) > 0 {
			salesMap := make(map[string][]int, len(lines))
			for period, ls := range lines {
				salesMap[strconv.Itoa(period)] = ls
			}
			raw, err := json.Marshal(salesMap)
			if err != nil {
				return nil, err
			}
			nd.Sales = raw
		}

		queue := n.LeadTime.Queue()
		if len(queue) > 0 || n.LeadTime.Default != nil {
			queueMap := make(map[string]int, len(queue))
			for period, v := range queue {
				queueMap[strconv.Itoa(period)] = v
			}
			raw, err := json.Marshal(leadTimeDoc{Queue: mustMarshal(queueMap), Default: n.LeadTime.Default})
			if err != nil {
				return nil, err
			}
			nd.LeadTime = raw
		}

		if len(n.Stock) > 0 {
			nd.Stock = map[string]int(n.Stock)
		}

		ordersMap := make(map[string]int)
		n.Orders.Range(func(target string, qty int) bool {
			ordersMap[target] = qty
			return true
		})
		if len(ordersMap) > 0 {
			nd.Orders = ordersMap
		}

		for _, r := range n.Pipeline.Receipts() {
			nd.Pipeline = append(nd.Pipeline, receiptDoc{SKUCode: r.SKUCode, ETA: r.ETA, Quantity: r.Quantity})
		}

		for _, e := range n.Predecessors {
			nd.Predecessors = append(nd.Predecessors, edgeDoc{Source: e.Source, Destination: e.Destination, Number: e.Number})
		}

		doc.Nodes = append(doc.Nodes, nd)
	}

	for _, e := range chain.Edges() {
		doc.Edges = append(doc.Edges, edgeDoc{Source: e.Source, Destination: e.Destination, Number: e.Number})
	}
	sort.Slice(doc.Edges, func(i, j int) bool {
		return doc.Edges[i].Source+"->"+doc.Edges[i].Destination < doc.Edges[j].Source+"->"+doc.Edges[j].Destination
	})

	return json.MarshalIndent(doc, "", "  ")
}

func mustMarshal(v map[string]int) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		// v is always a map[string]int, which always marshals.
		panic(err)
	}
	return raw
}
