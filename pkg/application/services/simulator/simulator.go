// Package simulator drives the period-phased scheduler described by the
// core: accept receipts, assemble, satisfy backorders, satisfy sales, age
// pipelines, then sweep the echelon ordering/release cycle from
// finished-goods upstream.
package simulator

import (
	"context"
	"fmt"

	"github.com/chain-stock/suppy/pkg/domain/entities"
	"github.com/chain-stock/suppy/pkg/domain/graph"
	"github.com/chain-stock/suppy/pkg/domain/strategy"
	"github.com/chain-stock/suppy/pkg/infrastructure/metrics"
)

// Simulator runs a SupplyChain against a chosen control and release
// strategy, emitting metrics through sink as it goes.
type Simulator struct {
	Chain   *graph.SupplyChain
	Control strategy.Control
	Release strategy.Release
	Sink    metrics.Sink
}

// New constructs a Simulator. A nil sink is replaced with metrics.NopSink.
func New(chain *graph.SupplyChain, control strategy.Control, release strategy.Release, sink metrics.Sink) *Simulator {
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Simulator{Chain: chain, Control: control, Release: release, Sink: sink}
}

// Run executes simulate_period for period in [start, end]. If loops > 1,
// the same range is rerun that many times, preserving node state between
// loops. Before running, every node must have llc >= 0, else InvalidLLC.
func (s *Simulator) Run(ctx context.Context, start, end, loops int) error {
	if loops < 1 {
		loops = 1
	}

	for _, node := range s.Chain.Nodes() {
		if node.LLC < 0 {
			return &entities.InvalidLLC{NodeID: node.ID, LLC: node.LLC}
		}
	}

	span := end - start + 1

	for loop := 0; loop < loops; loop++ {
		for period := start; period <= end; period++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if err := s.simulatePeriod(period, loop); err != nil {
				return fmt.Errorf("period %d (loop %d): %w", period, loop, err)
			}

			globalPeriod := period + loop*span
			for _, node := range s.Chain.Nodes() {
				s.logNodeState(node, globalPeriod, loop)
			}
		}
	}

	return nil
}

// simulatePeriod performs the phases in strict order, iterating over all
// nodes within each phase before moving to the next.
func (s *Simulator) simulatePeriod(period, loop int) error {
	nodes := s.Chain.Nodes()

	for _, node := range nodes {
		node.SatisfyReceivedReceipts()
	}

	for _, node := range nodes {
		node.Assemble()
	}

	for _, node := range nodes {
		node.SatisfyBackorders()
	}

	for _, node := range nodes {
		m := node.SatisfySales(period)
		s.emitSalesMetrics(node, period, loop, m)
	}

	for _, node := range nodes {
		node.Pipeline.Age()
	}

	for llc := 0; llc <= s.Chain.MaxLLC(); llc++ {
		for _, node := range s.Chain.NodesByLLC(llc) {
			orders, err := s.Control.GetOrders(s.Chain, node, period)
			if err != nil {
				return err
			}
			if err := s.Chain.CreateOrders(node, orders, period); err != nil {
				return err
			}

			releases, err := s.Release.GetReleases(node)
			if err != nil {
				return err
			}
			if err := s.Chain.ReleaseOrders(node, releases, period); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *Simulator) emitSalesMetrics(node *entities.Node, period, loop int, m entities.SalesMetrics) {
	s.Sink.Emit(metrics.Record{Period: period, Loop: loop, Node: node.ID, Event: metrics.EventSales, Quantity: float64(m.Demand)})
	s.Sink.Emit(metrics.Record{Period: period, Loop: loop, Node: node.ID, Event: metrics.EventOrderLines, Quantity: float64(m.OrderLines)})
	if m.Satisfied > 0 {
		s.Sink.Emit(metrics.Record{Period: period, Loop: loop, Node: node.ID, Event: metrics.EventSalesSatisfied, Quantity: float64(m.Satisfied)})
	}
	if m.OrderLinesSatisfied > 0 {
		s.Sink.Emit(metrics.Record{Period: period, Loop: loop, Node: node.ID, Event: metrics.EventOrderLinesSatisfied, Quantity: float64(m.OrderLinesSatisfied)})
	}
	if m.Backordered > 0 {
		s.Sink.Emit(metrics.Record{Period: period, Loop: loop, Node: node.ID, Event: metrics.EventSalesBackordered, Quantity: float64(m.Backordered)})
	}
	if m.OrderLinesBackordered > 0 {
		s.Sink.Emit(metrics.Record{Period: period, Loop: loop, Node: node.ID, Event: metrics.EventOrderLinesBackordered, Quantity: float64(m.OrderLinesBackordered)})
	}
}

func (s *Simulator) logNodeState(node *entities.Node, period, loop int) {
	s.Sink.Emit(metrics.Record{Level: metrics.LevelDebug, Period: period, Loop: loop, Node: node.ID, Event: metrics.EventNodeStock, Message: fmt.Sprintf("%v", map[string]int(node.Stock))})
	s.Sink.Emit(metrics.Record{Level: metrics.LevelDebug, Period: period, Loop: loop, Node: node.ID, Event: metrics.EventNodeBackorders, Quantity: float64(node.Backorders)})
	s.Sink.Emit(metrics.Record{Level: metrics.LevelDebug, Period: period, Loop: loop, Node: node.ID, Event: metrics.EventNodePipeline, Message: fmt.Sprintf("%v", node.Pipeline.Receipts())})

	orders := make(map[string]int)
	node.Orders.Range(func(target string, qty int) bool {
		orders[target] = qty
		return true
	})
	s.Sink.Emit(metrics.Record{Level: metrics.LevelDebug, Period: period, Loop: loop, Node: node.ID, Event: metrics.EventNodeOrders, Message: fmt.Sprintf("%v", orders)})
}
