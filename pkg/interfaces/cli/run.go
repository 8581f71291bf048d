// Package cli assembles a Simulator from a loaded scenario file and runs
// it for a caller-supplied period range. The simulator core itself has no
// CLI (spec.md §6.4 treats it as an external collaborator); this package
// is the wiring - load, pick strategies, run, summarize - the way the
// teacher's pkg/interfaces/cli/commands package wires pkg/mrp's engine.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/chain-stock/suppy/pkg/application/services/control"
	"github.com/chain-stock/suppy/pkg/application/services/release"
	"github.com/chain-stock/suppy/pkg/application/services/simulator"
	"github.com/chain-stock/suppy/pkg/domain/graph"
	"github.com/chain-stock/suppy/pkg/domain/strategy"
	"github.com/chain-stock/suppy/pkg/infrastructure/metrics"
	"github.com/chain-stock/suppy/pkg/infrastructure/parse"
)

// Config controls a single simulation run.
type Config struct {
	ScenarioPath string
	Start        int
	End          int
	Loops        int
	MetricsFile  string // empty disables metrics emission
	Control      string // "rsq" (default), "rs", "multiechelon_rs"
	Release      string // "fractional" (default), "allocationfraction"
}

// NodeSummary reports one node's final state after a run.
type NodeSummary struct {
	ID         string         `json:"id"`
	Stock      map[string]int `json:"stock"`
	Backorders int            `json:"backorders"`
	Orders     map[string]int `json:"orders"`
	Pipeline   []string       `json:"pipeline"`
}

// Summary reports every node's final state after a run.
type Summary struct {
	Period int           `json:"period"`
	Nodes  []NodeSummary `json:"nodes"`
}

// Run loads cfg.ScenarioPath, builds the chosen control/release strategies
// and metrics sink, and drives the simulator across [Start, End] for Loops
// iterations, returning a Summary of every node's final state.
func Run(ctx context.Context, cfg Config) (*Summary, error) {
	data, err := os.ReadFile(cfg.ScenarioPath)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", cfg.ScenarioPath, err)
	}

	chain, err := parse.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", cfg.ScenarioPath, err)
	}

	controlStrategy, err := buildControl(cfg.Control)
	if err != nil {
		return nil, err
	}
	releaseStrategy, err := buildRelease(cfg.Release)
	if err != nil {
		return nil, err
	}

	var sink metrics.Sink = metrics.NopSink{}
	if cfg.MetricsFile != "" {
		ndjson := metrics.NewNDJSONSink(metrics.NDJSONConfig{Filename: cfg.MetricsFile})
		defer ndjson.Close()
		sink = ndjson
	}

	sim := simulator.New(chain, controlStrategy, releaseStrategy, sink)
	if err := sim.Run(ctx, cfg.Start, cfg.End, cfg.Loops); err != nil {
		return nil, fmt.Errorf("simulating %s: %w", cfg.ScenarioPath, err)
	}

	return summarize(chain, cfg.End), nil
}

func buildControl(name string) (strategy.Control, error) {
	switch name {
	case "", "rsq":
		return control.RSQ{}, nil
	case "rs":
		return control.RS{}, nil
	case "multiechelon_rs":
		return control.MultiEchelonRS{}, nil
	default:
		return nil, fmt.Errorf("unknown control strategy %q", name)
	}
}

func buildRelease(name string) (strategy.Release, error) {
	switch name {
	case "", "fractional":
		return release.Fractional{}, nil
	case "allocationfraction":
		return release.AllocationFraction{}, nil
	default:
		return nil, fmt.Errorf("unknown release strategy %q", name)
	}
}

func summarize(chain *graph.SupplyChain, period int) *Summary {
	summary := &Summary{Period: period}
	for _, n := range chain.Nodes() {
		orders := make(map[string]int)
		n.Orders.Range(func(target string, qty int) bool {
			orders[target] = qty
			return true
		})

		var pipeline []string
		for _, r := range n.Pipeline.Receipts() {
			pipeline = append(pipeline, r.String())
		}

		summary.Nodes = append(summary.Nodes, NodeSummary{
			ID:         n.ID,
			Stock:      map[string]int(n.Stock),
			Backorders: n.Backorders,
			Orders:     orders,
			Pipeline:   pipeline,
		})
	}
	return summary
}
