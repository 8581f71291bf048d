// Command suppysim runs a discrete-time, multi-echelon supply-chain
// simulation from a JSON scenario file. It is a thin wrapper: all of the
// simulation semantics live in pkg/domain and pkg/application/services;
// this just wires flags to pkg/interfaces/cli.Run.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/chain-stock/suppy/pkg/interfaces/cli"
)

func main() {
	var (
		scenario     = flag.String("scenario", "", "path to the JSON scenario file (required)")
		start        = flag.Int("start", 1, "first period to simulate")
		end          = flag.Int("end", 1, "last period to simulate")
		loops        = flag.Int("loops", 1, "number of times to rerun the [start, end] range, preserving state")
		format       = flag.String("format", "text", "output format: text, json")
		metricsFile  = flag.String("metrics", "", "write per-event NDJSON metrics to this file (disabled if empty)")
		controlName  = flag.String("control", "rsq", "control strategy: rsq, rs, multiechelon_rs")
		releaseName  = flag.String("release", "fractional", "release strategy: fractional, allocationfraction")
		help         = flag.Bool("help", false, "show this help message")
	)

	flag.Parse()

	if *help {
		showHelp()
		return
	}

	if *scenario == "" {
		fmt.Fprintln(os.Stderr, "Error: -scenario is required")
		showHelp()
		os.Exit(1)
	}

	summary, err := cli.Run(context.Background(), cli.Config{
		ScenarioPath: *scenario,
		Start:        *start,
		End:          *end,
		Loops:        *loops,
		MetricsFile:  *metricsFile,
		Control:      *controlName,
		Release:      *releaseName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch *format {
	case "text":
		err = cli.WriteText(os.Stdout, summary)
	case "json":
		err = cli.WriteJSON(os.Stdout, summary)
	default:
		fmt.Fprintf(os.Stderr, "Error: unsupported output format: %s\n", *format)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
}

func showHelp() {
	fmt.Print(`suppysim - discrete-time multi-echelon supply-chain simulator

USAGE:
    suppysim -scenario <file> -start <period> -end <period> [options]

OPTIONS:
    -scenario <file>    Path to the JSON scenario file (required)
    -start <period>     First period to simulate (default 1)
    -end <period>       Last period to simulate (default 1)
    -loops <n>          Rerun the range n times, preserving state (default 1)
    -control <name>     Control strategy: rsq, rs, multiechelon_rs (default rsq)
    -release <name>     Release strategy: fractional, allocationfraction (default fractional)
    -metrics <file>     Write per-event NDJSON metrics to this file
    -format <fmt>       Output format: text, json (default text)
    -help               Show this help message

EXAMPLES:
    suppysim -scenario scenarios/diamond.json -start 1 -end 10
    suppysim -scenario scenarios/diamond.json -start 1 -end 10 -loops 3 -format json
`)
}
