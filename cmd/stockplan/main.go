package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"k8s.io/klog/v2"

	"github.com/vsinha/stockplan/pkg/config"
	"github.com/vsinha/stockplan/pkg/interfaces/cli/commands"
)

func main() {
	defaults, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	klog.InitFlags(nil)

	// Command line flags
	var (
		scenarioDir = flag.String(
			"scenario",
			"",
			"Path to scenario directory containing CSV files",
		)
		productsFile  = flag.String("products", "", "Path to products CSV file")
		inventoryFile = flag.String("inventory", "", "Path to inventory CSV file")
		salesFile     = flag.String("sales", "", "Path to daily sales CSV file")
		outputDir     = flag.String("output", "", "Output directory for results (optional)")
		format        = flag.String("format", defaults.Format, "Output format: text, json, csv")
		encoding      = flag.String("encoding", defaults.Encoding, "Character set of the input files")
		low           = flag.Float64("low", defaults.Thresholds.Low, "Low stock threshold in days of inventory")
		critical      = flag.Float64("critical", defaults.Thresholds.Critical, "Out of stock threshold in days of inventory")
		doiGoal       = flag.Float64("doi-goal", defaults.DOIGoal, "Default days of inventory goal")
		window        = flag.Int("window", defaults.SmoothingWindow, "Sales smoothing window in days")
		skus          = flag.String("skus", "", "Comma separated SKUs to plan (default: all)")
		metricsFile   = flag.String("metrics-file", "", "Write plan metrics in Prometheus text format")
		verbose       = flag.Bool("verbose", false, "Enable verbose output")
		help          = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()
	defer klog.Flush()

	if *verbose && flag.Lookup("v").Value.String() == "0" {
		_ = flag.Set("v", "1")
	}

	cfg := commands.Config{
		ScenarioDir:      *scenarioDir,
		ProductsFile:     *productsFile,
		InventoryFile:    *inventoryFile,
		SalesFile:        *salesFile,
		OutputDir:        *outputDir,
		Format:           *format,
		Encoding:         *encoding,
		LowDOI:           *low,
		CriticalDOI:      *critical,
		DOIGoal:          *doiGoal,
		SmoothingWindow:  *window,
		DemandWindowDays: defaults.DemandWindowDays,
		GrowthPeriodDays: defaults.GrowthPeriodDays,
		SKUs:             *skus,
		MetricsFile:      *metricsFile,
		Verbose:          *verbose,
		Help:             *help,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := commands.NewPlanCommand(cfg)
	if err := cmd.Execute(ctx); err != nil {
		klog.Flush()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
