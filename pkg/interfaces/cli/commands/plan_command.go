package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"k8s.io/klog/v2"

	"github.com/vsinha/stockplan/pkg/application/services"
	"github.com/vsinha/stockplan/pkg/domain/entities"
	"github.com/vsinha/stockplan/pkg/infrastructure/events"
	"github.com/vsinha/stockplan/pkg/infrastructure/metrics"
	"github.com/vsinha/stockplan/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/stockplan/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/stockplan/pkg/interfaces/cli/output"
)

// Config holds configuration for the plan command
type Config struct {
	ScenarioDir      string
	ProductsFile     string
	InventoryFile    string
	SalesFile        string
	OutputDir        string
	Format           string
	Encoding         string
	LowDOI           float64
	CriticalDOI      float64
	DOIGoal          float64
	SmoothingWindow  int
	DemandWindowDays int
	GrowthPeriodDays int
	// SKUs is a comma separated list of products to plan; empty plans all
	SKUs        string
	MetricsFile string
	Verbose     bool
	Help        bool

	// Stdout receives console output; os.Stdout when nil
	Stdout io.Writer
}

// PlanCommand loads a scenario, builds the replenishment plan and renders it
type PlanCommand struct {
	config Config
}

// NewPlanCommand creates a new plan command with the given configuration
func NewPlanCommand(config Config) *PlanCommand {
	return &PlanCommand{
		config: config,
	}
}

func (c *PlanCommand) stdout() io.Writer {
	if c.config.Stdout != nil {
		return c.config.Stdout
	}
	return os.Stdout
}

// Execute runs the plan command
func (c *PlanCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	files, err := c.resolveInputFiles()
	if err != nil {
		return fmt.Errorf("failed to resolve input files: %w", err)
	}

	if c.config.Verbose {
		c.printHeader(files)
	}

	loader, err := csv.NewLoader(csv.WithEncoding(c.config.Encoding))
	if err != nil {
		return err
	}

	products, err := loader.LoadProducts(files["Products"])
	if err != nil {
		return fmt.Errorf("error loading products: %w", err)
	}

	snapshots, err := loader.LoadInventory(files["Inventory"])
	if err != nil {
		return fmt.Errorf("error loading inventory: %w", err)
	}

	histories, err := loader.LoadSales(files["Sales"])
	if err != nil {
		return fmt.Errorf("error loading sales: %w", err)
	}

	klog.V(1).InfoS("Scenario loaded",
		"products", len(products), "snapshots", len(snapshots), "histories", len(histories))

	productRepo := memory.NewProductRepository(len(products))
	if err := productRepo.LoadProducts(products); err != nil {
		return fmt.Errorf("failed to load products into repository: %w", err)
	}

	inventoryRepo := memory.NewInventoryRepository()
	if err := inventoryRepo.LoadSnapshots(snapshots); err != nil {
		return fmt.Errorf("failed to load inventory into repository: %w", err)
	}

	salesRepo := memory.NewSalesRepository()
	if err := salesRepo.LoadHistory(histories); err != nil {
		return fmt.Errorf("failed to load sales into repository: %w", err)
	}

	eventStore := events.NewInMemoryEventStore()
	if _, err := eventStore.Subscribe(
		[]string{events.StockOutEvent, events.StockLowEvent},
		events.HandlerFunc{
			Types: []string{events.StockOutEvent, events.StockLowEvent},
			Fn:    logStockAlert,
		},
	); err != nil {
		return fmt.Errorf("failed to subscribe to stock alerts: %w", err)
	}

	recorder := metrics.NewRecorder()
	planner := services.NewPlanningService(
		productRepo,
		inventoryRepo,
		salesRepo,
		services.WithEventStore(eventStore),
		services.WithRecorder(recorder),
	)

	startTime := time.Now()
	result, err := planner.BuildPlan(ctx, c.planRequest())
	planningTime := time.Since(startTime)
	if err != nil {
		return fmt.Errorf("error building plan: %w", err)
	}

	outputConfig := output.Config{
		Format:       c.config.Format,
		OutputDir:    c.config.OutputDir,
		Verbose:      c.config.Verbose,
		PlanningTime: planningTime,
		InputFiles:   files,
		Stdout:       c.config.Stdout,
	}
	if err := output.Generate(result, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	if c.config.OutputDir != "" {
		if err := writeEventLog(eventStore, c.config.OutputDir); err != nil {
			return err
		}
	}

	if c.config.MetricsFile != "" {
		if err := recorder.WriteTextfile(c.config.MetricsFile); err != nil {
			return err
		}
		klog.V(1).InfoS("Metrics written", "path", c.config.MetricsFile)
	}

	if c.config.Verbose {
		fmt.Fprintln(c.stdout(), "🏁 Planning complete!")
	}

	return nil
}

func (c *PlanCommand) planRequest() services.PlanRequest {
	req := services.PlanRequest{
		SKUs: parseSKUs(c.config.SKUs),
		Thresholds: entities.DOIThresholds{
			Low:      c.config.LowDOI,
			Critical: c.config.CriticalDOI,
		},
		DefaultDOIGoal:   c.config.DOIGoal,
		SmoothingWindow:  c.config.SmoothingWindow,
		DemandWindowDays: c.config.DemandWindowDays,
		GrowthPeriodDays: c.config.GrowthPeriodDays,
	}

	defaults := services.DefaultPlanRequest()
	if req.DemandWindowDays == 0 {
		req.DemandWindowDays = defaults.DemandWindowDays
	}
	if req.GrowthPeriodDays == 0 {
		req.GrowthPeriodDays = defaults.GrowthPeriodDays
	}
	return req
}

func parseSKUs(list string) []entities.SKU {
	var skus []entities.SKU
	for _, part := range strings.Split(list, ",") {
		if sku := strings.TrimSpace(part); sku != "" {
			skus = append(skus, entities.SKU(sku))
		}
	}
	return skus
}

func logStockAlert(event events.Event) error {
	alert, ok := event.Data().(events.StockAlert)
	if !ok {
		return fmt.Errorf("unexpected payload for %s: %T", event.Type(), event.Data())
	}
	klog.InfoS("Stock alert", "sku", alert.SKU, "status", alert.Status.String(), "doi", alert.DOI)
	return nil
}

// writeEventLog saves every event published during the run as events.json
func writeEventLog(store events.EventStore, outputDir string) error {
	all, err := store.ReadAllEvents(0)
	if err != nil {
		return fmt.Errorf("failed to read events: %w", err)
	}

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal events: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(outputDir, "events.json")
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

// validateInputs validates the command configuration
func (c *PlanCommand) validateInputs() error {
	if c.config.ScenarioDir == "" &&
		(c.config.ProductsFile == "" || c.config.InventoryFile == "" || c.config.SalesFile == "") {
		return fmt.Errorf("must specify either -scenario directory or individual CSV files")
	}
	switch c.config.Format {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("unsupported output format: %s", c.config.Format)
	}
	if c.config.Format == "csv" && c.config.OutputDir == "" {
		return fmt.Errorf("csv format requires -output directory")
	}
	if c.config.SmoothingWindow <= 0 {
		return fmt.Errorf("%w: smoothing window must be positive, got %d",
			entities.ErrInvalidArgument, c.config.SmoothingWindow)
	}
	return nil
}

// resolveInputFiles determines the actual file paths to use
func (c *PlanCommand) resolveInputFiles() (map[string]string, error) {
	var productsPath, inventoryPath, salesPath string

	if c.config.ScenarioDir != "" {
		productsPath = filepath.Join(c.config.ScenarioDir, "products.csv")
		inventoryPath = filepath.Join(c.config.ScenarioDir, "inventory.csv")
		salesPath = filepath.Join(c.config.ScenarioDir, "sales.csv")
	} else {
		productsPath = c.config.ProductsFile
		inventoryPath = c.config.InventoryFile
		salesPath = c.config.SalesFile
	}

	files := map[string]string{
		"Products":  productsPath,
		"Inventory": inventoryPath,
		"Sales":     salesPath,
	}

	for _, name := range []string{"Products", "Inventory", "Sales"} {
		if _, err := os.Stat(files[name]); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s file not found: %s", name, files[name])
		}
	}

	return files, nil
}

// printHeader prints the command header information
func (c *PlanCommand) printHeader(files map[string]string) {
	w := c.stdout()
	fmt.Fprintf(w, "🚀 Stock Planner\n")
	fmt.Fprintf(w, "Input files:\n")
	fmt.Fprintf(w, "  Products: %s\n", files["Products"])
	fmt.Fprintf(w, "  Inventory: %s\n", files["Inventory"])
	fmt.Fprintf(w, "  Sales: %s\n", files["Sales"])
	fmt.Fprintf(w, "Output format: %s\n", c.config.Format)
	if c.config.OutputDir != "" {
		fmt.Fprintf(w, "Output directory: %s\n", c.config.OutputDir)
	}
	fmt.Fprintln(w)
}

// showHelp displays the help message
func (c *PlanCommand) showHelp() {
	fmt.Fprint(c.stdout(), `Stock Planner - Days-of-inventory and replenishment planning

USAGE:
    stockplan -scenario <directory>                       # Use scenario directory with CSV files
    stockplan -products <file> -inventory <file> -sales <file>

OPTIONS:
    -scenario <dir>      Path to scenario directory containing CSV files
    -products <file>     Path to products CSV file
    -inventory <file>    Path to inventory CSV file
    -sales <file>        Path to daily sales CSV file
    -output <dir>        Output directory for results (required for csv)
    -format <fmt>        Output format: text, json, csv (default: text)
    -encoding <name>     Character set of the input files, e.g. shift_jis (default: utf-8)
    -low <days>          Low stock threshold in days of inventory (default: 45)
    -critical <days>     Out of stock threshold in days of inventory (default: 10)
    -doi-goal <days>     Days of inventory to plan for when a product has none (default: 60)
    -window <n>          Sales smoothing window in days (default: 7)
    -skus <list>         Comma separated SKUs to plan (default: all)
    -metrics-file <f>    Write plan metrics in Prometheus text format
    -verbose             Enable verbose output
    -help                Show this help message

Defaults may also be set with STOCKPLAN_* variables or a .env file.

SCENARIO DIRECTORY STRUCTURE:
    scenario_name/
    ├── products.csv    # Product catalog
    ├── inventory.csv   # Latest FBA and AWD inventory
    └── sales.csv       # Daily unit sales

CSV FILE FORMATS:

products.csv:
    sku,name,units_per_pallet,doi_goal,lead_time_days
    MUG-01,Ceramic Mug,48,60,14

inventory.csv:
    sku,fba_available,awd_available,fba_total,awd_total,fba_inbound,awd_inbound
    MUG-01,120,300,150,320,40,0

sales.csv:
    sku,date,units
    MUG-01,2024-03-01,12

EXAMPLES:
    stockplan -scenario examples/basic -verbose
    stockplan -scenario examples/basic -format json -output results/
    stockplan -scenario examples/basic -format csv -output results/ -metrics-file results/plan.prom
`)
}
