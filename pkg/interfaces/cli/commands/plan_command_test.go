package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/stockplan/pkg/application/dto"
	"github.com/vsinha/stockplan/pkg/domain/entities"
	testhelpers "github.com/vsinha/stockplan/pkg/infrastructure/testing"
)

func scenarioConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, testhelpers.WriteRetailScenario(dir))

	return Config{
		ScenarioDir:      dir,
		Format:           "text",
		Encoding:         "utf-8",
		LowDOI:           45,
		CriticalDOI:      10,
		DOIGoal:          60,
		SmoothingWindow:  7,
		DemandWindowDays: 30,
		GrowthPeriodDays: 7,
	}
}

func TestPlanCommand_Help(t *testing.T) {
	var buf bytes.Buffer
	err := NewPlanCommand(Config{Help: true, Stdout: &buf}).Execute(context.Background())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "USAGE:")
}

func TestPlanCommand_ValidateInputs(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		errMsg string
	}{
		{
			name:   "no inputs",
			config: Config{Format: "text"},
			errMsg: "must specify either -scenario directory or individual CSV files",
		},
		{
			name:   "partial files",
			config: Config{ProductsFile: "p.csv", SalesFile: "s.csv", Format: "text"},
			errMsg: "must specify either -scenario directory or individual CSV files",
		},
		{
			name:   "bad format",
			config: Config{ScenarioDir: "x", Format: "xml"},
			errMsg: "unsupported output format: xml",
		},
		{
			name:   "csv without output",
			config: Config{ScenarioDir: "x", Format: "csv"},
			errMsg: "csv format requires -output directory",
		},
		{
			name:   "zero window",
			config: Config{ScenarioDir: "x", Format: "text"},
			errMsg: "smoothing window must be positive, got 0",
		},
		{
			name:   "negative window",
			config: Config{ScenarioDir: "x", Format: "text", SmoothingWindow: -3},
			errMsg: "smoothing window must be positive, got -3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewPlanCommand(tt.config).Execute(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestPlanCommand_MissingFile(t *testing.T) {
	config := scenarioConfig(t)
	require.NoError(t, os.Remove(filepath.Join(config.ScenarioDir, "sales.csv")))

	err := NewPlanCommand(config).Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Sales file not found")
}

func TestPlanCommand_Text(t *testing.T) {
	config := scenarioConfig(t)
	var buf bytes.Buffer
	config.Stdout = &buf
	config.Verbose = true

	err := NewPlanCommand(config).Execute(context.Background())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Stock Planner")
	assert.Contains(t, out, "Products: 3 (out of stock: 1, low stock: 1, in stock: 1)")
	assert.Contains(t, out, "Units To Make: 700")
	assert.Contains(t, out, "MUG-01 (Ceramic Mug): out-of-stock")
	assert.Contains(t, out, "TEE-01 (Cotton Tee): low-stock")
	assert.Contains(t, out, "Planning complete")
}

func TestPlanCommand_JSONWithEventsAndMetrics(t *testing.T) {
	config := scenarioConfig(t)
	outDir := t.TempDir()
	config.Format = "json"
	config.OutputDir = outDir
	config.MetricsFile = filepath.Join(outDir, "plan.prom")
	config.Stdout = &bytes.Buffer{}

	err := NewPlanCommand(config).Execute(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, "plan.json"))
	require.NoError(t, err)

	var result dto.PlanResult
	require.NoError(t, json.Unmarshal(data, &result))
	require.Len(t, result.Lines, 3)

	mug := result.Lines[0]
	assert.Equal(t, entities.SKU("MUG-01"), mug.SKU)
	assert.Equal(t, entities.OutOfStock, mug.Status)
	assert.Equal(t, 10.0, mug.DailyDemand)
	assert.Equal(t, 10.0, mug.DaysOfInventory)
	assert.Equal(t, 400.0, mug.Replenishment.UnitsToMake)
	assert.Equal(t, 8.0, mug.Replenishment.Pallets)

	tee := result.Lines[1]
	assert.Equal(t, entities.LowStock, tee.Status)
	assert.Equal(t, 60.0, tee.Goal.DOIGoal)
	assert.Equal(t, 300.0, tee.Replenishment.UnitsToMake)
	assert.Equal(t, 0.0, tee.Replenishment.Pallets)

	hat := result.Lines[2]
	assert.Equal(t, entities.InStock, hat.Status)
	assert.Equal(t, 0.0, hat.Replenishment.UnitsToMake)

	assert.Equal(t, 700.0, result.Summary.TotalUnitsToMake)
	assert.Equal(t, 8.0, result.Summary.TotalPallets)

	eventData, err := os.ReadFile(filepath.Join(outDir, "events.json"))
	require.NoError(t, err)
	var logged []map[string]interface{}
	require.NoError(t, json.Unmarshal(eventData, &logged))
	require.Len(t, logged, 4)
	assert.Equal(t, "stock.out", logged[0]["type"])
	assert.Equal(t, "replenishment.planned", logged[1]["type"])
	assert.Equal(t, "stock.low", logged[2]["type"])
	assert.Equal(t, "replenishment.planned", logged[3]["type"])

	metrics, err := os.ReadFile(config.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `stockplan_units_to_make{sku="MUG-01"} 400`)
}

func TestPlanCommand_SKUFilter(t *testing.T) {
	config := scenarioConfig(t)
	outDir := t.TempDir()
	config.Format = "csv"
	config.OutputDir = outDir
	config.SKUs = " CAP-01, TEE-01 ,"
	config.Stdout = &bytes.Buffer{}

	err := NewPlanCommand(config).Execute(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, "plan.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "TEE-01")
	assert.Contains(t, string(data), "CAP-01")
	assert.NotContains(t, string(data), "MUG-01")
}

func TestPlanCommand_UnknownSKU(t *testing.T) {
	config := scenarioConfig(t)
	config.SKUs = "NOPE"
	config.Stdout = &bytes.Buffer{}

	err := NewPlanCommand(config).Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "product not found: NOPE")
}

func TestPlanCommand_UnsupportedEncoding(t *testing.T) {
	config := scenarioConfig(t)
	config.Encoding = "klingon"

	err := NewPlanCommand(config).Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported encoding "klingon"`)
}

func TestPlanCommand_WindowNotReplacedByDefault(t *testing.T) {
	config := scenarioConfig(t)
	config.SmoothingWindow = 0

	err := NewPlanCommand(config).Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "smoothing window must be positive, got 0")
}

func TestParseSKUs(t *testing.T) {
	assert.Nil(t, parseSKUs(""))
	assert.Equal(t, []entities.SKU{"A", "B"}, parseSKUs("A, B,,"))
}
