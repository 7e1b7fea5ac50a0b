package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vsinha/stockplan/pkg/application/dto"
	"github.com/vsinha/stockplan/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format       string
	OutputDir    string
	Verbose      bool
	PlanningTime time.Duration
	InputFiles   map[string]string
	// Stdout receives console output; os.Stdout when nil
	Stdout io.Writer
}

func (c Config) stdout() io.Writer {
	if c.Stdout != nil {
		return c.Stdout
	}
	return os.Stdout
}

// Generate creates output in the specified format
func Generate(result *dto.PlanResult, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	case "csv":
		return generateCSVOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(result *dto.PlanResult, config Config) error {
	var buf bytes.Buffer
	writeText(&buf, result, config)

	if _, err := config.stdout().Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write text output: %w", err)
	}

	if config.OutputDir != "" {
		filename, err := writeFile(config.OutputDir, "plan.txt", buf.Bytes())
		if err != nil {
			return err
		}
		if config.Verbose {
			fmt.Fprintf(config.stdout(), "💾 Results saved to: %s\n", filename)
		}
	}

	return nil
}

func writeText(w io.Writer, result *dto.PlanResult, config Config) {
	p := message.NewPrinter(language.English)
	s := result.Summary

	fmt.Fprintf(w, "📊 Inventory Plan Summary\n")
	fmt.Fprintf(w, "=========================\n\n")

	fmt.Fprintf(w, "Run: %s\n", result.RunID)
	fmt.Fprintf(w, "Generated: %s\n", result.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Thresholds: low <= %s days, critical <= %s days\n",
		p.Sprintf("%v", result.Thresholds.Low), p.Sprintf("%v", result.Thresholds.Critical))
	fmt.Fprintf(w, "Products: %d (out of stock: %d, low stock: %d, in stock: %d)\n",
		s.Products, s.OutOfStock, s.LowStock, s.InStock)
	fmt.Fprintf(w, "Units To Make: %s\n", p.Sprintf("%.0f", s.TotalUnitsToMake))
	fmt.Fprintf(w, "Pallets: %s\n", p.Sprintf("%.0f", s.TotalPallets))
	if config.PlanningTime > 0 {
		fmt.Fprintf(w, "Planning Time: %v\n", config.PlanningTime)
	}
	fmt.Fprintln(w)

	if len(result.Lines) > 0 {
		fmt.Fprintf(w, "📋 Replenishment Plan:\n")
		fmt.Fprintf(w, "%-15s %-13s %-10s %-10s %-10s %-6s %-9s %-10s %-8s\n",
			"SKU", "Status", "Available", "Inbound", "Demand/d", "DOI", "Growth", "To Make", "Pallets")
		fmt.Fprintf(w, "%-15s %-13s %-10s %-10s %-10s %-6s %-9s %-10s %-8s\n",
			"---------------", "-------------", "----------", "----------", "----------",
			"------", "---------", "----------", "--------")

		for _, line := range result.Lines {
			fmt.Fprintf(w, "%-15s %-13s %-10s %-10s %-10s %-6s %-9s %-10s %-8s\n",
				line.SKU,
				line.Status.String(),
				p.Sprintf("%.0f", line.AvailableInventory),
				p.Sprintf("%.0f", line.InboundInventory),
				p.Sprintf("%.1f", line.DailyDemand),
				p.Sprintf("%.0f", line.DaysOfInventory),
				p.Sprintf("%+.1f%%", line.GrowthRate),
				p.Sprintf("%.0f", line.Replenishment.UnitsToMake),
				p.Sprintf("%.0f", line.Replenishment.Pallets))
		}
		fmt.Fprintln(w)
	}

	var alerts []dto.PlanLine
	for _, line := range result.Lines {
		if line.Status != entities.InStock {
			alerts = append(alerts, line)
		}
	}
	if len(alerts) > 0 {
		fmt.Fprintf(w, "⚠️  Stock Alerts:\n")
		for _, line := range alerts {
			fmt.Fprintf(w, "  %s (%s): %s, %s days of inventory\n",
				line.SKU, line.Name, line.Status.String(), p.Sprintf("%.0f", line.DaysOfInventory))
		}
		fmt.Fprintln(w)
	}
}

// generateJSONOutput creates JSON output
func generateJSONOutput(result *dto.PlanResult, config Config) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Fprintln(config.stdout(), string(jsonData))
		return nil
	}

	filename, err := writeFile(config.OutputDir, "plan.json", jsonData)
	if err != nil {
		return err
	}
	if config.Verbose {
		fmt.Fprintf(config.stdout(), "💾 JSON results saved to: %s\n", filename)
	}

	return nil
}

// generateCSVOutput creates CSV output
func generateCSVOutput(result *dto.PlanResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	planFile := filepath.Join(config.OutputDir, "plan.csv")
	if err := writePlanCSV(result.Lines, planFile); err != nil {
		return fmt.Errorf("failed to write plan CSV: %w", err)
	}

	forecastFile := filepath.Join(config.OutputDir, "forecast.csv")
	if err := writeForecastCSV(result.Lines, forecastFile); err != nil {
		return fmt.Errorf("failed to write forecast CSV: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.stdout(), "💾 CSV results saved to:\n")
		fmt.Fprintf(config.stdout(), "  Plan: %s\n", planFile)
		fmt.Fprintf(config.stdout(), "  Forecast: %s\n", forecastFile)
	}

	return nil
}

func writeFile(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(dir, name)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeCSV(filename string, header []string, rows [][]string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return err
	}
	if err := writer.WriteAll(rows); err != nil {
		return err
	}
	return file.Close()
}

func writePlanCSV(lines []dto.PlanLine, filename string) error {
	header := []string{
		"sku", "name", "status", "available_inventory", "inbound_inventory", "total_inventory",
		"daily_demand", "days_of_inventory", "growth_rate", "doi_goal", "target_inventory",
		"units_to_make", "pallets",
	}

	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, []string{
			string(line.SKU),
			line.Name,
			line.Status.String(),
			formatFloat(line.AvailableInventory),
			formatFloat(line.InboundInventory),
			formatFloat(line.TotalInventory),
			formatFloat(line.DailyDemand),
			formatFloat(line.DaysOfInventory),
			formatFloat(line.GrowthRate),
			formatFloat(line.Goal.DOIGoal),
			formatFloat(line.Replenishment.TargetInventory),
			formatFloat(line.Replenishment.UnitsToMake),
			formatFloat(line.Replenishment.Pallets),
		})
	}
	return writeCSV(filename, header, rows)
}

func writeForecastCSV(lines []dto.PlanLine, filename string) error {
	header := []string{"sku", "date", "smoothed_units"}

	var rows [][]string
	for _, line := range lines {
		for i, v := range line.Forecast {
			date := ""
			if !line.ForecastStart.IsZero() {
				date = line.ForecastStart.AddDate(0, 0, i).Format("2006-01-02")
			}
			rows = append(rows, []string{string(line.SKU), date, formatFloat(v)})
		}
	}
	return writeCSV(filename, header, rows)
}
