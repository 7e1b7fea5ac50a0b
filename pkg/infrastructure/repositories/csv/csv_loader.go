package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/vsinha/stockplan/pkg/domain/entities"
)

const dateLayout = "2006-01-02"

var (
	productsHeader  = []string{"sku", "name", "units_per_pallet", "doi_goal", "lead_time_days"}
	inventoryHeader = []string{"sku", "fba_available", "awd_available", "fba_total", "awd_total", "fba_inbound", "awd_inbound"}
	salesHeader     = []string{"sku", "date", "units"}
)

// Loader handles loading planning data from CSV files
type Loader struct {
	encoding encoding.Encoding
}

// Option configures a Loader
type Option func(*Loader) error

// WithEncoding decodes input files from the named character set, e.g.
// "shift_jis" for exports from Japanese spreadsheet tools. Names follow the
// WHATWG encoding labels.
func WithEncoding(name string) Option {
	return func(l *Loader) error {
		name = strings.TrimSpace(name)
		if name == "" || strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
			l.encoding = nil
			return nil
		}
		enc, err := htmlindex.Get(name)
		if err != nil {
			return fmt.Errorf("unsupported encoding %q: %w", name, err)
		}
		l.encoding = enc
		return nil
	}
}

// NewLoader creates a new CSV loader
func NewLoader(opts ...Option) (*Loader, error) {
	l := &Loader{}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// LoadProducts loads the product catalog from a CSV file
func (l *Loader) LoadProducts(filename string) ([]*entities.Product, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open products file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadProducts(file)
}

// ReadProducts parses the product catalog
func (l *Loader) ReadProducts(r io.Reader) ([]*entities.Product, error) {
	records, err := l.readRecords(r, "products", productsHeader)
	if err != nil {
		return nil, err
	}

	products := make([]*entities.Product, 0, len(records))
	for i, record := range records {
		product, err := parseProduct(record)
		if err != nil {
			return nil, fmt.Errorf("products CSV row %d: %w", i+2, err)
		}
		products = append(products, product)
	}

	return products, nil
}

// LoadInventory loads inventory snapshots from a CSV file
func (l *Loader) LoadInventory(filename string) ([]*entities.InventorySnapshot, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open inventory file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadInventory(file)
}

// ReadInventory parses inventory snapshots
func (l *Loader) ReadInventory(r io.Reader) ([]*entities.InventorySnapshot, error) {
	records, err := l.readRecords(r, "inventory", inventoryHeader)
	if err != nil {
		return nil, err
	}

	snapshots := make([]*entities.InventorySnapshot, 0, len(records))
	for i, record := range records {
		snapshot, err := parseSnapshot(record)
		if err != nil {
			return nil, fmt.Errorf("inventory CSV row %d: %w", i+2, err)
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, nil
}

// LoadSales loads daily sales from a CSV file and groups them per SKU
func (l *Loader) LoadSales(filename string) ([]*entities.SalesHistory, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open sales file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadSales(file)
}

// ReadSales parses daily sales rows into one contiguous daily series per SKU.
// Rows for the same SKU and day are summed and days without a row count as
// zero sales. Histories are returned in order of first appearance.
func (l *Loader) ReadSales(r io.Reader) ([]*entities.SalesHistory, error) {
	records, err := l.readRecords(r, "sales", salesHeader)
	if err != nil {
		return nil, err
	}

	var order []entities.SKU
	bySKU := make(map[entities.SKU][]entities.DailySale)
	for i, record := range records {
		sale, err := parseSale(record)
		if err != nil {
			return nil, fmt.Errorf("sales CSV row %d: %w", i+2, err)
		}
		if _, seen := bySKU[sale.SKU]; !seen {
			order = append(order, sale.SKU)
		}
		bySKU[sale.SKU] = append(bySKU[sale.SKU], sale)
	}

	histories := make([]*entities.SalesHistory, 0, len(order))
	for _, sku := range order {
		histories = append(histories, buildHistory(sku, bySKU[sku]))
	}
	return histories, nil
}

// readRecords validates the header and returns the data rows
func (l *Loader) readRecords(r io.Reader, name string, expectedHeader []string) ([][]string, error) {
	if l.encoding != nil {
		r = transform.NewReader(r, l.encoding.NewDecoder())
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", name, err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", name)
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("%s CSV header mismatch. Expected: %v, Got: %v", name, expectedHeader, header)
	}

	rows := records[1:]
	for i, record := range rows {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s CSV row %d: expected %d columns, got %d", name, i+2, len(expectedHeader), len(record))
		}
	}
	return rows, nil
}

// Helper functions for parsing CSV records

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

func parseNumber(field, value string) (float64, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", field, value)
	}
	return n, nil
}

func parseNumbers(record []string, header []string, from int) ([]float64, error) {
	values := make([]float64, 0, len(record)-from)
	for i := from; i < len(record); i++ {
		n, err := parseNumber(header[i], record[i])
		if err != nil {
			return nil, err
		}
		values = append(values, n)
	}
	return values, nil
}

// parseProduct reads a catalog row; an empty doi_goal cell leaves the
// product on the run default
func parseProduct(record []string) (*entities.Product, error) {
	unitsPerPallet, err := parseNumber(productsHeader[2], record[2])
	if err != nil {
		return nil, err
	}

	var doiGoal *float64
	if strings.TrimSpace(record[3]) != "" {
		goal, err := parseNumber(productsHeader[3], record[3])
		if err != nil {
			return nil, err
		}
		doiGoal = &goal
	}

	leadTimeDays, err := parseNumber(productsHeader[4], record[4])
	if err != nil {
		return nil, err
	}

	return entities.NewProduct(
		entities.SKU(strings.TrimSpace(record[0])),
		strings.TrimSpace(record[1]),
		unitsPerPallet,
		doiGoal,
		leadTimeDays,
	)
}

func parseSnapshot(record []string) (*entities.InventorySnapshot, error) {
	values, err := parseNumbers(record, inventoryHeader, 1)
	if err != nil {
		return nil, err
	}

	return entities.NewInventorySnapshot(
		entities.SKU(strings.TrimSpace(record[0])),
		values[0], values[1], values[2], values[3], values[4], values[5],
	)
}

func parseSale(record []string) (entities.DailySale, error) {
	sku := entities.SKU(strings.TrimSpace(record[0]))
	if sku == "" {
		return entities.DailySale{}, fmt.Errorf("sku cannot be empty")
	}

	date, err := time.Parse(dateLayout, strings.TrimSpace(record[1]))
	if err != nil {
		return entities.DailySale{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", record[1])
	}

	units, err := parseNumber("units", record[2])
	if err != nil {
		return entities.DailySale{}, err
	}
	if err := entities.ValidateUnits("units", units); err != nil {
		return entities.DailySale{}, err
	}

	return entities.DailySale{SKU: sku, Date: date, Units: units}, nil
}

func buildHistory(sku entities.SKU, sales []entities.DailySale) *entities.SalesHistory {
	sort.SliceStable(sales, func(i, j int) bool {
		return sales[i].Date.Before(sales[j].Date)
	})

	start := sales[0].Date
	end := sales[len(sales)-1].Date
	days := int(end.Sub(start).Hours()/24) + 1

	daily := make(entities.TimeSeries, days)
	for _, sale := range sales {
		daily[int(sale.Date.Sub(start).Hours()/24)] += sale.Units
	}

	return &entities.SalesHistory{SKU: sku, Start: start, Daily: daily}
}
