package testing

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vsinha/stockplan/pkg/domain/entities"
	"github.com/vsinha/stockplan/pkg/infrastructure/repositories/memory"
)

// ScenarioStart is the first sales day of the retail scenario
var ScenarioStart = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

// ScenarioDays is the length of the retail scenario sales history
const ScenarioDays = 14

// RetailProducts returns the retail scenario catalog:
//
//	MUG-01 demand 10/day, 100 available, 100 inbound  -> out of stock, 400 to make
//	TEE-01 demand 10/day, 300 available, no DOI goal   -> low stock, 300 to make at a 60 day default
//	CAP-01 demand 10/day, 1000 available, goal 30 days -> in stock, nothing to make
func RetailProducts() []*entities.Product {
	return []*entities.Product{
		{SKU: "MUG-01", Name: "Ceramic Mug", UnitsPerPallet: 50, DOIGoal: entities.Days(60), LeadTimeDays: 14},
		{SKU: "TEE-01", Name: "Cotton Tee"},
		{SKU: "CAP-01", Name: "Baseball Cap", UnitsPerPallet: 100, DOIGoal: entities.Days(30), LeadTimeDays: 7},
	}
}

// RetailSnapshots returns the latest inventory for the retail scenario
func RetailSnapshots() []*entities.InventorySnapshot {
	return []*entities.InventorySnapshot{
		{SKU: "MUG-01", FBAAvailable: 60, AWDAvailable: 40, FBATotal: 70, AWDTotal: 40, FBAInbound: 100},
		{SKU: "TEE-01", FBAAvailable: 300, FBATotal: 300},
		{SKU: "CAP-01", FBAAvailable: 1000, FBATotal: 1000},
	}
}

// RetailSales returns a flat 10 units a day for every product
func RetailSales() []*entities.SalesHistory {
	var histories []*entities.SalesHistory
	for _, product := range RetailProducts() {
		daily := make(entities.TimeSeries, ScenarioDays)
		for i := range daily {
			daily[i] = 10
		}
		histories = append(histories, &entities.SalesHistory{
			SKU:   product.SKU,
			Start: ScenarioStart,
			Daily: daily,
		})
	}
	return histories
}

// BuildRetailScenario loads the retail scenario into memory repositories
func BuildRetailScenario() (*memory.ProductRepository, *memory.InventoryRepository, *memory.SalesRepository, error) {
	products := RetailProducts()
	productRepo := memory.NewProductRepository(len(products))
	if err := productRepo.LoadProducts(products); err != nil {
		return nil, nil, nil, err
	}

	inventoryRepo := memory.NewInventoryRepository()
	if err := inventoryRepo.LoadSnapshots(RetailSnapshots()); err != nil {
		return nil, nil, nil, err
	}

	salesRepo := memory.NewSalesRepository()
	if err := salesRepo.LoadHistory(RetailSales()); err != nil {
		return nil, nil, nil, err
	}

	return productRepo, inventoryRepo, salesRepo, nil
}

// WriteRetailScenario writes the retail scenario as products.csv,
// inventory.csv and sales.csv into dir
func WriteRetailScenario(dir string) error {
	var products strings.Builder
	products.WriteString("sku,name,units_per_pallet,doi_goal,lead_time_days\n")
	for _, p := range RetailProducts() {
		goal := ""
		if p.DOIGoal != nil {
			goal = fmt.Sprint(*p.DOIGoal)
		}
		fmt.Fprintf(&products, "%s,%s,%v,%s,%v\n", p.SKU, p.Name, p.UnitsPerPallet, goal, p.LeadTimeDays)
	}

	var inventory strings.Builder
	inventory.WriteString("sku,fba_available,awd_available,fba_total,awd_total,fba_inbound,awd_inbound\n")
	for _, s := range RetailSnapshots() {
		fmt.Fprintf(&inventory, "%s,%v,%v,%v,%v,%v,%v\n",
			s.SKU, s.FBAAvailable, s.AWDAvailable, s.FBATotal, s.AWDTotal, s.FBAInbound, s.AWDInbound)
	}

	var sales strings.Builder
	sales.WriteString("sku,date,units\n")
	for _, h := range RetailSales() {
		for i, units := range h.Daily {
			fmt.Fprintf(&sales, "%s,%s,%v\n", h.SKU, h.Start.AddDate(0, 0, i).Format("2006-01-02"), units)
		}
	}

	files := map[string]string{
		"products.csv":  products.String(),
		"inventory.csv": inventory.String(),
		"sales.csv":     sales.String(),
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	return nil
}
