package main

import (
	"context"
	"fmt"
	"time"

	"github.com/vsinha/stockplan/pkg/application/services"
	"github.com/vsinha/stockplan/pkg/domain/entities"
	"github.com/vsinha/stockplan/pkg/domain/services/planning"
	"github.com/vsinha/stockplan/pkg/infrastructure/events"
	"github.com/vsinha/stockplan/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	// Two weeks of sales for a single mug, with a promotion spike on day 9
	sales := []float64{12, 9, 11, 10, 13, 8, 12, 11, 40, 12, 10, 11, 13, 12}

	fmt.Println("📈 Smoothed daily sales (7 day window):")
	for v := range planning.Smooth(sales, planning.DefaultSmoothingWindow) {
		fmt.Printf("  %.2f\n", v)
	}
	fmt.Println()

	forecast := planning.SmoothSeries(sales, planning.DefaultSmoothingWindow)
	demand := planning.AverageDailyDemand(forecast)
	available := planning.AvailableInventory(180, 220)
	doi := planning.DaysOfInventory(available, demand)
	status := planning.ClassifyStock(doi, entities.DefaultDOIThresholds())

	fmt.Printf("Daily demand: %.2f units\n", demand)
	fmt.Printf("Available: %.0f units, %.0f days of inventory (%s)\n", available, doi, status)

	units := planning.UnitsToMake(available, demand, 60, 14)
	fmt.Printf("Units to make for 60 days: %.0f (%.0f pallets of 48)\n", units, planning.PalletsRequired(units, 48))
	fmt.Println()

	// Strict variants reject bad input instead of guessing
	var strict planning.Strict
	if _, err := strict.PalletsRequired(units, 0); err != nil {
		fmt.Printf("❌ %v\n\n", err)
	}

	// The same product planned end to end through the planning service
	productRepo := memory.NewProductRepository(1)
	_ = productRepo.SaveProduct(&entities.Product{SKU: "MUG-01", Name: "Ceramic Mug", UnitsPerPallet: 48, DOIGoal: entities.Days(60), LeadTimeDays: 14})

	inventoryRepo := memory.NewInventoryRepository()
	inventoryRepo.AddSnapshot(entities.InventorySnapshot{SKU: "MUG-01", FBAAvailable: 180, AWDAvailable: 220, FBATotal: 200, AWDTotal: 220})

	salesRepo := memory.NewSalesRepository()
	_ = salesRepo.LoadHistory([]*entities.SalesHistory{{
		SKU:   "MUG-01",
		Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Daily: sales,
	}})

	eventStore := events.NewInMemoryEventStore()
	planner := services.NewPlanningService(productRepo, inventoryRepo, salesRepo, services.WithEventStore(eventStore))

	result, err := planner.BuildPlan(ctx, services.DefaultPlanRequest())
	if err != nil {
		fmt.Printf("❌ Planning failed: %v\n", err)
		return
	}

	fmt.Println("📊 Plan:")
	for _, line := range result.Lines {
		fmt.Printf("  %s: %s, %.0f days, make %.0f units in %.0f pallets (growth %+.1f%%)\n",
			line.SKU, line.Status, line.DaysOfInventory,
			line.Replenishment.UnitsToMake, line.Replenishment.Pallets, line.GrowthRate)
	}

	published, _ := eventStore.ReadAllEvents(0)
	fmt.Printf("\n📣 %d events published\n", len(published))
	for _, event := range published {
		fmt.Printf("  %s %s\n", event.Type(), event.StreamID())
	}
}
