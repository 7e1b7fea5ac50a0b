package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/vsinha/stockplan/pkg/application/dto"
	"github.com/vsinha/stockplan/pkg/domain/entities"
	"github.com/vsinha/stockplan/pkg/domain/repositories"
	"github.com/vsinha/stockplan/pkg/domain/services/planning"
	"github.com/vsinha/stockplan/pkg/infrastructure/events"
	"github.com/vsinha/stockplan/pkg/infrastructure/metrics"
)

// PlanRequest selects the products to plan and the planning parameters
type PlanRequest struct {
	// SKUs limits the plan to these products; empty plans the whole catalog
	SKUs             []entities.SKU
	Thresholds       entities.DOIThresholds
	DefaultDOIGoal   float64
	SmoothingWindow  int
	DemandWindowDays int
	GrowthPeriodDays int
}

// DefaultPlanRequest returns a request for the whole catalog with default parameters
func DefaultPlanRequest() PlanRequest {
	return PlanRequest{
		Thresholds:       entities.DefaultDOIThresholds(),
		DefaultDOIGoal:   60,
		SmoothingWindow:  planning.DefaultSmoothingWindow,
		DemandWindowDays: 30,
		GrowthPeriodDays: 7,
	}
}

// Validate checks the request parameters
func (r PlanRequest) Validate() error {
	if err := r.Thresholds.Validate(); err != nil {
		return err
	}
	if err := entities.ValidateUnits("default doi goal", r.DefaultDOIGoal); err != nil {
		return err
	}
	if r.SmoothingWindow <= 0 || r.DemandWindowDays <= 0 || r.GrowthPeriodDays <= 0 {
		return fmt.Errorf("%w: smoothing window, demand window and growth period must be positive",
			entities.ErrInvalidArgument)
	}
	return nil
}

// PlanningService builds replenishment plans from the catalog, the latest
// inventory snapshots and the sales history
type PlanningService struct {
	productRepo   repositories.ProductRepository
	inventoryRepo repositories.InventoryRepository
	salesRepo     repositories.SalesRepository
	eventStore    events.EventStore
	recorder      *metrics.Recorder
	now           func() time.Time
}

// ServiceOption configures a PlanningService
type ServiceOption func(*PlanningService)

// WithEventStore publishes stock alerts and planned replenishments
func WithEventStore(store events.EventStore) ServiceOption {
	return func(s *PlanningService) { s.eventStore = store }
}

// WithRecorder records per-SKU plan metrics
func WithRecorder(recorder *metrics.Recorder) ServiceOption {
	return func(s *PlanningService) { s.recorder = recorder }
}

// WithClock overrides the clock used to stamp results
func WithClock(now func() time.Time) ServiceOption {
	return func(s *PlanningService) { s.now = now }
}

// NewPlanningService creates a new planning service
func NewPlanningService(
	productRepo repositories.ProductRepository,
	inventoryRepo repositories.InventoryRepository,
	salesRepo repositories.SalesRepository,
	opts ...ServiceOption,
) *PlanningService {
	s := &PlanningService{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		salesRepo:     salesRepo,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BuildPlan plans every requested product. Lines are ordered most urgent
// first: by stock status, then by days of inventory, then by SKU.
func (s *PlanningService) BuildPlan(ctx context.Context, req PlanRequest) (*dto.PlanResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan request: %w", err)
	}

	products, err := s.selectProducts(req.SKUs)
	if err != nil {
		return nil, err
	}

	result := &dto.PlanResult{
		RunID:       uuid.NewString(),
		GeneratedAt: s.now().UTC(),
		Thresholds:  req.Thresholds,
		Lines:       make([]dto.PlanLine, 0, len(products)),
	}

	for _, product := range products {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("planning cancelled: %w", err)
		}

		line, err := s.planProduct(product, req)
		if err != nil {
			return nil, fmt.Errorf("failed to plan %s: %w", product.SKU, err)
		}
		result.Lines = append(result.Lines, line)
	}

	sort.SliceStable(result.Lines, func(i, j int) bool {
		a, b := result.Lines[i], result.Lines[j]
		if a.Status.Severity() != b.Status.Severity() {
			return a.Status.Severity() < b.Status.Severity()
		}
		if a.DaysOfInventory != b.DaysOfInventory {
			return a.DaysOfInventory < b.DaysOfInventory
		}
		return a.SKU < b.SKU
	})

	for _, line := range result.Lines {
		result.Summary.Add(line)
		if err := s.publish(line, req.Thresholds); err != nil {
			return nil, err
		}
	}

	klog.InfoS("Plan built",
		"runID", result.RunID,
		"products", result.Summary.Products,
		"outOfStock", result.Summary.OutOfStock,
		"lowStock", result.Summary.LowStock,
		"unitsToMake", result.Summary.TotalUnitsToMake)

	return result, nil
}

func (s *PlanningService) selectProducts(skus []entities.SKU) ([]*entities.Product, error) {
	if len(skus) == 0 {
		products, err := s.productRepo.GetAllProducts()
		if err != nil {
			return nil, fmt.Errorf("failed to list products: %w", err)
		}
		return products, nil
	}

	products := make([]*entities.Product, 0, len(skus))
	seen := make(map[entities.SKU]bool, len(skus))
	for _, sku := range skus {
		if seen[sku] {
			continue
		}
		seen[sku] = true

		product, err := s.productRepo.GetProduct(sku)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

func (s *PlanningService) planProduct(product *entities.Product, req PlanRequest) (dto.PlanLine, error) {
	snapshot, err := s.inventoryRepo.GetSnapshot(product.SKU)
	if err != nil {
		return dto.PlanLine{}, err
	}

	var history entities.SalesHistory
	found, err := s.salesRepo.GetHistory(product.SKU)
	switch {
	case err == nil:
		history = *found
	case errors.Is(err, repositories.ErrNotFound):
		klog.V(1).InfoS("No sales history, assuming zero demand", "sku", product.SKU)
		history = entities.SalesHistory{SKU: product.SKU}
	default:
		return dto.PlanLine{}, err
	}

	available := planning.AvailableInventory(snapshot.FBAAvailable, snapshot.AWDAvailable)
	total := planning.TotalInventory(snapshot.FBATotal, snapshot.AWDTotal)
	inbound := planning.InboundInventory(snapshot.FBAInbound, snapshot.AWDInbound)

	forecast := entities.TimeSeries(planning.SmoothSeries(history.Daily, req.SmoothingWindow))
	dailyDemand := planning.AverageDailyDemand(forecast.Last(req.DemandWindowDays))

	doi := planning.DaysOfInventory(available, dailyDemand)
	status := planning.ClassifyStock(doi, req.Thresholds)

	goal := product.Goal(req.DefaultDOIGoal)
	unitsToMake := planning.UnitsToMake(available+inbound, dailyDemand, goal.DOIGoal, goal.LeadTimeDays)
	pallets := planning.PalletsRequired(unitsToMake, product.UnitsPerPallet)

	current, previous := periodTotals(history.Daily, req.GrowthPeriodDays)

	line := dto.PlanLine{
		SKU:                product.SKU,
		Name:               product.Name,
		AvailableInventory: available,
		TotalInventory:     total,
		InboundInventory:   inbound,
		DailyDemand:        dailyDemand,
		DaysOfInventory:    doi,
		Status:             status,
		GrowthRate:         planning.GrowthRate(current, previous),
		Goal:               goal,
		Replenishment: entities.ReplenishmentLine{
			SKU:             product.SKU,
			TargetInventory: planning.TargetInventory(dailyDemand, goal.DOIGoal),
			UnitsToMake:     unitsToMake,
			Pallets:         pallets,
		},
		ForecastStart: history.Start,
		Forecast:      forecast,
	}

	klog.V(2).InfoS("Planned product",
		"sku", product.SKU,
		"doi", doi,
		"status", status.String(),
		"dailyDemand", dailyDemand,
		"unitsToMake", unitsToMake)

	if s.recorder != nil {
		s.recorder.ObserveLine(product.SKU, status, dailyDemand, doi, unitsToMake, pallets)
	}

	return line, nil
}

func (s *PlanningService) publish(line dto.PlanLine, thresholds entities.DOIThresholds) error {
	if s.eventStore == nil {
		return nil
	}

	alert := events.NewStockAlertEvent(events.StockAlert{
		SKU:        line.SKU,
		Status:     line.Status,
		DOI:        line.DaysOfInventory,
		Thresholds: thresholds,
	})
	if alert != nil {
		if err := s.eventStore.AppendEvent(string(line.SKU), alert); err != nil {
			return fmt.Errorf("failed to record stock alert for %s: %w", line.SKU, err)
		}
	}

	if line.Replenishment.UnitsToMake > 0 {
		planned := events.NewReplenishmentPlannedEvent(line.Replenishment)
		if err := s.eventStore.AppendEvent(string(line.SKU), planned); err != nil {
			return fmt.Errorf("failed to record replenishment for %s: %w", line.SKU, err)
		}
	}
	return nil
}

// periodTotals sums the last period of daily sales and the period before it.
// previous stays 0 unless the history holds two full periods, so a partial
// period is never compared against a full one.
func periodTotals(daily entities.TimeSeries, period int) (current, previous float64) {
	n := len(daily)
	current = daily.Last(period).Sum()
	if n >= 2*period {
		previous = daily[n-2*period : n-period].Sum()
	}
	return current, previous
}
