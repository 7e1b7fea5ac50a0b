package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vsinha/stockplan/pkg/domain/entities"
)

const namespace = "stockplan"

var statuses = []entities.StockStatus{entities.InStock, entities.LowStock, entities.OutOfStock}

// Recorder collects the metrics of one planning run on its own registry
type Recorder struct {
	registry *prometheus.Registry

	daysOfInventory  *prometheus.GaugeVec
	unitsToMake      *prometheus.GaugeVec
	palletsRequired  *prometheus.GaugeVec
	stockStatus      *prometheus.GaugeVec
	planLinesTotal   *prometheus.CounterVec
	dailyDemandUnits *prometheus.GaugeVec
}

// NewRecorder creates a recorder backed by a fresh registry
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		daysOfInventory: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "days_of_inventory",
				Help:      "Days of available inventory at current daily demand",
			},
			[]string{"sku"},
		),
		unitsToMake: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "units_to_make",
				Help:      "Units to produce to reach the DOI goal",
			},
			[]string{"sku"},
		),
		palletsRequired: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "pallets_required",
				Help:      "Pallets needed to ship the units to make",
			},
			[]string{"sku"},
		),
		stockStatus: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "stock_status",
				Help:      "1 for the current stock status of the SKU, 0 otherwise",
			},
			[]string{"sku", "status"},
		),
		planLinesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "plan_lines_total",
				Help:      "Plan lines produced, by stock status",
			},
			[]string{"status"},
		),
		dailyDemandUnits: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "daily_demand_units",
				Help:      "Forecast daily demand used for the plan",
			},
			[]string{"sku"},
		),
	}
}

// ObserveLine records the outcome of planning one SKU
func (r *Recorder) ObserveLine(sku entities.SKU, status entities.StockStatus, dailyDemand, doi, unitsToMake, pallets float64) {
	label := string(sku)

	r.daysOfInventory.WithLabelValues(label).Set(doi)
	r.unitsToMake.WithLabelValues(label).Set(unitsToMake)
	r.palletsRequired.WithLabelValues(label).Set(pallets)
	r.dailyDemandUnits.WithLabelValues(label).Set(dailyDemand)

	for _, s := range statuses {
		value := 0.0
		if s == status {
			value = 1
		}
		r.stockStatus.WithLabelValues(label, s.String()).Set(value)
	}
	r.planLinesTotal.WithLabelValues(status.String()).Inc()
}

// Gatherer exposes the registry for inspection
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes the metrics in the node exporter textfile format
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}
