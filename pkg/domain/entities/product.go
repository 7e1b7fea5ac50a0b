package entities

import "fmt"

// SKU represents a unique product identifier
type SKU string

// Product represents a catalog item with its replenishment parameters
type Product struct {
	SKU            SKU     `json:"sku"`
	Name           string  `json:"name"`
	UnitsPerPallet float64 `json:"units_per_pallet"`
	// DOIGoal is nil when the product uses the run default; an explicit 0
	// plans the product down to no stock
	DOIGoal      *float64 `json:"doi_goal,omitempty"`
	LeadTimeDays float64  `json:"lead_time_days"`
}

// Days returns a pointer to a day count, for optional goals
func Days(v float64) *float64 {
	return &v
}

// NewProduct creates a validated Product. A nil doiGoal defers to the run default.
func NewProduct(sku SKU, name string, unitsPerPallet float64, doiGoal *float64, leadTimeDays float64) (*Product, error) {
	if string(sku) == "" {
		return nil, fmt.Errorf("sku cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}
	if err := ValidateUnits("units per pallet", unitsPerPallet); err != nil {
		return nil, err
	}
	if doiGoal != nil {
		if err := ValidateUnits("doi goal", *doiGoal); err != nil {
			return nil, err
		}
	}
	if err := ValidateUnits("lead time days", leadTimeDays); err != nil {
		return nil, err
	}

	product := &Product{
		SKU:            sku,
		Name:           name,
		UnitsPerPallet: unitsPerPallet,
		LeadTimeDays:   leadTimeDays,
	}
	if doiGoal != nil {
		product.DOIGoal = Days(*doiGoal)
	}
	return product, nil
}

// Clone returns a copy that shares no memory with p
func (p Product) Clone() Product {
	if p.DOIGoal != nil {
		p.DOIGoal = Days(*p.DOIGoal)
	}
	return p
}

// Goal returns the planning goal of the product, falling back to the given
// DOI goal when the product does not carry one
func (p Product) Goal(fallbackDOIGoal float64) PlanningGoal {
	goal := fallbackDOIGoal
	if p.DOIGoal != nil {
		goal = *p.DOIGoal
	}
	return PlanningGoal{DOIGoal: goal, LeadTimeDays: p.LeadTimeDays}
}
