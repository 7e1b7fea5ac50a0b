package entities

import "fmt"

// ReplenishmentLine is the planned production and shipment for a single product
type ReplenishmentLine struct {
	SKU             SKU     `json:"sku"`
	TargetInventory float64 `json:"target_inventory"`
	UnitsToMake     float64 `json:"units_to_make"`
	Pallets         float64 `json:"pallets"`
}

// NewReplenishmentLine creates a validated ReplenishmentLine
func NewReplenishmentLine(sku SKU, targetInventory, unitsToMake, pallets float64) (*ReplenishmentLine, error) {
	if string(sku) == "" {
		return nil, fmt.Errorf("sku cannot be empty")
	}
	if err := ValidateUnits("target inventory", targetInventory); err != nil {
		return nil, err
	}
	if err := ValidateUnits("units to make", unitsToMake); err != nil {
		return nil, err
	}
	if err := ValidateUnits("pallets", pallets); err != nil {
		return nil, err
	}

	return &ReplenishmentLine{
		SKU:             sku,
		TargetInventory: targetInventory,
		UnitsToMake:     unitsToMake,
		Pallets:         pallets,
	}, nil
}
