// Package planning implements the inventory planning calculator: days of
// inventory, inventory totals, stock classification, replenishment quantity,
// pallet counts, moving-average smoothing and growth rate.
//
// Every function is pure. Division by zero maps to a defined sentinel
// (usually 0) instead of an error, and inputs are not validated, so the
// functions can run inline in a render path. Callers that want validation use
// Strict, which fails with entities.ErrInvalidArgument.
package planning
