package entities

import "fmt"

// DOIThresholds classify stock health by days of inventory. Critical must not
// exceed Low.
type DOIThresholds struct {
	Low      float64 `json:"low"`
	Critical float64 `json:"critical"`
}

// DefaultDOIThresholds returns the thresholds used when none are configured
func DefaultDOIThresholds() DOIThresholds {
	return DOIThresholds{Low: 45, Critical: 10}
}

// NewDOIThresholds creates validated thresholds
func NewDOIThresholds(low, critical float64) (DOIThresholds, error) {
	t := DOIThresholds{Low: low, Critical: critical}
	if err := t.Validate(); err != nil {
		return DOIThresholds{}, err
	}
	return t, nil
}

// Validate checks low > 0, critical >= 0 and critical <= low
func (t DOIThresholds) Validate() error {
	if err := ValidatePositive("low threshold", t.Low); err != nil {
		return err
	}
	if err := ValidateUnits("critical threshold", t.Critical); err != nil {
		return err
	}
	if t.Critical > t.Low {
		return fmt.Errorf("%w: critical threshold %v cannot exceed low threshold %v",
			ErrInvalidArgument, t.Critical, t.Low)
	}
	return nil
}

// PlanningGoal is the target days-of-inventory coverage and replenishment lead time
type PlanningGoal struct {
	DOIGoal      float64 `json:"doi_goal"`
	LeadTimeDays float64 `json:"lead_time_days"`
}

// NewPlanningGoal creates a validated PlanningGoal
func NewPlanningGoal(doiGoal, leadTimeDays float64) (PlanningGoal, error) {
	goal := PlanningGoal{DOIGoal: doiGoal, LeadTimeDays: leadTimeDays}
	if err := goal.Validate(); err != nil {
		return PlanningGoal{}, err
	}
	return goal, nil
}

// Validate checks that both fields are non-negative finite numbers
func (g PlanningGoal) Validate() error {
	if err := ValidateUnits("doi goal", g.DOIGoal); err != nil {
		return err
	}
	return ValidateUnits("lead time days", g.LeadTimeDays)
}
