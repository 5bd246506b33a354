package engine

import (
	"fmt"

	"github.com/piwi3910/cutplan/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.CutSettings
}

// ComparisonResult holds the plan and headline numbers for one scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario
	Plan          model.Plan
	SheetsUsed    int
	Placed        int
	WastePercent  float64
	UnplacedCount int
}

// CompareScenarios plans the same cuts and sheets under each scenario, in
// scenario order. The first validation error aborts the comparison.
func CompareScenarios(scenarios []ComparisonScenario, cuts []model.Cut, sheets []model.Sheet) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		plan, err := New(scenario.Settings).Plan(cuts, sheets)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}

		waste := 0.0
		if plan.SheetsUsed > 0 {
			waste = 100.0 - plan.TotalEfficiency()
		}

		results = append(results, ComparisonResult{
			Scenario:      scenario,
			Plan:          plan,
			SheetsUsed:    plan.SheetsUsed,
			Placed:        plan.AssignmentCount(),
			WastePercent:  waste,
			UnplacedCount: len(plan.Unplaced),
		})
	}

	return results, nil
}

// BuildDefaultScenarios generates what-if alternatives around the given
// settings by varying the kerf width.
func BuildDefaultScenarios(base model.CutSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{Name: "Current Settings", Settings: base},
	}

	// Thinner blade
	if base.KerfWidth > 1.0 {
		half := base
		half.KerfWidth = base.KerfWidth * 0.5
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Kerf %.1fmm (half)", half.KerfWidth),
			Settings: half,
		})
	}

	// Zero clearance, the area-only lower bound
	if base.KerfWidth > 0 {
		none := base
		none.KerfWidth = 0
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "No Kerf",
			Settings: none,
		})
	}

	return scenarios
}
