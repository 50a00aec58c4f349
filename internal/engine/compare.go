package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/piwi3910/rollcut/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.PlanSettings
}

// ComparisonResult holds the plan and computed statistics for one scenario.
type ComparisonResult struct {
	Scenario          ComparisonScenario
	Result            *model.PlanResult
	SourceRollsNeeded int
	TotalCutRolls     int
	WastePercent      float64
	PendingCount      int
}

// CompareScenarios plans the same inputs under each scenario and returns the
// results in scenario order. This enables side-by-side comparison of
// different planning parameters (e.g., algorithm or trim thresholds).
func CompareScenarios(scenarios []ComparisonScenario, orders, pending []model.OrderLine, supply []model.SupplyRoll, decide TrimDecision) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		opt, err := New(scenario.Settings)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}
		opt.Decide = decide

		result, err := opt.Plan(orders, pending, supply)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}

		results = append(results, ComparisonResult{
			Scenario:          scenario,
			Result:            result,
			SourceRollsNeeded: result.SourceRollsNeeded,
			TotalCutRolls:     len(result.CutRolls),
			WastePercent:      result.WastePercent(),
			PendingCount:      result.PendingQuantity(),
		})
	}

	return results, nil
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current settings, varying key parameters to show what-if alternatives.
func BuildDefaultScenarios(baseSettings model.PlanSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: baseSettings,
		},
	}

	// Scenario: Try the other algorithm
	altAlgo := baseSettings
	if baseSettings.Algorithm == model.AlgorithmGreedy {
		altAlgo.Algorithm = model.AlgorithmGenetic
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Genetic Algorithm",
			Settings: altAlgo,
		})
	} else {
		altAlgo.Algorithm = model.AlgorithmGreedy
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Greedy Algorithm",
			Settings: altAlgo,
		})
	}

	// Scenario: Accept every confirmable trim without asking
	if baseSettings.TrimPolicy == model.TrimPolicyConfirm {
		autoAccept := baseSettings
		autoAccept.TrimPolicy = model.TrimPolicyAutoAccept
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Auto-Accept Confirmable Trims",
			Settings: autoAccept,
		})
	}

	// Scenario: Tighter auto-accept threshold (less silent waste)
	if baseSettings.AutoAcceptTrim.Cmp(decimal.NewFromInt(2)) > 0 {
		tight := baseSettings
		tight.AutoAcceptTrim = baseSettings.AutoAcceptTrim.Div(decimal.NewFromInt(2))
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Auto-Accept %s\" (half)", tight.AutoAcceptTrim.String()),
			Settings: tight,
		})
	}

	return scenarios
}
