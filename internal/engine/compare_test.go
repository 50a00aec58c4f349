package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/rollcut/internal/model"
)

// ─── Scenario Comparison ────────────────────────────────────────────

func TestCompareScenariosPlansEachVariant(t *testing.T) {
	orders := []model.OrderLine{
		newOrder("A", "40", 2),
		newOrder("B", "38", 1),
	}
	scenarios := []ComparisonScenario{
		{Name: "Current Settings", Settings: model.DefaultSettings()},
	}
	genetic := model.DefaultSettings()
	genetic.Algorithm = model.AlgorithmGenetic
	scenarios = append(scenarios, ComparisonScenario{Name: "Genetic", Settings: genetic})

	results, err := CompareScenarios(scenarios, orders, nil, nil, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, r := range results {
		// 40+40+38 = 118 packs perfectly, so every variant finds it.
		assert.Equal(t, 1, r.SourceRollsNeeded, r.Scenario.Name)
		assert.Equal(t, 3, r.TotalCutRolls, r.Scenario.Name)
		assert.Zero(t, r.PendingCount, r.Scenario.Name)
		assert.Zero(t, r.WastePercent, r.Scenario.Name)
		require.NotNil(t, r.Result, r.Scenario.Name)
	}
	assert.Equal(t, "Current Settings", results[0].Scenario.Name)
	assert.Equal(t, "Genetic", results[1].Scenario.Name)
}

func TestCompareScenariosInvalidSettingsFailFast(t *testing.T) {
	bad := model.DefaultSettings()
	bad.ReusableBandLow = dec("30")
	bad.ReusableBandHigh = dec("25")

	_, err := CompareScenarios(
		[]ComparisonScenario{{Name: "Broken", Settings: bad}},
		[]model.OrderLine{newOrder("A", "40", 1)}, nil, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Broken")
}

func TestCompareScenariosSharesDecisionFunc(t *testing.T) {
	settings := model.DefaultSettings()
	settings.TrimPolicy = model.TrimPolicyConfirm

	asked := 0
	decide := func(trim decimal.Decimal, spec model.Specification) bool {
		asked++
		return false
	}

	// 110 leaves an 8" trim: confirm band under the default thresholds.
	_, err := CompareScenarios(
		[]ComparisonScenario{{Name: "Confirm", Settings: settings}},
		[]model.OrderLine{newOrder("A", "110", 1)}, nil, nil, decide)
	require.NoError(t, err)
	assert.Positive(t, asked)
}

func TestBuildDefaultScenariosFromGreedy(t *testing.T) {
	scenarios := BuildDefaultScenarios(model.DefaultSettings())

	names := make([]string, len(scenarios))
	for i, s := range scenarios {
		names[i] = s.Name
	}
	assert.Equal(t, "Current Settings", names[0])
	assert.Contains(t, names, "Genetic Algorithm")
	// Default auto-accept is 6", so the halved variant appears.
	assert.Contains(t, names, `Auto-Accept 3" (half)`)
	assert.NotContains(t, names, "Greedy Algorithm")
}

func TestBuildDefaultScenariosFromGenetic(t *testing.T) {
	base := model.DefaultSettings()
	base.Algorithm = model.AlgorithmGenetic

	scenarios := BuildDefaultScenarios(base)

	names := make([]string, len(scenarios))
	for i, s := range scenarios {
		names[i] = s.Name
	}
	assert.Contains(t, names, "Greedy Algorithm")
	assert.NotContains(t, names, "Genetic Algorithm")
}

func TestBuildDefaultScenariosConfirmPolicyAddsAutoAccept(t *testing.T) {
	base := model.DefaultSettings()
	base.TrimPolicy = model.TrimPolicyConfirm

	scenarios := BuildDefaultScenarios(base)

	found := false
	for _, s := range scenarios {
		if s.Name == "Auto-Accept Confirmable Trims" {
			found = true
			assert.Equal(t, model.TrimPolicyAutoAccept, s.Settings.TrimPolicy)
		}
	}
	assert.True(t, found)
}

func TestBuildDefaultScenariosTightThresholdSkippedWhenAlreadyTight(t *testing.T) {
	base := model.DefaultSettings()
	base.AutoAcceptTrim = dec("2")

	for _, s := range BuildDefaultScenarios(base) {
		assert.NotContains(t, s.Name, "(half)")
	}
}
