package model

import "math"

// ProcurementEstimate holds the results of a jumbo roll purchasing calculation.
type ProcurementEstimate struct {
	TotalCutWidth    float64 `json:"total_cut_width"`    // Total width of rolls cut from new stock (inches)
	TotalTrimWidth   float64 `json:"total_trim_width"`   // Total trim produced by the plan (inches)
	SourceRollsUsed  int     `json:"source_rolls_used"`  // Source rolls consumed by the plan
	RollsPerSet      int     `json:"rolls_per_set"`      // Source rolls yielded by one jumbo set
	SetsNeededExact  float64 `json:"sets_needed_exact"`  // Exact fractional number of jumbo sets
	SetsNeededMin    int     `json:"sets_needed_min"`    // Minimum sets (ceiling of exact)
	SetsWithWaste    int     `json:"sets_with_waste"`    // Recommended sets including waste factor
	WastePercent     float64 `json:"waste_percent"`      // Waste factor applied (e.g., 10 for 10%)
	EstimatedCost    float64 `json:"estimated_cost"`     // Total cost if pricing available
	PricePerSet      float64 `json:"price_per_set"`      // Price used for estimation
	PlanWastePercent float64 `json:"plan_waste_percent"` // Trim share of the source width consumed
}

// CalculateProcurementEstimate computes how many jumbo sets to buy to run a plan.
// A jumbo set is the unit the mill sells in; each set is slit into rollsPerSet
// source rolls. The waste percentage covers breakage and grade changeovers on
// top of the trim the plan already accounts for.
func CalculateProcurementEstimate(result *PlanResult, rollsPerSet int, wastePercent, pricePerSet float64) ProcurementEstimate {
	var totalCut, totalTrim, planWaste float64
	sourceRolls := 0
	if result != nil {
		totalTrim = result.TotalTrim().InexactFloat64()
		totalCut = result.TotalSourceWidth().InexactFloat64() - totalTrim
		sourceRolls = result.SourceRollsNeeded
		planWaste = result.WastePercent()
	}

	if rollsPerSet <= 0 {
		return ProcurementEstimate{
			TotalCutWidth:    totalCut,
			TotalTrimWidth:   totalTrim,
			SourceRollsUsed:  sourceRolls,
			WastePercent:     wastePercent,
			PlanWastePercent: planWaste,
		}
	}

	exactSets := float64(sourceRolls) / float64(rollsPerSet)
	minSets := int(math.Ceil(exactSets))

	// Apply waste factor
	wasteFactor := 1.0 + (wastePercent / 100.0)
	setsWithWaste := int(math.Ceil(exactSets * wasteFactor))
	if setsWithWaste < minSets {
		setsWithWaste = minSets
	}

	estimatedCost := float64(setsWithWaste) * pricePerSet

	return ProcurementEstimate{
		TotalCutWidth:    totalCut,
		TotalTrimWidth:   totalTrim,
		SourceRollsUsed:  sourceRolls,
		RollsPerSet:      rollsPerSet,
		SetsNeededExact:  exactSets,
		SetsNeededMin:    minSets,
		SetsWithWaste:    setsWithWaste,
		WastePercent:     wastePercent,
		EstimatedCost:    estimatedCost,
		PricePerSet:      pricePerSet,
		PlanWastePercent: planWaste,
	}
}
