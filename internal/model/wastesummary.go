package model

import (
	"sort"

	"github.com/shopspring/decimal"
)

// WasteSummary holds the trim produced by a plan broken down by disposition.
type WasteSummary struct {
	TotalTrim       decimal.Decimal `json:"total_trim"`       // inches, across all executed patterns
	DiscardedTrim   decimal.Decimal `json:"discarded_trim"`   // inches of trim sent to the pulper
	RecoveredTrim   decimal.Decimal `json:"recovered_trim"`   // inches returned to inventory as offcuts
	OffcutCount     int             `json:"offcut_count"`     // Offcut line items the plan produced
	PatternCount    int             `json:"pattern_count"`    // Executed patterns
	ZeroTrimCount   int             `json:"zero_trim_count"`  // Patterns that consumed the full source width
	RecoveryPercent float64         `json:"recovery_percent"` // Share of trim recovered as offcuts
}

// CalculateWasteSummary computes the trim disposition totals for a plan result.
func CalculateWasteSummary(result *PlanResult) WasteSummary {
	summary := WasteSummary{
		TotalTrim:     decimal.Zero,
		DiscardedTrim: decimal.Zero,
		RecoveredTrim: decimal.Zero,
	}
	if result == nil {
		return summary
	}

	for _, pr := range result.Patterns {
		summary.PatternCount++
		summary.TotalTrim = summary.TotalTrim.Add(pr.Pattern.Trim)
		switch {
		case pr.Pattern.Trim.IsZero():
			summary.ZeroTrimCount++
		case pr.Class == TrimReusable:
			summary.RecoveredTrim = summary.RecoveredTrim.Add(pr.Pattern.Trim)
			summary.OffcutCount++
		default:
			summary.DiscardedTrim = summary.DiscardedTrim.Add(pr.Pattern.Trim)
		}
	}

	if summary.TotalTrim.IsPositive() {
		ratio, _ := summary.RecoveredTrim.Div(summary.TotalTrim).Float64()
		summary.RecoveryPercent = ratio * 100.0
	}
	return summary
}

// PerSpecWaste holds a per-specification breakdown of the trim a plan produced.
type PerSpecWaste struct {
	Spec          Specification   `json:"spec"`
	Patterns      int             `json:"patterns"`
	TotalTrim     decimal.Decimal `json:"total_trim"`     // inches
	DiscardedTrim decimal.Decimal `json:"discarded_trim"` // inches
	RecoveredTrim decimal.Decimal `json:"recovered_trim"` // inches
	OffcutCount   int             `json:"offcut_count"`
}

// CalculatePerSpecWaste returns the trim breakdown for each specification,
// ordered by specification key.
func CalculatePerSpecWaste(result *PlanResult) []PerSpecWaste {
	if result == nil {
		return nil
	}

	bySpec := make(map[string]*PerSpecWaste)
	for _, pr := range result.Patterns {
		key := pr.Pattern.Spec.Key()
		entry, ok := bySpec[key]
		if !ok {
			entry = &PerSpecWaste{
				Spec:          pr.Pattern.Spec,
				TotalTrim:     decimal.Zero,
				DiscardedTrim: decimal.Zero,
				RecoveredTrim: decimal.Zero,
			}
			bySpec[key] = entry
		}
		entry.Patterns++
		entry.TotalTrim = entry.TotalTrim.Add(pr.Pattern.Trim)
		if pr.Class == TrimReusable {
			entry.RecoveredTrim = entry.RecoveredTrim.Add(pr.Pattern.Trim)
			entry.OffcutCount++
		} else if !pr.Pattern.Trim.IsZero() {
			entry.DiscardedTrim = entry.DiscardedTrim.Add(pr.Pattern.Trim)
		}
	}

	keys := make([]string, 0, len(bySpec))
	for key := range bySpec {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	results := make([]PerSpecWaste, 0, len(keys))
	for _, key := range keys {
		results = append(results, *bySpec[key])
	}
	return results
}
