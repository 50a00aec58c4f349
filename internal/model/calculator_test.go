package model

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func estimateResult(patterns int) *PlanResult {
	result := &PlanResult{SourceRollsNeeded: patterns}
	for i := 0; i < patterns; i++ {
		result.Patterns = append(result.Patterns, PatternResult{
			Seq: i + 1,
			Pattern: Pattern{
				Widths: []decimal.Decimal{dec("40"), dec("40"), dec("38")},
				Trim:   decimal.Zero,
			},
			Class: TrimDiscard,
		})
	}
	return result
}

func TestCalculateProcurementEstimateBasic(t *testing.T) {
	result := estimateResult(4)
	est := CalculateProcurementEstimate(result, 3, 10.0, 1200.00)

	if est.SourceRollsUsed != 4 {
		t.Errorf("expected 4 source rolls used, got %d", est.SourceRollsUsed)
	}
	if math.Abs(est.SetsNeededExact-4.0/3.0) > 0.001 {
		t.Errorf("expected exact sets %.4f, got %.4f", 4.0/3.0, est.SetsNeededExact)
	}
	if est.SetsNeededMin != 2 {
		t.Errorf("expected 2 minimum sets, got %d", est.SetsNeededMin)
	}
	if est.SetsWithWaste < est.SetsNeededMin {
		t.Error("sets with waste should be >= minimum sets")
	}
	if est.EstimatedCost != float64(est.SetsWithWaste)*1200.00 {
		t.Errorf("expected cost %.2f, got %.2f", float64(est.SetsWithWaste)*1200.00, est.EstimatedCost)
	}
}

func TestCalculateProcurementEstimateZeroRollsPerSet(t *testing.T) {
	result := estimateResult(2)
	est := CalculateProcurementEstimate(result, 0, 10, 0)
	if est.SetsNeededMin != 0 {
		t.Errorf("expected 0 sets for zero rolls per set, got %d", est.SetsNeededMin)
	}
	if est.SourceRollsUsed != 2 {
		t.Errorf("expected source rolls carried through, got %d", est.SourceRollsUsed)
	}
}

func TestCalculateProcurementEstimateExactFit(t *testing.T) {
	result := estimateResult(6)
	est := CalculateProcurementEstimate(result, 3, 0, 900.00)
	if est.SetsNeededMin != 2 {
		t.Errorf("expected exactly 2 sets, got %d", est.SetsNeededMin)
	}
	if est.SetsWithWaste != 2 {
		t.Errorf("expected 2 sets with 0%% waste, got %d", est.SetsWithWaste)
	}
}

func TestCalculateProcurementEstimateCutAndTrimWidths(t *testing.T) {
	result := &PlanResult{
		SourceRollsNeeded: 2,
		Patterns: []PatternResult{
			{Seq: 1, Pattern: Pattern{Widths: []decimal.Decimal{dec("40"), dec("40"), dec("38")}, Trim: decimal.Zero}, Class: TrimDiscard},
			{Seq: 2, Pattern: Pattern{Widths: []decimal.Decimal{dec("95")}, Trim: dec("23")}, Class: TrimReusable},
		},
	}
	est := CalculateProcurementEstimate(result, 3, 0, 0)

	if math.Abs(est.TotalCutWidth-213.0) > 0.001 {
		t.Errorf("expected total cut width 213, got %.3f", est.TotalCutWidth)
	}
	if math.Abs(est.TotalTrimWidth-23.0) > 0.001 {
		t.Errorf("expected total trim width 23, got %.3f", est.TotalTrimWidth)
	}
}

func TestCalculateProcurementEstimateNilResult(t *testing.T) {
	est := CalculateProcurementEstimate(nil, 3, 10, 0)
	if est.SourceRollsUsed != 0 || est.SetsNeededMin != 0 {
		t.Errorf("expected empty estimate for nil result, got %+v", est)
	}
}
