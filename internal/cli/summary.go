package cli

import (
	"fmt"
	"io"

	"github.com/piwi3910/rollcut/internal/model"
)

// renderPlanSummary prints the human-readable plan report. JSON output
// bypasses this entirely, so the styling never lands in piped files.
func renderPlanSummary(w io.Writer, result *model.PlanResult, settings model.PlanSettings) {
	fmt.Fprintln(w, styleTitle.Render("Slitting Plan"))
	fmt.Fprintln(w)

	fromSupply := 0
	for _, roll := range result.CutRolls {
		if roll.Origin == model.RollFromSupply {
			fromSupply++
		}
	}
	waste := model.CalculateWasteSummary(result)

	stats := fmt.Sprintf(`Source rolls needed: %d @ %s"
Cut rolls:           %d (%d from offcut supply)
Patterns executed:   %d (%d zero-trim)
Trim total:          %s" (%s" discarded, %s" recovered, %.1f%% recovery)`,
		result.SourceRollsNeeded, settings.SourceRollWidth.String(),
		len(result.CutRolls), fromSupply,
		waste.PatternCount, waste.ZeroTrimCount,
		waste.TotalTrim.String(), waste.DiscardedTrim.String(), waste.RecoveredTrim.String(), waste.RecoveryPercent)
	fmt.Fprintln(w, stylePanel.Render(stats))
	fmt.Fprintln(w)

	if len(result.Patterns) > 0 {
		fmt.Fprintln(w, styleHeader.Render("Patterns"))
		fmt.Fprintf(w, "  %3s  %-28s %-14s %5s  %8s  %-9s %6s\n",
			"SEQ", "WIDTHS", "GRADE", "ROLLS", "TRIM", "CLASS", "UTIL")
		for _, pr := range result.Patterns {
			fmt.Fprintf(w, "  %3d  %-28s %-14s %5d  %7s\"  %s %5.1f%%\n",
				pr.Seq,
				pr.Pattern.Key(),
				pr.Pattern.Spec.Key(),
				pr.Pattern.RollCount(),
				pr.Pattern.Trim.String(),
				classLabel(pr.Class),
				pr.Utilization())
		}
		fmt.Fprintln(w)
	}

	if len(result.Pending) > 0 {
		fmt.Fprintln(w, styleWarning.Render("Pending (carried to the next cycle)"))
		for _, p := range result.Pending {
			fmt.Fprintf(w, "  %-12s %s  %s\" x%d\n", p.OrderRef, p.Spec.Key(), p.Width.String(), p.Quantity)
		}
		fmt.Fprintln(w)
	}

	if len(result.Rejected) > 0 {
		fmt.Fprintln(w, styleDanger.Render("Rejected inputs"))
		for _, r := range result.Rejected {
			ref := r.Ref
			if ref == "" {
				ref = fmt.Sprintf("row %d", r.Index)
			}
			fmt.Fprintf(w, "  %-9s %-12s %s\n", r.Kind, ref, r.Reason)
		}
		fmt.Fprintln(w)
	}

	if len(result.Inventory) > 0 {
		fmt.Fprintln(w, styleHeader.Render("Offcut inventory remaining"))
		for _, o := range result.Inventory {
			fmt.Fprintf(w, "  %-12s %s  %s\" x%d\n", o.Ref, o.Spec.Key(), o.Width.String(), o.Quantity)
		}
		fmt.Fprintln(w)
	}
}

// renderProcurement prints the jumbo purchase recommendation under the
// plan summary. The cost line only appears when a price was given.
func renderProcurement(w io.Writer, est model.ProcurementEstimate) {
	fmt.Fprintln(w, styleHeader.Render("Jumbo procurement"))
	fmt.Fprintf(w, "  %d source roll(s) at %d per set: %.2f sets exact, %d minimum\n",
		est.SourceRollsUsed, est.RollsPerSet, est.SetsNeededExact, est.SetsNeededMin)
	fmt.Fprintf(w, "  Recommended purchase: %d set(s) with a %.0f%% waste factor\n",
		est.SetsWithWaste, est.WastePercent)
	if est.PricePerSet > 0 {
		fmt.Fprintf(w, "  Estimated cost: %.2f (%d x %.2f)\n", est.EstimatedCost, est.SetsWithWaste, est.PricePerSet)
	}
	fmt.Fprintln(w)
}

// classLabel colors a trim class for the pattern table. Padding happens
// before styling so the escape codes don't throw the column off.
func classLabel(class model.TrimClass) string {
	padded := fmt.Sprintf("%-9s", string(class))
	switch class {
	case model.TrimReusable:
		return styleOK.Render(padded)
	case model.TrimConfirm:
		return styleWarning.Render(padded)
	case model.TrimExcessive:
		return styleDanger.Render(padded)
	default:
		return padded
	}
}
