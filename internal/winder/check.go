package winder

import (
	"fmt"

	"github.com/piwi3910/rollcut/internal/model"
)

// Warning kinds reported by the setup checks.
const (
	WarnNarrowSlit     = "narrow_slit"     // A roll is narrower than the machine's minimum slit width
	WarnKnifeStations  = "knife_stations"  // Pattern needs more rolls than the machine winds
	WarnDeckleExceeded = "deckle_exceeded" // Pattern is wider than the machine's deckle
	WarnNarrowOffcut   = "narrow_offcut"   // A rewound offcut would be narrower than the minimum slit width
)

// SetupWarning flags a pattern the given machine cannot run as planned.
// Warnings are advisory; the plan itself is unchanged.
type SetupWarning struct {
	PatternSeq int    `json:"pattern_seq"`
	Kind       string `json:"kind"`
	Message    string `json:"message"`
}

// CheckKnifeSetup analyzes the plan result and reports every executed
// pattern the given machine profile cannot run: rolls narrower than the
// minimum slit width, more rolls than the machine has winding stations,
// patterns wider than the machine's deckle, and reusable offcuts too
// narrow to rewind. A nil machine or result disables checking.
func CheckKnifeSetup(result *model.PlanResult, machine *model.MachineProfile) []SetupWarning {
	if result == nil || machine == nil {
		return nil
	}

	var warnings []SetupWarning
	for _, pr := range result.Patterns {
		warnings = append(warnings, CheckPattern(pr, machine)...)
	}
	return warnings
}

// CheckPattern reports the setup warnings for a single executed pattern.
func CheckPattern(pr model.PatternResult, machine *model.MachineProfile) []SetupWarning {
	if machine == nil {
		return nil
	}

	p := pr.Pattern
	var warnings []SetupWarning

	for i, w := range p.Widths {
		if w.Cmp(machine.MinSlitWidth) < 0 {
			warnings = append(warnings, SetupWarning{
				PatternSeq: pr.Seq,
				Kind:       WarnNarrowSlit,
				Message: fmt.Sprintf("roll %d width %s\" is below the minimum slit width %s\"",
					i+1, w.String(), machine.MinSlitWidth.String()),
			})
		}
	}

	if p.RollCount() > machine.MaxRollsPerSourceRoll {
		warnings = append(warnings, SetupWarning{
			PatternSeq: pr.Seq,
			Kind:       WarnKnifeStations,
			Message: fmt.Sprintf("pattern winds %d rolls but the machine takes at most %d",
				p.RollCount(), machine.MaxRollsPerSourceRoll),
		})
	}

	deckle := p.UsedWidth().Add(p.Trim)
	if deckle.Cmp(machine.SourceRollWidth) > 0 {
		warnings = append(warnings, SetupWarning{
			PatternSeq: pr.Seq,
			Kind:       WarnDeckleExceeded,
			Message: fmt.Sprintf("pattern deckle %s\" exceeds the machine deckle %s\"",
				deckle.String(), machine.SourceRollWidth.String()),
		})
	}

	if pr.Class == model.TrimReusable && p.Trim.Sign() > 0 && p.Trim.Cmp(machine.MinSlitWidth) < 0 {
		warnings = append(warnings, SetupWarning{
			PatternSeq: pr.Seq,
			Kind:       WarnNarrowOffcut,
			Message: fmt.Sprintf("offcut %s\" is too narrow to rewind, minimum slit width is %s\"",
				p.Trim.String(), machine.MinSlitWidth.String()),
		})
	}

	return warnings
}
