package engine

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/piwi3910/rollcut/internal/model"
)

// candidate pairs a pattern with its per-width roll counts so the selection
// loop can check it against remaining demand without re-counting.
type candidate struct {
	pattern model.Pattern
	counts  map[string]int // width string -> rolls of that width in the pattern
}

// GeneratePatterns enumerates every feasible cutting pattern over the given
// demand widths: multisets of at most MaxRollsPerSourceRoll widths whose sum
// fits within the source roll width. Duplicate input widths are collapsed.
// Patterns are returned in selection order: most rolls first, then smallest
// trim, then the wider leading widths.
func GeneratePatterns(spec model.Specification, widths []decimal.Decimal, settings model.PlanSettings) []model.Pattern {
	distinct := distinctWidthsDescending(widths)
	units := make(map[string]int, len(distinct))
	for _, w := range distinct {
		units[w.String()] = settings.MaxRollsPerSourceRoll
	}
	cands := generateCandidates(spec, distinct, units, settings)
	patterns := make([]model.Pattern, len(cands))
	for i, c := range cands {
		patterns[i] = c.pattern
	}
	return patterns
}

// generateCandidates enumerates feasible patterns with per-width multiplicity
// capped by the available demand units. widths must be sorted descending.
func generateCandidates(spec model.Specification, widths []decimal.Decimal, units map[string]int, settings model.PlanSettings) []*candidate {
	var cands []*candidate
	counts := make([]int, len(widths))

	var walk func(i, rolls int, used decimal.Decimal)
	walk = func(i, rolls int, used decimal.Decimal) {
		if i == len(widths) {
			if rolls == 0 {
				return
			}
			cands = append(cands, buildCandidate(spec, widths, counts, used, settings))
			return
		}
		limit := units[widths[i].String()]
		if budget := settings.MaxRollsPerSourceRoll - rolls; limit > budget {
			limit = budget
		}
		for c := 0; c <= limit; c++ {
			total := used.Add(widths[i].Mul(decimal.NewFromInt(int64(c))))
			if total.Cmp(settings.SourceRollWidth) > 0 {
				break
			}
			counts[i] = c
			walk(i+1, rolls+c, total)
		}
		counts[i] = 0
	}
	walk(0, 0, decimal.Zero)

	sort.Slice(cands, func(a, b int) bool {
		return comparePatterns(cands[a].pattern, cands[b].pattern) < 0
	})
	return cands
}

// buildCandidate materializes one counts vector into a pattern. widths are
// descending, so repeating them in order keeps the pattern widths descending.
func buildCandidate(spec model.Specification, widths []decimal.Decimal, counts []int, used decimal.Decimal, settings model.PlanSettings) *candidate {
	c := &candidate{
		pattern: model.Pattern{
			Spec: spec,
			Trim: settings.SourceRollWidth.Sub(used),
		},
		counts: make(map[string]int),
	}
	for i, w := range widths {
		if counts[i] == 0 {
			continue
		}
		c.counts[w.String()] = counts[i]
		for n := 0; n < counts[i]; n++ {
			c.pattern.Widths = append(c.pattern.Widths, w)
		}
	}
	return c
}

// comparePatterns is the fixed selection order: more rolls first, then
// smaller trim, then the width multisets compared element-wise with the
// wider width ranking first at the first divergence.
func comparePatterns(a, b model.Pattern) int {
	if a.RollCount() != b.RollCount() {
		if a.RollCount() > b.RollCount() {
			return -1
		}
		return 1
	}
	if c := a.Trim.Cmp(b.Trim); c != 0 {
		return c
	}
	for i := 0; i < len(a.Widths) && i < len(b.Widths); i++ {
		if c := a.Widths[i].Cmp(b.Widths[i]); c != 0 {
			return -c
		}
	}
	return 0
}

// satisfiable reports whether remaining demand covers every width the
// candidate needs.
func satisfiable(c *candidate, units map[string]int) bool {
	for key, n := range c.counts {
		if n > units[key] {
			return false
		}
	}
	return true
}

// distinctWidthsDescending deduplicates widths and sorts them descending.
func distinctWidthsDescending(widths []decimal.Decimal) []decimal.Decimal {
	seen := make(map[string]bool, len(widths))
	distinct := make([]decimal.Decimal, 0, len(widths))
	for _, w := range widths {
		key := w.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		distinct = append(distinct, w)
	}
	sort.Slice(distinct, func(i, j int) bool {
		return distinct[i].Cmp(distinct[j]) > 0
	})
	return distinct
}
