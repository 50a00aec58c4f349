package engine

import (
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/rollcut/internal/model"
)

// TrimDecision decides whether a pattern whose trim falls between the
// auto-accept threshold and the reusable band may run. It is injected by
// the caller (a flag, a prompt, a policy service); the planner itself never
// blocks on input. Decisions are memoized per (trim, specification) within
// a planning cycle, so the function is asked once per distinct trim value.
type TrimDecision func(trim decimal.Decimal, spec model.Specification) bool

// Optimizer computes cutting plans for paper roll demand. It is a pure
// planner: no I/O, no identifier generation, and byte-identical outputs
// for identical inputs and settings.
type Optimizer struct {
	Settings model.PlanSettings

	// Decide is consulted for confirm-class trims when the trim policy is
	// TrimPolicyConfirm. Required in that case, ignored otherwise.
	Decide TrimDecision

	decideMu sync.Mutex
}

func New(settings model.PlanSettings) (*Optimizer, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan settings: %w", err)
	}
	return &Optimizer{Settings: settings}, nil
}

// Plan runs one full planning cycle over new orders, demand carried pending
// from earlier cycles, and reusable offcut inventory. Malformed rows are
// excluded per row and reported in the result; only inconsistent settings
// abort the run. Specification groups are planned concurrently and merged
// in a fixed group order, so the output does not depend on scheduling.
func (o *Optimizer) Plan(orders, pending []model.OrderLine, supply []model.SupplyRoll) (*model.PlanResult, error) {
	if err := o.Settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan settings: %w", err)
	}
	if o.Settings.TrimPolicy == model.TrimPolicyConfirm && o.Decide == nil {
		return nil, fmt.Errorf("trim policy %q requires a decision function", model.TrimPolicyConfirm)
	}

	groups, rejected := o.buildGroups(orders, pending, supply)

	results := make([]groupResult, len(groups))
	var eg errgroup.Group
	for i, g := range groups {
		i, g := i, g
		eg.Go(func() error {
			results[i] = o.planGroup(g)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	merged := &model.PlanResult{
		CutRolls:  []model.CutRoll{},
		Pending:   []model.PendingRoll{},
		Inventory: []model.Offcut{},
		Patterns:  []model.PatternResult{},
		Rejected:  rejected,
	}
	patternOffset := 0
	for _, gr := range results {
		for _, p := range gr.patterns {
			p.Seq += patternOffset
			merged.Patterns = append(merged.Patterns, p)
		}
		for _, r := range gr.cutRolls {
			if r.PatternSeq > 0 {
				r.PatternSeq += patternOffset
			}
			merged.CutRolls = append(merged.CutRolls, r)
		}
		merged.Pending = append(merged.Pending, gr.pending...)
		merged.Inventory = append(merged.Inventory, gr.offcuts...)
		patternOffset += len(gr.patterns)
	}
	merged.SourceRollsNeeded = len(merged.Patterns)
	return merged, nil
}

// demandLine is one validated demand row being worked off. Lines keep their
// arrival position: carried pending ahead of new orders, input order within
// each, which is the consumption order everywhere demand is matched.
type demandLine struct {
	ref        string
	origin     model.OrderOrigin
	width      decimal.Decimal
	quantity   int
	remaining  int
	infeasible bool // width alone exceeds the source roll
}

// planGroup holds one specification's demand and supply plus the block
// marks the search leaves behind for pending-reason assignment.
type planGroup struct {
	spec   model.Specification
	demand []*demandLine
	supply []model.SupplyRoll

	blockedTrim map[string]bool // widths in a pattern rejected for excessive trim
	blockedConf map[string]bool // widths in a pattern rejected by the trim decision
	decisions   map[string]bool // memoized confirm decisions, keyed by trim
}

// groupResult is one group's contribution to the plan. Pattern sequence
// numbers are local to the group until the final merge renumbers them.
type groupResult struct {
	cutRolls []model.CutRoll
	patterns []model.PatternResult
	offcuts  []model.Offcut
	pending  []model.PendingRoll
}

// buildGroups validates every input row and partitions the survivors by
// specification. Malformed rows are collected as rejections; rows never
// abort the batch. Groups come back sorted by specification so iteration
// order is independent of input order.
func (o *Optimizer) buildGroups(orders, pending []model.OrderLine, supply []model.SupplyRoll) ([]*planGroup, []model.RejectedInput) {
	var rejected []model.RejectedInput
	byKey := make(map[string]*planGroup)
	var groups []*planGroup

	groupFor := func(spec model.Specification) *planGroup {
		key := spec.Key()
		if g, ok := byKey[key]; ok {
			return g
		}
		g := &planGroup{
			spec:        spec,
			blockedTrim: make(map[string]bool),
			blockedConf: make(map[string]bool),
			decisions:   make(map[string]bool),
		}
		byKey[key] = g
		groups = append(groups, g)
		return g
	}

	addDemand := func(kind string, index int, line model.OrderLine, origin model.OrderOrigin) {
		if err := line.Validate(); err != nil {
			rejected = append(rejected, model.RejectedInput{
				Kind: kind, Index: index, Ref: line.Ref, Reason: err.Error(),
			})
			return
		}
		g := groupFor(line.Spec)
		g.demand = append(g.demand, &demandLine{
			ref:        line.Ref,
			origin:     origin,
			width:      line.Width,
			quantity:   line.Quantity,
			remaining:  line.Quantity,
			infeasible: line.Width.Cmp(o.Settings.SourceRollWidth) > 0,
		})
	}

	// Carried pending is older demand: it enters its group ahead of new
	// orders and is consumed first wherever widths compete.
	for i, line := range pending {
		addDemand("pending", i, line, model.OriginCarriedPending)
	}
	for i, line := range orders {
		addDemand("order", i, line, model.OriginNewOrder)
	}
	for i, roll := range supply {
		if err := roll.Validate(o.Settings); err != nil {
			rejected = append(rejected, model.RejectedInput{
				Kind: "inventory", Index: i, Ref: roll.Ref, Reason: err.Error(),
			})
			continue
		}
		g := groupFor(roll.Spec)
		g.supply = append(g.supply, roll)
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].spec.Compare(groups[j].spec) < 0
	})
	return groups, rejected
}

// planGroup runs one specification group through inventory matching,
// pattern search, and pending collection.
func (o *Optimizer) planGroup(g *planGroup) groupResult {
	res := groupResult{}
	o.matchSupply(g, &res)
	if o.Settings.Algorithm == model.AlgorithmGenetic {
		o.searchGenetic(g, &res)
	} else {
		o.searchGreedy(g, &res)
	}
	o.collectPending(g, &res)
	return res
}

// oldestDemand returns the first demand line of exactly the given width
// with units left, skipping infeasible lines. Demand order is fixed at
// build time, so "first" means oldest.
func oldestDemand(g *planGroup, width decimal.Decimal) *demandLine {
	for _, line := range g.demand {
		if line.infeasible || line.remaining == 0 {
			continue
		}
		if line.width.Equal(width) {
			return line
		}
	}
	return nil
}

// matchSupply consumes reusable offcut inventory against demand of exactly
// equal width before any cutting is considered. Matched units become
// from_supply rolls: no source roll is consumed and no trim is produced.
// Whatever supply demand does not soak up is re-emitted verbatim.
func (o *Optimizer) matchSupply(g *planGroup, res *groupResult) {
	for _, s := range g.supply {
		consumed := 0
		for unit := 0; unit < s.Quantity; unit++ {
			line := oldestDemand(g, s.Width)
			if line == nil {
				break
			}
			line.remaining--
			consumed++
			res.cutRolls = append(res.cutRolls, model.CutRoll{
				Spec:      g.spec,
				Width:     s.Width,
				Origin:    model.RollFromSupply,
				OrderRef:  line.ref,
				SupplyRef: s.Ref,
				RollSeq:   consumed,
			})
		}
		if leftover := s.Quantity - consumed; leftover > 0 {
			res.offcuts = append(res.offcuts, model.Offcut{
				Ref:      s.Ref,
				Spec:     g.spec,
				Width:    s.Width,
				Quantity: leftover,
			})
		}
	}
}

// searchGreedy repeatedly picks the best satisfiable candidate pattern:
// most rolls, then smallest trim. The trim class is decided before the
// pattern commits; a pattern rejected by classification or by the trim
// decision leaves the candidate set and selection retries, marking the
// widths it would have served so pending reasons can be assigned later.
func (o *Optimizer) searchGreedy(g *planGroup, res *groupResult) {
	units := remainingUnits(g)
	widths := make([]decimal.Decimal, 0, len(units))
	for _, line := range g.demand {
		if !line.infeasible && line.remaining > 0 {
			widths = append(widths, line.width)
		}
	}
	if len(widths) == 0 {
		return
	}

	cands := generateCandidates(g.spec, distinctWidthsDescending(widths), units, o.Settings)
	for {
		idx := -1
		for i, c := range cands {
			if satisfiable(c, units) {
				idx = i
				break
			}
		}
		if idx < 0 {
			break
		}

		c := cands[idx]
		class := model.ClassifyTrim(c.pattern.Trim, o.Settings)
		switch {
		case class == model.TrimExcessive:
			markWidths(g.blockedTrim, c)
			cands = append(cands[:idx], cands[idx+1:]...)
		case class == model.TrimConfirm && !o.confirmTrim(g, c.pattern.Trim):
			markWidths(g.blockedConf, c)
			cands = append(cands[:idx], cands[idx+1:]...)
		default:
			o.executePattern(g, c.pattern, class, units, res)
		}
	}
}

// executePattern commits one pattern: consumes one source roll, attributes
// each produced roll to the oldest demand line of its width, and recovers
// reusable trim as an offcut.
func (o *Optimizer) executePattern(g *planGroup, p model.Pattern, class model.TrimClass, units map[string]int, res *groupResult) {
	seq := len(res.patterns) + 1
	res.patterns = append(res.patterns, model.PatternResult{Seq: seq, Pattern: p, Class: class})

	for i, w := range p.Widths {
		line := oldestDemand(g, w)
		if line == nil {
			continue
		}
		line.remaining--
		units[w.String()]--
		res.cutRolls = append(res.cutRolls, model.CutRoll{
			Spec:       g.spec,
			Width:      w,
			Origin:     model.RollFromNewCut,
			OrderRef:   line.ref,
			PatternSeq: seq,
			RollSeq:    i + 1,
		})
	}

	if class == model.TrimReusable {
		res.offcuts = append(res.offcuts, model.Offcut{
			Spec:     g.spec,
			Width:    p.Trim,
			Quantity: 1,
		})
	}
}

// confirmTrim resolves a confirm-class trim under the configured policy.
// Under TrimPolicyConfirm the injected decision is asked once per distinct
// trim value in this group; groups run concurrently, so the callback itself
// is serialized.
func (o *Optimizer) confirmTrim(g *planGroup, trim decimal.Decimal) bool {
	if o.Settings.TrimPolicy == model.TrimPolicyAutoAccept {
		return true
	}
	key := trim.String()
	if accepted, ok := g.decisions[key]; ok {
		return accepted
	}
	o.decideMu.Lock()
	accepted := o.Decide(trim, g.spec)
	o.decideMu.Unlock()
	g.decisions[key] = accepted
	return accepted
}

// collectPending turns every demand line with units left into a pending
// entry. Reasons follow a fixed precedence: infeasible width, then
// excessive trim, then patterns lost to the trim decision, then the
// fallback for demand nothing could cover.
func (o *Optimizer) collectPending(g *planGroup, res *groupResult) {
	for _, line := range g.demand {
		if line.remaining <= 0 {
			continue
		}
		reason := model.ReasonNoMatchingSupplyOrPattern
		switch {
		case line.infeasible:
			reason = model.ReasonWidthExceedsSourceRoll
		case g.blockedTrim[line.width.String()]:
			reason = model.ReasonTrimTooLarge
		case g.blockedConf[line.width.String()]:
			reason = model.ReasonNoFeasiblePattern
		}
		res.pending = append(res.pending, model.PendingRoll{
			OrderRef: line.ref,
			Spec:     g.spec,
			Width:    line.width,
			Quantity: line.remaining,
			Reason:   reason,
		})
	}
}

// remainingUnits sums feasible leftover demand units per width.
func remainingUnits(g *planGroup) map[string]int {
	units := make(map[string]int)
	for _, line := range g.demand {
		if line.infeasible || line.remaining == 0 {
			continue
		}
		units[line.width.String()] += line.remaining
	}
	return units
}

// markWidths records every width a rejected pattern would have served.
func markWidths(marks map[string]bool, c *candidate) {
	for key := range c.counts {
		marks[key] = true
	}
}
