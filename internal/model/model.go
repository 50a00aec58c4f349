package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Specification identifies a paper variant by its material attributes.
// Demand, supply, and cutting patterns never mix specifications: every
// inventory match and every pattern is scoped to exactly one.
type Specification struct {
	GSM       int             `json:"gsm"`        // Grammage (g/m²)
	BF        decimal.Decimal `json:"bf"`         // Brightness factor
	Shade     string          `json:"shade"`      // e.g. "white", "golden"
	Thickness decimal.Decimal `json:"thickness"`  // mm, zero when not specified
	PaperType string          `json:"paper_type"` // e.g. "duplex", empty when not specified
}

// NewSpecification creates a Specification from the three required attributes.
func NewSpecification(gsm int, bf decimal.Decimal, shade string) Specification {
	return Specification{GSM: gsm, BF: bf, Shade: strings.ToLower(strings.TrimSpace(shade))}
}

// Key returns the canonical string form, e.g. "240gsm-18bf-white".
// Optional thickness and paper type are appended when set.
func (s Specification) Key() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%dgsm-%sbf-%s", s.GSM, s.BF.String(), s.Shade)
	if s.Thickness.Sign() > 0 {
		fmt.Fprintf(&b, "-%smm", s.Thickness.String())
	}
	if s.PaperType != "" {
		fmt.Fprintf(&b, "-%s", s.PaperType)
	}
	return b.String()
}

// Compare orders specifications field-wise: grammage, then brightness
// factor, then shade, thickness, and paper type. Group iteration and
// output merging rely on this to stay independent of input ordering.
func (s Specification) Compare(other Specification) int {
	if s.GSM != other.GSM {
		if s.GSM < other.GSM {
			return -1
		}
		return 1
	}
	if c := s.BF.Cmp(other.BF); c != 0 {
		return c
	}
	if c := strings.Compare(s.Shade, other.Shade); c != 0 {
		return c
	}
	if c := s.Thickness.Cmp(other.Thickness); c != 0 {
		return c
	}
	return strings.Compare(s.PaperType, other.PaperType)
}

// Equal reports whether two specifications identify the same paper variant.
func (s Specification) Equal(other Specification) bool {
	return s.Compare(other) == 0
}

// Validate checks the required key fields.
func (s Specification) Validate() error {
	if s.GSM <= 0 {
		return fmt.Errorf("grammage must be positive, got %d", s.GSM)
	}
	if s.BF.Sign() <= 0 {
		return fmt.Errorf("brightness factor must be positive, got %s", s.BF.String())
	}
	if strings.TrimSpace(s.Shade) == "" {
		return fmt.Errorf("shade is required")
	}
	if s.Thickness.Sign() < 0 {
		return fmt.Errorf("thickness must not be negative, got %s", s.Thickness.String())
	}
	return nil
}

// OrderOrigin records which input collection a demand line came from.
type OrderOrigin string

const (
	OriginNewOrder       OrderOrigin = "new_order"
	OriginCarriedPending OrderOrigin = "carried_pending" // Unfulfilled demand from a prior cycle
)

// RollOrigin records how a produced cut roll was fulfilled.
type RollOrigin string

const (
	RollFromNewCut RollOrigin = "from_new_cut" // Cut from a new source roll
	RollFromSupply RollOrigin = "from_supply"  // Matched directly against offcut inventory
)

// PendReason explains why demand stayed unresolved in a cycle.
type PendReason string

const (
	ReasonWidthExceedsSourceRoll    PendReason = "width_exceeds_source_roll"
	ReasonTrimTooLarge              PendReason = "trim_too_large"
	ReasonNoFeasiblePattern         PendReason = "no_feasible_pattern"
	ReasonNoMatchingSupplyOrPattern PendReason = "no_matching_supply_or_pattern"
)

// TrimPolicy selects how confirmable trims are decided.
type TrimPolicy string

const (
	TrimPolicyAutoAccept TrimPolicy = "auto_accept" // Accept every confirmable trim
	TrimPolicyConfirm    TrimPolicy = "confirm"     // Ask the injected decision function
)

// Algorithm selects the pattern search strategy.
type Algorithm string

const (
	AlgorithmGreedy  Algorithm = "greedy"  // Repeated best-pattern selection (fast, fixed contract)
	AlgorithmGenetic Algorithm = "genetic" // Seeded genetic search (slower, sometimes fewer source rolls)
)

// OrderLine represents a quantity of a given roll width still owed.
type OrderLine struct {
	Ref      string          `json:"ref"` // Source reference from the ordering system
	Spec     Specification   `json:"spec"`
	Width    decimal.Decimal `json:"width"` // inches
	Quantity int             `json:"quantity"`
	Origin   OrderOrigin     `json:"origin"`
	Reason   PendReason      `json:"reason,omitempty"` // Carried from a prior cycle, informational only
}

// NewOrderLine creates a new-order demand line with a generated reference.
func NewOrderLine(spec Specification, width decimal.Decimal, qty int) OrderLine {
	return OrderLine{
		Ref:      uuid.New().String()[:8],
		Spec:     spec,
		Width:    width,
		Quantity: qty,
		Origin:   OriginNewOrder,
	}
}

// Validate checks the demand line is well formed. It does not check
// feasibility against a source roll; that is the planner's concern.
func (o OrderLine) Validate() error {
	if err := o.Spec.Validate(); err != nil {
		return err
	}
	if o.Width.Sign() <= 0 {
		return fmt.Errorf("width must be positive, got %s", o.Width.String())
	}
	if o.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", o.Quantity)
	}
	return nil
}

// SupplyRoll is a reusable offcut available at cycle start.
type SupplyRoll struct {
	Ref      string          `json:"ref"`
	Spec     Specification   `json:"spec"`
	Width    decimal.Decimal `json:"width"` // inches, must lie inside the reusable band
	Quantity int             `json:"quantity"`
}

// NewSupplyRoll creates a supply roll with a generated reference.
func NewSupplyRoll(spec Specification, width decimal.Decimal, qty int) SupplyRoll {
	return SupplyRoll{
		Ref:      uuid.New().String()[:8],
		Spec:     spec,
		Width:    width,
		Quantity: qty,
	}
}

// Validate checks the supply roll against the reusable band of the given settings.
func (s SupplyRoll) Validate(settings PlanSettings) error {
	if err := s.Spec.Validate(); err != nil {
		return err
	}
	if s.Width.Sign() <= 0 {
		return fmt.Errorf("width must be positive, got %s", s.Width.String())
	}
	if s.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", s.Quantity)
	}
	if !settings.InReusableBand(s.Width) {
		return fmt.Errorf("width %s outside reusable band [%s, %s)",
			s.Width.String(), settings.ReusableBandLow.String(), settings.ReusableBandHigh.String())
	}
	return nil
}

// PlanSettings holds planner configuration. Every threshold is explicit;
// the planner rejects inconsistent settings up front instead of guessing.
type PlanSettings struct {
	Algorithm             Algorithm       `json:"algorithm"`                 // "greedy" or "genetic"
	SourceRollWidth       decimal.Decimal `json:"source_roll_width"`         // inches (deckle width)
	MaxRollsPerSourceRoll int             `json:"max_rolls_per_source_roll"` // Knife count limit
	AutoAcceptTrim        decimal.Decimal `json:"auto_accept_trim"`          // inches
	ReusableBandLow       decimal.Decimal `json:"reusable_band_low"`         // inches, inclusive
	ReusableBandHigh      decimal.Decimal `json:"reusable_band_high"`        // inches, exclusive
	TrimPolicy            TrimPolicy      `json:"trim_policy"`
	GeneticSeed           int64           `json:"genetic_seed"` // Base RNG seed for the genetic search
}

// Validate checks the settings for internal consistency. An inconsistent
// threshold ordering would make trim classification ambiguous, so it is
// fatal before any planning starts.
func (s PlanSettings) Validate() error {
	if s.SourceRollWidth.Sign() <= 0 {
		return fmt.Errorf("source roll width must be positive, got %s", s.SourceRollWidth.String())
	}
	if s.MaxRollsPerSourceRoll < 1 {
		return fmt.Errorf("max rolls per source roll must be at least 1, got %d", s.MaxRollsPerSourceRoll)
	}
	if s.AutoAcceptTrim.Sign() < 0 {
		return fmt.Errorf("auto-accept trim must not be negative, got %s", s.AutoAcceptTrim.String())
	}
	if s.ReusableBandLow.Cmp(s.ReusableBandHigh) >= 0 {
		return fmt.Errorf("reusable band low %s must be below high %s",
			s.ReusableBandLow.String(), s.ReusableBandHigh.String())
	}
	if s.AutoAcceptTrim.Cmp(s.ReusableBandLow) >= 0 {
		return fmt.Errorf("auto-accept trim %s must be below reusable band low %s",
			s.AutoAcceptTrim.String(), s.ReusableBandLow.String())
	}
	switch s.TrimPolicy {
	case TrimPolicyAutoAccept, TrimPolicyConfirm:
	default:
		return fmt.Errorf("unknown trim policy %q", s.TrimPolicy)
	}
	switch s.Algorithm {
	case AlgorithmGreedy, AlgorithmGenetic:
	default:
		return fmt.Errorf("unknown algorithm %q", s.Algorithm)
	}
	return nil
}

// DefaultSettings returns the standard 118 inch deckle configuration.
func DefaultSettings() PlanSettings {
	return PlanSettings{
		Algorithm:             AlgorithmGreedy,
		SourceRollWidth:       decimal.NewFromInt(118),
		MaxRollsPerSourceRoll: 5,
		AutoAcceptTrim:        decimal.NewFromInt(6),
		ReusableBandLow:       decimal.NewFromInt(20),
		ReusableBandHigh:      decimal.NewFromInt(25),
		TrimPolicy:            TrimPolicyAutoAccept,
		GeneticSeed:           42,
	}
}

// Pattern is one feasible way to slice a single source roll: a multiset
// of demand widths plus the leftover trim. Widths are kept sorted in
// descending order so equal multisets compare equal.
type Pattern struct {
	Spec   Specification     `json:"spec"`
	Widths []decimal.Decimal `json:"widths"` // inches, descending
	Trim   decimal.Decimal   `json:"trim"`   // inches
}

// RollCount returns the number of rolls the pattern produces.
func (p Pattern) RollCount() int {
	return len(p.Widths)
}

// UsedWidth returns the summed width of all rolls in the pattern.
func (p Pattern) UsedWidth() decimal.Decimal {
	total := decimal.Zero
	for _, w := range p.Widths {
		total = total.Add(w)
	}
	return total
}

// Key returns a canonical form of the width multiset, e.g. "40+38+29.5".
func (p Pattern) Key() string {
	parts := make([]string, len(p.Widths))
	for i, w := range p.Widths {
		parts[i] = w.String()
	}
	return strings.Join(parts, "+")
}

// PatternResult is one executed pattern; exactly one source roll is
// consumed per executed pattern.
type PatternResult struct {
	Seq     int       `json:"seq"` // 1-based position in the plan
	Pattern Pattern   `json:"pattern"`
	Class   TrimClass `json:"trim_class"`
}

// Utilization returns the used share of the source roll width as a percentage.
func (pr PatternResult) Utilization() float64 {
	used := pr.Pattern.UsedWidth()
	total := used.Add(pr.Pattern.Trim)
	if total.Sign() == 0 {
		return 0
	}
	f, _ := used.Div(total).Float64()
	return f * 100.0
}

// CutRoll is one produced roll ready for fulfillment.
type CutRoll struct {
	ID         string          `json:"id,omitempty"` // Assigned by the caller after planning, never by the planner
	Spec       Specification   `json:"spec"`
	Width      decimal.Decimal `json:"width"` // inches
	Origin     RollOrigin      `json:"origin"`
	OrderRef   string          `json:"order_ref"`             // Demand line this roll fulfills
	SupplyRef  string          `json:"supply_ref,omitempty"`  // Offcut consumed; from_supply only
	PatternSeq int             `json:"pattern_seq,omitempty"` // Executed pattern that produced it; from_new_cut only
	RollSeq    int             `json:"roll_seq"`              // 1-based position within its pattern or supply roll
}

// PendingRoll is demand left unresolved by a cycle, carried forward.
type PendingRoll struct {
	OrderRef string          `json:"order_ref"`
	Spec     Specification   `json:"spec"`
	Width    decimal.Decimal `json:"width"` // inches
	Quantity int             `json:"quantity"`
	Reason   PendReason      `json:"reason"`
}

// RejectedInput reports one malformed input row excluded from planning.
// Rejections are per-row and never abort the batch.
type RejectedInput struct {
	Kind   string `json:"kind"`  // "order", "pending", or "inventory"
	Index  int    `json:"index"` // Position in the input collection
	Ref    string `json:"ref,omitempty"`
	Reason string `json:"reason"`
}

// PlanResult holds the full solution: the four planning outputs plus
// the executed patterns and any rejected input rows.
type PlanResult struct {
	CutRolls          []CutRoll       `json:"cut_rolls_generated"`
	SourceRollsNeeded int             `json:"jumbo_rolls_needed"` // One per executed pattern
	Pending           []PendingRoll   `json:"pending_orders"`
	Inventory         []Offcut        `json:"inventory_remaining"`
	Patterns          []PatternResult `json:"patterns"`
	Rejected          []RejectedInput `json:"rejected_inputs,omitempty"`
}

// TotalTrim returns the summed trim across all executed patterns.
func (pr PlanResult) TotalTrim() decimal.Decimal {
	total := decimal.Zero
	for _, p := range pr.Patterns {
		total = total.Add(p.Pattern.Trim)
	}
	return total
}

// RecoveredTrim returns trim that became reusable offcut inventory.
func (pr PlanResult) RecoveredTrim() decimal.Decimal {
	total := decimal.Zero
	for _, p := range pr.Patterns {
		if p.Class == TrimReusable {
			total = total.Add(p.Pattern.Trim)
		}
	}
	return total
}

// DiscardedTrim returns trim that was cut and thrown away.
func (pr PlanResult) DiscardedTrim() decimal.Decimal {
	return pr.TotalTrim().Sub(pr.RecoveredTrim())
}

// TotalSourceWidth returns the summed width of all consumed source rolls.
func (pr PlanResult) TotalSourceWidth() decimal.Decimal {
	total := decimal.Zero
	for _, p := range pr.Patterns {
		total = total.Add(p.Pattern.UsedWidth()).Add(p.Pattern.Trim)
	}
	return total
}

// WastePercent returns discarded trim as a percentage of consumed source width.
func (pr PlanResult) WastePercent() float64 {
	total := pr.TotalSourceWidth()
	if total.Sign() == 0 {
		return 0
	}
	f, _ := pr.DiscardedTrim().Div(total).Float64()
	return f * 100.0
}

// PendingQuantity returns the total number of unresolved roll units.
func (pr PlanResult) PendingQuantity() int {
	total := 0
	for _, p := range pr.Pending {
		total += p.Quantity
	}
	return total
}

// RollsFromSupply returns how many cut rolls were fulfilled from inventory.
func (pr PlanResult) RollsFromSupply() int {
	count := 0
	for _, r := range pr.CutRolls {
		if r.Origin == RollFromSupply {
			count++
		}
	}
	return count
}

// Plan ties one cycle's inputs, settings, and result together for save/load.
type Plan struct {
	Name     string       `json:"name"`
	Orders   []OrderLine  `json:"orders"`
	Pending  []OrderLine  `json:"pending"`
	Supply   []SupplyRoll `json:"supply"`
	Settings PlanSettings `json:"settings"`
	Result   *PlanResult  `json:"result,omitempty"`
}

// NewPlan returns an empty plan with default settings.
func NewPlan() Plan {
	return Plan{
		Name:     "Untitled",
		Orders:   []OrderLine{},
		Pending:  []OrderLine{},
		Supply:   []SupplyRoll{},
		Settings: DefaultSettings(),
	}
}
