package model

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSpecificationKey(t *testing.T) {
	tests := []struct {
		name string
		spec Specification
		want string
	}{
		{
			"required fields only",
			NewSpecification(240, dec("18"), "white"),
			"240gsm-18bf-white",
		},
		{
			"fractional brightness factor",
			NewSpecification(120, dec("16.5"), "golden"),
			"120gsm-16.5bf-golden",
		},
		{
			"with thickness",
			Specification{GSM: 240, BF: dec("18"), Shade: "white", Thickness: dec("0.5")},
			"240gsm-18bf-white-0.5mm",
		},
		{
			"with paper type",
			Specification{GSM: 240, BF: dec("18"), Shade: "white", PaperType: "duplex"},
			"240gsm-18bf-white-duplex",
		},
		{
			"with thickness and paper type",
			Specification{GSM: 240, BF: dec("18"), Shade: "white", Thickness: dec("0.5"), PaperType: "duplex"},
			"240gsm-18bf-white-0.5mm-duplex",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.spec.Key(); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewSpecificationNormalizesShade(t *testing.T) {
	s := NewSpecification(240, dec("18"), "  White ")
	if s.Shade != "white" {
		t.Errorf("expected normalized shade %q, got %q", "white", s.Shade)
	}
}

func TestSpecificationCompareOrdersFieldWise(t *testing.T) {
	a := NewSpecification(120, dec("18"), "white")
	b := NewSpecification(240, dec("16"), "golden")
	if a.Compare(b) >= 0 {
		t.Error("lower grammage should order first regardless of other fields")
	}

	c := NewSpecification(240, dec("16"), "white")
	d := NewSpecification(240, dec("18"), "golden")
	if c.Compare(d) >= 0 {
		t.Error("equal grammage should fall through to brightness factor")
	}

	e := NewSpecification(240, dec("18"), "golden")
	f := NewSpecification(240, dec("18"), "white")
	if e.Compare(f) >= 0 {
		t.Error("equal grammage and brightness should fall through to shade")
	}

	g := NewSpecification(240, dec("18.0"), "white")
	h := NewSpecification(240, dec("18"), "white")
	if g.Compare(h) != 0 {
		t.Error("numerically equal brightness factors should compare equal")
	}
	if !g.Equal(h) {
		t.Error("Equal should agree with Compare")
	}
}

func TestSpecificationValidate(t *testing.T) {
	tests := []struct {
		name    string
		spec    Specification
		wantErr bool
	}{
		{"valid", NewSpecification(240, dec("18"), "white"), false},
		{"zero grammage", NewSpecification(0, dec("18"), "white"), true},
		{"negative grammage", NewSpecification(-10, dec("18"), "white"), true},
		{"zero brightness", NewSpecification(240, decimal.Zero, "white"), true},
		{"missing shade", NewSpecification(240, dec("18"), ""), true},
		{"negative thickness", Specification{GSM: 240, BF: dec("18"), Shade: "white", Thickness: dec("-1")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewOrderLineSetsRefAndOrigin(t *testing.T) {
	o := NewOrderLine(NewSpecification(240, dec("18"), "white"), dec("40"), 3)
	if len(o.Ref) != 8 {
		t.Errorf("expected 8-char reference, got %q", o.Ref)
	}
	if o.Origin != OriginNewOrder {
		t.Errorf("expected origin %q, got %q", OriginNewOrder, o.Origin)
	}
	if o.Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", o.Quantity)
	}
}

func TestOrderLineValidate(t *testing.T) {
	spec := NewSpecification(240, dec("18"), "white")

	tests := []struct {
		name    string
		line    OrderLine
		wantErr bool
	}{
		{"valid", OrderLine{Ref: "a", Spec: spec, Width: dec("40"), Quantity: 1, Origin: OriginNewOrder}, false},
		{"zero width", OrderLine{Ref: "a", Spec: spec, Width: decimal.Zero, Quantity: 1}, true},
		{"negative width", OrderLine{Ref: "a", Spec: spec, Width: dec("-5"), Quantity: 1}, true},
		{"zero quantity", OrderLine{Ref: "a", Spec: spec, Width: dec("40"), Quantity: 0}, true},
		{"bad spec", OrderLine{Ref: "a", Spec: Specification{}, Width: dec("40"), Quantity: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.line.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSupplyRollValidateChecksReusableBand(t *testing.T) {
	settings := DefaultSettings()
	spec := NewSpecification(240, dec("18"), "white")

	tests := []struct {
		name    string
		width   string
		wantErr bool
	}{
		{"inside band", "22", false},
		{"at low bound", "20", false},
		{"below band", "19.5", true},
		{"at high bound", "25", true},
		{"above band", "30", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roll := SupplyRoll{Ref: "s1", Spec: spec, Width: dec(tt.width), Quantity: 1}
			err := roll.Validate(settings)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPlanSettingsValidate(t *testing.T) {
	valid := DefaultSettings()
	if err := valid.Validate(); err != nil {
		t.Fatalf("default settings should validate, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*PlanSettings)
	}{
		{"zero source width", func(s *PlanSettings) { s.SourceRollWidth = decimal.Zero }},
		{"zero max rolls", func(s *PlanSettings) { s.MaxRollsPerSourceRoll = 0 }},
		{"negative auto accept", func(s *PlanSettings) { s.AutoAcceptTrim = dec("-1") }},
		{"band low equals high", func(s *PlanSettings) { s.ReusableBandLow = s.ReusableBandHigh }},
		{"band low above high", func(s *PlanSettings) { s.ReusableBandLow = dec("30") }},
		{"auto accept equals band low", func(s *PlanSettings) { s.AutoAcceptTrim = s.ReusableBandLow }},
		{"auto accept above band low", func(s *PlanSettings) { s.AutoAcceptTrim = dec("21") }},
		{"unknown trim policy", func(s *PlanSettings) { s.TrimPolicy = "prompt" }},
		{"unknown algorithm", func(s *PlanSettings) { s.Algorithm = "simplex" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			if err := s.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if !s.SourceRollWidth.Equal(dec("118")) {
		t.Errorf("expected source roll width 118, got %s", s.SourceRollWidth)
	}
	if s.MaxRollsPerSourceRoll != 5 {
		t.Errorf("expected max 5 rolls per source roll, got %d", s.MaxRollsPerSourceRoll)
	}
	if !s.AutoAcceptTrim.Equal(dec("6")) {
		t.Errorf("expected auto-accept trim 6, got %s", s.AutoAcceptTrim)
	}
	if !s.ReusableBandLow.Equal(dec("20")) || !s.ReusableBandHigh.Equal(dec("25")) {
		t.Errorf("expected reusable band [20, 25), got [%s, %s)", s.ReusableBandLow, s.ReusableBandHigh)
	}
	if s.Algorithm != AlgorithmGreedy {
		t.Errorf("expected greedy algorithm, got %s", s.Algorithm)
	}
	if s.TrimPolicy != TrimPolicyAutoAccept {
		t.Errorf("expected auto-accept policy, got %s", s.TrimPolicy)
	}
}

func TestPatternKeyAndCounts(t *testing.T) {
	p := Pattern{
		Spec:   NewSpecification(240, dec("18"), "white"),
		Widths: []decimal.Decimal{dec("40"), dec("38"), dec("29.5")},
		Trim:   dec("10.5"),
	}

	if got := p.Key(); got != "40+38+29.5" {
		t.Errorf("Key() = %q, want %q", got, "40+38+29.5")
	}
	if p.RollCount() != 3 {
		t.Errorf("RollCount() = %d, want 3", p.RollCount())
	}
	if !p.UsedWidth().Equal(dec("107.5")) {
		t.Errorf("UsedWidth() = %s, want 107.5", p.UsedWidth())
	}
}

func TestPatternResultUtilization(t *testing.T) {
	pr := PatternResult{
		Seq: 1,
		Pattern: Pattern{
			Widths: []decimal.Decimal{dec("95")},
			Trim:   dec("23"),
		},
		Class: TrimReusable,
	}

	got := pr.Utilization()
	want := 95.0 / 118.0 * 100.0
	if math.Abs(got-want) > 0.001 {
		t.Errorf("Utilization() = %f, want %f", got, want)
	}
}

func TestPlanResultJSONContract(t *testing.T) {
	result := PlanResult{
		CutRolls:          []CutRoll{},
		SourceRollsNeeded: 2,
		Pending:           []PendingRoll{},
		Inventory:         []Offcut{},
		Patterns:          []PatternResult{},
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	for _, field := range []string{
		`"cut_rolls_generated"`,
		`"jumbo_rolls_needed":2`,
		`"pending_orders"`,
		`"inventory_remaining"`,
	} {
		if !strings.Contains(string(data), field) {
			t.Errorf("marshaled result missing %s: %s", field, data)
		}
	}
}

func TestPlanResultAggregates(t *testing.T) {
	spec := NewSpecification(240, dec("18"), "white")
	result := PlanResult{
		CutRolls: []CutRoll{
			{Spec: spec, Width: dec("40"), Origin: RollFromNewCut, OrderRef: "o1", PatternSeq: 1, RollSeq: 1},
			{Spec: spec, Width: dec("22"), Origin: RollFromSupply, OrderRef: "o2", SupplyRef: "s1", RollSeq: 1},
		},
		SourceRollsNeeded: 2,
		Pending: []PendingRoll{
			{OrderRef: "o3", Spec: spec, Width: dec("80"), Quantity: 2, Reason: ReasonTrimTooLarge},
		},
		Patterns: []PatternResult{
			{Seq: 1, Pattern: Pattern{Spec: spec, Widths: []decimal.Decimal{dec("40"), dec("40"), dec("38")}, Trim: decimal.Zero}, Class: TrimDiscard},
			{Seq: 2, Pattern: Pattern{Spec: spec, Widths: []decimal.Decimal{dec("95")}, Trim: dec("23")}, Class: TrimReusable},
		},
	}

	if !result.TotalTrim().Equal(dec("23")) {
		t.Errorf("TotalTrim() = %s, want 23", result.TotalTrim())
	}
	if !result.RecoveredTrim().Equal(dec("23")) {
		t.Errorf("RecoveredTrim() = %s, want 23", result.RecoveredTrim())
	}
	if !result.DiscardedTrim().IsZero() {
		t.Errorf("DiscardedTrim() = %s, want 0", result.DiscardedTrim())
	}
	if !result.TotalSourceWidth().Equal(dec("236")) {
		t.Errorf("TotalSourceWidth() = %s, want 236", result.TotalSourceWidth())
	}
	if result.PendingQuantity() != 2 {
		t.Errorf("PendingQuantity() = %d, want 2", result.PendingQuantity())
	}
	if result.RollsFromSupply() != 1 {
		t.Errorf("RollsFromSupply() = %d, want 1", result.RollsFromSupply())
	}
}

func TestNewPlanDefaults(t *testing.T) {
	p := NewPlan()
	if p.Name != "Untitled" {
		t.Errorf("expected name Untitled, got %q", p.Name)
	}
	if len(p.Orders) != 0 || len(p.Pending) != 0 || len(p.Supply) != 0 {
		t.Error("new plan should start empty")
	}
	if err := p.Settings.Validate(); err != nil {
		t.Errorf("new plan settings should validate, got %v", err)
	}
}
