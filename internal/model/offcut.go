package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TrimClass is the waste classification of a pattern's trim.
type TrimClass string

const (
	TrimDiscard   TrimClass = "discard"   // Within auto-accept: cut and thrown away
	TrimConfirm   TrimClass = "confirm"   // Accepted only under the trim policy
	TrimReusable  TrimClass = "reusable"  // Recovered as offcut inventory
	TrimExcessive TrimClass = "excessive" // Too wide to waste: the pattern must not run
)

// ClassifyTrim places a trim width into its class using the settings
// thresholds. The reusable band is closed-open: a trim exactly at the
// low bound is reusable, exactly at the high bound is excessive.
func ClassifyTrim(trim decimal.Decimal, s PlanSettings) TrimClass {
	switch {
	case trim.Cmp(s.AutoAcceptTrim) <= 0:
		return TrimDiscard
	case trim.Cmp(s.ReusableBandLow) < 0:
		return TrimConfirm
	case trim.Cmp(s.ReusableBandHigh) < 0:
		return TrimReusable
	default:
		return TrimExcessive
	}
}

// InReusableBand reports whether a width lies inside [low, high).
func (s PlanSettings) InReusableBand(width decimal.Decimal) bool {
	return width.Cmp(s.ReusableBandLow) >= 0 && width.Cmp(s.ReusableBandHigh) < 0
}

// Offcut is reusable inventory emitted by a cycle: either trim recovered
// from an executed pattern, or carried-in supply nobody consumed. Newly
// produced offcuts have no reference until the caller assigns one; supply
// re-emitted unconsumed keeps its original reference.
type Offcut struct {
	Ref      string          `json:"ref,omitempty"`
	Spec     Specification   `json:"spec"`
	Width    decimal.Decimal `json:"width"` // inches
	Quantity int             `json:"quantity"`
}

// ToSupplyRoll converts an offcut into supply for a future cycle,
// generating a reference if none was assigned yet.
func (o Offcut) ToSupplyRoll() SupplyRoll {
	ref := o.Ref
	if ref == "" {
		ref = uuid.New().String()[:8]
	}
	return SupplyRoll{
		Ref:      ref,
		Spec:     o.Spec,
		Width:    o.Width,
		Quantity: o.Quantity,
	}
}

// TotalOffcutWidth returns the summed width of all offcut units.
func TotalOffcutWidth(offcuts []Offcut) decimal.Decimal {
	total := decimal.Zero
	for _, o := range offcuts {
		total = total.Add(o.Width.Mul(decimal.NewFromInt(int64(o.Quantity))))
	}
	return total
}
