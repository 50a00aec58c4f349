package model

import (
	"testing"
)

func TestClassifyTrimBands(t *testing.T) {
	s := DefaultSettings() // auto-accept 6, reusable band [20, 25)

	tests := []struct {
		name string
		trim string
		want TrimClass
	}{
		{"zero trim", "0", TrimDiscard},
		{"small trim", "4.5", TrimDiscard},
		{"at auto-accept bound", "6", TrimDiscard},
		{"just above auto-accept", "6.25", TrimConfirm},
		{"mid confirm band", "12", TrimConfirm},
		{"just below reusable band", "19.75", TrimConfirm},
		{"at reusable low bound", "20", TrimReusable},
		{"mid reusable band", "23", TrimReusable},
		{"just below reusable high", "24.75", TrimReusable},
		{"at reusable high bound", "25", TrimExcessive},
		{"far above band", "38", TrimExcessive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyTrim(dec(tt.trim), s); got != tt.want {
				t.Errorf("ClassifyTrim(%s) = %q, want %q", tt.trim, got, tt.want)
			}
		})
	}
}

func TestInReusableBand(t *testing.T) {
	s := DefaultSettings()

	if !s.InReusableBand(dec("20")) {
		t.Error("low bound is inclusive, 20 should be in band")
	}
	if !s.InReusableBand(dec("24.99")) {
		t.Error("24.99 should be in band")
	}
	if s.InReusableBand(dec("25")) {
		t.Error("high bound is exclusive, 25 should not be in band")
	}
	if s.InReusableBand(dec("19.99")) {
		t.Error("19.99 should not be in band")
	}
}

func TestOffcutToSupplyRollKeepsRef(t *testing.T) {
	o := Offcut{
		Ref:      "s1",
		Spec:     NewSpecification(240, dec("18"), "white"),
		Width:    dec("22"),
		Quantity: 2,
	}
	roll := o.ToSupplyRoll()
	if roll.Ref != "s1" {
		t.Errorf("expected carried ref s1, got %q", roll.Ref)
	}
	if !roll.Width.Equal(dec("22")) || roll.Quantity != 2 {
		t.Errorf("expected 22 x2, got %s x%d", roll.Width, roll.Quantity)
	}
}

func TestOffcutToSupplyRollGeneratesRef(t *testing.T) {
	o := Offcut{
		Spec:     NewSpecification(240, dec("18"), "white"),
		Width:    dec("23"),
		Quantity: 1,
	}
	roll := o.ToSupplyRoll()
	if len(roll.Ref) != 8 {
		t.Errorf("expected generated 8-char ref, got %q", roll.Ref)
	}
}

func TestTotalOffcutWidth(t *testing.T) {
	offcuts := []Offcut{
		{Width: dec("22"), Quantity: 2},
		{Width: dec("20.5"), Quantity: 1},
	}
	total := TotalOffcutWidth(offcuts)
	if !total.Equal(dec("64.5")) {
		t.Errorf("expected total width 64.5, got %s", total)
	}
}
