package model

import (
	"testing"
)

func TestNewOrderTemplate(t *testing.T) {
	spec := NewSpecification(240, dec("18"), "white")
	orders := []OrderLine{
		NewOrderLine(spec, dec("40"), 3),
		NewOrderLine(spec, dec("38"), 1),
	}
	supply := []SupplyRoll{
		NewSupplyRoll(spec, dec("22"), 1),
	}
	settings := DefaultSettings()

	tmpl := NewOrderTemplate("Weekly kraft", "Standing weekly order book", orders, supply, settings)

	if tmpl.Name != "Weekly kraft" {
		t.Errorf("expected name 'Weekly kraft', got %q", tmpl.Name)
	}
	if tmpl.Description != "Standing weekly order book" {
		t.Errorf("expected description 'Standing weekly order book', got %q", tmpl.Description)
	}
	if tmpl.ID == "" {
		t.Error("expected non-empty ID")
	}
	if tmpl.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if len(tmpl.Orders) != 2 {
		t.Errorf("expected 2 orders, got %d", len(tmpl.Orders))
	}
	if len(tmpl.Supply) != 1 {
		t.Errorf("expected 1 supply roll, got %d", len(tmpl.Supply))
	}
}

func TestOrderTemplate_ToPlan(t *testing.T) {
	spec := NewSpecification(240, dec("18"), "white")
	orders := []OrderLine{
		NewOrderLine(spec, dec("40"), 3),
	}
	supply := []SupplyRoll{
		NewSupplyRoll(spec, dec("22"), 1),
	}
	settings := DefaultSettings()
	settings.MaxRollsPerSourceRoll = 4

	tmpl := NewOrderTemplate("Test", "desc", orders, supply, settings)
	plan := tmpl.ToPlan("My Plan")

	if plan.Name != "My Plan" {
		t.Errorf("expected plan name 'My Plan', got %q", plan.Name)
	}
	if len(plan.Orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(plan.Orders))
	}
	if !plan.Orders[0].Width.Equal(dec("40")) {
		t.Errorf("expected width 40, got %s", plan.Orders[0].Width)
	}
	// Orders should get fresh references
	if plan.Orders[0].Ref == tmpl.Orders[0].Ref {
		t.Error("plan orders should have fresh references, not template references")
	}
	if plan.Supply[0].Ref == tmpl.Supply[0].Ref {
		t.Error("plan supply should have fresh references, not template references")
	}
	if plan.Settings.MaxRollsPerSourceRoll != 4 {
		t.Errorf("expected max rolls 4, got %d", plan.Settings.MaxRollsPerSourceRoll)
	}
	if plan.Result != nil {
		t.Error("plan from template should have no result")
	}
}

func TestTemplateStore_AddRemoveFind(t *testing.T) {
	store := NewTemplateStore()

	tmpl1 := NewOrderTemplate("T1", "", nil, nil, DefaultSettings())
	tmpl2 := NewOrderTemplate("T2", "", nil, nil, DefaultSettings())

	store.Add(tmpl1)
	store.Add(tmpl2)

	if len(store.Templates) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(store.Templates))
	}

	// FindByID
	found := store.FindByID(tmpl1.ID)
	if found == nil {
		t.Fatal("FindByID returned nil for existing template")
	}
	if found.Name != "T1" {
		t.Errorf("expected 'T1', got %q", found.Name)
	}

	// FindByName
	found = store.FindByName("T2")
	if found == nil {
		t.Fatal("FindByName returned nil for existing template")
	}

	// Names
	names := store.Names()
	if len(names) != 2 {
		t.Errorf("expected 2 names, got %d", len(names))
	}

	// Remove
	ok := store.Remove(tmpl1.ID)
	if !ok {
		t.Error("Remove should return true for existing template")
	}
	if len(store.Templates) != 1 {
		t.Errorf("expected 1 template after remove, got %d", len(store.Templates))
	}

	// Remove non-existent
	ok = store.Remove("nonexistent")
	if ok {
		t.Error("Remove should return false for non-existent ID")
	}
}

func TestTemplateStore_Empty(t *testing.T) {
	store := NewTemplateStore()

	if len(store.Templates) != 0 {
		t.Errorf("new store should be empty, got %d templates", len(store.Templates))
	}
	if store.FindByID("x") != nil {
		t.Error("FindByID should return nil in empty store")
	}
	if store.FindByName("x") != nil {
		t.Error("FindByName should return nil in empty store")
	}
	if len(store.Names()) != 0 {
		t.Error("Names should return empty slice for empty store")
	}
}

func TestNewOrderTemplate_NilSlices(t *testing.T) {
	tmpl := NewOrderTemplate("Empty", "", nil, nil, DefaultSettings())

	if tmpl.Orders == nil {
		t.Error("Orders should not be nil (should be empty slice)")
	}
	if tmpl.Supply == nil {
		t.Error("Supply should not be nil (should be empty slice)")
	}
}
