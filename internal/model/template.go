package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderTemplate represents a reusable order book that captures order lines,
// starting supply, and settings but not planning results.
type OrderTemplate struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	CreatedAt   string       `json:"created_at"`
	UpdatedAt   string       `json:"updated_at"`
	Orders      []OrderLine  `json:"orders"`
	Supply      []SupplyRoll `json:"supply"`
	Settings    PlanSettings `json:"settings"`
}

// NewOrderTemplate creates a new template from the given plan data.
// It copies orders, supply, and settings but intentionally excludes results.
func NewOrderTemplate(name, description string, orders []OrderLine, supply []SupplyRoll, settings PlanSettings) OrderTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return OrderTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Orders:      copyOrders(orders),
		Supply:      copySupply(supply),
		Settings:    settings,
	}
}

// ToPlan creates a new Plan from this template.
// Orders and supply rolls get fresh references so they are independent of
// the template.
func (t OrderTemplate) ToPlan(planName string) Plan {
	orders := make([]OrderLine, len(t.Orders))
	for i, o := range t.Orders {
		orders[i] = NewOrderLine(o.Spec, o.Width, o.Quantity)
	}

	supply := make([]SupplyRoll, len(t.Supply))
	for i, s := range t.Supply {
		supply[i] = NewSupplyRoll(s.Spec, s.Width, s.Quantity)
	}

	return Plan{
		Name:     planName,
		Orders:   orders,
		Supply:   supply,
		Settings: t.Settings,
	}
}

// TemplateStore holds a collection of order templates.
type TemplateStore struct {
	Templates []OrderTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []OrderTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t OrderTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *OrderTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns a list of template names for selection lists.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *OrderTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

// copyOrders creates a deep copy of an order slice.
func copyOrders(orders []OrderLine) []OrderLine {
	if orders == nil {
		return []OrderLine{}
	}
	cp := make([]OrderLine, len(orders))
	copy(cp, orders)
	return cp
}

// copySupply creates a deep copy of a supply slice.
func copySupply(supply []SupplyRoll) []SupplyRoll {
	if supply == nil {
		return []SupplyRoll{}
	}
	cp := make([]SupplyRoll, len(supply))
	copy(cp, supply)
	return cp
}
