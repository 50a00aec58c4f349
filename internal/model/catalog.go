package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MachineProfile represents a reusable slitter-winder configuration.
type MachineProfile struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	SourceRollWidth       decimal.Decimal `json:"source_roll_width"` // inches (deckle width)
	MaxRollsPerSourceRoll int             `json:"max_rolls_per_source_roll"`
	MinSlitWidth          decimal.Decimal `json:"min_slit_width"` // inches, narrowest cut the knives allow
	SetupDialect          string          `json:"setup_dialect"`  // Setup sheet dialect name
}

// NewMachineProfile creates a new MachineProfile with a generated ID.
func NewMachineProfile(name string, sourceWidth decimal.Decimal, maxRolls int, minSlit decimal.Decimal, dialect string) MachineProfile {
	return MachineProfile{
		ID:                    uuid.New().String()[:8],
		Name:                  name,
		SourceRollWidth:       sourceWidth,
		MaxRollsPerSourceRoll: maxRolls,
		MinSlitWidth:          minSlit,
		SetupDialect:          dialect,
	}
}

// ApplyToSettings copies this machine's parameters into the given PlanSettings.
func (mp MachineProfile) ApplyToSettings(s *PlanSettings) {
	s.SourceRollWidth = mp.SourceRollWidth
	s.MaxRollsPerSourceRoll = mp.MaxRollsPerSourceRoll
}

// GradePreset represents a named paper grade resolving to a specification.
type GradePreset struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	GSM       int             `json:"gsm"`
	BF        decimal.Decimal `json:"bf"`
	Shade     string          `json:"shade"`
	Thickness decimal.Decimal `json:"thickness"`  // mm, zero when not specified
	PaperType string          `json:"paper_type"` // empty when not specified
}

// NewGradePreset creates a new GradePreset with a generated ID.
func NewGradePreset(name string, gsm int, bf decimal.Decimal, shade string) GradePreset {
	return GradePreset{
		ID:    uuid.New().String()[:8],
		Name:  name,
		GSM:   gsm,
		BF:    bf,
		Shade: shade,
	}
}

// ToSpecification converts a grade preset into a Specification.
func (gp GradePreset) ToSpecification() Specification {
	return Specification{
		GSM:       gp.GSM,
		BF:        gp.BF,
		Shade:     gp.Shade,
		Thickness: gp.Thickness,
		PaperType: gp.PaperType,
	}
}

// Catalog holds the user's saved machine profiles and grade presets.
type Catalog struct {
	Machines []MachineProfile `json:"machines"`
	Grades   []GradePreset    `json:"grades"`
}

// DefaultCatalog returns a catalog populated with common defaults.
func DefaultCatalog() Catalog {
	return Catalog{
		Machines: []MachineProfile{
			NewMachineProfile("PM1 Winder 118\"", decimal.NewFromInt(118), 5, decimal.NewFromInt(12), "Standard"),
			NewMachineProfile("PM2 Winder 124\"", decimal.NewFromInt(124), 5, decimal.NewFromInt(12), "Standard"),
			NewMachineProfile("Rewinder 98\"", decimal.NewFromInt(98), 4, decimal.NewFromInt(10), "Compact"),
		},
		Grades: []GradePreset{
			NewGradePreset("Kraft 120 Golden", 120, decimal.NewFromInt(18), "golden"),
			NewGradePreset("Kraft 150 Golden", 150, decimal.NewFromInt(18), "golden"),
			NewGradePreset("Kraft 180 Natural", 180, decimal.NewFromInt(16), "natural"),
			NewGradePreset("Test Liner 140", 140, decimal.NewFromInt(14), "brown"),
			NewGradePreset("White Top 160", 160, decimal.NewFromInt(20), "white"),
		},
	}
}

// FindMachineByID returns a pointer to the machine with the given ID, or nil.
func (c *Catalog) FindMachineByID(id string) *MachineProfile {
	for i := range c.Machines {
		if c.Machines[i].ID == id {
			return &c.Machines[i]
		}
	}
	return nil
}

// FindGradeByID returns a pointer to the grade preset with the given ID, or nil.
func (c *Catalog) FindGradeByID(id string) *GradePreset {
	for i := range c.Grades {
		if c.Grades[i].ID == id {
			return &c.Grades[i]
		}
	}
	return nil
}

// MachineNames returns a list of machine profile names for selection lists.
func (c *Catalog) MachineNames() []string {
	names := make([]string, len(c.Machines))
	for i, m := range c.Machines {
		names[i] = m.Name
	}
	return names
}

// GradeNames returns a list of grade preset names for selection lists.
func (c *Catalog) GradeNames() []string {
	names := make([]string, len(c.Grades))
	for i, g := range c.Grades {
		names[i] = g.Name
	}
	return names
}

// FindMachineByName returns a pointer to the first machine with the given name, or nil.
func (c *Catalog) FindMachineByName(name string) *MachineProfile {
	for i := range c.Machines {
		if c.Machines[i].Name == name {
			return &c.Machines[i]
		}
	}
	return nil
}

// FindGradeByName returns a pointer to the first grade preset with the given name, or nil.
func (c *Catalog) FindGradeByName(name string) *GradePreset {
	for i := range c.Grades {
		if c.Grades[i].Name == name {
			return &c.Grades[i]
		}
	}
	return nil
}
