// Package winder generates knife setup sheets for slitter-winder
// operators from executed cutting patterns. Each sheet lists the knife
// positions as cumulative offsets from the operator-side edge of the
// web, together with the trim disposition, formatted in the dialect the
// target machine expects.
package winder

// Dialect describes the text format a machine's setup console accepts.
type Dialect struct {
	Name        string `json:"name"`        // Dialect name
	Description string `json:"description"` // Dialect description
	Units       string `json:"units"`       // "inches" or "mm"

	// Setup commands
	StartCode     []string `json:"start_code"`     // Lines at start of sheet
	DeckleCommand string   `json:"deckle_command"` // Deckle width line (e.g. "DECKLE %s")
	KnifeCommand  string   `json:"knife_command"`  // Per-knife line (e.g. "KNIFE %d POS %s")
	TrimCommand   string   `json:"trim_command"`   // Trim line: width, disposition
	EndCode       []string `json:"end_code"`       // Lines at end of sheet

	// Layout
	InlineKnives bool `json:"inline_knives"` // All knife positions on a single line

	// Comment style
	CommentPrefix string `json:"comment_prefix"` // Comment start (e.g. "#")
	CommentSuffix string `json:"comment_suffix"` // Comment end (if needed)

	// Number formatting
	DecimalPlaces int32 `json:"decimal_places"` // Decimal places for positions
}

// Built-in setup sheet dialects
var Dialects = []Dialect{
	{
		Name:          "Compact",
		Description:   "Single-line format for consoles with narrow displays",
		Units:         "inches",
		StartCode:     nil,
		DeckleCommand: "D=%s",
		KnifeCommand:  "K%d=%s",
		TrimCommand:   "T=%s %s",
		EndCode:       nil,
		InlineKnives:  true,
		CommentPrefix: ";",
		CommentSuffix: "",
		DecimalPlaces: 1,
	},
	{
		Name:          "Standard",
		Description:   "One command per line, readable by most winder consoles",
		Units:         "inches",
		StartCode:     []string{"MODE SETUP"},
		DeckleCommand: "DECKLE %s",
		KnifeCommand:  "KNIFE %d POS %s",
		TrimCommand:   "TRIM %s %s",
		EndCode:       []string{"END"},
		InlineKnives:  false,
		CommentPrefix: "#",
		CommentSuffix: "",
		DecimalPlaces: 2,
	},
}

// GetDialect returns the dialect with the given name, or Standard if no
// dialect matches.
func GetDialect(name string) Dialect {
	for _, d := range Dialects {
		if d.Name == name {
			return d
		}
	}
	return Dialects[len(Dialects)-1] // Return Standard (last one)
}

// GetDialectNames returns a list of all available dialect names.
func GetDialectNames() []string {
	var names []string
	for _, d := range Dialects {
		names = append(names, d.Name)
	}
	return names
}
