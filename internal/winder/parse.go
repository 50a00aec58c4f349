package winder

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParsedSetup is the machine-relevant content of a setup sheet: the
// deckle width, the knife offsets in engagement order, and the trim
// line if one was written.
type ParsedSetup struct {
	Deckle      decimal.Decimal
	Knives      []decimal.Decimal
	Trim        decimal.Decimal
	Disposition string
}

// ParseSetup parses a setup sheet back into its numeric content. Both
// built-in dialects are understood; comment lines and unrecognized
// commands are skipped, so a sheet survives a round trip through any
// console that preserves the command lines.
func ParseSetup(sheet string) ParsedSetup {
	var parsed ParsedSetup

	for _, line := range strings.Split(sheet, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "DECKLE":
			if len(fields) >= 2 {
				if v, err := decimal.NewFromString(fields[1]); err == nil {
					parsed.Deckle = v
				}
			}
			continue
		case "KNIFE":
			// KNIFE <n> POS <offset>
			if len(fields) >= 4 {
				if v, err := decimal.NewFromString(fields[3]); err == nil {
					parsed.Knives = append(parsed.Knives, v)
				}
			}
			continue
		case "TRIM":
			// TRIM <width> <disposition>
			if len(fields) >= 2 {
				if v, err := decimal.NewFromString(fields[1]); err == nil {
					parsed.Trim = v
				}
			}
			if len(fields) >= 3 {
				parsed.Disposition = fields[2]
			}
			continue
		}

		// Compact tokens: D=<deckle> K<n>=<offset> T=<trim> <disposition>
		for i, f := range fields {
			key, val, ok := strings.Cut(f, "=")
			if !ok {
				continue
			}
			v, err := decimal.NewFromString(val)
			if err != nil {
				continue
			}
			switch {
			case key == "D":
				parsed.Deckle = v
			case key == "T":
				parsed.Trim = v
				if i+1 < len(fields) && !strings.Contains(fields[i+1], "=") {
					parsed.Disposition = fields[i+1]
				}
			case strings.HasPrefix(key, "K"):
				parsed.Knives = append(parsed.Knives, v)
			}
		}
	}

	return parsed
}
