package winder

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/piwi3910/rollcut/internal/model"
)

// Trim disposition directives written on the trim line.
const (
	DispositionDiscard = "DISCARD" // Trim is chopped and pulped
	DispositionRewind  = "REWIND"  // Trim is wound as a reusable offcut
)

// Generator produces knife setup sheets from executed patterns.
type Generator struct {
	Settings model.PlanSettings
	Machine  *model.MachineProfile
	dialect  Dialect
}

// New creates a setup sheet generator. The dialect is resolved from the
// machine profile; a nil machine falls back to the Standard dialect and
// skips the advisory checks.
func New(settings model.PlanSettings, machine *model.MachineProfile) *Generator {
	name := ""
	if machine != nil {
		name = machine.SetupDialect
	}
	return &Generator{
		Settings: settings,
		Machine:  machine,
		dialect:  GetDialect(name),
	}
}

// Dialect returns the dialect the generator writes.
func (g *Generator) Dialect() Dialect {
	return g.dialect
}

// GenerateSheet produces the setup sheet for a single executed pattern.
func (g *Generator) GenerateSheet(pr model.PatternResult) string {
	var b strings.Builder

	g.writeHeader(&b, pr)
	g.writeKnives(&b, pr.Pattern)
	g.writeTrim(&b, pr)
	g.writeFooter(&b)

	return b.String()
}

// GenerateAll produces one setup sheet per executed pattern, in plan order.
func (g *Generator) GenerateAll(result *model.PlanResult) []string {
	if result == nil {
		return nil
	}
	var sheets []string
	for _, pr := range result.Patterns {
		sheets = append(sheets, g.GenerateSheet(pr))
	}
	return sheets
}

// KnifePositions returns the knife offsets for a pattern, measured from
// the operator-side edge of the web. One knife sits at each boundary
// between adjacent rolls. The boundary after the last roll needs a
// knife only when there is trim to cut away; on a full-width pattern
// the web edge closes the last roll.
func KnifePositions(p model.Pattern) []decimal.Decimal {
	var positions []decimal.Decimal
	offset := decimal.Zero
	for i, w := range p.Widths {
		offset = offset.Add(w)
		if i == len(p.Widths)-1 && p.Trim.Sign() == 0 {
			break
		}
		positions = append(positions, offset)
	}
	return positions
}

func (g *Generator) writeHeader(b *strings.Builder, pr model.PatternResult) {
	p := pr.Pattern
	deckle := p.UsedWidth().Add(p.Trim)

	b.WriteString(g.comment(fmt.Sprintf("Knife setup - pattern %d", pr.Seq)) + "\n")
	b.WriteString(g.comment(fmt.Sprintf("Grade: %s", p.Spec.Key())) + "\n")
	b.WriteString(g.comment(fmt.Sprintf("Rolls: %d (%s)", p.RollCount(), p.Key())) + "\n")
	b.WriteString(g.comment(fmt.Sprintf("Utilization: %.1f%%", pr.Utilization())) + "\n")
	if g.Machine != nil {
		b.WriteString(g.comment(fmt.Sprintf("Machine: %s", g.Machine.Name)) + "\n")
	}

	for _, w := range CheckPattern(pr, g.Machine) {
		b.WriteString(g.comment("WARNING: "+w.Message) + "\n")
	}

	for _, line := range g.dialect.StartCode {
		b.WriteString(line + "\n")
	}

	b.WriteString(fmt.Sprintf(g.dialect.DeckleCommand, g.format(deckle)) + "\n")
}

func (g *Generator) writeKnives(b *strings.Builder, p model.Pattern) {
	positions := KnifePositions(p)
	if len(positions) == 0 {
		b.WriteString(g.comment("single full-width roll, no knives engaged") + "\n")
		return
	}

	if g.dialect.InlineKnives {
		parts := make([]string, len(positions))
		for i, pos := range positions {
			parts[i] = fmt.Sprintf(g.dialect.KnifeCommand, i+1, g.format(pos))
		}
		b.WriteString(strings.Join(parts, " ") + "\n")
		return
	}

	for i, pos := range positions {
		b.WriteString(fmt.Sprintf(g.dialect.KnifeCommand, i+1, g.format(pos)) + "\n")
	}
}

func (g *Generator) writeTrim(b *strings.Builder, pr model.PatternResult) {
	trim := pr.Pattern.Trim
	if trim.Sign() == 0 {
		b.WriteString(g.comment("full-width pattern, no trim") + "\n")
		return
	}

	disposition := DispositionDiscard
	if pr.Class == model.TrimReusable {
		disposition = DispositionRewind
	}
	b.WriteString(fmt.Sprintf(g.dialect.TrimCommand, g.format(trim), disposition) + "\n")
}

func (g *Generator) writeFooter(b *strings.Builder) {
	for _, line := range g.dialect.EndCode {
		b.WriteString(line + "\n")
	}
}

// comment wraps text in the dialect's comment markers.
func (g *Generator) comment(text string) string {
	return g.dialect.CommentPrefix + " " + text + g.dialect.CommentSuffix
}

// format renders a position with the dialect's decimal places.
func (g *Generator) format(v decimal.Decimal) string {
	return v.StringFixed(g.dialect.DecimalPlaces)
}
