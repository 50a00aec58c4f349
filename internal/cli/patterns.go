package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/piwi3910/rollcut/internal/engine"
	"github.com/piwi3910/rollcut/internal/model"
)

var (
	patternsWidths      string
	patternsGSM         int
	patternsBF          string
	patternsShade       string
	patternsSourceWidth decimal.Decimal
	patternsMaxRolls    int
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Enumerate the cutting patterns for a set of widths",
	Long: `List every feasible cutting pattern for the given roll widths,
ranked the way the planner ranks them: most rolls first, then smallest
trim, then wider rolls first. Patterns whose trim is too wide to waste
are shown but flagged as excessive.

Example:
  rollcut patterns --widths 40,38,30 --gsm 240 --bf 18 --shade white`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPatterns(cmd, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(patternsCmd)
	patternsCmd.Flags().StringVar(&patternsWidths, "widths", "", "Comma-separated roll widths in inches (required)")
	patternsCmd.Flags().IntVar(&patternsGSM, "gsm", 0, "Grammage of the paper grade (required)")
	patternsCmd.Flags().StringVar(&patternsBF, "bf", "", "Brightness factor of the paper grade (required)")
	patternsCmd.Flags().StringVar(&patternsShade, "shade", "", "Shade of the paper grade (required)")
	patternsCmd.Flags().Var(newDecimalValue(&patternsSourceWidth), "source-width", "Source roll width in inches")
	patternsCmd.Flags().IntVar(&patternsMaxRolls, "max-rolls", 0, "Maximum rolls per source roll")
	_ = patternsCmd.MarkFlagRequired("widths")
	_ = patternsCmd.MarkFlagRequired("gsm")
	_ = patternsCmd.MarkFlagRequired("bf")
	_ = patternsCmd.MarkFlagRequired("shade")
}

func runPatterns(cmd *cobra.Command, w io.Writer) error {
	cfg := loadConfig()
	settings := model.DefaultSettings()
	cfg.ApplyToSettings(&settings)

	flags := cmd.Flags()
	if flags.Changed("source-width") {
		settings.SourceRollWidth = patternsSourceWidth
	}
	if flags.Changed("max-rolls") {
		settings.MaxRollsPerSourceRoll = patternsMaxRolls
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	bf, err := decimal.NewFromString(patternsBF)
	if err != nil {
		return fmt.Errorf("invalid --bf: %w", err)
	}
	spec := model.NewSpecification(patternsGSM, bf, patternsShade)

	widths, err := parseWidthList(patternsWidths)
	if err != nil {
		return err
	}

	patterns := engine.GeneratePatterns(spec, widths, settings)

	if jsonOutput {
		data, err := json.MarshalIndent(patterns, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	fmt.Fprintln(w, styleTitle.Render(fmt.Sprintf("Patterns for %s @ %s\"", spec.Key(), settings.SourceRollWidth.String())))
	fmt.Fprintln(w)
	if len(patterns) == 0 {
		fmt.Fprintln(w, "No feasible patterns: every width exceeds the source roll.")
		return nil
	}
	fmt.Fprintf(w, "  %3s  %-28s %5s  %8s  %8s  %-9s\n", "#", "WIDTHS", "ROLLS", "USED", "TRIM", "CLASS")
	for i, p := range patterns {
		class := model.ClassifyTrim(p.Trim, settings)
		fmt.Fprintf(w, "  %3d  %-28s %5d  %7s\"  %7s\"  %s\n",
			i+1, p.Key(), p.RollCount(), p.UsedWidth().String(), p.Trim.String(), classLabel(class))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d pattern(s); the planner executes only those below the reusable band's upper bound.\n", len(patterns))
	return nil
}

// parseWidthList splits a comma-separated width list, tolerating spaces.
func parseWidthList(s string) ([]decimal.Decimal, error) {
	parts := strings.Split(s, ",")
	widths := make([]decimal.Decimal, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := decimal.NewFromString(part)
		if err != nil {
			return nil, fmt.Errorf("invalid width %q: %w", part, err)
		}
		widths = append(widths, v)
	}
	if len(widths) == 0 {
		return nil, fmt.Errorf("no widths given")
	}
	return widths, nil
}
