package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/rollcut/internal/engine"
	"github.com/piwi3910/rollcut/internal/model"
	"github.com/piwi3910/rollcut/internal/project"
)

var (
	compareOrdersFile  string
	comparePendingFile string
	compareSupplyFile  string
	compareMachineName string
	compareUseBank     bool
	compareSeed        int64
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Plan the same inputs under what-if scenarios",
	Long: `Plan the same order book under the current settings and a set of
what-if variants (the other algorithm, a tighter auto-accept
threshold) and print the results side by side. Every scenario
auto-accepts mid-band trims so the comparison is interaction-free.

Example:
  rollcut compare --orders orders.csv --supply offcuts.csv --seed 7`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompare(cmd, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().StringVar(&compareOrdersFile, "orders", "", "Order file (CSV or Excel)")
	compareCmd.Flags().StringVar(&comparePendingFile, "pending", "", "Carried pending demand file (CSV or Excel)")
	compareCmd.Flags().StringVar(&compareSupplyFile, "supply", "", "Offcut supply file (CSV or Excel)")
	compareCmd.Flags().StringVar(&compareMachineName, "machine", "", "Machine profile name from the catalog")
	compareCmd.Flags().BoolVar(&compareUseBank, "use-bank", false, "Feed the persistent offcut bank in as supply")
	compareCmd.Flags().Int64Var(&compareSeed, "seed", 0, "Base seed for the genetic search")
}

// compareRow is the serializable slice of one scenario's outcome.
type compareRow struct {
	Scenario     string  `json:"scenario"`
	SourceRolls  int     `json:"source_rolls"`
	CutRolls     int     `json:"cut_rolls"`
	PendingQty   int     `json:"pending_quantity"`
	WastePercent float64 `json:"waste_percent"`
}

func runCompare(cmd *cobra.Command, w io.Writer) error {
	cfg := loadConfig()
	catalog := loadCatalog()

	settings := model.DefaultSettings()
	cfg.ApplyToSettings(&settings)
	machine, err := resolveMachine(&catalog, compareMachineName)
	if err != nil {
		return err
	}
	if machine != nil {
		machine.ApplyToSettings(&settings)
	}
	if cmd.Flags().Changed("seed") {
		settings.GeneticSeed = compareSeed
	}
	// The comparison never prompts; mid-band trims are accepted everywhere.
	settings.TrimPolicy = model.TrimPolicyAutoAccept

	orders, pending, supply, err := gatherCompareInputs(&catalog)
	if err != nil {
		return err
	}
	if len(orders) == 0 && len(pending) == 0 {
		return fmt.Errorf("no demand to plan: provide --orders or --pending")
	}

	scenarios := engine.BuildDefaultScenarios(settings)
	results, err := engine.CompareScenarios(scenarios, orders, pending, supply, nil)
	if err != nil {
		return err
	}

	rows := make([]compareRow, len(results))
	for i, r := range results {
		rows[i] = compareRow{
			Scenario:     r.Scenario.Name,
			SourceRolls:  r.SourceRollsNeeded,
			CutRolls:     r.TotalCutRolls,
			PendingQty:   r.PendingCount,
			WastePercent: r.WastePercent,
		}
	}

	if jsonOutput {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
		return nil
	}
	renderComparison(w, rows)
	return nil
}

func gatherCompareInputs(catalog *model.Catalog) (orders, pending []model.OrderLine, supply []model.SupplyRoll, err error) {
	if compareOrdersFile != "" {
		orders, err = importOrderFile(compareOrdersFile, catalog)
		if err != nil {
			return nil, nil, nil, err
		}
	}
	if comparePendingFile != "" {
		pending, err = importOrderFile(comparePendingFile, catalog)
		if err != nil {
			return nil, nil, nil, err
		}
		for i := range pending {
			pending[i].Origin = model.OriginCarriedPending
		}
	}
	if compareSupplyFile != "" {
		supply, err = importSupplyFile(compareSupplyFile, catalog)
		if err != nil {
			return nil, nil, nil, err
		}
	}
	if compareUseBank {
		offcuts, _, bankErr := project.LoadDefaultInventory()
		if bankErr != nil {
			return nil, nil, nil, bankErr
		}
		supply = append(supply, project.SupplyFromInventory(offcuts)...)
	}
	return orders, pending, supply, nil
}

func renderComparison(w io.Writer, rows []compareRow) {
	fmt.Fprintln(w, styleTitle.Render("Scenario comparison"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-28s %12s %10s %10s %8s\n", "SCENARIO", "SOURCE ROLLS", "CUT ROLLS", "PENDING", "WASTE")
	for _, r := range rows {
		fmt.Fprintf(w, "  %-28s %12d %10d %10d %7.1f%%\n",
			r.Scenario, r.SourceRolls, r.CutRolls, r.PendingQty, r.WastePercent)
	}
	fmt.Fprintln(w)

	best := rows[0]
	for _, r := range rows[1:] {
		if r.SourceRolls < best.SourceRolls ||
			(r.SourceRolls == best.SourceRolls && r.WastePercent < best.WastePercent) {
			best = r
		}
	}
	fmt.Fprintln(w, styleOK.Render(fmt.Sprintf("Fewest source rolls: %s (%d rolls, %.1f%% waste)",
		best.Scenario, best.SourceRolls, best.WastePercent)))
}
