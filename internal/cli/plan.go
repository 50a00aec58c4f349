package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/piwi3910/rollcut/internal/engine"
	"github.com/piwi3910/rollcut/internal/export"
	"github.com/piwi3910/rollcut/internal/model"
	"github.com/piwi3910/rollcut/internal/project"
	"github.com/piwi3910/rollcut/internal/winder"
)

var (
	planOrdersFile   string
	planPendingFile  string
	planSupplyFile   string
	planTemplateName string
	planMachineName  string
	planAlgorithm    string
	planSourceWidth  decimal.Decimal
	planMaxRolls     int
	planAutoAccept   decimal.Decimal
	planBandLow      decimal.Decimal
	planBandHigh     decimal.Decimal
	planSeed         int64
	planInteractive  bool
	planUseBank      bool
	planSaveBank     bool
	planSaveTemplate string
	planExcelOut     string
	planPDFOut       string
	planLabelsOut    string
	planSetupOut     string
	planJumboWaste   float64
	planJumboPrice   float64
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Run the slitting planner over order and inventory files",
	Long: `Plan how to slit source rolls into the ordered widths.

Orders, carried pending demand, and offcut supply come from CSV or
Excel files, a saved template, or the persistent offcut bank. The
summary prints to stdout; exports are written where the flags point.

Example:
  rollcut plan --orders orders.csv --use-bank --machine "PM1 Winder 118\"" --pdf plan.pdf`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlan(cmd, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().StringVar(&planOrdersFile, "orders", "", "Order file (CSV or Excel)")
	planCmd.Flags().StringVar(&planPendingFile, "pending", "", "Carried pending demand file (CSV or Excel)")
	planCmd.Flags().StringVar(&planSupplyFile, "supply", "", "Offcut supply file (CSV or Excel)")
	planCmd.Flags().StringVar(&planTemplateName, "template", "", "Replay a saved order book template by name")
	planCmd.Flags().StringVar(&planMachineName, "machine", "", "Machine profile name from the catalog")
	planCmd.Flags().StringVar(&planAlgorithm, "algorithm", "", "Pattern search algorithm: greedy or genetic")
	planCmd.Flags().Var(newDecimalValue(&planSourceWidth), "source-width", "Source roll width in inches")
	planCmd.Flags().IntVar(&planMaxRolls, "max-rolls", 0, "Maximum rolls per source roll")
	planCmd.Flags().Var(newDecimalValue(&planAutoAccept), "auto-accept", "Auto-accept trim threshold in inches")
	planCmd.Flags().Var(newDecimalValue(&planBandLow), "band-low", "Reusable band low bound in inches (inclusive)")
	planCmd.Flags().Var(newDecimalValue(&planBandHigh), "band-high", "Reusable band high bound in inches (exclusive)")
	planCmd.Flags().Int64Var(&planSeed, "seed", 0, "Base seed for the genetic search")
	planCmd.Flags().BoolVar(&planInteractive, "interactive", false, "Confirm mid-band trims interactively")
	planCmd.Flags().BoolVar(&planUseBank, "use-bank", false, "Feed the persistent offcut bank in as supply")
	planCmd.Flags().BoolVar(&planSaveBank, "save-bank", false, "Persist the plan's remaining inventory as the offcut bank")
	planCmd.Flags().StringVar(&planSaveTemplate, "save-template", "", "Save the imported order book as a template with this name")
	planCmd.Flags().StringVar(&planExcelOut, "excel", "", "Write an Excel workbook of the plan")
	planCmd.Flags().StringVar(&planPDFOut, "pdf", "", "Write a PDF cutting diagram of the plan")
	planCmd.Flags().StringVar(&planLabelsOut, "labels", "", "Write a PDF label sheet for the cut rolls")
	planCmd.Flags().StringVar(&planSetupOut, "setup", "", "Write knife setup sheets for the executed patterns")
	planCmd.Flags().Float64Var(&planJumboWaste, "jumbo-waste", 10, "Waste factor percent for the jumbo purchase estimate")
	planCmd.Flags().Float64Var(&planJumboPrice, "jumbo-price", 0, "Price per jumbo set for the cost estimate")
}

func runPlan(cmd *cobra.Command, w io.Writer) error {
	cfg := loadConfig()
	catalog := loadCatalog()

	settings := model.DefaultSettings()
	cfg.ApplyToSettings(&settings)

	orders, pending, supply, err := gatherPlanInputs(&settings, &catalog)
	if err != nil {
		return err
	}

	machine, err := resolveMachine(&catalog, planMachineName)
	if err != nil {
		return err
	}
	if machine != nil {
		machine.ApplyToSettings(&settings)
	}
	applySettingsFlags(cmd, &settings)

	if len(orders) == 0 && len(pending) == 0 {
		return fmt.Errorf("no demand to plan: provide --orders, --pending, or --template")
	}

	if planInteractive {
		settings.TrimPolicy = model.TrimPolicyConfirm
	}

	opt, err := engine.New(settings)
	if err != nil {
		return err
	}
	if planInteractive {
		opt.Decide = promptTrimDecision
	}

	result, err := opt.Plan(orders, pending, supply)
	if err != nil {
		return err
	}
	assignIdentifiers(result)

	if err := writePlanOutputs(w, result, cfg, settings, machine); err != nil {
		return err
	}

	if planSaveBank {
		if err := saveOffcutBank(result); err != nil {
			return fmt.Errorf("failed to save offcut bank: %w", err)
		}
	}
	if planSaveTemplate != "" {
		if err := saveAsTemplate(planSaveTemplate, orders, supply, settings); err != nil {
			return fmt.Errorf("failed to save template: %w", err)
		}
	}
	return nil
}

// gatherPlanInputs assembles the three planner inputs from files, the
// saved template, and the offcut bank. Template settings form the base
// so a replayed book runs under the thresholds it was saved with.
func gatherPlanInputs(settings *model.PlanSettings, catalog *model.Catalog) (orders, pending []model.OrderLine, supply []model.SupplyRoll, err error) {
	if planTemplateName != "" {
		store, loadErr := project.LoadDefaultTemplates()
		if loadErr != nil {
			return nil, nil, nil, loadErr
		}
		tpl := store.FindByName(planTemplateName)
		if tpl == nil {
			return nil, nil, nil, fmt.Errorf("no template named %q", planTemplateName)
		}
		plan := tpl.ToPlan(tpl.Name)
		orders = plan.Orders
		supply = plan.Supply
		*settings = plan.Settings
	}

	if planOrdersFile != "" {
		fileOrders, impErr := importOrderFile(planOrdersFile, catalog)
		if impErr != nil {
			return nil, nil, nil, impErr
		}
		orders = append(orders, fileOrders...)
	}
	if planPendingFile != "" {
		carried, impErr := importOrderFile(planPendingFile, catalog)
		if impErr != nil {
			return nil, nil, nil, impErr
		}
		for i := range carried {
			carried[i].Origin = model.OriginCarriedPending
		}
		pending = append(pending, carried...)
	}
	if planSupplyFile != "" {
		fileSupply, impErr := importSupplyFile(planSupplyFile, catalog)
		if impErr != nil {
			return nil, nil, nil, impErr
		}
		supply = append(supply, fileSupply...)
	}
	if planUseBank {
		offcuts, path, bankErr := project.LoadDefaultInventory()
		if bankErr != nil {
			return nil, nil, nil, bankErr
		}
		slog.Debug("offcut bank loaded", "path", path, "rows", len(offcuts))
		supply = append(supply, project.SupplyFromInventory(offcuts)...)
	}
	return orders, pending, supply, nil
}

func resolveMachine(catalog *model.Catalog, name string) (*model.MachineProfile, error) {
	if name == "" {
		return nil, nil
	}
	machine := catalog.FindMachineByName(name)
	if machine == nil {
		return nil, fmt.Errorf("no machine named %q in the catalog (known: %s)",
			name, strings.Join(catalog.MachineNames(), ", "))
	}
	return machine, nil
}

// applySettingsFlags overrides settings with any per-run flags the user
// set. The decimal flags already parsed at flag time, so only presence
// matters here.
func applySettingsFlags(cmd *cobra.Command, settings *model.PlanSettings) {
	flags := cmd.Flags()
	if flags.Changed("algorithm") {
		settings.Algorithm = model.Algorithm(planAlgorithm)
	}
	if flags.Changed("source-width") {
		settings.SourceRollWidth = planSourceWidth
	}
	if flags.Changed("max-rolls") {
		settings.MaxRollsPerSourceRoll = planMaxRolls
	}
	if flags.Changed("auto-accept") {
		settings.AutoAcceptTrim = planAutoAccept
	}
	if flags.Changed("band-low") {
		settings.ReusableBandLow = planBandLow
	}
	if flags.Changed("band-high") {
		settings.ReusableBandHigh = planBandHigh
	}
	if flags.Changed("seed") {
		settings.GeneticSeed = planSeed
	}
}

// promptTrimDecision asks the operator about one mid-band trim. The
// engine memoizes the answer per trim and specification, so each
// distinct trim is asked about once per run.
func promptTrimDecision(trim decimal.Decimal, spec model.Specification) bool {
	accept := true
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Accept %s\" trim on %s?", trim.String(), spec.Key())).
		Description("This trim falls between the auto-accept threshold and the reusable band.").
		Affirmative("Accept").
		Negative("Reject").
		Value(&accept).
		Run()
	if err != nil {
		slog.Warn("trim prompt failed, rejecting", "trim", trim.String(), "error", err)
		return false
	}
	return accept
}

// assignIdentifiers gives output records their external identifiers.
// The planner itself never assigns any.
func assignIdentifiers(result *model.PlanResult) {
	for i := range result.CutRolls {
		result.CutRolls[i].ID = uuid.New().String()[:8]
	}
	for i := range result.Inventory {
		if result.Inventory[i].Ref == "" {
			result.Inventory[i].Ref = uuid.New().String()[:8]
		}
	}
}

func writePlanOutputs(w io.Writer, result *model.PlanResult, cfg model.AppConfig, settings model.PlanSettings, machine *model.MachineProfile) error {
	if jsonOutput {
		// The JSON shape is the planner's contract; the procurement
		// estimate and machine advisories stay out of it.
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
	} else {
		renderPlanSummary(w, result, settings)
		if result.SourceRollsNeeded > 0 {
			est := model.CalculateProcurementEstimate(result, cfg.RollsPerJumboSet, planJumboWaste, planJumboPrice)
			renderProcurement(w, est)
		}
		for _, warning := range winder.CheckKnifeSetup(result, machine) {
			fmt.Fprintln(w, styleWarning.Render(fmt.Sprintf("machine: pattern %d: %s", warning.PatternSeq, warning.Message)))
		}
	}

	if planExcelOut != "" {
		if err := export.ExportExcel(planExcelOut, result, settings); err != nil {
			return fmt.Errorf("excel export failed: %w", err)
		}
		slog.Info("excel written", "path", planExcelOut)
	}
	if planPDFOut != "" {
		if err := export.ExportPDF(planPDFOut, result, settings); err != nil {
			return fmt.Errorf("pdf export failed: %w", err)
		}
		slog.Info("pdf written", "path", planPDFOut)
	}
	if planLabelsOut != "" {
		if err := export.ExportLabels(planLabelsOut, result); err != nil {
			return fmt.Errorf("label export failed: %w", err)
		}
		slog.Info("labels written", "path", planLabelsOut)
	}
	if planSetupOut != "" {
		gen := winder.New(settings, machine)
		sheets := gen.GenerateAll(result)
		if err := os.WriteFile(planSetupOut, []byte(strings.Join(sheets, "\n")), 0644); err != nil {
			return fmt.Errorf("setup sheet export failed: %w", err)
		}
		slog.Info("setup sheets written", "path", planSetupOut, "sheets", len(sheets))
	}
	return nil
}

// saveOffcutBank persists the plan's remaining inventory. With --use-bank
// the bank was an input, so the plan output replaces it; otherwise the
// output is merged into whatever the bank already holds.
func saveOffcutBank(result *model.PlanResult) error {
	path, err := project.DefaultInventoryPath()
	if err != nil {
		return err
	}
	bank := result.Inventory
	if !planUseBank {
		existing, loadErr := project.LoadInventory(path)
		if loadErr != nil {
			return loadErr
		}
		bank = project.MergeOffcuts(existing, result.Inventory)
	}
	if err := project.SaveInventory(path, bank); err != nil {
		return err
	}
	slog.Info("offcut bank saved", "path", path, "rows", len(bank))
	return nil
}

func saveAsTemplate(name string, orders []model.OrderLine, supply []model.SupplyRoll, settings model.PlanSettings) error {
	store, err := project.LoadDefaultTemplates()
	if err != nil {
		return err
	}
	if store.FindByName(name) != nil {
		return fmt.Errorf("a template named %q already exists", name)
	}
	store.Add(model.NewOrderTemplate(name, "", orders, supply, settings))
	if err := project.SaveDefaultTemplates(store); err != nil {
		return err
	}
	slog.Info("template saved", "name", name, "orders", len(orders), "supply", len(supply))
	return nil
}
