package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/piwi3910/rollcut/internal/model"
	"github.com/piwi3910/rollcut/internal/project"
)

var inventoryForce bool

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Manage the persistent offcut bank",
	Long: `The offcut bank holds reusable trim recovered from earlier plans.
Rolls in the bank feed back into planning via "rollcut plan --use-bank".`,
}

var inventoryShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List the offcuts in the bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInventoryShow(os.Stdout)
	},
}

var inventoryImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge offcuts from a JSON, CSV, or Excel file into the bank",
	Long: `Merge offcuts into the bank. JSON files are read as exported banks;
CSV and Excel files are read as supply files. Rows whose reference is
already in the bank are skipped, the bank's copy wins.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInventoryImport(os.Stdout, args[0])
	},
}

var inventoryExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the bank to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInventoryExport(os.Stdout, args[0])
	},
}

var inventoryClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the offcut bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInventoryClear(os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(inventoryCmd)
	inventoryCmd.AddCommand(inventoryShowCmd)
	inventoryCmd.AddCommand(inventoryImportCmd)
	inventoryCmd.AddCommand(inventoryExportCmd)
	inventoryCmd.AddCommand(inventoryClearCmd)
	inventoryClearCmd.Flags().BoolVar(&inventoryForce, "force", false, "Clear without confirmation")
}

func runInventoryShow(w io.Writer) error {
	offcuts, path, err := project.LoadDefaultInventory()
	if err != nil {
		return err
	}
	if jsonOutput {
		data, err := json.MarshalIndent(offcuts, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	fmt.Fprintln(w, styleTitle.Render("Offcut bank"))
	fmt.Fprintln(w)
	if len(offcuts) == 0 {
		fmt.Fprintln(w, "The bank is empty.")
		return nil
	}
	fmt.Fprintf(w, "  %-12s %-18s %8s  %4s\n", "REF", "GRADE", "WIDTH", "QTY")
	units := 0
	for _, o := range offcuts {
		fmt.Fprintf(w, "  %-12s %-18s %7s\"  %4d\n", o.Ref, o.Spec.Key(), o.Width.String(), o.Quantity)
		units += o.Quantity
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d line(s), %d roll(s), %s\" of paper (%s)\n",
		len(offcuts), units, model.TotalOffcutWidth(offcuts).String(), path)
	return nil
}

func runInventoryImport(w io.Writer, file string) error {
	path, err := project.DefaultInventoryPath()
	if err != nil {
		return err
	}
	existing, err := project.LoadInventory(path)
	if err != nil {
		return err
	}

	var merged []model.Offcut
	if strings.EqualFold(filepath.Ext(file), ".json") {
		merged, err = project.ImportInventory(file, existing)
		if err != nil {
			return err
		}
	} else {
		catalog := loadCatalog()
		supply, impErr := importSupplyFile(file, &catalog)
		if impErr != nil {
			return impErr
		}
		imported := make([]model.Offcut, len(supply))
		for i, s := range supply {
			imported[i] = model.Offcut{Ref: s.Ref, Spec: s.Spec, Width: s.Width, Quantity: s.Quantity}
		}
		merged = project.MergeOffcuts(existing, imported)
	}

	if err := project.SaveInventory(path, merged); err != nil {
		return err
	}
	fmt.Fprintf(w, "Bank now holds %d line(s) (%d added).\n", len(merged), len(merged)-len(existing))
	return nil
}

func runInventoryExport(w io.Writer, file string) error {
	offcuts, _, err := project.LoadDefaultInventory()
	if err != nil {
		return err
	}
	if err := project.ExportInventory(file, offcuts); err != nil {
		return err
	}
	fmt.Fprintf(w, "Exported %d line(s) to %s\n", len(offcuts), file)
	return nil
}

func runInventoryClear(w io.Writer) error {
	offcuts, path, err := project.LoadDefaultInventory()
	if err != nil {
		return err
	}
	if len(offcuts) == 0 {
		fmt.Fprintln(w, "The bank is already empty.")
		return nil
	}
	if !inventoryForce {
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Discard all %d offcut line(s)?", len(offcuts))).
			Affirmative("Clear").
			Negative("Keep").
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(w, "Bank left untouched.")
			return nil
		}
	}
	if err := project.SaveInventory(path, []model.Offcut{}); err != nil {
		return err
	}
	slog.Info("offcut bank cleared", "path", path, "discarded", len(offcuts))
	fmt.Fprintln(w, "Bank cleared.")
	return nil
}
