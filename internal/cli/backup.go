package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/piwi3910/rollcut/internal/project"
)

var backupForce bool

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export or restore all rollcut state in one file",
	Long: `A backup file bundles the config, the machine and grade catalog,
the offcut bank, and the saved templates, so a workstation can be
rebuilt or cloned from a single JSON file.`,
}

var backupExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write all local state to a backup file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBackupExport(os.Stdout, args[0])
	},
}

var backupImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all local state with a backup file's contents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBackupImport(os.Stdout, args[0])
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupExportCmd)
	backupCmd.AddCommand(backupImportCmd)
	backupImportCmd.Flags().BoolVar(&backupForce, "force", false, "Restore without confirmation")
}

func runBackupExport(w io.Writer, file string) error {
	cfg := loadConfig()
	catalog := loadCatalog()
	offcuts, _, err := project.LoadDefaultInventory()
	if err != nil {
		return err
	}
	templates, err := project.LoadDefaultTemplates()
	if err != nil {
		return err
	}
	if err := project.ExportAllData(file, cfg, catalog, offcuts, templates); err != nil {
		return err
	}
	fmt.Fprintf(w, "Exported config, %d machine(s), %d offcut line(s), and %d template(s) to %s\n",
		len(catalog.Machines), len(offcuts), len(templates.Templates), file)
	return nil
}

func runBackupImport(w io.Writer, file string) error {
	backup, err := project.ImportAllData(file)
	if err != nil {
		return err
	}
	if !backupForce {
		confirmed := false
		err := huh.NewConfirm().
			Title("Replace the local config, catalog, bank, and templates?").
			Description(fmt.Sprintf("The backup was created %s.", backup.CreatedAt)).
			Affirmative("Replace").
			Negative("Keep").
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(w, "Local state left untouched.")
			return nil
		}
	}

	cfgPath := configPath
	if cfgPath == "" {
		cfgPath = project.DefaultConfigPath()
	}
	if err := project.SaveAppConfig(cfgPath, backup.Config); err != nil {
		return err
	}
	if err := project.SaveCatalogToDefault(backup.Catalog); err != nil {
		return err
	}
	invPath, err := project.DefaultInventoryPath()
	if err != nil {
		return err
	}
	if err := project.SaveInventory(invPath, backup.Offcuts); err != nil {
		return err
	}
	if err := project.SaveDefaultTemplates(backup.Templates); err != nil {
		return err
	}
	slog.Info("backup restored", "file", file, "created_at", backup.CreatedAt)
	fmt.Fprintf(w, "Restored %d machine(s), %d offcut line(s), and %d template(s) from %s\n",
		len(backup.Catalog.Machines), len(backup.Offcuts), len(backup.Templates.Templates), file)
	return nil
}
