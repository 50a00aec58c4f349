// Package cli wires the planner, importer, exports, and persistent
// stores into the rollcut command tree. Identifier assignment for
// output records happens here, after planning, never inside the engine.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/piwi3910/rollcut/internal/model"
	"github.com/piwi3910/rollcut/internal/project"
)

var (
	configPath string
	jsonOutput bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "rollcut",
	Short: "Paper roll slitting planner",
	Long: `rollcut plans how to slit wide source rolls into ordered roll widths.

Demand is matched against reusable offcut inventory first, then cutting
patterns are searched per paper specification and leftover trim is
classified against the configured thresholds.

Environment Variables:
  LOG_LEVEL   debug, info, warn, error (default: info)
  LOG_FORMAT  text or json (default: text)`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.json (default ~/.rollcut/config.json)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// loadConfig reads the app config, falling back to defaults so a broken
// config file never blocks planning.
func loadConfig() model.AppConfig {
	path := configPath
	if path == "" {
		path = project.DefaultConfigPath()
	}
	cfg, err := project.LoadAppConfig(path)
	if err != nil {
		slog.Warn("failed to load config, using defaults", "path", path, "error", err)
		return model.DefaultAppConfig()
	}
	return cfg
}

// loadCatalog reads the machine and grade catalog, falling back to the
// built-in defaults.
func loadCatalog() model.Catalog {
	catalog, err := project.LoadCatalogFromDefault()
	if err != nil {
		slog.Warn("failed to load catalog, using defaults", "error", err)
		return model.DefaultCatalog()
	}
	return catalog
}
