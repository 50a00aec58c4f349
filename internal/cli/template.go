package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/rollcut/internal/project"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage saved order book templates",
	Long: `Templates capture an order book, its starting supply, and the
settings it was planned with. Save one with "rollcut plan
--save-template <name>" and replay it with "rollcut plan --template <name>".`,
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the saved templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTemplateList(os.Stdout)
	},
}

var templateShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show one template's order book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTemplateShow(os.Stdout, args[0])
	},
}

var templateDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTemplateDelete(os.Stdout, args[0])
	},
}

func init() {
	rootCmd.AddCommand(templateCmd)
	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateShowCmd)
	templateCmd.AddCommand(templateDeleteCmd)
}

func runTemplateList(w io.Writer) error {
	store, err := project.LoadDefaultTemplates()
	if err != nil {
		return err
	}
	if jsonOutput {
		data, err := json.MarshalIndent(store.Templates, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	fmt.Fprintln(w, styleTitle.Render("Templates"))
	fmt.Fprintln(w)
	if len(store.Templates) == 0 {
		fmt.Fprintln(w, "No templates saved yet.")
		return nil
	}
	fmt.Fprintf(w, "  %-20s %6s  %6s  %-20s %s\n", "NAME", "ORDERS", "SUPPLY", "CREATED", "DESCRIPTION")
	for _, t := range store.Templates {
		fmt.Fprintf(w, "  %-20s %6d  %6d  %-20s %s\n",
			t.Name, len(t.Orders), len(t.Supply), t.CreatedAt, t.Description)
	}
	return nil
}

func runTemplateShow(w io.Writer, name string) error {
	store, err := project.LoadDefaultTemplates()
	if err != nil {
		return err
	}
	tpl := store.FindByName(name)
	if tpl == nil {
		return fmt.Errorf("no template named %q (known: %s)", name, strings.Join(store.Names(), ", "))
	}
	if jsonOutput {
		data, err := json.MarshalIndent(tpl, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	fmt.Fprintln(w, styleTitle.Render(tpl.Name))
	if tpl.Description != "" {
		fmt.Fprintln(w, tpl.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, styleHeader.Render("Orders"))
	for _, o := range tpl.Orders {
		fmt.Fprintf(w, "  %-12s %-18s %7s\"  x%d\n", o.Ref, o.Spec.Key(), o.Width.String(), o.Quantity)
	}
	if len(tpl.Supply) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, styleHeader.Render("Supply"))
		for _, s := range tpl.Supply {
			fmt.Fprintf(w, "  %-12s %-18s %7s\"  x%d\n", s.Ref, s.Spec.Key(), s.Width.String(), s.Quantity)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Planned at %s\" source width with the %s search.\n",
		tpl.Settings.SourceRollWidth.String(), tpl.Settings.Algorithm)
	return nil
}

func runTemplateDelete(w io.Writer, name string) error {
	store, err := project.LoadDefaultTemplates()
	if err != nil {
		return err
	}
	tpl := store.FindByName(name)
	if tpl == nil {
		return fmt.Errorf("no template named %q", name)
	}
	store.Remove(tpl.ID)
	if err := project.SaveDefaultTemplates(store); err != nil {
		return err
	}
	fmt.Fprintf(w, "Deleted template %q.\n", name)
	return nil
}
