package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Smith-Tools/smith-validation/internal/checks"
	"github.com/Smith-Tools/smith-validation/pkg/rules"
)

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "rules", Short: "Inspect the rule catalog"}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List builtin rules by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := rules.NewRegistry()
			checks.Register(reg)
			for category, metas := range reg.ByCategory() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", category)
				for _, m := range metas {
					enabled := " "
					if m.Enabled {
						enabled = "*"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "  [%s] %-28s %-8s %s\n", enabled, m.ID, m.Severity, m.Title)
				}
			}
			return nil
		},
	})
	return cmd
}
