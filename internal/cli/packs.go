package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Smith-Tools/smith-validation/internal/loader"
)

func newPacksCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "packs", Short: "Work with external rule packs"}
	cmd.AddCommand(newPacksBuildCmd())
	return cmd
}

func newPacksBuildCmd() *cobra.Command {
	var (
		keepScratch bool
		timeout     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "build <dir>",
		Short: "Compile and load a rule pack, listing the rules it provides",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l := loader.New(loader.Options{KeepScratch: keepScratch, Timeout: timeout}, nil)
			pack, err := l.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, w := range pack.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "loaded %s (%d rule(s))\n", pack.Path, len(pack.Rules))
			for _, r := range pack.Rules {
				m := r.Meta()
				fmt.Fprintf(cmd.OutOrStdout(), "  %-28s %-8s %s\n", m.ID, m.Severity, m.Title)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&keepScratch, "keep-scratch", false, "Keep the scratch build module for debugging")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Build timeout (default 2m)")
	return cmd
}
