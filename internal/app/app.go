package app

import (
	"github.com/spf13/cobra"

	"github.com/Smith-Tools/smith-validation/internal/cli"
)

func BuildRoot() *cobra.Command {
	root := &cobra.Command{Use: "smithval", Short: "Pluggable architectural linter for Go codebases"}
	cli.AddCommands(root)
	return root
}
