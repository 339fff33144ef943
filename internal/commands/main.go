package commands

import (
	"github.com/spf13/cobra"
)

// NewMainCmd builds the foldertree command. Without a subcommand it runs the shell.
func NewMainCmd() *cobra.Command {
	shellCmd := NewShellCmd()

	mainCmd := &cobra.Command{
		Use:           "foldertree",
		Short:         "In-memory folder tree driven by line commands",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          shellCmd.RunE,
	}
	mainCmd.Flags().AddFlagSet(shellCmd.Flags())

	mainCmd.AddCommand(shellCmd)
	mainCmd.AddCommand(NewHashPasswordCmd())
	return mainCmd
}
