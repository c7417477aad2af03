package cmd

import (
	"fmt"

	"github.com/brettbedarf/filetree/internal/version"
	"github.com/spf13/cobra"
)

// NewVersionCmd prints version information.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "filetree %s\n", version.GetFullVersion())
		},
	}
}
