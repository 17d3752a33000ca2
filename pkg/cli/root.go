// Package cli implements the actionvet command line interface.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command with all subcommands registered.
func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "actionvet",
		Short: "Structural contract validation for CI workflow definitions",
		Long: `actionvet statically validates the structure of CI workflow definitions:
it confirms that required pipeline steps exist, occur in a specific order,
and carry the expected configuration fields.`,
		Version:      version,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(NewValidateCommand())
	return rootCmd
}
