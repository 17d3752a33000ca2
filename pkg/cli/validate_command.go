package cli

import (
	"fmt"

	"github.com/actionvet/actionvet/pkg/constants"
	"github.com/actionvet/actionvet/pkg/logger"
	"github.com/spf13/cobra"
)

var validateCommandLog = logger.New("cli:validate_command")

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [workflow-file]...",
		Short: "Validate workflow files against a structural contract",
		Long: `Validate one or more workflow files against a structural contract:
required steps must exist, appear in the declared order, and carry the
expected configuration fields. The companion project manifest is checked
for the script entries the pipeline invokes.

If no files are given, ` + constants.GetDefaultWorkflowPath() + ` is validated.
Without --contract, the built-in contract is used.

Examples:
  actionvet validate                                  # Validate the default workflow file
  actionvet validate .github/workflows/ci.yml         # Validate a specific file
  actionvet validate ci.yml release.yml               # Validate multiple files
  actionvet validate --contract contract.yml ci.yml   # Validate against a contract file
  actionvet validate --lint ci.yml                    # Also run the actionlint gate
  actionvet validate --fail-fast ci.yml               # Stop at the first failed check
  actionvet validate --watch ci.yml                   # Re-validate on file changes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			contractPath, _ := cmd.Flags().GetString("contract")
			manifestPath, _ := cmd.Flags().GetString("manifest")
			lint, _ := cmd.Flags().GetBool("lint")
			failFast, _ := cmd.Flags().GetBool("fail-fast")
			watch, _ := cmd.Flags().GetBool("watch")

			files := args
			if len(files) == 0 {
				files = []string{constants.GetDefaultWorkflowPath()}
			}

			// The default manifest is optional; an explicitly given one is not.
			if !cmd.Flags().Changed("manifest") {
				manifestPath = existingManifestPath(manifestPath)
			}

			validateCommandLog.Printf("Running validate: files=%v, contract=%s, watch=%v", files, contractPath, watch)

			config := ValidateConfig{
				WorkflowFiles: files,
				ContractPath:  contractPath,
				ManifestPath:  manifestPath,
				Lint:          lint,
				FailFast:      failFast,
				Out:           cmd.OutOrStdout(),
			}

			if watch {
				return WatchAndValidate(config)
			}

			passed, err := ValidateWorkflows(config)
			if err != nil {
				return err
			}
			if !passed {
				return fmt.Errorf("validation failed")
			}
			return nil
		},
	}

	cmd.Flags().StringP("contract", "c", "", "Contract file to validate against (default: built-in contract)")
	cmd.Flags().StringP("manifest", "m", constants.DefaultManifestFile, "Companion project manifest to check")
	cmd.Flags().Bool("lint", false, "Also run the actionlint gate over each workflow file")
	cmd.Flags().Bool("fail-fast", false, "Stop each file's checks at the first failure instead of collecting all")
	cmd.Flags().BoolP("watch", "w", false, "Watch the input files and re-validate on change")

	return cmd
}
