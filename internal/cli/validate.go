package cli

import (
	"github.com/spf13/cobra"

	"github.com/pthm/hxasset/config"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate PATH...",
		Short: "Check asset declaration files",
		Long: `Load every .yaml, .yml and .hcl file in the given files and directories
and report all invalid declarations.`,
		Args: cobra.MinimumNArgs(1),
		RunE: validateHandler,
	}
}

func validateHandler(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Context(), args...)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger(cmd).DebugContext(cmd.Context(), "validated", "files", cfg.Files)
	printf(cmd.OutOrStdout(), "%d declarations in %d files ok\n", len(cfg.Declarations), len(cfg.Files))
	return nil
}
