// Package cli implements the hxasset command.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pthm/hxasset/internal/ctxlog"
	"github.com/pthm/hxasset/internal/envconfig"
	"github.com/pthm/hxasset/internal/logutil"
)

// Version is set at build time with -ldflags.
var Version = "dev"

// NewCLI returns the root command.
func NewCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "hxasset",
		Short:         "Declare, check and render page assets",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: setupLogger,
	}

	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (default from HXASSET_DEBUG)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json (default from HXASSET_LOG_FORMAT)")

	rootCmd.AddCommand(
		newValidateCmd(),
		newListCmd(),
		newRenderCmd(),
		newGenerateCmd(),
		newCleanCmd(),
		newEnvCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// setupLogger stores a logger writing to stderr in the command context.
func setupLogger(cmd *cobra.Command, _ []string) error {
	level := envconfig.LogLevel()
	if s, _ := cmd.Flags().GetString("log-level"); s != "" {
		l, err := logutil.ParseLevel(s)
		if err != nil {
			return err
		}
		level = l
	}

	format := envconfig.LogFormat()
	if s, _ := cmd.Flags().GetString("log-format"); s != "" {
		format = s
	}
	if format != "" && format != "text" && format != "json" {
		return fmt.Errorf("unknown log format %q", format)
	}

	logger := logutil.New(level, format, cmd.ErrOrStderr())
	cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))
	return nil
}

func logger(cmd *cobra.Command) *slog.Logger {
	return ctxlog.FromContext(cmd.Context())
}

func printf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
