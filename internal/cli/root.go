// Package cli wires the tickwatch command tree: the root show command,
// daemon and watch modes, and the config/cache maintenance commands.
package cli

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/tickwatch/internal/config"
	"github.com/rshade/tickwatch/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// Context keys for state resolved once in PersistentPreRunE.
type (
	settingsKey  struct{}
	configDirKey struct{}
)

// settingsFromContext returns the settings loaded during command setup.
func settingsFromContext(ctx context.Context) *config.Settings {
	if s, ok := ctx.Value(settingsKey{}).(*config.Settings); ok {
		return s
	}
	return config.DefaultSettings()
}

// configDirFromContext returns the config directory resolved during
// command setup.
func configDirFromContext(ctx context.Context) string {
	if dir, ok := ctx.Value(configDirKey{}).(string); ok {
		return dir
	}
	return ""
}

// NewRootCmd creates the root Cobra command for the tickwatch CLI.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithArgs(ver, os.Args, os.LookupEnv)
}

// NewRootCmdWithArgs creates the root command with explicit args and env
// lookup for testability.
func NewRootCmdWithArgs(
	ver string,
	_ []string,
	lookupEnv func(string) (string, bool),
) *cobra.Command {
	var logResult *logging.LogPathResult
	var params ShowParams

	cmd := &cobra.Command{
		Use:     "tickwatch",
		Short:   "Track stock and ETF metrics from the terminal",
		Long:    "Tickwatch: fetch, cache, and display per-ticker financial metrics from Finnhub",
		Version: ver,
		Example: rootCmdExample,
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			result, err := setupCommand(cmd, lookupEnv)
			if err != nil {
				return err
			}
			logResult = result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if logResult != nil {
				return logResult.Close()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeShow(cmd, params)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config-dir", "",
		"configuration directory (default $"+config.EnvHome+" or ~/.tickwatch)")

	cmd.Flags().BoolVar(&params.Refresh, "refresh", false,
		"force fetch fresh data, bypassing the cache freshness check")
	cmd.Flags().StringVar(&params.Output, "output", outputFormatTable,
		"output format (table, json, ndjson)")

	cmd.AddCommand(NewDaemonCmd(), NewWatchCmd(), newConfigCmd(), newCacheCmd(), NewSetupCmd())

	return cmd
}

const rootCmdExample = `  # Show the configured tickers, using the cache when fresh
  tickwatch

  # Force fresh data for every ticker
  tickwatch --refresh

  # Machine-readable output
  tickwatch --output json

  # Keep the cache warm in the background
  tickwatch daemon

  # Live prices from the trade stream
  tickwatch watch --interval 5

  # First-time setup
  tickwatch setup`

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigValidateCmd())
	return cmd
}

// newCacheCmd creates the cache command group.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Cache inspection and maintenance commands"}
	cmd.AddCommand(NewCacheStatusCmd(), NewCacheClearCmd())
	return cmd
}
