package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/tickwatch/internal/config"
)

// starterTickers seeds a new tickers.yaml with both entry forms so the
// file documents its own syntax.
//
//nolint:gochecknoglobals // Starter content for config init.
var starterTickers = []config.TickerSpec{
	{Symbol: "AAPL"},
	{Symbol: "MSFT"},
	{Symbol: "VOO", Name: "Vanguard S&P 500 ETF"},
}

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create starter configuration files",
		Long: `Creates the configuration directory with a starter tickers.yaml and a
settings.yaml holding the documented defaults. Existing files are
preserved unless --force is given.`,
		Example: `  # Create starter configuration
  tickwatch config init

  # Overwrite existing configuration
  tickwatch config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeConfigInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration files")

	return cmd
}

func executeConfigInit(cmd *cobra.Command, force bool) error {
	configDir := configDirFromContext(cmd.Context())
	if err := config.EnsureConfigDir(configDir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	settingsPath := config.SettingsPath(configDir)
	if err := checkOverwrite(settingsPath, force); err != nil {
		return err
	}
	if err := config.DefaultSettings().Save(settingsPath); err != nil {
		return err
	}
	cmd.Printf("Wrote %s\n", settingsPath)

	tickersPath := config.TickersPath(configDir)
	if err := checkOverwrite(tickersPath, force); err != nil {
		return err
	}
	if err := config.SaveTickers(tickersPath, starterTickers); err != nil {
		return err
	}
	cmd.Printf("Wrote %s\n", tickersPath)

	return nil
}

// checkOverwrite refuses to clobber an existing file unless forced.
func checkOverwrite(path string, force bool) error {
	if force {
		return nil
	}
	_, err := os.Stat(path)
	if err == nil {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("cannot access %s: %w", path, err)
	}
	return nil
}
