package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/tickwatch/internal/config"
)

// NewConfigValidateCmd creates the config validate command. It reports
// every issue the soft-fail loaders would otherwise only warn about,
// and exits non-zero when the configuration cannot produce a useful run.
func NewConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration files for problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeConfigValidate(cmd)
		},
	}
}

func executeConfigValidate(cmd *cobra.Command) error {
	ctx := cmd.Context()
	configDir := configDirFromContext(ctx)

	var issues []string

	issues = append(issues, validateSettingsFile(config.SettingsPath(configDir))...)

	tickers := config.LoadTickers(ctx, config.TickersPath(configDir))
	if len(tickers) == 0 {
		issues = append(issues, fmt.Sprintf("%s: no valid tickers (run `tickwatch config init`)",
			config.TickersPath(configDir)))
	} else {
		cmd.Printf("Tickers: %d entries\n", len(tickers))
	}

	if apiKeyFromEnv() == "" {
		issues = append(issues, "FINNHUB_API_KEY is not set (export it or add it to .env)")
	}

	if len(issues) == 0 {
		cmd.Println("Configuration OK")
		return nil
	}
	for _, issue := range issues {
		cmd.Printf("Issue: %s\n", issue)
	}
	return fmt.Errorf("%d configuration issue(s) found", len(issues))
}

// validateSettingsFile reports parse failures and repaired values. A
// missing settings file is fine; defaults cover it.
func validateSettingsFile(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return []string{fmt.Sprintf("%s: %v", path, err)}
	}

	settings := config.DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return []string{fmt.Sprintf("%s: not valid YAML: %v", path, err)}
	}

	var issues []string
	for _, note := range settings.Normalize() {
		issues = append(issues, fmt.Sprintf("%s: %s", path, note))
	}
	return issues
}
