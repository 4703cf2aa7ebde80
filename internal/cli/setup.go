package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/tickwatch/internal/config"
)

// StepStatus represents the outcome of a single setup step.
type StepStatus int

const (
	// StepSuccess indicates the step completed successfully.
	StepSuccess StepStatus = iota
	// StepWarning indicates the step completed with a non-fatal issue.
	StepWarning
	// StepError indicates the step failed.
	StepError
)

// StepResult describes the outcome of executing a single setup step.
type StepResult struct {
	Name    string
	Status  StepStatus
	Message string
	Err     error
}

// formatStatus returns the status marker for a step.
func formatStatus(status StepStatus) string {
	switch status {
	case StepSuccess:
		return "[OK]"
	case StepWarning:
		return "[WARN]"
	case StepError:
		return "[ERR]"
	default:
		return "[??]"
	}
}

// NewSetupCmd creates the setup command that bootstraps the tickwatch
// environment.
func NewSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Bootstrap the tickwatch environment",
		Long: `Creates the configuration directory, writes starter configuration files,
and checks that a Finnhub API key is available.

This command is idempotent — it is safe to run multiple times. Existing
configuration files are preserved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSetup(cmd)
		},
	}
}

func runSetup(cmd *cobra.Command) error {
	configDir := configDirFromContext(cmd.Context())

	steps := []StepResult{
		setupConfigDir(configDir),
		setupStarterFile(config.SettingsPath(configDir), func(path string) error {
			return config.DefaultSettings().Save(path)
		}),
		setupStarterFile(config.TickersPath(configDir), func(path string) error {
			return config.SaveTickers(path, starterTickers)
		}),
		setupAPIKeyCheck(),
	}

	hasErrors := false
	for _, step := range steps {
		cmd.Printf("%-6s %s", formatStatus(step.Status), step.Name)
		if step.Message != "" {
			cmd.Printf(": %s", step.Message)
		}
		cmd.Println()
		if step.Status == StepError {
			hasErrors = true
		}
	}

	if hasErrors {
		return fmt.Errorf("setup completed with errors")
	}
	cmd.Println("\nSetup complete. Run `tickwatch` to show your tickers.")
	return nil
}

func setupConfigDir(configDir string) StepResult {
	if err := config.EnsureConfigDir(configDir); err != nil {
		return StepResult{Name: "Config directory", Status: StepError, Message: err.Error(), Err: err}
	}
	return StepResult{Name: "Config directory", Status: StepSuccess, Message: configDir}
}

// setupStarterFile writes a starter config file, preserving an existing
// one.
func setupStarterFile(path string, write func(string) error) StepResult {
	name := "Starter " + path
	if _, err := os.Stat(path); err == nil {
		return StepResult{Name: name, Status: StepSuccess, Message: "already exists, preserved"}
	}
	if err := write(path); err != nil {
		return StepResult{Name: name, Status: StepError, Message: err.Error(), Err: err}
	}
	return StepResult{Name: name, Status: StepSuccess, Message: "created"}
}

func setupAPIKeyCheck() StepResult {
	if apiKeyFromEnv() == "" {
		return StepResult{
			Name:    "Finnhub API key",
			Status:  StepWarning,
			Message: "FINNHUB_API_KEY not set; export it or add it to .env",
		}
	}
	return StepResult{Name: "Finnhub API key", Status: StepSuccess, Message: "found"}
}
