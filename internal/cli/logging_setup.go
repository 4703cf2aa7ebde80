package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/tickwatch/internal/config"
	"github.com/rshade/tickwatch/internal/logging"
)

// Environment overrides for the logging block of settings.yaml.
const (
	EnvLogLevel  = "TICKWATCH_LOG_LEVEL"
	EnvLogFormat = "TICKWATCH_LOG_FORMAT"
)

// setupCommand resolves the config directory, loads settings, builds
// the process logger, and stores all three on the command context.
// Precedence for log config: --debug flag > env overrides > settings.
func setupCommand(cmd *cobra.Command, lookupEnv func(string) (string, bool)) (*logging.LogPathResult, error) {
	configDir, err := resolveConfigDir(cmd)
	if err != nil {
		return nil, err
	}

	// Settings load warnings go to a bootstrap console logger; the
	// configured logger does not exist until settings are parsed.
	bootstrap := logging.NewLogger(logging.Config{Level: "info", Format: logging.FormatConsole})
	settings := config.LoadSettings(bootstrap.WithContext(context.Background()), config.SettingsPath(configDir))

	loggingCfg := settings.ToLoggingConfig()
	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = logging.FormatConsole
		loggingCfg.File = ""
	}
	if envLevel, ok := lookupEnv(EnvLogLevel); ok && envLevel != "" && !debug {
		loggingCfg.Level = envLevel
	}
	if envFormat, ok := lookupEnv(EnvLogFormat); ok && envFormat != "" {
		loggingCfg.Format = envFormat
	}

	result := logging.NewLoggerWithPath(loggingCfg)
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.UsingFile {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.With().Str("trace_id", traceID).Logger().WithContext(ctx)
	ctx = context.WithValue(ctx, settingsKey{}, settings)
	ctx = context.WithValue(ctx, configDirKey{}, configDir)
	cmd.SetContext(ctx)

	logger.Debug().Str("command", cmd.Name()).Str("config_dir", configDir).Msg("command started")

	return &result, nil
}

// resolveConfigDir applies the flag > TICKWATCH_HOME > home-dir
// precedence.
func resolveConfigDir(cmd *cobra.Command) (string, error) {
	flagValue, _ := cmd.Flags().GetString("config-dir")
	return config.ResolveConfigDir(flagValue)
}

// apiKeyFromEnv reads the Finnhub API key. The .env file, when present,
// was already folded into the environment at process start.
func apiKeyFromEnv() string {
	return os.Getenv("FINNHUB_API_KEY")
}
