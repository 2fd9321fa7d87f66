package commands

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/unitscan/internal/cli/config"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
}

// NewCommandContext creates a CommandContext from the command's context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	return &CommandContext{
		Cfg:    getConfig(),
		Logger: config.GetLogger(cmd.Context()),
	}
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to
// environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	workers := config.DefaultWorkers
	if v, err := strconv.Atoi(os.Getenv("UNITSCAN_WORKERS")); err == nil && v > 0 {
		workers = v
	}

	return &config.Config{
		Source:          getEnvOrDefault("UNITSCAN_SOURCE", config.DefaultSource),
		StatePath:       getEnvOrDefault("UNITSCAN_STATE_PATH", config.DefaultStateFile),
		OutputFormat:    getEnvOrDefault("UNITSCAN_OUTPUT", config.DefaultOutput),
		Workers:         workers,
		DynamicSentinel: os.Getenv("UNITSCAN_DYNAMIC_SENTINEL") == "true",
		Verbose:         os.Getenv("UNITSCAN_VERBOSE") == "true",
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
