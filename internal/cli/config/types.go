// Package config provides configuration management for the unitscan CLI.
package config

// Config holds all CLI configuration options.
type Config struct {
	Source          string `koanf:"source"`
	StatePath       string `koanf:"state_path"`
	OutputFormat    string `koanf:"output"`
	Workers         int    `koanf:"workers"`
	DynamicSentinel bool   `koanf:"dynamic_sentinel"`
	Verbose         bool   `koanf:"verbose"`
}

// Default configuration values.
const (
	DefaultSource    = "."
	DefaultStateFile = ".unitscan/state.db"
	DefaultOutput    = "table"
	DefaultWorkers   = 4
)
