// Package config loads the escsv command's settings from environment
// variables with defaults, then validates them so misconfiguration fails
// before any file is touched. Command-line flags override these values.
package config

// Config holds all command configuration.
type Config struct {
	Logging  LoggingConfig
	Database DatabaseConfig
	Input    InputConfig
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error (default: warn)
	Level string `env:"ESCSV_LOG_LEVEL" default:"warn"`

	// Format is text or json (default: text)
	Format string `env:"ESCSV_LOG_FORMAT" default:"text"`
}

// DatabaseConfig holds SQLite settings for import and export.
type DatabaseConfig struct {
	// Path is the SQLite database file (default: escsv.db)
	Path string `env:"ESCSV_DB_PATH" default:"escsv.db"`
}

// InputConfig holds defaults for reading tables.
type InputConfig struct {
	// Header reports whether input files start with a header line (default: true)
	Header bool `env:"ESCSV_HEADER" default:"true"`
}
