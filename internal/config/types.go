package config

// Config is the root configuration structure loaded from YAML.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Input   InputConfig   `yaml:"input"`
	Report  ReportConfig  `yaml:"report"`
}

// LoggingConfig controls log verbosity and format.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	JSON  bool   `yaml:"json"`
}

// InputConfig selects the XML document to read.
type InputConfig struct {
	Path   string `yaml:"path"`   // empty: built-in sample
	Follow bool   `yaml:"follow"` // stream events as the file grows
	Watch  bool   `yaml:"watch"`  // re-render when the file changes
}

// ReportConfig controls console output.
type ReportConfig struct {
	TimeLayout string `yaml:"time_layout,omitempty"` // Go layout, empty for time.Time.String
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
	}
}
