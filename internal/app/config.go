package app

import "errors"

// Config holds everything an App instance needs to run.
type Config struct {
	CasePath string // HCL case file
	OutPath  string // derived-output YAML destination, "" disables

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.CasePath == "" {
		return nil, errors.New("CasePath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
