// Package config handles application configuration and setup.
package config

import (
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with the level selected by the options.
func CreateLogger(opts Options) *log.Logger {
	cfg := log.DefaultConfig()
	switch {
	case opts.Debug:
		cfg.Level = log.DebugLevel
	case opts.Quiet:
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
