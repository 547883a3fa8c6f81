// Package logger builds the service's zap loggers.
package logger

import (
	"go.uber.org/zap"
)

// New creates a logger appropriate for the given environment: human-readable
// development output for "development", JSON production output otherwise.
func New(appEnv string) (*zap.Logger, error) {
	if appEnv == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// NewNamed creates a logger with a service name attached to every entry.
func NewNamed(appEnv, name string) (*zap.Logger, error) {
	log, err := New(appEnv)
	if err != nil {
		return nil, err
	}
	return log.Named(name), nil
}
