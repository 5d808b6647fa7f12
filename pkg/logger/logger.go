// Package logger builds the process-wide zap logger.
package logger

import (
	"go.uber.org/zap"
)

// New creates a logger appropriate for the given environment. Production
// gets JSON output at info level; everything else gets the human-readable
// development config.
func New(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
