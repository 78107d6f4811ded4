package utils

import (
	"go.uber.org/zap"
)

// NewLogger builds the process logger. Debug enables the human-friendly
// development encoder; production output is JSON.
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
