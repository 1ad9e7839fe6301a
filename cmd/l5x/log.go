package main

import "go.uber.org/zap"

// newLogger logs to stderr in development form when verbose, and nowhere
// otherwise.
func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return l
}
