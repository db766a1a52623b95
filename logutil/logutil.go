// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package logutil

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// EnvDebug enables debug logging when set to "true".
const EnvDebug = "WEBURL_DEBUG"

// Options configures the global logger.
type Options struct {
	// Writer receives log records; os.Stderr when nil.
	Writer io.Writer
	// Debug lowers the level to slog.LevelDebug.
	Debug bool
	// JSON selects slog.JSONHandler instead of slog.TextHandler.
	JSON bool
}

var (
	mu     sync.RWMutex
	level  = new(slog.LevelVar)
	logger *slog.Logger
)

func init() {
	Configure(Options{})
}

// Configure replaces the global logger. Component loggers created earlier
// pick up the new handler on their next call.
// This function is safe for concurrent use.
func Configure(opts Options) {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	mu.Lock()
	defer mu.Unlock()
	SetDebug(opts.Debug)
	logger = slog.New(handler)
}

// SetupLogger configures the global logger to write to stderr.
func SetupLogger(debug, structured bool) {
	Configure(Options{Debug: debug, JSON: structured})
}

// SetDebug switches between debug and info level without replacing the
// handler.
func SetDebug(debug bool) {
	if debug {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}
}

// IsDebugEnabled returns true if debug logging is enabled, either
// programmatically or through the WEBURL_DEBUG environment variable.
func IsDebugEnabled() bool {
	return level.Level() <= slog.LevelDebug || os.Getenv(EnvDebug) == "true"
}

// Logger returns the global slog.Logger.
// This function is safe for concurrent use.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug logs at debug level. With WEBURL_DEBUG=true the record is emitted
// even when the handler level is info.
//
// Example:
//
//	logutil.Debug("validation error", "kind", "invalid port")
func Debug(msg string, args ...any) {
	if !IsDebugEnabled() {
		return
	}
	if level.Level() > slog.LevelDebug {
		Logger().Info(msg, args...)
		return
	}
	Logger().Debug(msg, args...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) {
	Logger().Error(msg, args...)
}
