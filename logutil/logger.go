// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package logutil

import "log/slog"

// ComponentLogger attaches a component name and fixed fields to every
// record. It resolves the global logger on each call, so it can be created
// before Configure runs.
type ComponentLogger struct {
	component string
	fields    []any
}

// NewLogger creates a logger for the named component.
func NewLogger(component string) *ComponentLogger {
	return &ComponentLogger{component: component, fields: []any{"component", component}}
}

// WithOperation returns a copy with an "operation" field.
func (l *ComponentLogger) WithOperation(name string) *ComponentLogger {
	return l.WithFields("operation", name)
}

// WithFields returns a copy with additional alternating key-value fields.
func (l *ComponentLogger) WithFields(fields ...any) *ComponentLogger {
	merged := make([]any, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)
	return &ComponentLogger{component: l.component, fields: merged}
}

// Component returns the component name.
func (l *ComponentLogger) Component() string {
	return l.component
}

func (l *ComponentLogger) with() *slog.Logger {
	return Logger().With(l.fields...)
}

// Debug logs at debug level, honoring WEBURL_DEBUG like the package-level
// Debug.
func (l *ComponentLogger) Debug(msg string, args ...any) {
	if !IsDebugEnabled() {
		return
	}
	if level.Level() > slog.LevelDebug {
		l.with().Info(msg, args...)
		return
	}
	l.with().Debug(msg, args...)
}

func (l *ComponentLogger) Info(msg string, args ...any)  { l.with().Info(msg, args...) }
func (l *ComponentLogger) Warn(msg string, args ...any)  { l.with().Warn(msg, args...) }
func (l *ComponentLogger) Error(msg string, args ...any) { l.with().Error(msg, args...) }
