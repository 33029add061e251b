// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package logging is a thin structured-logging wrapper shared by every
// package in the tracker. It exists so call sites never import
// charmbracelet/log directly: the component name and any attached
// session id are threaded through Logger instead.
package logging

import (
	"os"

	charmlog "github.com/charmbracelet/log"
)

// Logger is a component-scoped structured logger.
type Logger struct {
	backend *charmlog.Logger
}

var root = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: true,
	TimeFormat:      "15:04:05",
})

// WithComponent returns a Logger that tags every line with the given
// component name, e.g. logging.WithComponent("capture").
func WithComponent(name string) *Logger {
	return &Logger{backend: root.WithPrefix(name)}
}

// WithSession returns a Logger tagging every line with a capture session id.
func (l *Logger) WithSession(id string) *Logger {
	return &Logger{backend: l.backend.With("session", id)}
}

// WithError returns a Logger with the error attached as a keyval, so the
// next Info/Warn/Error/Debug call includes it.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{backend: l.backend.With("error", err)}
}

// With returns a Logger with the given keyvals attached.
func (l *Logger) With(keyvals ...any) *Logger {
	return &Logger{backend: l.backend.With(keyvals...)}
}

func (l *Logger) Debug(msg string, keyvals ...any) { l.backend.Debug(msg, keyvals...) }
func (l *Logger) Info(msg string, keyvals ...any)  { l.backend.Info(msg, keyvals...) }
func (l *Logger) Warn(msg string, keyvals ...any)  { l.backend.Warn(msg, keyvals...) }
func (l *Logger) Error(msg string, keyvals ...any) { l.backend.Error(msg, keyvals...) }

// SetLevel changes the minimum verbosity of every logger derived from root.
func SetLevel(debug bool) {
	if debug {
		root.SetLevel(charmlog.DebugLevel)
	} else {
		root.SetLevel(charmlog.InfoLevel)
	}
}

var pkg = WithComponent("tracker")

// Package-level helpers for call sites that don't need a named component.
func Debug(msg string, keyvals ...any) { pkg.Debug(msg, keyvals...) }
func Info(msg string, keyvals ...any)  { pkg.Info(msg, keyvals...) }
func Warn(msg string, keyvals ...any)  { pkg.Warn(msg, keyvals...) }
func Error(msg string, keyvals ...any) { pkg.Error(msg, keyvals...) }
