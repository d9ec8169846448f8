// Package log provides the leveled key-value logging helpers used across
// the ledger. It is a thin facade over log/slog so embedders can swap in
// their own handler via SetDefault.
package log

import (
	"context"
	"log/slog"
	"os"
)

// LevelTrace is one step below slog's debug level; state accessors log at
// this level.
const LevelTrace = slog.Level(-8)

var root = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
	Level: slog.LevelInfo,
}))

// SetDefault replaces the process-wide ledger logger.
func SetDefault(l *slog.Logger) { root = l }

// Root returns the process-wide ledger logger.
func Root() *slog.Logger { return root }

// Trace logs at trace level with alternating key-value context.
func Trace(msg string, ctx ...any) { root.Log(context.Background(), LevelTrace, msg, ctx...) }

// Debug logs at debug level with alternating key-value context.
func Debug(msg string, ctx ...any) { root.Debug(msg, ctx...) }

// Info logs at info level with alternating key-value context.
func Info(msg string, ctx ...any) { root.Info(msg, ctx...) }

// Warn logs at warn level with alternating key-value context.
func Warn(msg string, ctx ...any) { root.Warn(msg, ctx...) }

// Error logs at error level with alternating key-value context.
func Error(msg string, ctx ...any) { root.Error(msg, ctx...) }
