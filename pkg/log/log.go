// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent  = 2  // spaces to indent file entries
	actionWidth = 10 // Width for the action label
)

// 🎯 Action is what happened to a file during a mutation run
type Action int

const (
	ActionUpdated Action = iota
	ActionRemoved
	ActionSkipped
	ActionDryRun
	ActionFailed
)

// String returns a string representation of Action
func (a Action) String() string {
	switch a {
	case ActionUpdated:
		return "updated"
	case ActionRemoved:
		return "removed"
	case ActionSkipped:
		return "skipped"
	case ActionDryRun:
		return "dry-run"
	case ActionFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 🎯 FileChange represents the outcome for one file
type FileChange struct {
	Path   string // File path
	Action Action // What happened
	Count  int    // Number of lines touched
	Err    error  // Set when Action is ActionFailed
}

// 🎯 Logger writes user-facing lines to a console and mirrors them to zerolog
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// Console returns the writer user-facing output goes to
func (l *Logger) Console() io.Writer {
	return l.console
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatFileChange formats a file change for display
func (l *Logger) formatFileChange(c FileChange) string {
	var symbol string
	var symbolColor color.Attribute
	switch c.Action {
	case ActionUpdated:
		symbol, symbolColor = "⟳", color.FgBlue
	case ActionRemoved:
		symbol, symbolColor = "✗", color.FgRed
	case ActionDryRun:
		symbol, symbolColor = "•", color.FgCyan
	case ActionFailed:
		symbol, symbolColor = "!", color.FgRed
	default:
		symbol, symbolColor = "-", color.FgYellow
	}

	line := fmt.Sprintf("%*s%s %-*s %s",
		fileIndent, "",
		color.New(symbolColor).Sprint(symbol),
		actionWidth, c.Action.String(),
		c.Path)
	if c.Err != nil {
		line += color.New(color.Faint).Sprintf(" (%v)", c.Err)
	}
	return line
}

// 📝 LogFileChange logs the outcome for one file
func (l *Logger) LogFileChange(ctx context.Context, c FileChange) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatFileChange(c))

	ev := l.zlog.Info()
	if c.Err != nil {
		ev = l.zlog.Error().Err(c.Err)
	}
	ev.Str("file", c.Path).
		Str("action", c.Action.String()).
		Int("count", c.Count).
		Msg("file change")
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Println writes an undecorated line
func (l *Logger) Println(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console, msg)
	l.zlog.Debug().Msg(msg)
}

// 📝 Printf writes an undecorated formatted line
func (l *Logger) Printf(format string, args ...interface{}) {
	l.Println(fmt.Sprintf(format, args...))
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("markfix")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
