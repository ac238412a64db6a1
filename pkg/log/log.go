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
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/walteh/formaturl/pkg/status"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	statusWidth = 15 // Width for status text
)

// 🎯 FileOperation represents a processed file for logging
type FileOperation struct {
	Path         string // File path, relative to the run root
	Status       status.FileStatus
	Replacements int   // Number of replacements made
	Err          error // Set for failed files
}

// 📦 RunOperation describes a rewrite run for logging
type RunOperation struct {
	Root      string // Directory being scanned
	Extension string // Selected file suffix
	Pattern   string // Compiled match expression
	DryRun    bool   // Whether files are written
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	currentRun *RunOperation
	operations []FileOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
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

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch op.Status {
	case status.StatusRewritten:
		symbol = '⟳'
		symbolColor = color.FgBlue
	case status.StatusWouldRewrite:
		symbol = '~'
		symbolColor = color.FgYellow
	case status.StatusFailed:
		symbol = '✗'
		symbolColor = color.FgRed
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	detail := ""
	switch {
	case op.Err != nil:
		detail = op.Err.Error()
	case op.Replacements > 0:
		detail = strconv.Itoa(op.Replacements) + " replaced"
	}

	return strings.TrimRight(fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		color.New(symbolColor).Sprint(fmt.Sprintf("%-*s", statusWidth, op.Status.String())),
		color.New(color.Faint).Sprint(detail)), " ")
}

// 📝 LogFileOperation prints the progress line for one processed file
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.operations = append(l.operations, op)

	fmt.Fprintln(l.console, l.formatFileOperation(op))

	event := l.zlog.Info()
	if op.Err != nil {
		event = l.zlog.Error().Err(op.Err)
	}
	event.
		Str("file", op.Path).
		Str("status", op.Status.String()).
		Int("replacements", op.Replacements).
		Msg("file processed")
}

// 📝 StartRun starts a new rewrite run
func (l *Logger) StartRun(ctx context.Context, op RunOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentRun = &op
	l.operations = nil

	mode := "rewriting"
	if op.DryRun {
		mode = "checking"
	}

	fmt.Fprintf(l.console, "[%s %s]\n", mode, color.New(color.FgCyan).Sprint(op.Root))
	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint("*"+op.Extension),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(op.Pattern))

	l.zlog.Info().
		Str("root", op.Root).
		Str("extension", op.Extension).
		Str("pattern", op.Pattern).
		Bool("dry_run", op.DryRun).
		Msg("starting rewrite run")
}

// 📝 EndRun ends the current run
func (l *Logger) EndRun(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentRun == nil {
		return
	}

	l.zlog.Info().
		Str("root", l.currentRun.Root).
		Int("files", len(l.operations)).
		Msg("rewrite run complete")

	l.currentRun = nil
	l.operations = nil
}

// 📝 LogDiff prints the changed lines between before and after
func (l *Logger) LogDiff(path, before, after string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	fmt.Fprintf(l.console, "%s%s\n", strings.Repeat(" ", fileIndent*2), color.New(color.Bold).Sprint(path))
	for _, d := range diffs {
		var sign string
		var c *color.Color
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			sign, c = "+", color.New(color.FgGreen)
		case diffmatchpatch.DiffDelete:
			sign, c = "-", color.New(color.FgRed)
		default:
			continue
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			fmt.Fprintf(l.console, "%s%s\n", strings.Repeat(" ", fileIndent*2), c.Sprint(sign+" "+line))
		}
	}
}

// 📊 Summary prints a table of the files that were not left unchanged, then the totals
func (l *Logger) Summary(files []status.FileInfo, summary status.Summary, formatter status.FileFormatter) {
	l.mu.Lock()
	defer l.mu.Unlock()

	data := pterm.TableData{{"File", "Status", "Replacements", "Error"}}
	for _, f := range files {
		if f.Status == status.StatusUnchanged {
			continue
		}
		errText := ""
		if f.Error != nil {
			errText = f.Error.Error()
		}
		data = append(data, []string{f.Path, f.Status.String(), strconv.Itoa(f.Replacements), errText})
	}

	if len(data) > 1 {
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			l.zlog.Warn().Err(err).Msg("rendering summary table")
		} else {
			fmt.Fprintf(l.console, "\n%s\n", table)
		}
	}

	msg := formatter.FormatSummary(summary)
	fmt.Fprintf(l.console, "\n%s\n", msg)
	l.zlog.Info().
		Int("total", summary.Total).
		Int("rewritten", summary.Rewritten).
		Int("would_rewrite", summary.WouldRewrite).
		Int("unchanged", summary.Unchanged).
		Int("failed", summary.Failed).
		Int("replacements", summary.Replacements).
		Msg("summary")
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

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}
