// Package logging provides leveled key=value console logging for the
// question-answering pipeline. One request produces one trace ID; every
// gateway call, reduction step, and failure is logged under it.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents log severity.
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Logger provides structured logging to stdout.
type Logger struct {
	mu        sync.Mutex
	output    io.Writer
	minLevel  Level
	component string
	traceID   string
}

// levelPriority maps levels to numeric priority for filtering.
var levelPriority = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// ParseLevel maps a config string to a Level, defaulting to INFO.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// New creates a new Logger.
func New() *Logger {
	return &Logger{
		output:   os.Stdout,
		minLevel: LevelInfo,
	}
}

// WithComponent returns a new logger with the given component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		output:    l.output,
		minLevel:  l.minLevel,
		component: component,
		traceID:   l.traceID,
	}
}

// WithTraceID returns a new logger with the given trace ID.
func (l *Logger) WithTraceID(traceID string) *Logger {
	return &Logger{
		output:    l.output,
		minLevel:  l.minLevel,
		component: l.component,
		traceID:   traceID,
	}
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.minLevel = level
}

// SetOutput sets the output writer (default: stdout).
func (l *Logger) SetOutput(w io.Writer) {
	l.output = w
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	l.log(LevelDebug, msg, fields...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	l.log(LevelInfo, msg, fields...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	l.log(LevelWarn, msg, fields...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, fields ...map[string]interface{}) {
	l.log(LevelError, msg, fields...)
}

// formatFields formats a map of fields as key=value pairs.
func formatFields(fields map[string]interface{}) string {
	if len(fields) == 0 {
		return ""
	}
	var parts []string
	for k, v := range fields {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return " " + strings.Join(parts, " ")
}

// log writes a log entry: LEVEL TIMESTAMP [component] (trace) message key=value ...
func (l *Logger) log(level Level, msg string, fields ...map[string]interface{}) {
	if levelPriority[level] < levelPriority[l.minLevel] {
		return
	}

	timestamp := time.Now().UTC().Format("2006-01-02T15:04:05.000Z")

	var fieldStr string
	if len(fields) > 0 && fields[0] != nil {
		fieldStr = formatFields(fields[0])
	}

	var scope string
	if l.component != "" {
		scope = fmt.Sprintf(" [%s]", l.component)
	}
	if l.traceID != "" {
		scope += fmt.Sprintf(" (%s)", l.traceID)
	}

	line := fmt.Sprintf("%-5s %s%s %s%s\n", level, timestamp, scope, msg, fieldStr)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.output.Write([]byte(line))
}

// --- Pipeline event helpers ---
// Called by the context fitter and reducer so that request flow reads as a
// consistent event stream across components.

// GatewayCall logs an outgoing completion call.
func (l *Logger) GatewayCall(provider string, messages, maxTokens int) {
	l.Debug("gateway_call", map[string]interface{}{
		"provider":   provider,
		"messages":   messages,
		"max_tokens": maxTokens,
	})
}

// GatewayFailure logs a failed completion call with its classification.
func (l *Logger) GatewayFailure(provider string, kind string, err error) {
	l.Error("gateway_failure", map[string]interface{}{
		"provider": provider,
		"kind":     kind,
		"error":    err.Error(),
	})
}

// ReductionStart logs the decision to summarize an over-budget context.
func (l *Logger) ReductionStart(contextTokens, budgetTokens, chunks int) {
	l.Info("reduction_start", map[string]interface{}{
		"context_tokens": contextTokens,
		"budget_tokens":  budgetTokens,
		"chunks":         chunks,
	})
}

// ChunkSummarized logs the outcome of one chunk summarization.
func (l *Logger) ChunkSummarized(index int, duration time.Duration, err error) {
	fields := map[string]interface{}{
		"chunk":    index,
		"duration": duration.String(),
	}
	if err != nil {
		fields["error"] = err.Error()
		l.Warn("chunk_failed", fields)
	} else {
		l.Debug("chunk_summarized", fields)
	}
}

// ReductionComplete logs the result of a reduction pass.
func (l *Logger) ReductionComplete(chunks, failed, reducedTokens int, stillOverBudget bool) {
	l.Info("reduction_complete", map[string]interface{}{
		"chunks":            chunks,
		"failed":            failed,
		"reduced_tokens":    reducedTokens,
		"still_over_budget": stillOverBudget,
	})
}

// AnswerServed logs a completed answer request.
func (l *Logger) AnswerServed(mode string, duration time.Duration, gatewayCalls int) {
	l.Info("answer_served", map[string]interface{}{
		"mode":          mode,
		"duration":      duration.String(),
		"gateway_calls": gatewayCalls,
	})
}
