package mcp

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/standardbeagle/osmtags/internal/config"
)

// DiagnosticLogger handles all diagnostic output for the MCP server.
// In MCP mode everything goes to a file: stdio carries the protocol and must stay clean.
type DiagnosticLogger struct {
	mu       sync.Mutex
	file     *os.File
	logger   zerolog.Logger
	filePath string
	isMCP    bool
}

// NewDiagnosticLogger creates a logger. In MCP mode it writes JSON lines to
// <logDir>/mcp-<timestamp>.log, falling back to ~/.osmtags-mcp-logs when
// logDir cannot be created. An empty logDir uses config.DefaultLogDir.
// In CLI mode it writes human readable lines to stderr.
func NewDiagnosticLogger(isMCP bool, logDir string) *DiagnosticLogger {
	dl := &DiagnosticLogger{isMCP: isMCP}

	if !isMCP {
		dl.logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
			With().Timestamp().Str("component", "mcp").Logger()
		return dl
	}

	if logDir == "" {
		logDir = config.DefaultLogDir()
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		homeDir, herr := os.UserHomeDir()
		if herr != nil {
			homeDir = "."
		}
		logDir = filepath.Join(homeDir, ".osmtags-mcp-logs")
		// Logging is not critical; a failure below disables it
		_ = os.MkdirAll(logDir, 0755)
	}

	timestamp := time.Now().Format("2006-01-02T150405")
	logPath := filepath.Join(logDir, fmt.Sprintf("mcp-%s.log", timestamp))

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		dl.logger = zerolog.New(io.Discard)
		return dl
	}

	dl.file = file
	dl.filePath = logPath
	dl.logger = zerolog.New(file).With().Timestamp().Str("component", "mcp").Logger()
	return dl
}

// Printf logs an informational message.
func (dl *DiagnosticLogger) Printf(format string, v ...interface{}) {
	if dl == nil {
		return
	}
	dl.mu.Lock()
	defer dl.mu.Unlock()
	dl.logger.Info().Msgf(format, v...)
}

// Errorf logs an error. Never to stdout.
func (dl *DiagnosticLogger) Errorf(format string, v ...interface{}) {
	if dl == nil {
		return
	}
	dl.mu.Lock()
	defer dl.mu.Unlock()
	dl.logger.Error().Msgf(format, v...)
}

// ToolCall records one completed tool invocation.
func (dl *DiagnosticLogger) ToolCall(tool, callID string, duration time.Duration, err error) {
	if dl == nil {
		return
	}
	dl.mu.Lock()
	defer dl.mu.Unlock()

	ev := dl.logger.Info()
	if err != nil {
		ev = dl.logger.Warn().Err(err)
	}
	ev.Str("tool", tool).
		Str("call_id", callID).
		Dur("duration", duration).
		Msg("tool call")
}

// Close closes the log file if it's open.
func (dl *DiagnosticLogger) Close() error {
	if dl == nil {
		return nil
	}
	dl.mu.Lock()
	defer dl.mu.Unlock()
	if dl.file != nil {
		err := dl.file.Close()
		dl.file = nil
		dl.logger = zerolog.Nop()
		return err
	}
	return nil
}

// GetLogPath returns the path to the diagnostic log file (if MCP mode)
func (dl *DiagnosticLogger) GetLogPath() string {
	if dl == nil {
		return ""
	}
	return dl.filePath
}

// NoOpLogger is used to suppress all logging
var NoOpLogger = &DiagnosticLogger{
	logger: zerolog.Nop(),
}
