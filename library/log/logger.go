// Package log is a logging package that provides functions to log messages.
//
// Every sink writes to stderr by default, stdout is reserved for the
// MCP stdio transport.
package log

import (
	"strings"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
)

const loggerName = "searxng-mcp"

var Logger logSDK.Logger

func init() {
	var err error
	if Logger, err = newLogger(logSDK.LevelInfo, ""); err != nil {
		logSDK.Shared.Panic("new logger", zap.Error(err))
	}
}

// Setup replaces the shared logger with one writing at level, additionally
// appending to file when file is not empty.
func Setup(level, file string) error {
	lvl := logSDK.Level(strings.ToLower(strings.TrimSpace(level)))
	if lvl == "" {
		lvl = logSDK.LevelInfo
	}

	logger, err := newLogger(lvl, strings.TrimSpace(file))
	if err != nil {
		return errors.Wrapf(err, "new logger with level %q", lvl)
	}

	Logger = logger
	return nil
}

func newLogger(level logSDK.Level, file string) (logSDK.Logger, error) {
	outputs := []string{"stderr"}
	if file != "" {
		outputs = append(outputs, file)
	}

	logger, err := logSDK.New(
		logSDK.WithName(loggerName),
		logSDK.WithLevel(level),
		logSDK.WithEncoding(logSDK.EncodingConsole),
		logSDK.WithOutputPaths(outputs),
		logSDK.WithErrorOutputPaths([]string{"stderr"}),
	)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return logger, nil
}
