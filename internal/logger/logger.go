// Package logger is the application-wide leveled logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"
)

const (
	module     = "mechadex"
	timeFormat = "2006/01/02 15:04:05"
)

var logger = logging.MustGetLogger(module)

func init() {
	InitLogger(logging.INFO, os.Stderr)
}

// InitLogger routes log output to w, dropping records below level.
func InitLogger(level logging.Level, w io.Writer) {
	backend := logging.NewLogBackend(w, "", 0)
	formatted := logging.NewBackendFormatter(backend, logging.MustStringFormatter(
		`%{time:`+timeFormat+`} %{level:.4s} - %{message}`,
	))
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(level, module)
	logger.SetBackend(leveled)
}

// ParseLevel maps a config value such as "debug" or "warning" to a level,
// falling back to INFO.
func ParseLevel(s string) logging.Level {
	level, err := logging.LogLevel(strings.ToUpper(s))
	if err != nil {
		return logging.INFO
	}
	return level
}

// Debugf logs a formatted debug message.
func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

// Infof logs a formatted info message.
func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

// Warningf logs a formatted warning message.
func Warningf(format string, args ...any) {
	logger.Warningf(format, args...)
}

// Errorf logs a formatted error message.
func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}
