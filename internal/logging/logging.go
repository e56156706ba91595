// SPDX-License-Identifier: MIT
// Package logging provides the tagged [INFO|DBG|WARN|ERR] log lines used
// throughout the core engines, backed by glog's leveled sink.
//
// The engines never format ANSI color codes themselves; Logf wraps each
// tagged line in escape codes only when NO_COLOR is unset, matching the
// original tool's terminal-aware logging.
package logging

import (
	"fmt"
	"os"

	"github.com/golang/glog"
)

// Tag identifies the severity class used by spec error-handling design.
type Tag string

const (
	// Info marks routine progress lines.
	Info Tag = "INFO"
	// Debug marks verbose diagnostic lines, hidden unless -v is raised.
	Debug Tag = "DBG"
	// Warn marks recoverable conditions (non-convergence, best-effort results).
	Warn Tag = "WARN"
	// Error marks stage failures.
	Error Tag = "ERR"
)

var colorCodes = map[Tag]string{
	Info:  "\033[36m",
	Debug: "\033[90m",
	Warn:  "\033[33m",
	Error: "\033[31m",
}

const resetCode = "\033[0m"

func colorEnabled() bool {
	_, disabled := os.LookupEnv("NO_COLOR")
	return !disabled
}

// Logf emits a single tagged line: "[TAG] message".
func Logf(tag Tag, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	line := fmt.Sprintf("[%s] %s", tag, msg)
	if colorEnabled() {
		if code, ok := colorCodes[tag]; ok {
			line = code + line + resetCode
		}
	}

	switch tag {
	case Error:
		glog.Error(line)
	case Warn:
		glog.Warning(line)
	case Debug:
		glog.V(1).Info(line)
	default:
		glog.Info(line)
	}
}

// Infof logs an INFO-tagged progress line.
func Infof(format string, args ...interface{}) { Logf(Info, format, args...) }

// Debugf logs a DBG-tagged diagnostic line.
func Debugf(format string, args ...interface{}) { Logf(Debug, format, args...) }

// Warnf logs a WARN-tagged recoverable-condition line.
func Warnf(format string, args ...interface{}) { Logf(Warn, format, args...) }

// Errorf logs an ERR-tagged stage-failure line.
func Errorf(format string, args ...interface{}) { Logf(Error, format, args...) }
