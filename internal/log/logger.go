// Package log provides a small leveled logger that writes to stderr. Menu hosts
// treat stdout as the rendered menu, so diagnostics must never go there.
package log

import (
	"fmt"
	"os"
	"sync"
	"time"
)

type Level int

const (
	LevelNone    Level = iota // Disables logging.
	LevelError                // Failures that abort the current invocation.
	LevelWarning              // Recoverable conditions, such as missing telemetry fields.
	LevelInfo                 // Major events.
	LevelDebug                // Request/response detail.
)

var globalLogLevel Level
var logMutex sync.Mutex

var labels = map[Level]string{
	LevelDebug:   "[debug]",
	LevelInfo:    "[info ]",
	LevelWarning: "[warn ]",
	LevelError:   "[error]",
}

func SetLevel(level Level) {
	logMutex.Lock()
	defer logMutex.Unlock()
	globalLogLevel = level
}

// SetLevelFromEnv enables debug output when the named environment variable is
// set to anything other than "false" or "0".
func SetLevelFromEnv(name string) {
	if v, ok := os.LookupEnv(name); ok && v != "false" && v != "0" {
		SetLevel(LevelDebug)
	}
}

func logLevel() Level {
	logMutex.Lock()
	defer logMutex.Unlock()
	return globalLogLevel
}

func log(level Level, format string, a ...interface{}) {
	if level <= logLevel() {
		msg := fmt.Sprintf("%s %s ", time.Now().Format(time.RFC3339), labels[level])
		msg += fmt.Sprintf(format, a...)
		fmt.Fprintln(os.Stderr, msg)
	}
}

func Debug(format string, a ...interface{}) {
	log(LevelDebug, format, a...)
}
func Info(format string, a ...interface{}) {
	log(LevelInfo, format, a...)
}
func Warning(format string, a ...interface{}) {
	log(LevelWarning, format, a...)
}
func Error(format string, a ...interface{}) {
	log(LevelError, format, a...)
}
