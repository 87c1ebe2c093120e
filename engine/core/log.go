package core

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Logger is a leveled logger prefixing each line with the time since creation.
// A nil *Logger discards everything.
type Logger struct {
	Level LogLevel
	start time.Time

	mu  sync.Mutex
	out io.Writer
}

type LogLevel int

const (
	LogError LogLevel = iota
	LogInfo
	LogVerbose
	LogTrace
)

func NewLogger(level LogLevel, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}
	return &Logger{Level: level, start: time.Now(), out: out}
}

func (l *Logger) printDeltaTime() {
	d := time.Since(l.start)
	sec := int(d.Seconds())
	ms := int(d.Milliseconds()) % 1000
	fmt.Fprintf(l.out, "%d.%03d ", sec, ms)
}

func (l *Logger) Logf(level LogLevel, format string, args ...any) {
	if l == nil || l.out == nil || level > l.Level {
		return
	}
	l.mu.Lock()
	l.printDeltaTime()
	fmt.Fprintf(l.out, format, args...)
	if n := len(format); n == 0 || format[n-1] != '\n' {
		fmt.Fprintln(l.out)
	}
	l.mu.Unlock()
}

func (l *Logger) Errorf(format string, args ...any)   { l.Logf(LogError, format, args...) }
func (l *Logger) Infof(format string, args ...any)    { l.Logf(LogInfo, format, args...) }
func (l *Logger) Verbosef(format string, args ...any) { l.Logf(LogVerbose, format, args...) }
func (l *Logger) Tracef(format string, args ...any)   { l.Logf(LogTrace, format, args...) }

// Enabled reports whether messages at level would be written.
func (l *Logger) Enabled(level LogLevel) bool { return l != nil && l.out != nil && level <= l.Level }
