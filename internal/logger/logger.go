package logger

import (
	"fmt"
	"strings"

	"github.com/cpmech/gosl/io"
)

// Level is the severity of a log message
type Level int

const (
	Trace Level = iota
	Info
	Success
	Warn
	Error
	Off
)

var levelNames = map[Level]string{
	Trace:   "TRACE",
	Info:    "INFO",
	Success: "OK",
	Warn:    "WARN",
	Error:   "ERROR",
}

func (l Level) String() string {
	if s, ok := levelNames[l]; ok {
		return s
	}
	return "OFF"
}

// ParseLevel converts a level name (case insensitive) to a Level.
// Unknown names map to Info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace", "debug":
		return Trace
	case "success", "ok":
		return Success
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	case "off", "none", "quiet":
		return Off
	}
	return Info
}

// Sink receives formatted messages instead of the console
type Sink func(level Level, tag, msg string)

// printers maps each level to its gosl color printer
var printers = map[Level]func(string, ...interface{}){
	Trace:   io.Pfgrey,
	Info:    io.Pf,
	Success: io.Pfgreen,
	Warn:    io.Pfyel,
	Error:   io.Pfred,
}

type state struct {
	level Level
	sink  Sink
}

// Logger writes colored, tagged messages. Child loggers created with With
// share the level and sink of their parent.
type Logger struct {
	tag string
	st  *state
}

// New creates a logger printing messages at or above level
func New(level Level) *Logger {
	return &Logger{st: &state{level: level}}
}

// Discard returns a logger that drops every message
func Discard() *Logger {
	return New(Off)
}

// With returns a child logger whose messages carry tag
func (l *Logger) With(tag string) *Logger {
	if l.tag != "" {
		tag = l.tag + "/" + tag
	}
	return &Logger{tag: tag, st: l.st}
}

// SetLevel changes the threshold for this logger and all its children
func (l *Logger) SetLevel(level Level) { l.st.level = level }

// Level returns the current threshold
func (l *Logger) Level() Level { return l.st.level }

// SetSink redirects output; nil restores the console
func (l *Logger) SetSink(s Sink) { l.st.sink = s }

func (l *Logger) emit(level Level, format string, args ...interface{}) {
	if l == nil || level < l.st.level {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if l.st.sink != nil {
		l.st.sink(level, l.tag, msg)
		return
	}
	if l.tag != "" {
		printers[level]("[%s][%s] %s\n", level, l.tag, msg)
		return
	}
	printers[level]("[%s] %s\n", level, msg)
}

func (l *Logger) Tracef(format string, args ...interface{})   { l.emit(Trace, format, args...) }
func (l *Logger) Infof(format string, args ...interface{})    { l.emit(Info, format, args...) }
func (l *Logger) Successf(format string, args ...interface{}) { l.emit(Success, format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})    { l.emit(Warn, format, args...) }
func (l *Logger) Errorf(format string, args ...interface{})   { l.emit(Error, format, args...) }

// Record is a captured message
type Record struct {
	Level Level
	Tag   string
	Msg   string
}

// Recorder collects messages, mostly for tests
type Recorder struct {
	Records []Record
}

// Sink returns a Sink appending to the recorder
func (r *Recorder) Sink() Sink {
	return func(level Level, tag, msg string) {
		r.Records = append(r.Records, Record{level, tag, msg})
	}
}

// Count returns how many records have the given level
func (r *Recorder) Count(level Level) int {
	n := 0
	for _, rec := range r.Records {
		if rec.Level == level {
			n++
		}
	}
	return n
}

// Contains reports whether any message at level contains substr
func (r *Recorder) Contains(level Level, substr string) bool {
	for _, rec := range r.Records {
		if rec.Level == level && strings.Contains(rec.Msg, substr) {
			return true
		}
	}
	return false
}
