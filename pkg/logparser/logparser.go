// Package logparser parses the log4j lines minecraft prints
package logparser

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const timeFormat = "15:04:05"

// Log levels used by minecraft
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
	LevelFatal = "FATAL"
)

// matches "[13:46:33] [main/INFO] [FML]: msg" and "[13:46:33] [Render thread/INFO]: msg"
var lineRegex = regexp.MustCompile(`^\[(\d+:\d+:\d+)\] \[([^\]]+)/([A-Z]+)\](?: \[([^\]]+)\])?: (.*)$`)

// LogLine is a parsed log line
type LogLine struct {
	Time    time.Time
	Thread  string
	Level   string
	Tag     string
	Message string
	Garbage bool
}

func (l LogLine) String() string {
	if l.Garbage {
		return l.Message
	}
	if l.Tag == "" {
		return fmt.Sprintf("[%s] [%s/%s]: %s", l.Time.Format(timeFormat), l.Thread, l.Level, l.Message)
	}
	return fmt.Sprintf(
		"[%s] [%s/%s] [%s]: %s",
		l.Time.Format(timeFormat),
		l.Thread,
		l.Level,
		l.Tag,
		l.Message,
	)
}

// IsProblem returns true for warnings and errors
func (l LogLine) IsProblem() bool {
	switch l.Level {
	case LevelWarn, LevelError, LevelFatal:
		return true
	}
	return false
}

// ParseLine parses a string into a `LogLine`. Lines that do not look like
// log4j output (stack traces, plain prints) are returned as Garbage
func ParseLine(input string) *LogLine {
	input = strings.TrimRight(input, "\r\n")
	found := lineRegex.FindStringSubmatch(input)
	if len(found) == 0 {
		return &LogLine{Garbage: true, Message: input}
	}
	time, err := time.Parse(timeFormat, found[1])
	if err != nil {
		return &LogLine{Garbage: true, Message: input}
	}

	return &LogLine{
		Time:    time,
		Thread:  found[2],
		Level:   found[3],
		Tag:     found[4],
		Message: found[5],
	}
}
