package cmdlog

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/jwalton/gchalk"
	"github.com/mattn/go-isatty"
)

// Logger loggs pretty stuff to the console
type Logger struct {
	out       io.Writer
	emojis    bool
	indention int
	// Verbose enables Debug output
	Verbose bool
}

// helper for indention
func (l *Logger) println(a string) {
	fmt.Fprintln(l.out, strings.Repeat(" ", l.indention)+a)
}

func (l *Logger) sprintEmoji(e string) string {
	if l.emojis {
		return e + " "
	}
	return ""
}

// Headline prints a cyan bold line
func (l *Logger) Headline(s string) {
	fmt.Fprintln(l.out, gchalk.WithBold().Cyan(s))
}

// Info prints a "normal" line
func (l *Logger) Info(s string) {
	l.println(s)
}

// Infof is Info with formatting
func (l *Logger) Infof(format string, a ...interface{}) {
	l.println(fmt.Sprintf(format, a...))
}

// Log prints a gray line
func (l *Logger) Log(s string) {
	l.println(gchalk.Gray(s))
}

// Debug prints only when Verbose is set
func (l *Logger) Debug(s string) {
	if !l.Verbose {
		return
	}
	l.println(gchalk.Dim("[debug] " + s))
}

// Warn will print a warning
func (l *Logger) Warn(s string) {
	fmt.Fprintln(l.out, l.sprintEmoji("⚠️ ")+gchalk.WithBold().Yellow(s))
}

// Error prints the given message prefixed with "Error: ". It does not exit
func (l *Logger) Error(s string) {
	fmt.Fprintln(l.out, l.sprintEmoji("💣")+gchalk.WithBold().Red("Error: ")+gchalk.Bold(s))
}

// Fail will print the given message and then exit 1
func (l *Logger) Fail(s string) {
	l.Error(s)
	os.Exit(1)
}

// Writer returns the underlying output
func (l *Logger) Writer() io.Writer {
	return l.out
}

// NewTask returns a new Task logger
func (l *Logger) NewTask(end int) *Task {
	logger := *l
	logger.indention = 2
	return &Task{&logger, 0, end}
}

// New returns a new Logger writing to stdout
func New() *Logger {
	return NewWithWriter(os.Stdout)
}

// NewWithWriter returns a Logger writing to w
func NewWithWriter(w io.Writer) *Logger {
	emojis := runtime.GOOS != "windows"

	// disable color for CI and anything that is not a terminal
	if os.Getenv("CI") != "" || !isTerminal(w) {
		emojis = false
		gchalk.SetLevel(gchalk.LevelNone)
	}
	return &Logger{out: w, emojis: emojis}
}

// Discard returns a Logger that prints nothing
func Discard() *Logger {
	return &Logger{out: io.Discard}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Task logs but with progress
type Task struct {
	*Logger
	current int
	end     int
}

// Step prints progress
func (l *Task) Step(e string, s string) {
	l.current++
	text := gchalk.Cyan(fmt.Sprintf(
		"[%d / %d] %s%s",
		l.current,
		l.end,
		l.sprintEmoji(e),
		s,
	))

	// step headlines have no indentation
	fmt.Fprintln(l.out, text)
}
