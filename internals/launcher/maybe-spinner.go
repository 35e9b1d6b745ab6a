package launcher

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
)

// MaybeSpinner is a spinner that can also just log text
type MaybeSpinner struct {
	Spin    bool
	Spinner *spinner.Spinner
	Msg     string

	out  io.Writer
	last string
}

// Start might start the spinner
func (m *MaybeSpinner) Start() {
	if m.Spin {
		m.Spinner.Suffix = " " + m.Msg
		m.Spinner.Start()
	} else if m.Msg != "" {
		m.println(m.Msg)
	}
}

// Stop will stop the spinner
func (m *MaybeSpinner) Stop() {
	if m.Spin {
		m.Spinner.Stop()
	}
}

// Update will update the spinner text. Without spinner only changed texts are printed
func (m *MaybeSpinner) Update(t string) {
	m.Spinner.Suffix = " " + t

	if !m.Spin && t != m.last {
		m.println(t)
	}
}

func (m *MaybeSpinner) println(t string) {
	m.last = t
	fmt.Fprintln(m.out, t)
}

// NewMaybeSpinner will return a new MaybeSpinner writing to out
func NewMaybeSpinner(spin bool, out io.Writer) *MaybeSpinner {
	s := &MaybeSpinner{
		Spin:    spin,
		Spinner: spinner.New(spinner.CharSets[9], 300*time.Millisecond, spinner.WithWriter(out)),
		out:     out,
	}
	s.Spinner.Prefix = " "
	return s
}

// canSpin returns true if out is an interactive terminal
func canSpin(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok || os.Getenv("CI") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
