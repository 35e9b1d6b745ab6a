package supervisor

import (
	"github.com/minepkg/minelander/internals/settings"
)

// State is one state of the process supervisor
type State interface {
	Name() string
}

// Idle does nothing. Stepping it blocks until the context is done
type Idle struct{}

// Checking looks for missing files, base descriptors and runtimes
type Checking struct {
	Settings *settings.GameSettings
}

// Launching composes the command line and starts the game
type Launching struct {
	Settings *settings.GameSettings
}

// GettingLogs forwards one output line of the running game per step
type GettingLogs struct {
	Process *Process
}

// Finished is reached after the game exited and all output was read
type Finished struct {
	ExitCode int
}

func (Idle) Name() string        { return "idle" }
func (Checking) Name() string    { return "checking" }
func (Launching) Name() string   { return "launching" }
func (GettingLogs) Name() string { return "running" }
func (Finished) Name() string    { return "finished" }
