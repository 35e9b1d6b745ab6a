package supervisor

import (
	"fmt"

	"github.com/minepkg/minelander/internals/java"
	"github.com/minepkg/minelander/internals/merrors"
	"github.com/minepkg/minelander/internals/planner"
	"github.com/minepkg/minelander/pkg/logparser"
)

// EventKind tells what happened during a step
type EventKind uint8

const (
	// EventNone is returned by stepping Idle or Finished
	EventNone EventKind = iota
	// EventChecked is emitted when nothing is missing
	EventChecked
	// EventMissing is emitted when something has to be downloaded first. Missing is set
	EventMissing
	// EventStarted is emitted once the game runs. Process is set
	EventStarted
	// EventLog carries one output line of the game
	EventLog
	// EventFinished is emitted after the game exited
	EventFinished
	// EventErrored is emitted when a step failed. The supervisor is Idle afterwards
	EventErrored
)

func (k EventKind) String() string {
	switch k {
	case EventChecked:
		return "checked"
	case EventMissing:
		return "missing"
	case EventStarted:
		return "started"
	case EventLog:
		return "log"
	case EventFinished:
		return "finished"
	case EventErrored:
		return "errored"
	default:
		return "none"
	}
}

// Event is the progress report of a single step
type Event struct {
	// ID is the ID of the supervisor that emitted this event
	ID      int
	Kind    EventKind
	Stage   string
	Message string

	Missing *Missing
	Process *Process
	Line    *logparser.LogLine
	// Stderr is set if Line was printed to stderr
	Stderr   bool
	ExitCode int

	Err error
}

// MissingReason is what a check found missing
type MissingReason uint8

const (
	// MissingFiles means version files have to be downloaded (Tasks)
	MissingFiles MissingReason = iota + 1
	// MissingBaseDescriptor means the version inherits from a version that is not installed (BaseID)
	MissingBaseDescriptor
	// MissingRuntime means a bundled java runtime is not installed (Runtime)
	MissingRuntime
)

// Missing describes what has to be fetched before the game can launch
type Missing struct {
	Reason  MissingReason
	Tasks   []planner.Task
	BaseID  string
	Runtime java.Runtime
}

func (m *Missing) Error() string {
	switch m.Reason {
	case MissingFiles:
		return fmt.Sprintf("%d files are missing", len(m.Tasks))
	case MissingBaseDescriptor:
		return fmt.Sprintf("base version %s is not installed", m.BaseID)
	case MissingRuntime:
		return m.Runtime.DisplayName() + " is not installed"
	}
	return "something is missing"
}

// Err wraps m as a remediable error
func (m *Missing) Err() error {
	return merrors.MissingDependency("check", m)
}
