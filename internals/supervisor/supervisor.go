// Package supervisor implements the state machine that checks, launches and
// watches the game process
package supervisor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/minepkg/minelander/internals/cmdlog"
	"github.com/minepkg/minelander/internals/composer"
	"github.com/minepkg/minelander/internals/instances"
	"github.com/minepkg/minelander/internals/java"
	"github.com/minepkg/minelander/internals/merrors"
	"github.com/minepkg/minelander/internals/minecraft"
	"github.com/minepkg/minelander/internals/mojang"
	"github.com/minepkg/minelander/internals/planner"
	"github.com/minepkg/minelander/internals/settings"
	"github.com/minepkg/minelander/pkg/logparser"
)

// Supervisor steps the launch state machine
type Supervisor struct {
	ID       int
	Layout   *instances.Layout
	Planner  *planner.Planner
	Composer *composer.Composer
	Identity minecraft.LaunchAuthData
	// Logger receives warnings of best effort steps. May be nil
	Logger *cmdlog.Logger
}

// New returns a supervisor that launches as identity
func New(id int, layout *instances.Layout, p *planner.Planner, c *composer.Composer, identity minecraft.LaunchAuthData) *Supervisor {
	return &Supervisor{
		ID:       id,
		Layout:   layout,
		Planner:  p,
		Composer: c,
		Identity: identity,
		Logger:   cmdlog.Discard(),
	}
}

// Step advances the machine by one unit of work. Failures return an
// EventErrored event and Idle. Stepping Idle or Finished blocks until ctx is done
func (s *Supervisor) Step(ctx context.Context, state State) (Event, State) {
	switch st := state.(type) {
	case Checking:
		return s.stepChecking(ctx, st)
	case Launching:
		return s.stepLaunching(st)
	case GettingLogs:
		return s.stepLogs(ctx, st)
	default:
		<-ctx.Done()
		return Event{ID: s.ID, Kind: EventNone, Stage: state.Name()}, state
	}
}

// Drive steps state until the supervisor is idle or finished. It returns the
// error of an EventErrored or EventMissing event. onEvent may be nil.
// Cancelling ctx kills a running game
func (s *Supervisor) Drive(ctx context.Context, state State, onEvent func(Event)) error {
	var lastErr error
	for {
		switch state.(type) {
		case Idle, Finished:
			return lastErr
		}
		if err := ctx.Err(); err != nil {
			if logs, ok := state.(GettingLogs); ok {
				if killErr := logs.Process.Kill(); killErr != nil {
					return killErr
				}
				go logs.Process.discard()
			}
			return err
		}
		var ev Event
		ev, state = s.Step(ctx, state)
		switch ev.Kind {
		case EventErrored:
			lastErr = ev.Err
		case EventMissing:
			lastErr = ev.Missing.Err()
		}
		if onEvent != nil {
			onEvent(ev)
		}
	}
}

func (s *Supervisor) event(state State, kind EventKind, msg string) Event {
	return Event{ID: s.ID, Kind: kind, Stage: state.Name(), Message: msg}
}

func (s *Supervisor) fail(state State, err error) (Event, State) {
	ev := s.event(state, EventErrored, err.Error())
	ev.Err = err
	return ev, Idle{}
}

func (s *Supervisor) missing(state State, m *Missing) (Event, State) {
	ev := s.event(state, EventMissing, m.Error())
	ev.Missing = m
	ev.Err = m.Err()
	return ev, Idle{}
}

func (s *Supervisor) logger() *cmdlog.Logger {
	if s.Logger == nil {
		return cmdlog.Discard()
	}
	return s.Logger
}

// stepChecking runs the full repair check. The first missing thing short circuits
func (s *Supervisor) stepChecking(ctx context.Context, st Checking) (Event, State) {
	if st.Settings == nil || st.Settings.Version == "" {
		return s.fail(st, merrors.NotFound("check", errors.New("no version selected")))
	}
	m, err := s.Check(ctx, st.Settings)
	if err != nil {
		return s.fail(st, err)
	}
	if m != nil {
		return s.missing(st, m)
	}
	return s.event(st, EventChecked, st.Settings.Version+" is ready"), Launching{Settings: st.Settings}
}

// Check returns what has to be fetched before gs can be launched, nil if nothing
func (s *Supervisor) Check(ctx context.Context, gs *settings.GameSettings) (*Missing, error) {
	tree, err := mojang.LoadTree(s.Layout, gs.Version)
	if err != nil {
		var baseErr *mojang.MissingBaseError
		switch {
		case errors.As(err, &baseErr):
			return &Missing{Reason: MissingBaseDescriptor, BaseID: baseErr.ID}, nil
		case errors.Is(err, fs.ErrNotExist):
			return nil, merrors.NotFound("check", fmt.Errorf("version %s is not installed", gs.Version))
		}
		return nil, err
	}
	desc := tree.Resolved()

	tasks, warnings := s.Planner.Repair(ctx, desc)
	for _, warning := range warnings {
		s.logger().Warn("Could not check assets: " + warning.Error())
	}
	if len(tasks) != 0 {
		return &Missing{Reason: MissingFiles, Tasks: tasks}, nil
	}

	var r java.Runtime
	switch gs.Java.Kind {
	case java.Bundled:
		r = gs.Java.Runtime
	case java.Automatic:
		r = java.AutomaticRuntime(desc.RequiredJava())
	default:
		return nil, nil
	}
	if !r.Installed(s.Layout.RuntimeDir(), s.Planner.Platform.OS) {
		return &Missing{Reason: MissingRuntime, Runtime: r}, nil
	}
	return nil, nil
}

func (s *Supervisor) stepLaunching(st Launching) (Event, State) {
	inv, err := s.Composer.ComposeVersion(st.Settings.Version, st.Settings, s.Identity)
	if err != nil {
		return s.fail(st, err)
	}
	s.logger().Debug("Launching: " + inv.String())

	proc, err := start(inv.Cmd())
	if err != nil {
		return s.fail(st, err)
	}
	ev := s.event(st, EventStarted, fmt.Sprintf("started %s (pid %d)", st.Settings.Version, proc.Pid()))
	ev.Process = proc
	return ev, GettingLogs{Process: proc}
}

// stepLogs forwards one line. Lines of one stream keep their order,
// stdout and stderr are interleaved as they arrive
func (s *Supervisor) stepLogs(ctx context.Context, st GettingLogs) (Event, State) {
	select {
	case line, ok := <-st.Process.lines:
		if !ok {
			code, err := st.Process.exitCode()
			if err != nil {
				return s.fail(st, err)
			}
			ev := s.event(st, EventFinished, fmt.Sprintf("game exited with code %d", code))
			ev.ExitCode = code
			return ev, Finished{ExitCode: code}
		}
		ev := s.event(st, EventLog, line.text)
		ev.Line = logparser.ParseLine(line.text)
		ev.Stderr = line.stderr
		return ev, st
	case <-ctx.Done():
		return s.event(st, EventNone, ""), st
	}
}
