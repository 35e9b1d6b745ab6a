// Package launcher drives the fetch engine and the supervisor with CLI output
package launcher

import (
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/minepkg/minelander/internals/cmdlog"
	"github.com/minepkg/minelander/internals/composer"
	"github.com/minepkg/minelander/internals/downloadmgr"
	"github.com/minepkg/minelander/internals/instances"
	"github.com/minepkg/minelander/internals/minecraft"
	"github.com/minepkg/minelander/internals/mojang"
	"github.com/minepkg/minelander/internals/planner"
	"github.com/minepkg/minelander/internals/supervisor"
)

// Launcher installs and launches versions of one root directory
type Launcher struct {
	Layout   *instances.Layout
	Resolver downloadmgr.VersionResolver
	Planner  *planner.Planner
	Composer *composer.Composer
	Logger   *cmdlog.Logger

	// HTTP overwrites the client of the fetch engines
	HTTP *http.Client
	// Out receives progress and game output
	Out io.Writer
	// NonInteractive disables spinners
	NonInteractive bool
	// Version is the version of minelander
	Version string

	mu     sync.Mutex
	nextID int
}

// New returns a launcher for layout using the online resolver
func New(layout *instances.Layout, logger *cmdlog.Logger, version string) *Launcher {
	resolver := mojang.New(layout)
	p := planner.New(layout, resolver)
	c := composer.New(layout, p)
	c.LauncherVersion = version

	return &Launcher{
		Layout:   layout,
		Resolver: resolver,
		Planner:  p,
		Composer: c,
		Logger:   logger,
		Out:      os.Stdout,
		Version:  version,
	}
}

// id returns a new machine id. Events of different machines never share one
func (l *Launcher) id() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	return l.nextID
}

func (l *Launcher) engine() *downloadmgr.Engine {
	e := downloadmgr.New(l.id(), l.Layout, l.Resolver, l.Planner)
	e.GOOS = l.Planner.Platform.OS
	if l.HTTP != nil {
		e.HTTP = l.HTTP
	}
	return e
}

func (l *Launcher) supervisor(identity minecraft.LaunchAuthData) *supervisor.Supervisor {
	s := supervisor.New(l.id(), l.Layout, l.Planner, l.Composer, identity)
	s.Logger = l.logger()
	return s
}

func (l *Launcher) logger() *cmdlog.Logger {
	if l.Logger == nil {
		return cmdlog.Discard()
	}
	return l.Logger
}

func (l *Launcher) out() io.Writer {
	if l.Out == nil {
		return io.Discard
	}
	return l.Out
}

// Spinner returns a spinner for msg that falls back to plain lines when not in a terminal
func (l *Launcher) Spinner(msg string) *MaybeSpinner {
	s := NewMaybeSpinner(!l.NonInteractive && canSpin(l.out()), l.out())
	s.Msg = msg
	return s
}
