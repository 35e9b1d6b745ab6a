// Package downloadmgr implements the fetch engine: a state machine that downloads
// version files, java runtimes and self updates one step at a time
package downloadmgr

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/minepkg/minelander/internals/instances"
	"github.com/minepkg/minelander/internals/java"
	"github.com/minepkg/minelander/internals/merrors"
	"github.com/minepkg/minelander/internals/minecraft"
	"github.com/minepkg/minelander/internals/mojang"
	"github.com/minepkg/minelander/internals/ownhttp"
	"github.com/minepkg/minelander/internals/planner"
)

// DefaultChunkSize is the amount of bytes streamed per step
const DefaultChunkSize = 256 * 1024

// MaxRequestsPerSecond limits the download rate of many small files (assets)
const MaxRequestsPerSecond = 50

// VersionResolver resolves and caches version descriptors
type VersionResolver interface {
	ResolveVersion(ctx context.Context, id string, kind mojang.Kind) (*minecraft.VersionDescriptor, error)
}

// Engine steps the fetch state machine. Downloads happen strictly one at a time.
// Multiple engines can run at the same time, their events carry the engine ID
type Engine struct {
	ID        int
	HTTP      *http.Client
	Layout    *instances.Layout
	Resolver  VersionResolver
	Planner   *planner.Planner
	GOOS      string
	ChunkSize int
}

// New returns an engine for the current platform
func New(id int, layout *instances.Layout, resolver VersionResolver, p *planner.Planner) *Engine {
	return &Engine{
		ID:        id,
		HTTP:      ownhttp.NewThrottled(MaxRequestsPerSecond, 10),
		Layout:    layout,
		Resolver:  resolver,
		Planner:   p,
		GOOS:      runtime.GOOS,
		ChunkSize: DefaultChunkSize,
	}
}

// Step advances the machine by one unit of work. Every failure returns an
// EventErrored event and Idle. Stepping Idle blocks until ctx is done
func (e *Engine) Step(ctx context.Context, state State) (Event, State) {
	switch s := state.(type) {
	case ListingVersion:
		return e.stepListing(ctx, s)
	case Downloading:
		ev, next, rest := e.stepQueue(ctx, s, s.Queue, s.Total)
		if rest != nil {
			return ev, Downloading{Queue: rest, Total: s.Total}
		}
		return ev, next
	case DownloadingMissing:
		ev, next, rest := e.stepQueue(ctx, s, s.Queue, s.Total)
		if rest != nil {
			return ev, DownloadingMissing{Queue: rest, Total: s.Total}
		}
		return ev, next
	case PreparingRuntimeDownload:
		return e.stepPrepareRuntime(ctx, s)
	case DownloadingRuntime:
		return e.stepRuntime(s)
	case ExtractingRuntime:
		if err := java.Extract(s.Archive, e.Layout.RuntimeDir(), s.Runtime); err != nil {
			return e.fail(s, err)
		}
		return e.event(s, EventFinished, s.Runtime.DisplayName()+" installed"), Idle{}
	case PreparingSelfUpdate:
		return e.stepPrepareSelfUpdate(ctx, s)
	case DownloadingSelfUpdate:
		return e.stepSelfUpdate(s)
	default:
		<-ctx.Done()
		return Event{ID: e.ID, Kind: EventNone, Stage: Idle{}.Name()}, Idle{}
	}
}

// Drive steps state until the engine is idle again and returns the error of
// an EventErrored event (if any). onEvent may be nil
func (e *Engine) Drive(ctx context.Context, state State, onEvent func(Event)) error {
	var lastErr error
	for {
		if _, idle := state.(Idle); idle {
			return lastErr
		}
		if err := ctx.Err(); err != nil {
			Abandon(state)
			return err
		}
		var ev Event
		ev, state = e.Step(ctx, state)
		if ev.Kind == EventErrored {
			lastErr = ev.Err
		}
		if onEvent != nil {
			onEvent(ev)
		}
	}
}

func (e *Engine) event(state State, kind EventKind, msg string) Event {
	return Event{ID: e.ID, Kind: kind, Stage: state.Name(), Message: msg}
}

func (e *Engine) fail(state State, err error) (Event, State) {
	ev := e.event(state, EventErrored, err.Error())
	ev.Err = err
	return ev, Idle{}
}

func (e *Engine) stepListing(ctx context.Context, s ListingVersion) (Event, State) {
	desc, err := e.Resolver.ResolveVersion(ctx, s.Version, s.Kind)
	if err != nil {
		return e.fail(s, err)
	}
	tree, err := mojang.LoadTree(e.Layout, desc.ID)
	if err != nil {
		return e.fail(s, err)
	}
	tasks, err := e.Planner.Plan(ctx, tree.Resolved())
	if err != nil {
		return e.fail(s, err)
	}

	ev := e.event(s, EventProgress, fmt.Sprintf("%s needs %d files", desc.ID, len(tasks)))
	ev.Remaining, ev.Total = len(tasks), len(tasks)
	return ev, Downloading{Queue: tasks, Total: len(tasks)}
}

// stepQueue downloads the first task of queue. rest is nil once the queue is done
func (e *Engine) stepQueue(ctx context.Context, s State, queue []planner.Task, total int) (Event, State, []planner.Task) {
	if len(queue) == 0 {
		ev := e.event(s, EventFinished, "Nothing to download")
		ev.Total = total
		return ev, Idle{}, nil
	}

	task, rest := queue[0], queue[1:]
	if task.URL != "" {
		if err := e.fetch(ctx, task); err != nil {
			ev, next := e.fail(s, err)
			return ev, next, nil
		}
	}

	if len(rest) == 0 {
		ev := e.event(s, EventFinished, fmt.Sprintf("Downloaded %d files", total))
		ev.Total = total
		return ev, Idle{}, nil
	}
	ev := e.event(s, EventProgress, fmt.Sprintf("%d files remaining", len(rest)))
	ev.Remaining, ev.Total = len(rest), total
	return ev, s, rest
}

// fetch downloads a task and unpacks it if it is a natives staging jar
func (e *Engine) fetch(ctx context.Context, task planner.Task) error {
	item := &HTTPItem{Client: e.HTTP, URL: task.URL, Target: task.Path}
	if err := item.Download(ctx); err != nil {
		return err
	}
	if instances.IsNativesStaging(task.Path) {
		return extractNatives(task.Path)
	}
	return nil
}

func (e *Engine) stepPrepareRuntime(ctx context.Context, s PreparingRuntimeDownload) (Event, State) {
	url, err := java.DownloadURL(s.Runtime, e.GOOS)
	if err != nil {
		return e.fail(s, err)
	}
	res, err := open(ctx, e.HTTP, url)
	if err != nil {
		return e.fail(s, err)
	}
	sink, err := createTarget(java.ArchivePath(s.Runtime, e.Layout.RuntimeDir(), e.GOOS))
	if err != nil {
		res.Body.Close()
		return e.fail(s, err)
	}

	next := DownloadingRuntime{Runtime: s.Runtime, stream: newStream(res.Body, sink, res.ContentLength, e.chunkSize())}
	ev := e.event(s, EventProgress, "Downloading "+s.Runtime.DisplayName())
	ev.Size = next.stream.total
	return ev, next
}

func (e *Engine) stepRuntime(s DownloadingRuntime) (Event, State) {
	done, err := s.stream.next()
	if err != nil {
		s.stream.finish()
		return e.fail(s, err)
	}
	downloaded, size := s.stream.progress()
	if !done {
		ev := e.event(s, EventProgress, bytesMessage(downloaded, size))
		ev.Downloaded, ev.Size = downloaded, size
		return ev, s
	}
	if err := s.stream.finish(); err != nil {
		return e.fail(s, err)
	}

	next := ExtractingRuntime{Runtime: s.Runtime, Archive: s.stream.sink.Name()}
	ev := e.event(s, EventProgress, "Extracting "+s.Runtime.DisplayName())
	ev.Downloaded, ev.Size = downloaded, size
	return ev, next
}

// SelfUpdateTarget returns the path a new version of executable is downloaded to
func SelfUpdateTarget(executable string) string {
	return strings.TrimSuffix(executable, filepath.Ext(executable)) + ".new"
}

func (e *Engine) stepPrepareSelfUpdate(ctx context.Context, s PreparingSelfUpdate) (Event, State) {
	res, err := open(ctx, e.HTTP, s.URL)
	if err != nil {
		return e.fail(s, err)
	}
	target := SelfUpdateTarget(s.Executable)
	sink, err := createTarget(target)
	if err != nil {
		res.Body.Close()
		return e.fail(s, err)
	}

	next := DownloadingSelfUpdate{Target: target, stream: newStream(res.Body, sink, res.ContentLength, e.chunkSize())}
	ev := e.event(s, EventProgress, "Downloading update")
	ev.Size = next.stream.total
	return ev, next
}

func (e *Engine) stepSelfUpdate(s DownloadingSelfUpdate) (Event, State) {
	done, err := s.stream.next()
	if err != nil {
		s.stream.finish()
		return e.fail(s, err)
	}
	downloaded, size := s.stream.progress()
	if !done {
		ev := e.event(s, EventProgress, bytesMessage(downloaded, size))
		ev.Downloaded, ev.Size = downloaded, size
		return ev, s
	}
	if err := s.stream.finish(); err != nil {
		return e.fail(s, err)
	}
	if e.GOOS != "windows" {
		if err := os.Chmod(s.Target, 0755); err != nil {
			return e.fail(s, merrors.Io("mark update executable", err))
		}
	}

	ev := e.event(s, EventFinished, "Update downloaded")
	ev.Downloaded, ev.Size = downloaded, size
	return ev, Idle{}
}

func (e *Engine) chunkSize() int {
	if e.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	return e.ChunkSize
}
