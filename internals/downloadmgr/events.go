package downloadmgr

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// EventKind tells what happened during a step
type EventKind uint8

const (
	// EventNone is returned by stepping Idle
	EventNone EventKind = iota
	// EventProgress is emitted while work is left
	EventProgress
	// EventFinished is emitted once with the last step of an operation
	EventFinished
	// EventErrored is emitted when a step failed. The engine is Idle afterwards
	EventErrored
)

func (k EventKind) String() string {
	switch k {
	case EventProgress:
		return "progress"
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
	// ID is the ID of the engine that emitted this event
	ID   int
	Kind EventKind
	// Stage is the name of the state that emitted this event
	Stage   string
	Message string

	// Remaining and Total count tasks of (missing) file downloads
	Remaining int
	Total     int
	// Downloaded and Size count bytes of streamed downloads
	Downloaded int64
	Size       int64

	Err error
}

// Percent returns the progress in percent, 0 if there is nothing to measure
func (e Event) Percent() float64 {
	switch {
	case e.Size > 0:
		return float64(e.Downloaded) / float64(e.Size) * 100
	case e.Total > 0:
		return float64(e.Total-e.Remaining) / float64(e.Total) * 100
	}
	return 0
}

// bytesMessage formats streamed progress like "12 MiB / 40 MiB (30%)"
func bytesMessage(downloaded int64, size int64) string {
	if size <= 0 {
		return humanize.IBytes(uint64(downloaded))
	}
	return fmt.Sprintf(
		"%s / %s (%.0f%%)",
		humanize.IBytes(uint64(downloaded)),
		humanize.IBytes(uint64(size)),
		float64(downloaded)/float64(size)*100,
	)
}
