package downloadmgr

import (
	"io"
	"os"

	"github.com/minepkg/minelander/internals/java"
	"github.com/minepkg/minelander/internals/merrors"
	"github.com/minepkg/minelander/internals/mojang"
	"github.com/minepkg/minelander/internals/planner"
)

// State is one state of the fetch engine
type State interface {
	Name() string
}

// Idle does nothing. Stepping it blocks until the context is done
type Idle struct{}

// ListingVersion resolves a version and plans its missing files
type ListingVersion struct {
	Version string
	Kind    mojang.Kind
}

// Downloading downloads the planned files of a version install
type Downloading struct {
	Queue []planner.Task
	Total int
}

// DownloadingMissing downloads files a repair check found missing
type DownloadingMissing struct {
	Queue []planner.Task
	Total int
}

// PreparingRuntimeDownload starts the download of a bundled runtime
type PreparingRuntimeDownload struct {
	Runtime java.Runtime
}

// DownloadingRuntime streams the runtime archive to disk
type DownloadingRuntime struct {
	Runtime java.Runtime
	stream  *stream
}

// ExtractingRuntime unpacks the downloaded runtime archive
type ExtractingRuntime struct {
	Runtime java.Runtime
	Archive string
}

// PreparingSelfUpdate starts the download of a new executable
type PreparingSelfUpdate struct {
	URL string
	// Executable is the path of the running executable
	Executable string
}

// DownloadingSelfUpdate streams the new executable to disk
type DownloadingSelfUpdate struct {
	Target string
	stream *stream
}

func (Idle) Name() string                     { return "idle" }
func (ListingVersion) Name() string           { return "listing version" }
func (Downloading) Name() string              { return "downloading" }
func (DownloadingMissing) Name() string       { return "downloading missing files" }
func (PreparingRuntimeDownload) Name() string { return "preparing java download" }
func (DownloadingRuntime) Name() string       { return "downloading java" }
func (ExtractingRuntime) Name() string        { return "extracting java" }
func (PreparingSelfUpdate) Name() string      { return "preparing update" }
func (DownloadingSelfUpdate) Name() string    { return "downloading update" }

// Progress returns the bytes written so far and the expected size (0 if unknown)
func (s DownloadingRuntime) Progress() (int64, int64) { return s.stream.progress() }

// Progress returns the bytes written so far and the expected size (0 if unknown)
func (s DownloadingSelfUpdate) Progress() (int64, int64) { return s.stream.progress() }

// stream copies a response body to a file, one chunk per step
type stream struct {
	body       io.ReadCloser
	sink       *os.File
	downloaded int64
	total      int64
	buf        []byte
}

func newStream(body io.ReadCloser, sink *os.File, total int64, chunkSize int) *stream {
	if total < 0 {
		total = 0
	}
	return &stream{body: body, sink: sink, total: total, buf: make([]byte, chunkSize)}
}

// next copies one chunk. done is true once the body is fully written
func (s *stream) next() (done bool, err error) {
	n, readErr := s.body.Read(s.buf)
	if n > 0 {
		if _, err := s.sink.Write(s.buf[:n]); err != nil {
			return false, merrors.Io("write "+s.sink.Name(), err)
		}
		s.downloaded += int64(n)
	}
	switch {
	case readErr == io.EOF:
		return true, nil
	case readErr != nil:
		return false, merrors.Network("download", readErr)
	}
	return false, nil
}

// finish closes the body and the file
func (s *stream) finish() error {
	s.body.Close()
	if err := s.sink.Close(); err != nil {
		return merrors.Io("write "+s.sink.Name(), err)
	}
	return nil
}

func (s *stream) progress() (int64, int64) {
	if s == nil {
		return 0, 0
	}
	return s.downloaded, s.total
}

// Abandon releases open connections and files of a state that will not be stepped again
func Abandon(state State) {
	switch s := state.(type) {
	case DownloadingRuntime:
		if s.stream != nil {
			s.stream.finish()
		}
	case DownloadingSelfUpdate:
		if s.stream != nil {
			s.stream.finish()
		}
	}
}
