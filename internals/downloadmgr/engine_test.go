package downloadmgr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	archiver "github.com/mholt/archiver/v3"
	"github.com/minepkg/minelander/internals/instances"
	"github.com/minepkg/minelander/internals/java"
	"github.com/minepkg/minelander/internals/merrors"
	"github.com/minepkg/minelander/internals/minecraft"
	"github.com/minepkg/minelander/internals/mojang"
	"github.com/minepkg/minelander/internals/planner"
)

// rewriteTransport sends every request to the test server, keeping the path
type rewriteTransport struct {
	target *url.URL
}

func (r *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = r.target.Scheme
	req.URL.Host = r.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

// newTestEngine serves files from the given path -> content map
func newTestEngine(t *testing.T, files map[string][]byte) (*Engine, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		content, ok := files[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write(content)
	}))
	t.Cleanup(srv.Close)

	target, _ := url.Parse(srv.URL)
	layout := instances.New(t.TempDir())
	e := &Engine{
		ID:        7,
		HTTP:      &http.Client{Transport: &rewriteTransport{target}},
		Layout:    layout,
		GOOS:      "linux",
		ChunkSize: 8,
	}
	return e, srv
}

// nativesJar returns a zip containing liblwjgl.so
func nativesJar(t *testing.T) []byte {
	t.Helper()
	dir := t.TempDir()
	so := filepath.Join(dir, "liblwjgl.so")
	if err := os.WriteFile(so, []byte("ELF"), 0644); err != nil {
		t.Fatal(err)
	}
	jar := filepath.Join(dir, "natives.zip")
	if err := archiver.Archive([]string{so}, jar); err != nil {
		t.Fatal(err)
	}
	buf, err := os.ReadFile(jar)
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

func collect(t *testing.T, e *Engine, state State) ([]Event, error) {
	t.Helper()
	events := []Event{}
	err := e.Drive(context.Background(), state, func(ev Event) {
		events = append(events, ev)
	})
	return events, err
}

func TestEngine_Downloading(t *testing.T) {
	e, srv := newTestEngine(t, map[string][]byte{
		"/lib.jar":     []byte("library"),
		"/natives.jar": nativesJar(t),
	})
	staging := e.Layout.NativesStagingPath("1.8.9")
	libPath := e.Layout.LibraryPath("a/b/1/b-1.jar")

	// existing files are overwritten
	if err := os.MkdirAll(filepath.Dir(libPath), os.ModePerm); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(libPath, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	tasks := []planner.Task{
		{Path: libPath, URL: srv.URL + "/lib.jar"},
		{Path: staging, URL: srv.URL + "/natives.jar"},
	}
	events, err := collect(t, e, Downloading{Queue: tasks, Total: len(tasks)})
	if err != nil {
		t.Fatal(err)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %+v", events)
	}
	if events[0].Kind != EventProgress || events[0].Remaining != 1 || events[0].Percent() != 50 {
		t.Errorf("unexpected first event %+v", events[0])
	}
	if events[1].Kind != EventFinished || events[1].ID != 7 {
		t.Errorf("unexpected last event %+v", events[1])
	}

	if content, _ := os.ReadFile(libPath); string(content) != "library" {
		t.Errorf("library was not overwritten: %q", content)
	}
	if _, err := os.Stat(staging); !os.IsNotExist(err) {
		t.Error("natives staging jar still exists")
	}
	if _, err := os.Stat(filepath.Join(e.Layout.NativesDir("1.8.9"), "liblwjgl.so")); err != nil {
		t.Errorf("natives were not extracted: %v", err)
	}
}

func TestEngine_DownloadingMissing_error(t *testing.T) {
	e, srv := newTestEngine(t, map[string][]byte{"/a": []byte("a")})
	tasks := []planner.Task{
		{Path: filepath.Join(e.Layout.GlobalDir, "a"), URL: srv.URL + "/a"},
		{Path: filepath.Join(e.Layout.GlobalDir, "b"), URL: srv.URL + "/b"},
		{Path: filepath.Join(e.Layout.GlobalDir, "c"), URL: srv.URL + "/a"},
	}

	ev, state := e.Step(context.Background(), DownloadingMissing{Queue: tasks, Total: 3})
	if ev.Kind != EventProgress || ev.Stage != "downloading missing files" {
		t.Fatalf("unexpected event %+v", ev)
	}
	ev, state = e.Step(context.Background(), state)
	if ev.Kind != EventErrored || !merrors.Is(ev.Err, merrors.KindNetwork) {
		t.Fatalf("expected a network error, got %+v", ev)
	}
	if _, ok := state.(Idle); !ok {
		t.Fatalf("expected Idle after an error, got %T", state)
	}
	if _, err := os.Stat(tasks[2].Path); !os.IsNotExist(err) {
		t.Error("the engine continued after an error")
	}
}

func TestEngine_emptyQueue(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	ev, state := e.Step(context.Background(), Downloading{})
	if ev.Kind != EventFinished {
		t.Errorf("expected finished, got %+v", ev)
	}
	if _, ok := state.(Idle); !ok {
		t.Errorf("expected Idle, got %T", state)
	}
}

func TestEngine_Idle(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ev, state := e.Step(ctx, Idle{})
	if ev.Kind != EventNone {
		t.Errorf("idle emitted %+v", ev)
	}
	if _, ok := state.(Idle); !ok {
		t.Errorf("expected Idle, got %T", state)
	}
}

func TestEngine_runtime(t *testing.T) {
	src := t.TempDir()
	jre := filepath.Join(src, "jdk-21.0.3+9-jre")
	if err := os.MkdirAll(filepath.Join(jre, "bin"), os.ModePerm); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(jre, "bin", "java"), []byte(strings.Repeat("x", 100)), 0755); err != nil {
		t.Fatal(err)
	}
	archive := filepath.Join(src, "jre.tar.gz")
	if err := archiver.Archive([]string{jre}, archive); err != nil {
		t.Fatal(err)
	}
	buf, err := os.ReadFile(archive)
	if err != nil {
		t.Fatal(err)
	}

	url, _ := java.DownloadURL(java.Java21, "linux")
	path := url[strings.Index(url, "/adoptium"):]
	// the server sees the unescaped path
	path = strings.ReplaceAll(path, "%2B", "+")
	e, _ := newTestEngine(t, map[string][]byte{path: buf})

	events, err := collect(t, e, PreparingRuntimeDownload{Runtime: java.Java21})
	if err != nil {
		t.Fatal(err)
	}

	last := events[len(events)-1]
	if last.Kind != EventFinished {
		t.Fatalf("expected finished, got %+v", last)
	}
	sawBytes := false
	for _, ev := range events {
		if ev.Stage == "downloading java" && ev.Downloaded > 0 {
			sawBytes = true
		}
	}
	if !sawBytes {
		t.Error("no byte progress reported")
	}
	if !java.Java21.Installed(e.Layout.RuntimeDir(), "linux") {
		t.Error("java21 is not installed")
	}
	if _, err := os.Stat(java.ArchivePath(java.Java21, e.Layout.RuntimeDir(), "linux")); !os.IsNotExist(err) {
		t.Error("archive still exists")
	}
}

func TestEngine_runtimeUnsupported(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	e.GOOS = "plan9"
	ev, _ := e.Step(context.Background(), PreparingRuntimeDownload{Runtime: java.Java17})
	if !merrors.Is(ev.Err, merrors.KindUnsupportedPlatform) {
		t.Errorf("expected unsupported platform, got %+v", ev)
	}
}

func TestEngine_selfUpdate(t *testing.T) {
	e, srv := newTestEngine(t, map[string][]byte{"/minelander-linux": []byte("#!/bin/sh\necho new\n")})
	exe := filepath.Join(t.TempDir(), "minelander")

	_, err := collect(t, e, PreparingSelfUpdate{URL: srv.URL + "/minelander-linux", Executable: exe})
	if err != nil {
		t.Fatal(err)
	}
	target := SelfUpdateTarget(exe)
	if target != exe+".new" {
		t.Errorf("target = %s", target)
	}
	info, err := os.Stat(target)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0100 == 0 {
		t.Errorf("update is not executable: %v", info.Mode())
	}
}

type fakeResolver struct {
	layout *instances.Layout
	doc    string
}

func (f *fakeResolver) ResolveVersion(ctx context.Context, id string, kind mojang.Kind) (*minecraft.VersionDescriptor, error) {
	if err := os.MkdirAll(f.layout.VersionDir(id), os.ModePerm); err != nil {
		return nil, err
	}
	if err := os.WriteFile(f.layout.DescriptorPath(id), []byte(f.doc), 0644); err != nil {
		return nil, err
	}
	return minecraft.ParseDescriptor([]byte(f.doc))
}

type noAssets struct{}

func (noAssets) AssetIndex(ctx context.Context, desc *minecraft.VersionDescriptor) (*minecraft.AssetIndex, error) {
	return &minecraft.AssetIndex{}, nil
}

func TestEngine_ListingVersion(t *testing.T) {
	e, srv := newTestEngine(t, map[string][]byte{
		"/client.jar": []byte("client"),
		"/lib.jar":    []byte("lib"),
	})
	e.Resolver = &fakeResolver{layout: e.Layout, doc: `{
		"id": "1.20.1",
		"downloads": {"client": {"url": "` + srv.URL + `/client.jar"}},
		"libraries": [{"name": "a:b:1", "url": "` + srv.URL + `/lib.jar"}]
	}`}
	e.Planner = &planner.Planner{Layout: e.Layout, Assets: noAssets{}, Platform: minecraft.Platform{OS: "linux", Arch: "amd64"}}

	ev, state := e.Step(context.Background(), ListingVersion{Version: "1.20.1", Kind: mojang.KindBase})
	if ev.Kind != EventProgress || ev.Total != 2 {
		t.Fatalf("unexpected event %+v", ev)
	}
	if err := e.Drive(context.Background(), state, nil); err != nil {
		t.Fatal(err)
	}
	if content, _ := os.ReadFile(e.Layout.VersionJarPath("1.20.1")); string(content) != "client" {
		t.Errorf("client jar = %q", content)
	}
}
