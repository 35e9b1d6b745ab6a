package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/minepkg/minelander/internals/java"
	"github.com/minepkg/minelander/internals/merrors"
)

const blob = `{
  "username": "steve",
  "current_version": "1.20.1-fabric",
  "game_ram": 4,
  "current_java_name": "Graal",
  "JVMs": [
    {"name": "Graal", "path": "/opt/graal/bin/java", "flags": "-XX:+UseG1GC  -Dfoo=bar"}
  ],
  "current_game_instance": "modded",
  "game_wrapper_commands": "gamemoderun mangohud",
  "game_enviroment_variables": "__GL_THREADED_OPTIMIZATIONS=1 garbage DRI_PRIME=1",
  "show_all_versions": true
}`

func writeBlob(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "minelander_settings.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpen_defaults(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatal(err)
	}
	s, err := store.Settings()
	if err != nil {
		t.Fatal(err)
	}
	if s.Username != "player" || s.GameRAM != 2.5 || s.CurrentJavaName != AutomaticJavaName {
		t.Fatalf("unexpected defaults %+v", s)
	}
	if s.CurrentGameInstance != "Default" || s.ShowAllVersions {
		t.Fatalf("unexpected defaults %+v", s)
	}

	game, err := s.Game()
	if err != nil {
		t.Fatal(err)
	}
	if game.RAMMiB != 2560 {
		t.Errorf("RAMMiB = %d, want 2560", game.RAMMiB)
	}
	if game.Java.Kind != java.Automatic {
		t.Errorf("java kind = %v, want automatic", game.Java.Kind)
	}
	if len(game.Wrapper) != 0 || len(game.Env) != 0 {
		t.Errorf("expected no wrapper and env, got %v %v", game.Wrapper, game.Env)
	}
}

func TestStore_Game(t *testing.T) {
	store, err := Open(writeBlob(t, blob))
	if err != nil {
		t.Fatal(err)
	}
	game, err := store.Game()
	if err != nil {
		t.Fatal(err)
	}

	want := &GameSettings{
		Username: "steve",
		Version:  "1.20.1-fabric",
		RAMMiB:   4096,
		Java: java.Choice{
			Kind:  java.Custom,
			Name:  "Graal",
			Path:  "/opt/graal/bin/java",
			Flags: []string{"-XX:+UseG1GC", "-Dfoo=bar"},
		},
		Instance: "modded",
		Wrapper:  []string{"gamemoderun", "mangohud"},
		Env:      []string{"__GL_THREADED_OPTIMIZATIONS=1", "DRI_PRIME=1"},
	}
	if !reflect.DeepEqual(game, want) {
		t.Fatalf("Game() =\n%+v\nwant\n%+v", game, want)
	}
}

func TestOpen_invalidJSON(t *testing.T) {
	_, err := Open(writeBlob(t, "{nope"))
	if !merrors.Is(err, merrors.KindParse) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestStore_Save(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "minelander_settings.json")
	store, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	store.Set(KeyUsername, "alex")
	store.Set(KeyGameRAM, 6.0)
	if err := store.Save(); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	s, err := reopened.Settings()
	if err != nil {
		t.Fatal(err)
	}
	if s.Username != "alex" || s.GameRAM != 6 {
		t.Fatalf("settings were not persisted: %+v", s)
	}
}

func TestSettings_JavaChoice(t *testing.T) {
	tests := []struct {
		name    string
		current string
		want    java.Choice
		wantErr bool
	}{
		{"empty", "", java.Choice{Kind: java.Automatic}, false},
		{"automatic", "Automatic", java.Choice{Kind: java.Automatic}, false},
		{"system", "System Java", java.Choice{Kind: java.System}, false},
		{"bundled display name", java.Java17.DisplayName(), java.Choice{Kind: java.Bundled, Runtime: java.Java17}, false},
		{"bundled dir name", "java8", java.Choice{Kind: java.Bundled, Runtime: java.Java8}, false},
		{"unknown", "Zulu", java.Choice{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Settings{CurrentJavaName: tt.current}
			got, err := s.JavaChoice()
			if (err != nil) != tt.wantErr {
				t.Fatalf("JavaChoice() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !merrors.Is(err, merrors.KindNotFound) {
					t.Errorf("expected not found error, got %v", err)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("JavaChoice() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAutomaticRAM(t *testing.T) {
	const gib = 1024 * 1024 * 1024
	tests := []struct {
		name  string
		total uint64
		want  int
	}{
		{"unknown memory", 0, 2048},
		{"small machine", 2 * gib, 1740},
		{"8 GiB", 8 * gib, 2048},
		{"32 GiB", 32 * gib, 8192},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AutomaticRAM(tt.total); got != tt.want {
				t.Errorf("AutomaticRAM() = %d, want %d", got, tt.want)
			}
		})
	}
}

func ExampleParseEnvironment() {
	for _, pair := range ParseEnvironment("A=1 broken =nokey B=x=y") {
		fmt.Println(pair)
	}
	// Output:
	// A=1
	// B=x=y
}
