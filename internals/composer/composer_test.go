package composer

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/minepkg/minelander/internals/instances"
	"github.com/minepkg/minelander/internals/java"
	"github.com/minepkg/minelander/internals/merrors"
	"github.com/minepkg/minelander/internals/minecraft"
	"github.com/minepkg/minelander/internals/planner"
	"github.com/minepkg/minelander/internals/settings"
)

const vanilla = `{
	"id": "1.20.1",
	"type": "release",
	"mainClass": "net.minecraft.client.main.Main",
	"assetIndex": {"id": "5", "url": "https://example.com/5.json"},
	"assets": "5",
	"arguments": {
		"game": [
			"--username", "${auth_player_name}",
			"--version", "${version_name}",
			"--gameDir", "${game_directory}",
			"--assetsDir", "${assets_root}",
			"--assetIndex", "${assets_index_name}",
			"--uuid", "${auth_uuid}",
			"--accessToken", "${auth_access_token}",
			"--clientId", "${clientid}",
			"--xuid", "${auth_xuid}",
			"--userType", "${user_type}",
			"--versionType", "${version_type}",
			{"rules": [{"action": "allow", "features": {"is_demo_user": true}}], "value": "--demo"},
			"--quickPlayPath", "${quickPlayPath}"
		],
		"jvm": [
			{"rules": [{"action": "allow", "os": {"name": "osx"}}], "value": ["-XstartOnFirstThread"]},
			"-Djava.library.path=${natives_directory}",
			"-Dminecraft.launcher.brand=${launcher_name}",
			"-cp", "${classpath}"
		]
	},
	"libraries": [
		{"name": "com.mojang:brigadier:1.1.8"},
		{"name": "org.lwjgl:lwjgl:3.3.1:natives-linux", "rules": [{"action": "allow", "os": {"name": "linux"}}]},
		{"name": "tv.twitch:twitch-platform:6.5"}
	]
}`

const fabric = `{
	"id": "1.20.1-fabric",
	"inheritsFrom": "1.20.1",
	"mainClass": "net.fabricmc.loader.impl.launch.knot.KnotClient",
	"arguments": {
		"game": [],
		"jvm": ["-DFabricMcEmu= net.minecraft.client.main.Main "]
	},
	"libraries": [{"name": "net.fabricmc:fabric-loader:0.14.21", "url": "https://maven.fabricmc.net/"}]
}`

const legacy = `{
	"id": "1.8.9",
	"mainClass": "net.minecraft.client.main.Main",
	"assets": "1.8",
	"minecraftArguments": "--username ${auth_player_name} --session ${auth_session} --userProperties ${user_properties} --demo --assetsDir ${game_assets}",
	"libraries": [{"name": "com.mojang:netty:1.6"}]
}`

const lwjgl3Legacy = `{
	"id": "1.16.5",
	"mainClass": "net.minecraft.client.main.Main",
	"assets": "1.16",
	"arguments": {
		"game": ["--version", "${version_name}"],
		"jvm": ["-Djava.library.path=${natives_directory}", "-cp", "${classpath}"]
	},
	"libraries": [
		{
			"name": "org.lwjgl:lwjgl:3.2.2",
			"downloads": {
				"artifact": {
					"path": "org/lwjgl/lwjgl/3.2.2/lwjgl-3.2.2.jar",
					"url": "https://libraries.minecraft.net/org/lwjgl/lwjgl/3.2.2/lwjgl-3.2.2.jar"
				},
				"classifiers": {
					"natives-linux": {"url": "https://libraries.minecraft.net/org/lwjgl/lwjgl/3.2.2/lwjgl-3.2.2-natives-linux.jar"}
				}
			},
			"natives": {"linux": "natives-linux"}
		},
		{"name": "tv.twitch:twitch-platform:6.5"}
	]
}`

const legacyBase = `{
	"id": "1.12.2",
	"mainClass": "net.minecraft.client.main.Main",
	"assets": "1.12",
	"minecraftArguments": "--username ${auth_player_name} --version ${version_name} --accessToken ${auth_access_token}",
	"libraries": [{"name": "com.mojang:realms:1.10.22"}]
}`

const legacyOverlay = `{
	"id": "1.12.2-forge",
	"inheritsFrom": "1.12.2",
	"mainClass": "net.minecraft.launchwrapper.Launch",
	"arguments": {"game": ["--tweakClass", "net.minecraftforge.fml.common.launcher.FMLTweaker"]},
	"libraries": [{"name": "net.minecraft:launchwrapper:1.12"}]
}`

type offline struct{ name string }

func (o offline) GetAccessToken() string { return "" }
func (o offline) GetUUID() string        { return "" }
func (o offline) GetPlayerName() string  { return o.name }
func (o offline) GetUserType() string    { return "" }
func (o offline) GetXUID() string        { return "" }

type online struct{}

func (online) GetAccessToken() string { return "token" }
func (online) GetUUID() string        { return "0bd7d8d2-5b39-4ffb-9d80-1ee04cd2ad3b" }
func (online) GetPlayerName() string  { return "Notch" }
func (online) GetUserType() string    { return "msa" }
func (online) GetXUID() string        { return "2535" }

var linux = minecraft.Platform{OS: "linux", Arch: "amd64"}

func newTestComposer(t *testing.T, docs ...string) *Composer {
	t.Helper()
	layout := instances.New(t.TempDir())
	for _, doc := range docs {
		desc, err := minecraft.ParseDescriptor([]byte(doc))
		if err != nil {
			t.Fatal(err)
		}
		path := layout.DescriptorPath(desc.ID)
		if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	c := New(layout, &planner.Planner{Layout: layout, Platform: linux})
	c.LookPath = func(file string) (string, error) {
		if strings.Contains(file, "missing") {
			return "", errors.New("executable file not found in $PATH")
		}
		return file, nil
	}
	return c
}

func gameSettings() *settings.GameSettings {
	return &settings.GameSettings{
		Username: "steve",
		RAMMiB:   2560,
		Java:     java.Choice{Kind: java.Custom, Path: "/opt/java/bin/java", Flags: []string{"-XX:+UseG1GC"}},
		Instance: instances.DefaultInstance,
	}
}

// flagValue returns the argument following flag
func flagValue(t *testing.T, args []string, flag string) string {
	t.Helper()
	for i, arg := range args {
		if arg == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	t.Fatalf("flag %s not found in %q", flag, args)
	return ""
}

func TestCompose_vanilla(t *testing.T) {
	c := newTestComposer(t, vanilla)
	inv, err := c.ComposeVersion("1.20.1", gameSettings(), online{})
	if err != nil {
		t.Fatal(err)
	}
	root := c.Layout.GlobalDir

	if inv.Executable != "/opt/java/bin/java" || inv.Java != inv.Executable {
		t.Errorf("executable = %s", inv.Executable)
	}
	if inv.Dir != root {
		t.Errorf("dir = %s, want %s", inv.Dir, root)
	}

	wantHead := []string{
		"-Xmx2560M",
		"-XX:+UseG1GC",
		"-Djava.library.path=" + filepath.Join(root, "versions", "1.20.1", "natives"),
		"-Dminecraft.launcher.brand=minelander",
		"-cp",
	}
	if !reflect.DeepEqual(inv.Args[:len(wantHead)], wantHead) {
		t.Fatalf("args start with %q, want %q", inv.Args[:len(wantHead)], wantHead)
	}

	cp := strings.Split(flagValue(t, inv.Args, "-cp"), ":")
	wantCp := []string{
		filepath.Join(root, "libraries", "com", "mojang", "brigadier", "1.1.8", "brigadier-1.1.8.jar"),
		filepath.Join(root, "libraries", "org", "lwjgl", "lwjgl", "3.3.1", "lwjgl-3.3.1-natives-linux.jar"),
		filepath.Join(root, "versions", "1.20.1", "1.20.1.jar"),
	}
	if !reflect.DeepEqual(cp, wantCp) {
		t.Errorf("classpath = %q, want %q", cp, wantCp)
	}
	if inv.Args[len(wantHead)+1] != "net.minecraft.client.main.Main" {
		t.Errorf("main class not after classpath: %q", inv.Args)
	}

	if got := flagValue(t, inv.Args, "--assetIndex"); got != "5" {
		t.Errorf("asset index = %s", got)
	}
	if got := flagValue(t, inv.Args, "--userType"); got != "msa" {
		t.Errorf("user type = %s", got)
	}
	if got := flagValue(t, inv.Args, "--xuid"); got != "2535" {
		t.Errorf("xuid = %s", got)
	}
	if got := flagValue(t, inv.Args, "--versionType"); got != "release" {
		t.Errorf("version type = %s", got)
	}
	for _, arg := range inv.Args {
		if arg == "--demo" || arg == "-XstartOnFirstThread" {
			t.Errorf("unexpected argument %s", arg)
		}
	}

	// unknown variables are passed on
	if left := Leftovers(inv.Args); !reflect.DeepEqual(left, []string{"${quickPlayPath}"}) {
		t.Errorf("Leftovers() = %q", left)
	}
}

func TestCompose_overlay(t *testing.T) {
	c := newTestComposer(t, vanilla, fabric)
	inv, err := c.ComposeVersion("1.20.1-fabric", gameSettings(), online{})
	if err != nil {
		t.Fatal(err)
	}
	root := c.Layout.GlobalDir

	wantJVM := []string{
		"-Djava.library.path=" + filepath.Join(root, "versions", "1.20.1-fabric", "natives"),
		"-Dminecraft.launcher.brand=minelander",
		"-DFabricMcEmu= net.minecraft.client.main.Main ",
		"-cp",
	}
	if !reflect.DeepEqual(inv.Args[2:2+len(wantJVM)], wantJVM) {
		t.Errorf("jvm args = %q, want %q", inv.Args[2:2+len(wantJVM)], wantJVM)
	}
	if got := flagValue(t, inv.Args, "--assetIndex"); got != "5" {
		t.Errorf("asset index = %s, want the one of the base", got)
	}
	if got := flagValue(t, inv.Args, "-cp"); !strings.HasSuffix(got, filepath.Join("versions", "1.20.1-fabric", "1.20.1-fabric.jar")) {
		t.Errorf("classpath does not end with the version jar: %s", got)
	}
	if flagValue(t, inv.Args, "-cp") == "" || !contains(inv.Args, "net.fabricmc.loader.impl.launch.knot.KnotClient") {
		t.Errorf("main class of the overlay is not used: %q", inv.Args)
	}
	if got := flagValue(t, inv.Args, "--version"); got != "1.20.1-fabric" {
		t.Errorf("version = %s", got)
	}
}

func TestCompose_legacy(t *testing.T) {
	c := newTestComposer(t, legacy)
	s := gameSettings()
	s.Java = java.Choice{Kind: java.Automatic}
	s.Instance = "modded"
	s.Wrapper = []string{"gamemoderun", "--flag"}
	s.Env = []string{"DRI_PRIME=1"}

	inv, err := c.ComposeVersion("1.8.9", s, offline{"steve"})
	if err != nil {
		t.Fatal(err)
	}
	root := c.Layout.GlobalDir
	bin := java.Java17.Bin(c.Layout.RuntimeDir(), "linux")

	if inv.Executable != "gamemoderun" || inv.Java != bin {
		t.Errorf("executable = %s, java = %s", inv.Executable, inv.Java)
	}
	if !reflect.DeepEqual(inv.Args[:3], []string{"--flag", bin, "-Xmx2560M"}) {
		t.Errorf("wrapper prefix = %q", inv.Args[:3])
	}
	if inv.Bundled != java.Java17 {
		t.Errorf("bundled = %v", inv.Bundled)
	}
	if !contains(inv.Args, "-Djava.library.path="+filepath.Join(root, "versions", "1.8.9", "natives")) {
		t.Errorf("legacy jvm fallback missing: %q", inv.Args)
	}

	gameDir := filepath.Join(root, "minelander_instances", "modded")
	if inv.Dir != gameDir {
		t.Errorf("dir = %s, want %s", inv.Dir, gameDir)
	}
	if info, err := os.Stat(gameDir); err != nil || !info.IsDir() {
		t.Errorf("game directory was not created: %v", err)
	}

	mainIdx := indexOf(inv.Args, "net.minecraft.client.main.Main")
	wantGame := []string{
		"--username", "steve",
		"--session", "",
		"--userProperties", "{}",
		"--assetsDir", filepath.Join(root, "resources"),
	}
	if !reflect.DeepEqual(inv.Args[mainIdx+1:], wantGame) {
		t.Errorf("game args = %q, want %q", inv.Args[mainIdx+1:], wantGame)
	}
	if !reflect.DeepEqual(inv.Env, []string{"DRI_PRIME=1"}) {
		t.Errorf("env = %q", inv.Env)
	}
}

func TestCompose_nativesWithArtifact(t *testing.T) {
	c := newTestComposer(t, lwjgl3Legacy)
	inv, err := c.ComposeVersion("1.16.5", gameSettings(), online{})
	if err != nil {
		t.Fatal(err)
	}
	root := c.Layout.GlobalDir

	cp := strings.Split(flagValue(t, inv.Args, "-cp"), ":")
	wantCp := []string{
		filepath.Join(root, "libraries", "org", "lwjgl", "lwjgl", "3.2.2", "lwjgl-3.2.2.jar"),
		filepath.Join(root, "versions", "1.16.5", "1.16.5.jar"),
	}
	if !reflect.DeepEqual(cp, wantCp) {
		t.Errorf("classpath = %q, want %q", cp, wantCp)
	}
}

func TestCompose_overlayOnLegacyBase(t *testing.T) {
	c := newTestComposer(t, legacyBase, legacyOverlay)
	inv, err := c.ComposeVersion("1.12.2-forge", gameSettings(), offline{"steve"})
	if err != nil {
		t.Fatal(err)
	}

	mainIdx := indexOf(inv.Args, "net.minecraft.launchwrapper.Launch")
	if mainIdx == -1 {
		t.Fatalf("main class of the overlay is not used: %q", inv.Args)
	}
	wantGame := []string{
		"--username", "steve",
		"--version", "1.12.2-forge",
		"--accessToken", "",
		"--tweakClass", "net.minecraftforge.fml.common.launcher.FMLTweaker",
	}
	if !reflect.DeepEqual(inv.Args[mainIdx+1:], wantGame) {
		t.Errorf("game args = %q, want %q", inv.Args[mainIdx+1:], wantGame)
	}
}

func TestCompose_errors(t *testing.T) {
	t.Run("missing executable", func(t *testing.T) {
		c := newTestComposer(t, vanilla)
		s := gameSettings()
		s.Java.Path = "/missing/java"
		_, err := c.ComposeVersion("1.20.1", s, online{})
		if !merrors.Is(err, merrors.KindProcess) {
			t.Fatalf("expected process error, got %v", err)
		}
	})

	t.Run("missing main class", func(t *testing.T) {
		c := newTestComposer(t, `{"id": "broken"}`)
		_, err := c.ComposeVersion("broken", gameSettings(), online{})
		if !errors.Is(err, ErrMissingMainClass) {
			t.Fatalf("expected ErrMissingMainClass, got %v", err)
		}
	})

	t.Run("missing base", func(t *testing.T) {
		c := newTestComposer(t, fabric)
		_, err := c.ComposeVersion("1.20.1-fabric", gameSettings(), online{})
		if !merrors.Is(err, merrors.KindMissingDependency) {
			t.Fatalf("expected missing dependency, got %v", err)
		}
	})

	t.Run("malformed descriptor", func(t *testing.T) {
		c := newTestComposer(t)
		path := c.Layout.DescriptorPath("bad")
		os.MkdirAll(filepath.Dir(path), os.ModePerm)
		os.WriteFile(path, []byte("{"), 0o644)
		_, err := c.ComposeVersion("bad", gameSettings(), online{})
		if !merrors.Is(err, merrors.KindParse) {
			t.Fatalf("expected parse error, got %v", err)
		}
	})
}

func TestGameVariables_total(t *testing.T) {
	c := newTestComposer(t)
	desc := &minecraft.VersionDescriptor{ID: "1.20.1"}
	vars := GameVariables(desc, c.Layout, "/game", "a.jar", offline{"steve"})

	var templates []string
	for name := range vars {
		templates = append(templates, "${"+name+"}")
	}
	replaced := strings.NewReplacer(flatten(vars)...).Replace(strings.Join(templates, " "))
	if left := Leftovers([]string{replaced}); len(left) != 0 {
		t.Fatalf("variables left after templating: %q", left)
	}
	if vars["user_type"] != "legacy" || vars["version_type"] != "release" {
		t.Errorf("unexpected fallbacks %v", vars)
	}
}

func TestOfflineUUID(t *testing.T) {
	a := OfflineUUID("steve")
	if a != OfflineUUID("steve") {
		t.Fatal("offline uuid is not stable")
	}
	if a == OfflineUUID("alex") {
		t.Fatal("different names share a uuid")
	}
	if len(a) != 36 || strings.Count(a, "-") != 4 {
		t.Fatalf("unexpected format %s", a)
	}
}

func contains(args []string, want string) bool {
	return indexOf(args, want) != -1
}

func indexOf(args []string, want string) int {
	for i, arg := range args {
		if arg == want {
			return i
		}
	}
	return -1
}
