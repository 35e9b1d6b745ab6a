// Package composer turns an installed version, the user settings and an identity
// into the command line that starts minecraft
package composer

import (
	"crypto/md5"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/minepkg/minelander/internals/instances"
	"github.com/minepkg/minelander/internals/java"
	"github.com/minepkg/minelander/internals/merrors"
	"github.com/minepkg/minelander/internals/minecraft"
	"github.com/minepkg/minelander/internals/mojang"
	"github.com/minepkg/minelander/internals/planner"
	"github.com/minepkg/minelander/internals/settings"
)

// ErrMissingMainClass is returned for descriptors without a main class
var ErrMissingMainClass = errors.New("version descriptor has no main class")

var leftoverVariable = regexp.MustCompile(`\$\{[a-zA-Z0-9_]+\}`)

// Invocation is everything needed to start the game process
type Invocation struct {
	// Executable is the wrapper command (if any) or the java binary
	Executable string   `json:"executable" yaml:"executable"`
	Args       []string `json:"args" yaml:"args"`
	Dir        string   `json:"dir" yaml:"dir"`
	// Env is added to the environment of the launcher
	Env []string `json:"env,omitempty" yaml:"env,omitempty"`
	// Java is the java binary. It equals Executable if there is no wrapper
	Java string `json:"java" yaml:"java"`
	// Bundled is the runtime Java belongs to. 0 for system and custom runtimes
	Bundled java.Runtime `json:"-" yaml:"-"`
}

// Cmd returns a ready to start command
func (i *Invocation) Cmd() *exec.Cmd {
	cmd := exec.Command(i.Executable, i.Args...)
	cmd.Dir = i.Dir
	cmd.Env = append(os.Environ(), i.Env...)
	return cmd
}

func (i *Invocation) String() string {
	return i.Executable + " " + strings.Join(i.Args, " ")
}

// Composer builds invocations
type Composer struct {
	Layout  *instances.Layout
	Planner *planner.Planner
	// LookPath resolves the executable. Defaults to exec.LookPath
	LookPath func(file string) (string, error)

	LauncherName    string
	LauncherVersion string
}

// New returns a composer that uses the classpath order of p
func New(layout *instances.Layout, p *planner.Planner) *Composer {
	return &Composer{
		Layout:          layout,
		Planner:         p,
		LookPath:        exec.LookPath,
		LauncherName:    "minelander",
		LauncherVersion: "dev",
	}
}

// ComposeVersion loads the installed version id and composes its invocation
func (c *Composer) ComposeVersion(id string, s *settings.GameSettings, identity minecraft.LaunchAuthData) (*Invocation, error) {
	tree, err := mojang.LoadTree(c.Layout, id)
	if err != nil {
		return nil, err
	}
	return c.Compose(tree, s, identity)
}

// Compose builds the invocation of tree. The argument order is
//
//	[wrapper…] java -Xmx<ram>M <runtime flags> <jvm args> -cp <classpath> <main class> <game args>
func (c *Composer) Compose(tree *mojang.Tree, s *settings.GameSettings, identity minecraft.LaunchAuthData) (*Invocation, error) {
	desc := tree.Resolved()
	if desc.MainClass == "" {
		return nil, merrors.Parse("compose "+desc.ID, ErrMissingMainClass)
	}

	root := tree.Descriptor
	if tree.Base != nil {
		root = tree.Base
	}

	selection := java.ResolveFor(s.Java, desc.RequiredJava(), c.Layout.RuntimeDir(), c.Planner.Platform.OS)

	gameDir := c.Layout.GameDir(s.Instance)
	if err := os.MkdirAll(gameDir, os.ModePerm); err != nil {
		return nil, merrors.Io("create game directory", err)
	}

	classpath := strings.Join(c.Planner.Classpath(desc), c.classpathSeparator())

	args := []string{fmt.Sprintf("-Xmx%dM", s.RAMMiB)}
	args = append(args, selection.Flags...)
	if !root.HasJVMArguments() {
		args = append(args, "-Djava.library.path="+c.Layout.NativesDir(desc.ID))
	}
	args = append(args, c.jvmArgs(desc)...)
	args = append(args, "-cp", classpath, desc.MainClass)
	args = append(args, c.gameArgs(desc, gameDir, classpath, identity)...)

	program := selection.Executable
	if len(s.Wrapper) != 0 {
		program = s.Wrapper[0]
		prefix := append(append([]string{}, s.Wrapper[1:]...), selection.Executable)
		args = append(prefix, args...)
	}

	lookPath := c.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	executable, err := lookPath(program)
	if err != nil {
		return nil, merrors.Process("find executable", fmt.Errorf("java or wrapper %q does not exist: %w", program, err))
	}

	javaBin := selection.Executable
	if len(s.Wrapper) == 0 {
		javaBin = executable
	}

	return &Invocation{
		Executable: executable,
		Args:       args,
		Dir:        gameDir,
		Env:        append([]string(nil), s.Env...),
		Java:       javaBin,
		Bundled:    selection.Bundled,
	}, nil
}

func (c *Composer) classpathSeparator() string {
	if c.Planner.Platform.OS == "windows" {
		return ";"
	}
	return ":"
}

// jvmArgs templates the jvm arguments. The classpath is added separately,
// so templates referencing it are dropped
func (c *Composer) jvmArgs(desc *minecraft.VersionDescriptor) []string {
	replacer := strings.NewReplacer(
		"${natives_directory}", c.Layout.NativesDir(desc.ID),
		"${library_directory}", c.Layout.LibrariesDir(),
		"${classpath_separator}", c.classpathSeparator(),
		"${version_name}", desc.ID,
		"${launcher_name}", c.LauncherName,
		"${launcher_version}", c.LauncherVersion,
	)

	templates := minecraft.ArgumentValues(desc.JVMArguments(), c.Planner.Platform)
	args := make([]string, 0, len(templates))
	for _, template := range templates {
		if template == "-cp" || strings.Contains(template, "${classpath}") {
			continue
		}
		args = append(args, replacer.Replace(template))
	}
	return args
}

// gameArgs templates the legacy argument string followed by the modern game arguments.
// Overlays on a legacy base have both. Unknown variables are passed on as they are
func (c *Composer) gameArgs(desc *minecraft.VersionDescriptor, gameDir string, classpath string, identity minecraft.LaunchAuthData) []string {
	templates := strings.Fields(desc.MinecraftArguments)
	templates = append(templates, minecraft.ArgumentValues(desc.GameArguments(), c.Planner.Platform)...)

	replacer := strings.NewReplacer(flatten(GameVariables(desc, c.Layout, gameDir, classpath, identity))...)

	args := make([]string, 0, len(templates))
	for _, template := range templates {
		if template == "--demo" {
			continue
		}
		args = append(args, replacer.Replace(template))
	}
	return args
}

// GameVariables returns the substitution table for game argument templates
func GameVariables(desc *minecraft.VersionDescriptor, layout *instances.Layout, gameDir string, classpath string, identity minecraft.LaunchAuthData) map[string]string {
	playerUUID := identity.GetUUID()
	if playerUUID == "" {
		playerUUID = OfflineUUID(identity.GetPlayerName())
	}
	userType := identity.GetUserType()
	if userType == "" {
		userType = "legacy"
	}
	xuid := identity.GetXUID()
	if xuid == "" {
		xuid = playerUUID
	}
	versionType := desc.Type
	if versionType == "" {
		versionType = minecraftReleaseType
	}

	return map[string]string{
		"auth_player_name":  identity.GetPlayerName(),
		"version_name":      desc.ID,
		"game_directory":    gameDir,
		"assets_root":       layout.AssetsDir(),
		"assets_index_name": desc.AssetIndexID(),
		"auth_uuid":         playerUUID,
		"auth_access_token": identity.GetAccessToken(),
		"auth_session":      identity.GetAccessToken(),
		"clientid":          playerUUID,
		"auth_xuid":         xuid,
		"user_properties":   "{}",
		"user_type":         userType,
		"version_type":      versionType,
		"game_assets":       layout.ResourcesDir(),
		"classpath":         classpath,
	}
}

const minecraftReleaseType = "release"

// flatten converts a variable table into strings.NewReplacer pairs
func flatten(vars map[string]string) []string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "${"+k+"}", v)
	}
	return pairs
}

// OfflineUUID derives a stable uuid from a player name
func OfflineUUID(playerName string) string {
	sum := md5.Sum([]byte(playerName))
	id, err := uuid.FromBytes(sum[:])
	if err != nil {
		// a md5 sum always has 16 bytes
		panic(err)
	}
	return id.String()
}

// Leftovers returns template variables that survived composing
func Leftovers(args []string) []string {
	var found []string
	for _, arg := range args {
		found = append(found, leftoverVariable.FindAllString(arg, -1)...)
	}
	return found
}
