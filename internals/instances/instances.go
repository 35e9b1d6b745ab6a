package instances

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/minepkg/minelander/internals/merrors"
)

const (
	// DefaultInstance is the game instance that uses the installation root itself
	DefaultInstance = "Default"
	// NativesStagingName is the file name legacy natives are downloaded to before being extracted
	NativesStagingName = "natives.jar"

	instancesDirName       = "minelander_instances"
	legacyInstancesDirName = "minelander_profiles"
	runtimeDirName         = "minelander_java"
	settingsFileName       = "minelander_settings.json"
	compatMarkerName       = "launcher_profiles.json"
)

// Layout describes the installation root and everything in it
type Layout struct {
	// GlobalDir is the directory containing everything required to run minecraft.
	// this includes the libraries, assets & versions folder
	GlobalDir string
}

// New returns a layout for the given root
func New(root string) *Layout {
	return &Layout{GlobalDir: root}
}

// DefaultRoot returns the platform specific .minecraft directory
func DefaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", merrors.Io("find home directory", err)
	}
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", ".minecraft"), nil
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "minecraft"), nil
	default:
		return filepath.Join(home, ".minecraft"), nil
	}
}

// VersionsDir returns the path to the versions directory
func (l *Layout) VersionsDir() string {
	return filepath.Join(l.GlobalDir, "versions")
}

// VersionDir returns the directory of one version
func (l *Layout) VersionDir(id string) string {
	return filepath.Join(l.VersionsDir(), id)
}

// DescriptorPath returns the path of the cached descriptor of a version
func (l *Layout) DescriptorPath(id string) string {
	return filepath.Join(l.VersionDir(id), id+".json")
}

// VersionJarPath returns the path of the client jar of a version
func (l *Layout) VersionJarPath(id string) string {
	return filepath.Join(l.VersionDir(id), id+".jar")
}

// NativesDir returns the directory legacy natives get extracted to
func (l *Layout) NativesDir(id string) string {
	return filepath.Join(l.VersionDir(id), "natives")
}

// NativesStagingPath returns where legacy natives jars are downloaded to
func (l *Layout) NativesStagingPath(id string) string {
	return filepath.Join(l.NativesDir(id), NativesStagingName)
}

// IsNativesStaging returns true if path points to a natives staging jar
func IsNativesStaging(path string) bool {
	return strings.Contains(filepath.Base(path), NativesStagingName)
}

// LibrariesDir returns the path to the libraries directory
func (l *Layout) LibrariesDir() string {
	return filepath.Join(l.GlobalDir, "libraries")
}

// LibraryPath converts a slash separated library path to a path in the libraries directory
func (l *Layout) LibraryPath(rel string) string {
	return filepath.Join(l.LibrariesDir(), filepath.FromSlash(rel))
}

// AssetsDir returns the path to the assets directory
func (l *Layout) AssetsDir() string {
	return filepath.Join(l.GlobalDir, "assets")
}

// AssetIndexPath returns where the asset index with the given id is cached
func (l *Layout) AssetIndexPath(id string) string {
	return filepath.Join(l.AssetsDir(), "indexes", id+".json")
}

// AssetObjectPath returns the content addressed path of an asset
func (l *Layout) AssetObjectPath(hash string) string {
	return filepath.Join(l.AssetsDir(), "objects", hash[:2], hash)
}

// ResourcesDir is used by very old versions (map_to_resources)
func (l *Layout) ResourcesDir() string {
	return filepath.Join(l.GlobalDir, "resources")
}

// ResourcePath returns the legacy path of a named asset
func (l *Layout) ResourcePath(name string) string {
	return filepath.Join(l.ResourcesDir(), filepath.FromSlash(name))
}

// RuntimeDir returns the directory bundled java runtimes are installed to
func (l *Layout) RuntimeDir() string {
	return filepath.Join(l.GlobalDir, runtimeDirName)
}

// InstancesDir returns the path to the game instances directory
func (l *Layout) InstancesDir() string {
	return filepath.Join(l.GlobalDir, instancesDirName)
}

// GameDir returns the working directory of a game instance
func (l *Layout) GameDir(instance string) string {
	if instance == "" || instance == DefaultInstance {
		return l.GlobalDir
	}
	return filepath.Join(l.InstancesDir(), instance)
}

// SettingsPath returns the path of the settings blob
func (l *Layout) SettingsPath() string {
	return filepath.Join(l.GlobalDir, settingsFileName)
}

// FromRoot returns the layout of root, or of DefaultRoot if root is empty
func FromRoot(root string) (*Layout, error) {
	if root != "" {
		return New(root), nil
	}
	root, err := DefaultRoot()
	if err != nil {
		return nil, err
	}
	return New(root), nil
}
