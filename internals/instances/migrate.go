package instances

import (
	"os"
	"path/filepath"

	"github.com/minepkg/minelander/internals/merrors"
)

// Prepare creates the directories and files other tools expect in the installation root.
// Everything in here is best effort, failures are returned as warnings
func (l *Layout) Prepare() []error {
	warnings := make([]error, 0)
	if err := os.MkdirAll(l.GlobalDir, os.ModePerm); err != nil {
		// nothing else will work
		return append(warnings, merrors.Io("create installation root", err))
	}
	if err := l.migrateLegacyInstances(); err != nil {
		warnings = append(warnings, err)
	}
	if err := l.EnsureCompatibilityMarker(); err != nil {
		warnings = append(warnings, err)
	}
	if err := os.MkdirAll(l.InstancesDir(), os.ModePerm); err != nil {
		warnings = append(warnings, merrors.Io("create instances directory", err))
	}
	return warnings
}

// migrateLegacyInstances renames the instance directory used by older releases
func (l *Layout) migrateLegacyInstances() error {
	legacy := filepath.Join(l.GlobalDir, legacyInstancesDirName)
	if _, err := os.Stat(legacy); err != nil {
		return nil
	}
	if _, err := os.Stat(l.InstancesDir()); err == nil {
		// both exist, leave them alone
		return nil
	}
	if err := os.Rename(legacy, l.InstancesDir()); err != nil {
		return merrors.Io("migrate legacy instances", err)
	}
	return nil
}

// EnsureCompatibilityMarker writes an empty launcher_profiles.json.
// Some mod loader installers refuse to work without one
func (l *Layout) EnsureCompatibilityMarker() error {
	marker := filepath.Join(l.GlobalDir, compatMarkerName)
	if _, err := os.Stat(marker); err == nil {
		return nil
	}
	if err := os.WriteFile(marker, []byte(`{"profiles":{}}`), 0644); err != nil {
		return merrors.Io("write "+compatMarkerName, err)
	}
	return nil
}
