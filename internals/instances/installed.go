package instances

import (
	"os"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/minepkg/minelander/internals/merrors"
	strcase "github.com/stoewer/go-strcase"
)

// InstalledVersions lists all versions with a cached descriptor, newest first.
// Ids that are no semver (snapshots like 23w13a) come last
func (l *Layout) InstalledVersions() ([]string, error) {
	entries, err := os.ReadDir(l.VersionsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, merrors.Io("list installed versions", err)
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := os.Stat(l.DescriptorPath(entry.Name())); err != nil {
			continue
		}
		ids = append(ids, entry.Name())
	}
	SortVersionsDesc(ids)
	return ids, nil
}

// SortVersionsDesc sorts minecraft version ids newest first
func SortVersionsDesc(ids []string) {
	parsed := make(map[string]*semver.Version, len(ids))
	for _, id := range ids {
		if v, err := semver.NewVersion(id); err == nil {
			parsed[id] = v
		}
	}
	sort.SliceStable(ids, func(i, j int) bool {
		a, aOk := parsed[ids[i]]
		b, bOk := parsed[ids[j]]
		switch {
		case aOk && bOk:
			if a.Equal(b) {
				return ids[i] < ids[j]
			}
			return a.GreaterThan(b)
		case aOk != bOk:
			return aOk
		default:
			return ids[i] > ids[j]
		}
	})
}

// Instances lists all game instances. The default instance is always first
func (l *Layout) Instances() ([]string, error) {
	names := []string{DefaultInstance}
	entries, err := os.ReadDir(l.InstancesDir())
	if err != nil {
		if os.IsNotExist(err) {
			return names, nil
		}
		return nil, merrors.Io("list game instances", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// CreateInstance creates a new game instance directory and returns its (kebab cased) name
func (l *Layout) CreateInstance(name string) (string, error) {
	dirName := strcase.KebabCase(name)
	if dirName == "" || dirName == strcase.KebabCase(DefaultInstance) {
		return "", &merrors.CliError{
			Err:  "Invalid instance name " + name,
			Help: "Choose a name that contains letters or numbers and is not \"Default\"",
		}
	}
	if err := os.MkdirAll(l.GameDir(dirName), os.ModePerm); err != nil {
		return "", merrors.Io("create game instance", err)
	}
	return dirName, nil
}
