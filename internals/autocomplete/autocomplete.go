// Package autocomplete completes version ids in the shell
package autocomplete

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/minepkg/minelander/internals/mojang"
	"github.com/minepkg/minelander/internals/utils"
	"github.com/spf13/cobra"
)

// DefaultMaxAge is how long a fetched version list is used before it is refreshed
const DefaultMaxAge = 10 * time.Minute

// VersionLister fetches the installable versions
type VersionLister interface {
	ListInstallableVersions(ctx context.Context, includePrereleases bool) (*mojang.InstallableVersions, error)
}

type AutoCompleter struct {
	Source  VersionLister
	storage struct {
		LastFetch time.Time
		Versions  *mojang.InstallableVersions
	}
	CacheDir string
	MaxAge   time.Duration
}

func (a *AutoCompleter) cacheFile() string {
	return filepath.Join(a.CacheDir, "versions.json")
}

func (a *AutoCompleter) isOutdated() bool {
	maxAge := a.MaxAge
	if maxAge == 0 {
		maxAge = DefaultMaxAge
	}
	return time.Since(a.storage.LastFetch) > maxAge
}

// GetVersions tries to read the versions from the local cache.
// If that fails they are fetched
func (a *AutoCompleter) GetVersions(ctx context.Context) (*mojang.InstallableVersions, error) {
	// already in memory and fresh
	if a.storage.Versions != nil && !a.isOutdated() {
		return a.storage.Versions, nil
	}

	cached, err := os.ReadFile(a.cacheFile())
	if err != nil {
		return a.fetchVersions(ctx)
	}
	if err = json.Unmarshal(cached, &a.storage); err != nil || a.storage.Versions == nil {
		// corrupted cache file
		return a.fetchVersions(ctx)
	}

	if a.isOutdated() {
		versions, err := a.fetchVersions(ctx)
		if err == nil {
			return versions, nil
		}
		// offline, the cached list is better than nothing
	}
	return a.storage.Versions, nil
}

func (a *AutoCompleter) fetchVersions(ctx context.Context) (*mojang.InstallableVersions, error) {
	versions, err := a.Source.ListInstallableVersions(ctx, true)
	if err != nil {
		return nil, err
	}

	a.storage.Versions = versions
	a.storage.LastFetch = time.Now()
	buf, err := json.Marshal(&a.storage)
	if err != nil {
		return versions, err
	}
	if err := os.MkdirAll(a.CacheDir, os.ModePerm); err != nil {
		return versions, err
	}
	return versions, os.WriteFile(a.cacheFile(), buf, 0644)
}

// Complete completes installable versions. fabric restricts them to fabric supported ones
func (a *AutoCompleter) Complete(toComplete string, fabric bool) ([]string, cobra.ShellCompDirective) {
	// errors are ignored, completion can not fail
	versions, _ := a.GetVersions(context.TODO())
	if versions == nil {
		return []string{}, cobra.ShellCompDirectiveNoFileComp
	}

	ids := versions.Base
	kind := "vanilla"
	if fabric {
		ids = versions.Overlay
		kind = "fabric"
	}
	return shellAutocomplete(ids, toComplete, kind), cobra.ShellCompDirectiveNoFileComp
}

// CompleteInstalled completes the given installed version ids
func CompleteInstalled(ids []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return shellAutocomplete(ids, toComplete, "installed"), cobra.ShellCompDirectiveNoFileComp
}

var descriptionStyle = lipgloss.NewStyle().Width(10)

func shellAutocomplete(ids []string, toComplete string, kind string) []string {
	matches := []string{}
	for _, id := range ids {
		if strings.HasPrefix(id, toComplete) {
			description := descriptionStyle.Render(kind) + " " + utils.PrettyVersion(id)
			matches = append(matches, id+"\t"+description)
		}
	}
	return matches
}
