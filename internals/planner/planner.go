// Package planner computes which files a version needs and which of them are missing
package planner

import (
	"context"
	"os"

	"github.com/minepkg/minelander/internals/instances"
	"github.com/minepkg/minelander/internals/minecraft"
	"golang.org/x/exp/slices"
)

// Task is one file to download
type Task struct {
	Path string `json:"path" yaml:"path"`
	URL  string `json:"url" yaml:"url"`
}

// AssetSource returns the asset index of a descriptor
type AssetSource interface {
	AssetIndex(ctx context.Context, desc *minecraft.VersionDescriptor) (*minecraft.AssetIndex, error)
}

// Planner turns resolved descriptors into download tasks
type Planner struct {
	Layout   *instances.Layout
	Assets   AssetSource
	Platform minecraft.Platform
}

// New returns a planner for the current platform
func New(layout *instances.Layout, assets AssetSource) *Planner {
	return &Planner{Layout: layout, Assets: assets, Platform: minecraft.CurrentPlatform()}
}

// Plan returns every missing file of desc. desc has to be resolved (see mojang.Tree)
func (p *Planner) Plan(ctx context.Context, desc *minecraft.VersionDescriptor) ([]Task, error) {
	candidates, err := p.Candidates(ctx, desc)
	if err != nil {
		return nil, err
	}
	return p.FilterMissing(desc.ID, candidates), nil
}

// Candidates returns every file desc needs, present or not.
// Order: client jar, libraries (with natives staging jars right after their library), assets
func (p *Planner) Candidates(ctx context.Context, desc *minecraft.VersionDescriptor) ([]Task, error) {
	tasks := p.versionTasks(desc)

	index, err := p.Assets.AssetIndex(ctx, desc)
	if err != nil {
		return nil, err
	}
	return append(tasks, p.AssetTasks(index)...), nil
}

// Repair is like Plan, but a failing asset index only results in a warning
func (p *Planner) Repair(ctx context.Context, desc *minecraft.VersionDescriptor) (tasks []Task, warnings []error) {
	tasks = p.versionTasks(desc)
	index, err := p.Assets.AssetIndex(ctx, desc)
	if err != nil {
		warnings = append(warnings, err)
	} else {
		tasks = append(tasks, p.AssetTasks(index)...)
	}
	return p.FilterMissing(desc.ID, tasks), warnings
}

// versionTasks returns the client jar and library tasks
func (p *Planner) versionTasks(desc *minecraft.VersionDescriptor) []Task {
	tasks := []Task{}
	if desc.Downloads.Client.URL != "" {
		tasks = append(tasks, Task{Path: p.Layout.VersionJarPath(desc.ID), URL: desc.Downloads.Client.URL})
	}
	return append(tasks, p.LibraryTasks(desc)...)
}

// LibraryTasks returns one task per library that applies on this platform.
// Legacy natives get an additional task for the natives staging jar, even
// when the library also has a main jar
func (p *Planner) LibraryTasks(desc *minecraft.VersionDescriptor) []Task {
	tasks := make([]Task, 0, len(desc.Libraries))
	seen := make(map[string]bool, len(desc.Libraries))
	for _, lib := range desc.Libraries.Required(p.Platform) {
		url := lib.DownloadURL(p.Platform)
		// nothing we could download
		if url == "" {
			continue
		}
		target := p.Layout.LibraryPath(lib.Path(p.Platform))
		if !seen[target] {
			seen[target] = true
			tasks = append(tasks, Task{Path: target, URL: url})
		}
		if lib.Shape() != minecraft.ShapeLegacyNatives {
			continue
		}
		if nativesURL := lib.NativesURL(p.Platform); nativesURL != "" {
			tasks = append(tasks, Task{Path: p.Layout.NativesStagingPath(desc.ID), URL: nativesURL})
		}
	}
	return tasks
}

// AssetTasks returns one task per content hash, or one per name for
// indexes that map to the legacy resources directory
func (p *Planner) AssetTasks(index *minecraft.AssetIndex) []Task {
	tasks := make([]Task, 0, len(index.Objects))
	seen := make(map[string]bool, len(index.Objects))
	for _, name := range index.Names() {
		obj := index.Objects[name]
		if index.MapToResources {
			tasks = append(tasks, Task{Path: p.Layout.ResourcePath(name), URL: obj.DownloadURL()})
			continue
		}
		if seen[obj.Hash] {
			continue
		}
		seen[obj.Hash] = true
		tasks = append(tasks, Task{Path: p.Layout.AssetObjectPath(obj.Hash), URL: obj.DownloadURL()})
	}
	return tasks
}

// FilterMissing drops every task whose target already exists and is not empty.
// Natives staging tasks are kept as long as the natives directory of the version is empty
func (p *Planner) FilterMissing(id string, tasks []Task) []Task {
	nativesPresent := dirHasFiles(p.Layout.NativesDir(id))
	missing := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if instances.IsNativesStaging(task.Path) {
			if !nativesPresent {
				missing = append(missing, task)
			}
			continue
		}
		if fileMissing(task.Path) {
			missing = append(missing, task)
		}
	}
	return slices.Clip(missing)
}

func fileMissing(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return true
	}
	return !info.IsDir() && info.Size() == 0
}

func dirHasFiles(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if !instances.IsNativesStaging(entry.Name()) {
			return true
		}
	}
	return false
}
