package mojang

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/minepkg/minelander/internals/merrors"
	"github.com/minepkg/minelander/internals/minecraft"
)

// InstallableVersions are the versions that can be installed
type InstallableVersions struct {
	// Base are vanilla version ids, newest first
	Base []string `json:"base" yaml:"base"`
	// Overlay are the vanilla version ids fabric supports, newest first
	Overlay []string `json:"overlay" yaml:"overlay"`
}

// ResolveVersion fetches the descriptor for the given version, caches it and returns it parsed.
//
// For KindOverlay id is the minecraft version to install the newest fabric loader for.
// The returned descriptor has the id OverlayID(id). The base descriptor is cached as well
func (r *Resolver) ResolveVersion(ctx context.Context, id string, kind Kind) (*minecraft.VersionDescriptor, error) {
	if kind == KindOverlay {
		return r.resolveOverlay(ctx, id)
	}
	return r.resolveBase(ctx, id)
}

func (r *Resolver) resolveBase(ctx context.Context, id string) (*minecraft.VersionDescriptor, error) {
	index, err := r.GetVersionIndex(ctx)
	if err != nil {
		return nil, err
	}
	release, ok := index.Find(id)
	if !ok {
		return nil, merrors.NotFound("resolve version", fmt.Errorf("version %q does not exist", id))
	}

	buf, err := r.getBytes(ctx, "fetch descriptor of "+id, release.URL)
	if err != nil {
		return nil, err
	}
	if err := r.cache(id, buf); err != nil {
		return nil, err
	}
	return minecraft.ParseDescriptor(buf)
}

func (r *Resolver) resolveOverlay(ctx context.Context, id string) (*minecraft.VersionDescriptor, error) {
	loader, err := r.latestFabricLoader(ctx)
	if err != nil {
		return nil, err
	}
	buf, err := r.fetchFabricProfile(ctx, id, loader.Version)
	if err != nil {
		return nil, err
	}
	overlayID := OverlayID(id)
	if err := r.cache(overlayID, buf); err != nil {
		return nil, err
	}
	overlay, err := minecraft.ParseDescriptor(buf)
	if err != nil {
		return nil, err
	}
	overlay.ID = overlayID

	// overlays miss the asset index and client download, only the base has those
	if _, err := r.EnsureBase(ctx, overlay.InheritsFrom); err != nil {
		return nil, err
	}
	return overlay, nil
}

// EnsureBase returns the cached base descriptor, fetching it if it is not cached yet
func (r *Resolver) EnsureBase(ctx context.Context, id string) (*minecraft.VersionDescriptor, error) {
	if id == "" {
		return nil, merrors.Parse("resolve base version", fmt.Errorf("overlay does not name a base version"))
	}
	cached, err := LoadCachedDescriptor(r.Layout.DescriptorPath(id))
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return r.resolveBase(ctx, id)
}

// cache writes the document verbatim to versions/<id>/<id>.json
func (r *Resolver) cache(id string, buf []byte) error {
	target := r.Layout.DescriptorPath(id)
	if err := os.MkdirAll(filepath.Dir(target), os.ModePerm); err != nil {
		return merrors.Io("cache descriptor", err)
	}
	if err := os.WriteFile(target, buf, 0644); err != nil {
		return merrors.Io("cache descriptor", err)
	}
	return nil
}

// ListInstallableVersions returns vanilla and fabric versions.
// Only releases (and stable fabric versions) are included unless includePrereleases is set
func (r *Resolver) ListInstallableVersions(ctx context.Context, includePrereleases bool) (*InstallableVersions, error) {
	index, err := r.GetVersionIndex(ctx)
	if err != nil {
		return nil, err
	}
	fabricVersions, err := r.getFabricSupportedMinecraftVersions(ctx)
	if err != nil {
		return nil, err
	}

	versions := &InstallableVersions{
		Base:    make([]string, 0, len(index.Versions)),
		Overlay: make([]string, 0, len(fabricVersions)),
	}
	for _, release := range index.Versions {
		if includePrereleases || release.Type == TypeRelease {
			versions.Base = append(versions.Base, release.ID)
		}
	}
	for _, v := range fabricVersions {
		if includePrereleases || v.Stable {
			versions.Overlay = append(versions.Overlay, v.Version)
		}
	}
	return versions, nil
}

// LoadCachedDescriptor reads and parses a cached descriptor.
// The id is taken from the file name, cached fabric profiles name their loader instead
func LoadCachedDescriptor(path string) (*minecraft.VersionDescriptor, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, merrors.Io("load cached descriptor", err)
	}
	desc, err := minecraft.ParseDescriptor(buf)
	if err != nil {
		return nil, err
	}
	desc.ID = strings.TrimSuffix(filepath.Base(path), ".json")
	return desc, nil
}
