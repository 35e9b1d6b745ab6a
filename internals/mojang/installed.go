package mojang

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/minepkg/minelander/internals/instances"
	"github.com/minepkg/minelander/internals/merrors"
	"github.com/minepkg/minelander/internals/minecraft"
)

// Tree is an installed descriptor together with the base it inherits from (if any)
type Tree struct {
	Descriptor *minecraft.VersionDescriptor
	Base       *minecraft.VersionDescriptor
}

// Resolved returns the descriptor with the base merged in
func (t *Tree) Resolved() *minecraft.VersionDescriptor {
	if t.Base == nil {
		return t.Descriptor
	}
	return minecraft.Merge(t.Base, t.Descriptor)
}

// MissingBaseError is returned by LoadTree if the descriptor inherits from a version that is not cached
type MissingBaseError struct {
	ID string
}

func (e *MissingBaseError) Error() string {
	return fmt.Sprintf("base version %s is not installed", e.ID)
}

// LoadTree loads the cached descriptor of id and its base.
// A missing base results in a MissingDependency error wrapping a *MissingBaseError
func LoadTree(layout *instances.Layout, id string) (*Tree, error) {
	desc, err := LoadCachedDescriptor(layout.DescriptorPath(id))
	if err != nil {
		return nil, err
	}
	tree := &Tree{Descriptor: desc}
	if desc.InheritsFrom == "" {
		return tree, nil
	}

	base, err := LoadCachedDescriptor(layout.DescriptorPath(desc.InheritsFrom))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, merrors.MissingDependency("load base descriptor", &MissingBaseError{desc.InheritsFrom})
		}
		return nil, err
	}
	tree.Base = base
	return tree, nil
}

// AssetIndex returns the asset index of desc. It is read from assets/indexes/<id>.json
// or fetched and cached there
func (r *Resolver) AssetIndex(ctx context.Context, desc *minecraft.VersionDescriptor) (*minecraft.AssetIndex, error) {
	id := desc.AssetIndexID()
	if id == "" {
		return nil, merrors.Parse("resolve asset index", fmt.Errorf("version %s has no asset index", desc.ID))
	}
	target := r.Layout.AssetIndexPath(id)
	if buf, err := os.ReadFile(target); err == nil {
		return minecraft.ParseAssetIndex(buf)
	}

	buf, err := r.getBytes(ctx, "fetch asset index "+id, desc.AssetIndex.URL)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(target), os.ModePerm); err != nil {
		return nil, merrors.Io("cache asset index", err)
	}
	if err := os.WriteFile(target, buf, 0644); err != nil {
		return nil, merrors.Io("cache asset index", err)
	}
	return minecraft.ParseAssetIndex(buf)
}
