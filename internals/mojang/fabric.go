package mojang

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/minepkg/minelander/internals/merrors"
)

// OverlaySuffix is appended to the base version id to form the id of a fabric version
const OverlaySuffix = "-fabric"

type fabricLoaderVersion struct {
	Separator string `json:"separator"`
	Build     int    `json:"build"`
	Maven     string `json:"maven"`
	Version   string `json:"version"`
	Stable    bool   `json:"stable"`
}

type fabricSupportedVersion struct {
	Version string `json:"version"`
	Stable  bool   `json:"stable"`
}

// OverlayID returns the id a fabric version for base is installed as
func OverlayID(base string) string {
	return base + OverlaySuffix
}

func (r *Resolver) getFabricLoaderVersions(ctx context.Context) ([]fabricLoaderVersion, error) {
	buf, err := r.getBytes(ctx, "fetch fabric loader index", r.FabricMetaURL+"/versions/loader")
	if err != nil {
		return nil, err
	}
	loaders := make([]fabricLoaderVersion, 0)
	if err = json.Unmarshal(buf, &loaders); err != nil {
		return nil, merrors.Parse("decode fabric loader index", err)
	}
	return loaders, nil
}

func (r *Resolver) getFabricSupportedMinecraftVersions(ctx context.Context) ([]fabricSupportedVersion, error) {
	buf, err := r.getBytes(ctx, "fetch fabric game index", r.FabricMetaURL+"/versions/game")
	if err != nil {
		return nil, err
	}
	versions := make([]fabricSupportedVersion, 0)
	if err = json.Unmarshal(buf, &versions); err != nil {
		return nil, merrors.Parse("decode fabric game index", err)
	}
	return versions, nil
}

// latestFabricLoader returns the first listed loader. fabric meta lists the newest first
func (r *Resolver) latestFabricLoader(ctx context.Context) (*fabricLoaderVersion, error) {
	loaders, err := r.getFabricLoaderVersions(ctx)
	if err != nil {
		return nil, err
	}
	if len(loaders) == 0 {
		return nil, merrors.NotFound("select fabric loader", fmt.Errorf("fabric meta lists no loader"))
	}
	return &loaders[0], nil
}

// fetchFabricProfile returns the launcher profile of the loader for the given minecraft version
func (r *Resolver) fetchFabricProfile(ctx context.Context, mcVersion string, loader string) ([]byte, error) {
	profileURL := fmt.Sprintf(
		"%s/versions/loader/%s/%s/profile/json",
		r.FabricMetaURL,
		url.PathEscape(mcVersion),
		url.PathEscape(loader),
	)
	return r.getBytes(ctx, "fetch fabric profile for "+mcVersion, profileURL)
}
