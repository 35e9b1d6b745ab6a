package mojang

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/minepkg/minelander/internals/merrors"
)

var (
	// TypeSnapshot is a snapshot release
	TypeSnapshot = "snapshot"
	// TypeRelease is a full "normal" release
	TypeRelease = "release"
	// TypeOldBeta is a "old_beta" release
	TypeOldBeta = "old_beta"
	// TypeOldAlpha is a "old_alpha" release
	TypeOldAlpha = "old_alpha"
)

// MinecraftRelease is a released minecraft version
type MinecraftRelease struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	URL         string `json:"url"`
	Time        string `json:"time"`
	ReleaseTime string `json:"releaseTime"`
	Sha1        string `json:"sha1"`
}

// VersionIndex is the response from the "launchermeta" mojang api
type VersionIndex struct {
	Latest struct {
		Release  string `json:"release"`
		Snapshot string `json:"snapshot"`
	} `json:"latest"`
	Versions []MinecraftRelease `json:"versions"`
}

// Find returns the release with the given id
func (v *VersionIndex) Find(id string) (*MinecraftRelease, bool) {
	for i := range v.Versions {
		if v.Versions[i].ID == id {
			return &v.Versions[i], true
		}
	}
	return nil, false
}

// GetVersionIndex returns all available Minecraft releases
func (r *Resolver) GetVersionIndex(ctx context.Context) (*VersionIndex, error) {
	buf, err := r.getBytes(ctx, "fetch version index", r.VersionIndexURL)
	if err != nil {
		return nil, err
	}
	index := VersionIndex{}
	if err := json.Unmarshal(buf, &index); err != nil {
		return nil, merrors.Parse("decode version index", err)
	}
	if index.Versions == nil {
		return nil, merrors.Parse("decode version index", fmt.Errorf("document has no versions"))
	}
	return &index, nil
}
