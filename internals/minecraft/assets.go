package minecraft

import (
	"encoding/json"

	"github.com/minepkg/minelander/internals/merrors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ResourcesBase is the content addressed asset store
const ResourcesBase = "https://resources.download.minecraft.net/"

// AssetIndex maps logical asset names to AssetObjects
type AssetIndex struct {
	// MapToResources is set for very old versions that read assets from `resources/<name>`
	MapToResources bool                   `json:"map_to_resources,omitempty"`
	Virtual        bool                   `json:"virtual,omitempty"`
	Objects        map[string]AssetObject `json:"objects"`
}

// AssetObject is one minecraft asset
type AssetObject struct {
	Hash string `json:"hash"`
	Size int    `json:"size"`
}

// ParseAssetIndex decodes an asset index document
func ParseAssetIndex(data []byte) (*AssetIndex, error) {
	index := &AssetIndex{}
	if err := json.Unmarshal(data, index); err != nil {
		return nil, merrors.Parse("decode asset index", err)
	}
	for name, obj := range index.Objects {
		if len(obj.Hash) < 2 {
			return nil, merrors.Parse("decode asset index", &invalidHashError{name, obj.Hash})
		}
	}
	return index, nil
}

type invalidHashError struct {
	name string
	hash string
}

func (e *invalidHashError) Error() string {
	return "asset " + e.name + " has an invalid hash " + e.hash
}

// Names returns all asset names sorted
func (a *AssetIndex) Names() []string {
	names := maps.Keys(a.Objects)
	slices.Sort(names)
	return names
}

// UnixPath returns the path including the folder
// example: fe/fe32f3b8…
func (a *AssetObject) UnixPath() string {
	return a.Hash[:2] + "/" + a.Hash
}

// DownloadURL returns the download url for this asset
func (a *AssetObject) DownloadURL() string {
	return ResourcesBase + a.UnixPath()
}
