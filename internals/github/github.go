// Package github fetches release information used for self updates
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/minepkg/minelander/internals/merrors"
	"github.com/minepkg/minelander/internals/ownhttp"
	"github.com/pkg/errors"
)

// APIBase is the github api endpoint
const APIBase = "https://api.github.com"

// Asset is a file attached to a release
type Asset struct {
	Name               string `json:"name"`
	Size               int64  `json:"size"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// Release is a github release
type Release struct {
	Name       string  `json:"name"`
	TagName    string  `json:"tag_name"`
	Prerelease bool    `json:"prerelease"`
	Assets     []Asset `json:"assets"`
}

// Version parses the tag of the release ("v1.2.3" and "1.2.3" are both fine)
func (r *Release) Version() (*semver.Version, error) {
	v, err := semver.NewVersion(r.TagName)
	if err != nil {
		return nil, merrors.Parse("parse release tag "+r.TagName, err)
	}
	return v, nil
}

// AssetFor returns the first asset whose name contains the os name
func (r *Release) AssetFor(goos string) (*Asset, bool) {
	for i := range r.Assets {
		if strings.Contains(strings.ToLower(r.Assets[i].Name), goos) {
			return &r.Assets[i], true
		}
	}
	return nil, false
}

// Client talks to the github api
type Client struct {
	HTTP    *http.Client
	BaseURL string
}

// New returns a client using the shared http client
func New() *Client {
	return &Client{HTTP: ownhttp.New(), BaseURL: APIBase}
}

// GetLatestRelease returns the latest release of repo ("owner/name")
func GetLatestRelease(ctx context.Context, repo string) (*Release, error) {
	return New().GetLatestRelease(ctx, repo)
}

// GetLatestRelease returns the latest release of repo ("owner/name")
func (c *Client) GetLatestRelease(ctx context.Context, repo string) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", c.BaseURL, repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, merrors.Network("fetch latest release", errors.Wrap(err, "could not reach github"))
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return nil, merrors.NotFound("fetch latest release", fmt.Errorf("%s has no releases", repo))
	case res.StatusCode != http.StatusOK:
		return nil, merrors.Network("fetch latest release", fmt.Errorf("unexpected status %s", res.Status))
	}

	release := &Release{}
	if err := json.NewDecoder(res.Body).Decode(release); err != nil {
		return nil, merrors.Parse("decode latest release", err)
	}
	return release, nil
}

// Update is a newer release that can be installed
type Update struct {
	Version *semver.Version
	Asset   *Asset
}

// CheckUpdate returns the latest release of repo if it is newer than current
// and has an asset for goos. It returns nil if current is up to date
func (c *Client) CheckUpdate(ctx context.Context, repo string, current string, goos string) (*Update, error) {
	currentVersion, err := semver.NewVersion(current)
	if err != nil {
		return nil, merrors.Parse("parse current version", err)
	}
	release, err := c.GetLatestRelease(ctx, repo)
	if err != nil {
		return nil, err
	}
	latest, err := release.Version()
	if err != nil {
		return nil, err
	}
	if !latest.GreaterThan(currentVersion) {
		return nil, nil
	}
	asset, ok := release.AssetFor(goos)
	if !ok {
		return nil, merrors.UnsupportedPlatform("find update for "+latest.String(), goos)
	}
	return &Update{Version: latest, Asset: asset}, nil
}
