// Package mojang resolves version descriptors from the mojang launcher meta
// and the fabric meta api and caches them in the installation root
package mojang

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/minepkg/minelander/internals/instances"
	"github.com/minepkg/minelander/internals/merrors"
	"github.com/minepkg/minelander/internals/ownhttp"
	"github.com/pkg/errors"
)

const (
	// VersionIndexURL lists every minecraft version
	VersionIndexURL = "https://launchermeta.mojang.com/mc/game/version_manifest_v2.json"
	// FabricMetaURL is the base of the fabric meta api
	FabricMetaURL = "https://meta.fabricmc.net/v2"
)

// Kind selects what ResolveVersion resolves
type Kind uint8

const (
	// KindBase is a vanilla minecraft version
	KindBase Kind = iota
	// KindOverlay is a fabric loader profile on top of a vanilla version
	KindOverlay
)

func (k Kind) String() string {
	if k == KindOverlay {
		return "fabric"
	}
	return "vanilla"
}

// Resolver fetches and caches version metadata
type Resolver struct {
	// HTTP is the internal http client
	HTTP   *http.Client
	Layout *instances.Layout

	// VersionIndexURL and FabricMetaURL can be changed for testing
	VersionIndexURL string
	FabricMetaURL   string
}

// New returns a new Resolver using the default http client of this project
func New(layout *instances.Layout) *Resolver {
	return NewWithClient(layout, ownhttp.New())
}

// NewWithClient returns a new Resolver using a custom http client
func NewWithClient(layout *instances.Layout, client *http.Client) *Resolver {
	return &Resolver{
		HTTP:            client,
		Layout:          layout,
		VersionIndexURL: VersionIndexURL,
		FabricMetaURL:   FabricMetaURL,
	}
}

// getBytes fetches url and returns the whole body.
// 404 (and 400, which fabric meta uses for unknown versions) become NotFound errors
func (r *Resolver) getBytes(ctx context.Context, op string, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, merrors.Network(op, err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := r.HTTP.Do(req)
	if err != nil {
		return nil, merrors.Network(op, errors.Wrapf(err, "requesting %s", url))
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound || res.StatusCode == http.StatusBadRequest:
		return nil, merrors.NotFound(op, fmt.Errorf("%s responded with %s", url, res.Status))
	case res.StatusCode != http.StatusOK:
		return nil, merrors.Network(op, fmt.Errorf("%s responded with unexpected status %s", url, res.Status))
	}

	buf, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, merrors.Network(op, errors.Wrapf(err, "reading %s", url))
	}
	return buf, nil
}
