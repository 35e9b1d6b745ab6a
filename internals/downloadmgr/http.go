package downloadmgr

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/minepkg/minelander/internals/merrors"
	"github.com/pkg/errors"
)

// HTTPItem is a URL, target pair that will be downloaded using http(s)
type HTTPItem struct {
	Client *http.Client
	URL    string
	Target string
}

// Download downloads the item to the defined target. An existing file is overwritten
func (i *HTTPItem) Download(ctx context.Context) error {
	res, err := open(ctx, i.Client, i.URL)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	dest, err := createTarget(i.Target)
	if err != nil {
		return err
	}
	defer dest.Close()

	if _, err := io.Copy(dest, res.Body); err != nil {
		return merrors.Network("download "+i.URL, err)
	}
	if err := dest.Sync(); err != nil {
		return merrors.Io("write "+i.Target, err)
	}
	return nil
}

// open starts a GET request and checks the status code
func open(ctx context.Context, client *http.Client, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, merrors.Network("download", err)
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, merrors.Network("download", errors.Wrapf(err, "fetching %s", url))
	}
	if res.StatusCode != http.StatusOK {
		res.Body.Close()
		return nil, merrors.Network("download", fmt.Errorf("invalid status code: %s from %s", res.Status, url))
	}
	return res, nil
}

// createTarget creates (or truncates) target and its parent directories
func createTarget(target string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(target), os.ModePerm); err != nil {
		return nil, merrors.Io("create directory for "+target, err)
	}
	dest, err := os.Create(target)
	if err != nil {
		return nil, merrors.Io("create "+target, err)
	}
	return dest, nil
}
