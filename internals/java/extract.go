package java

import (
	"fmt"
	"os"

	archiver "github.com/mholt/archiver/v3"
	"github.com/minepkg/minelander/internals/merrors"
)

// Extract unpacks a downloaded runtime archive to r.Dir(runtimeRoot) and removes the archive.
// The single top level directory of the archive (something like "jdk-17.0.11+9-jre")
// becomes the runtime directory
func Extract(archive string, runtimeRoot string, r Runtime) error {
	target := r.Dir(runtimeRoot)
	tmp := target + ".tmp"

	// remove everything
	if err := os.RemoveAll(target); err != nil {
		return merrors.Io("remove old "+r.Name(), err)
	}
	os.RemoveAll(tmp)

	// extract the whole archive. avoids https://github.com/mholt/archiver/issues/289
	if err := archiver.Unarchive(archive, tmp); err != nil {
		return merrors.Io("extract "+r.Name(), err)
	}
	defer os.RemoveAll(tmp)

	rootDir, err := topLevelDir(tmp)
	if err != nil {
		return merrors.Parse("extract "+r.Name(), err)
	}
	if err := os.Rename(rootDir, target); err != nil {
		return merrors.Io("extract "+r.Name(), err)
	}

	if err := os.Remove(archive); err != nil {
		return merrors.Io("remove runtime archive", err)
	}
	return nil
}

func topLevelDir(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	found := ""
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if found != "" {
			return "", fmt.Errorf("archive has more than one top level directory")
		}
		found = entry.Name()
	}
	if found == "" {
		return "", fmt.Errorf("archive has no top level directory")
	}
	return dir + string(os.PathSeparator) + found, nil
}
