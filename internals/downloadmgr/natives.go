package downloadmgr

import (
	"os"
	"path/filepath"

	archiver "github.com/mholt/archiver/v3"
	"github.com/minepkg/minelander/internals/merrors"
)

// extractNatives unpacks every entry of a natives staging jar into the directory
// it is in and removes the jar afterwards
func extractNatives(jar string) error {
	z := archiver.NewZip()
	z.OverwriteExisting = true
	z.MkdirAll = true
	if err := z.Unarchive(jar, filepath.Dir(jar)); err != nil {
		return merrors.Io("extract natives", err)
	}
	if err := os.Remove(jar); err != nil {
		return merrors.Io("remove natives staging jar", err)
	}
	return nil
}
