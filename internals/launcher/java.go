package launcher

import (
	"context"
	"os"
	"runtime"

	"github.com/minepkg/minelander/internals/downloadmgr"
	"github.com/minepkg/minelander/internals/java"
	"github.com/minepkg/minelander/internals/merrors"
)

// InstallRuntime downloads and extracts a bundled java runtime
func (l *Launcher) InstallRuntime(ctx context.Context, r java.Runtime) error {
	return l.fetch(ctx, "Installing "+r.DisplayName(), downloadmgr.PreparingRuntimeDownload{Runtime: r})
}

// SelfUpdate downloads url next to executable, runs verify on it and swaps it in.
// On windows the running executable can not be replaced, so it is moved to ".old" first.
// verify may be nil
func (l *Launcher) SelfUpdate(ctx context.Context, url string, executable string, verify func(next string) error) error {
	err := l.fetch(ctx, "Downloading update", downloadmgr.PreparingSelfUpdate{URL: url, Executable: executable})
	if err != nil {
		return err
	}
	next := downloadmgr.SelfUpdateTarget(executable)
	if verify != nil {
		if err := verify(next); err != nil {
			os.Remove(next)
			return err
		}
	}
	return swapExecutable(next, executable, runtime.GOOS)
}

// OldExecutable is where the replaced executable is kept on windows
func OldExecutable(executable string) string {
	return executable + ".old"
}

func swapExecutable(next string, executable string, goos string) error {
	if goos == "windows" {
		old := OldExecutable(executable)
		os.Remove(old)
		if err := os.Rename(executable, old); err != nil {
			return merrors.Io("replace executable", err)
		}
	}
	if err := os.Rename(next, executable); err != nil {
		if goos == "windows" {
			// revert to the old version
			os.Rename(OldExecutable(executable), executable)
		}
		return merrors.Io("replace executable", err)
	}
	return nil
}
