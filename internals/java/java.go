// Package java manages the bundled java runtimes and decides which java binary launches a version
package java

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/minepkg/minelander/internals/merrors"
)

// Runtime is a bundled java runtime, named by its major version
type Runtime int

const (
	Java8  Runtime = 8
	Java17 Runtime = 17
	Java21 Runtime = 21
)

// Runtimes are all runtimes that can be installed
var Runtimes = []Runtime{Java8, Java17, Java21}

// ParseRuntime parses "8", "java17" or "21"
func ParseRuntime(s string) (Runtime, error) {
	trimmed := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "java")
	for _, r := range Runtimes {
		if fmt.Sprint(int(r)) == trimmed {
			return r, nil
		}
	}
	return 0, &merrors.CliError{
		Err:  fmt.Sprintf("Unknown java runtime %q", s),
		Help: "Available runtimes are 8, 17 and 21",
	}
}

// Name is the directory name of this runtime ("java17")
func (r Runtime) Name() string {
	return fmt.Sprintf("java%d", int(r))
}

// DisplayName is used in settings and the cli ("Java 17 (Minelander)")
func (r Runtime) DisplayName() string {
	return fmt.Sprintf("Java %d (Minelander)", int(r))
}

// Dir returns the install directory of this runtime
func (r Runtime) Dir(runtimeRoot string) string {
	return filepath.Join(runtimeRoot, r.Name())
}

// Bin returns the path of the java binary of this runtime
func (r Runtime) Bin(runtimeRoot string, goos string) string {
	bin := "bin/java"
	if goos == "windows" {
		bin = "bin/javaw.exe"
	}
	return filepath.Join(r.Dir(runtimeRoot), filepath.FromSlash(bin))
}

// Installed returns true if the java binary of this runtime exists
func (r Runtime) Installed(runtimeRoot string, goos string) bool {
	_, err := os.Stat(r.Bin(runtimeRoot, goos))
	return err == nil
}
