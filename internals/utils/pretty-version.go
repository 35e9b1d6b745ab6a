// Package utils contains small formatting helpers for terminal output
package utils

import (
	"strings"

	"github.com/jwalton/gchalk"
)

// PrettyVersion returns a colored version id for terminal printing.
// The loader suffix of overlay versions ("1.20.1-fabric") is highlighted
func PrettyVersion(version string) string {
	// we trim first to avoid broken colors
	if len(version) >= 22 {
		version = version[:18] + " …"
	}

	versionParts := strings.SplitN(version, "-", 2)
	prettyVersion := versionParts[0]
	if len(versionParts) == 2 {
		prettyVersion += gchalk.Cyan("-" + versionParts[1])
	}
	return prettyVersion
}
