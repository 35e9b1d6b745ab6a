package minecraft

import "runtime"

// Platform is the os/arch pair rules and native classifiers are evaluated against.
// It uses GOOS/GOARCH names
type Platform struct {
	OS   string
	Arch string
}

// CurrentPlatform returns the platform this binary runs on
func CurrentPlatform() Platform {
	return Platform{OS: runtime.GOOS, Arch: runtime.GOARCH}
}

// OSName returns the os name as used in version descriptors ("osx" instead of "darwin")
func (p Platform) OSName() string {
	if p.OS == "darwin" {
		return "osx"
	}
	return p.OS
}

// nativesOSName returns the os name as used in natives classifiers of modern descriptors
func (p Platform) nativesOSName() string {
	if p.OS == "darwin" {
		return "macos"
	}
	return p.OS
}

// ArchName returns the arch as used in version descriptors
func (p Platform) ArchName() string {
	switch p.Arch {
	case "amd64", "x86_64":
		return "x64"
	case "386", "i386":
		return "x86"
	case "arm":
		return "arm32"
	}
	// note: we don't know how other platforms are named
	return p.Arch
}

// bitness is used to replace `${arch}` in legacy natives classifiers
func (p Platform) bitness() string {
	switch p.ArchName() {
	case "x86", "arm32":
		return "32"
	}
	return "64"
}
