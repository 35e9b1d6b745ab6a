package minecraft

import (
	"fmt"
	"path"
	"strings"
)

// DefaultLibraryBase is used for libraries without an url override
const DefaultLibraryBase = "https://libraries.minecraft.net/"

// Libraries as a collection of minecraft libs
type Libraries []Library

// Required returns only the libraries that should be used on p
// (matching rules and natives for the right platform)
func (l Libraries) Required(p Platform) Libraries {
	required := make(Libraries, 0, len(l))
	for _, lib := range l {
		if lib.Applies(p) {
			required = append(required, lib)
		}
	}
	return required
}

// Shape tells how the path and url of a library are derived
type Shape uint8

const (
	// ShapeNormal is a plain jar
	ShapeNormal Shape = iota
	// ShapeNatives is a jar whose coordinate has a natives classifier (like natives-linux)
	ShapeNatives
	// ShapeLegacyNatives expresses natives through the "natives" classifier map (before 1.19)
	ShapeLegacyNatives
)

func (s Shape) String() string {
	switch s {
	case ShapeNatives:
		return "natives"
	case ShapeLegacyNatives:
		return "legacy-natives"
	default:
		return "normal"
	}
}

// Library is a minecraft library
type Library struct {
	// Name is the maven coordinate (group:artifact:version[:classifier])
	Name      string `json:"name"`
	Downloads struct {
		Artifact *Artifact `json:"artifact,omitempty"`
		// Classifiers is a list of additional artifacts.
		// It is used to download native libraries.
		// The `Natives` field is used to determine which classifier to use.
		// This field is no longer used after 1.19
		Classifiers map[string]Artifact `json:"classifiers,omitempty"`
	} `json:"downloads,omitempty"`
	// URL is the maven repository base (fabric libraries use this)
	URL string `json:"url,omitempty"`
	// Rules is a list of rules that determine whether this library should be included.
	// If no rules are specified, the library is included by default.
	Rules Rules `json:"rules,omitempty"`
	// Natives is a map of OS names to native classifier names.
	// This field is no longer used after 1.19
	Natives map[string]string `json:"natives,omitempty"`
}

// Coordinate is a decomposed maven coordinate
type Coordinate struct {
	Group      string
	Artifact   string
	Version    string
	Classifier string
}

// ParseCoordinate splits "group:artifact:version[:classifier]"
func ParseCoordinate(name string) (Coordinate, error) {
	parts := strings.Split(name, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return Coordinate{}, fmt.Errorf("invalid library coordinate %q", name)
	}
	for _, p := range parts {
		if p == "" {
			return Coordinate{}, fmt.Errorf("invalid library coordinate %q", name)
		}
	}
	c := Coordinate{Group: parts[0], Artifact: parts[1], Version: parts[2]}
	if len(parts) == 4 {
		c.Classifier = parts[3]
	}
	return c, nil
}

// Path returns the slash separated path relative to the libraries directory
func (c Coordinate) Path() string {
	return c.PathWithClassifier(c.Classifier)
}

// PathWithClassifier is like Path but with a different (or no) classifier
func (c Coordinate) PathWithClassifier(classifier string) string {
	file := c.Artifact + "-" + c.Version
	if classifier != "" {
		file += "-" + classifier
	}
	groupPath := strings.ReplaceAll(c.Group, ".", "/")
	return path.Join(groupPath, c.Artifact, c.Version, file+".jar")
}

func (c Coordinate) String() string {
	s := c.Group + ":" + c.Artifact + ":" + c.Version
	if c.Classifier != "" {
		s += ":" + c.Classifier
	}
	return s
}

// Coordinate parses the name of this library
func (l *Library) Coordinate() (Coordinate, error) {
	return ParseCoordinate(l.Name)
}

// Shape classifies this library
func (l *Library) Shape() Shape {
	if len(l.Natives) != 0 {
		return ShapeLegacyNatives
	}
	c, err := l.Coordinate()
	if err == nil && strings.HasPrefix(c.Classifier, "natives-") {
		return ShapeNatives
	}
	return ShapeNormal
}

// Applies returns true if this library should be used on p.
// Rules are evaluated first, natives for other platforms never apply
func (l *Library) Applies(p Platform) bool {
	if !l.Rules.Allowed(p) {
		return false
	}
	switch l.Shape() {
	case ShapeNatives:
		c, _ := l.Coordinate()
		return nativesClassifierMatches(c.Classifier, p)
	case ShapeLegacyNatives:
		if l.HasArtifact() {
			return true
		}
		_, ok := l.Natives[p.OSName()]
		return ok
	}
	return true
}

// HasArtifact is true if the library has a main jar besides its natives.
// Legacy natives of 1.13 to 1.18 carry both
func (l *Library) HasArtifact() bool {
	return l.Downloads.Artifact != nil && l.Downloads.Artifact.URL != ""
}

// OnClasspath is false for libraries that only consist of a natives jar
func (l *Library) OnClasspath() bool {
	return l.Shape() != ShapeLegacyNatives || l.HasArtifact()
}

// nativesClassifierMatches checks classifiers like "natives-linux", "natives-macos-arm64"
// or "natives-windows-x86"
func nativesClassifierMatches(classifier string, p Platform) bool {
	parts := strings.SplitN(strings.TrimPrefix(classifier, "natives-"), "-", 2)
	osName := parts[0]
	if osName != p.nativesOSName() && osName != p.OSName() {
		return false
	}
	if len(parts) == 1 {
		return true
	}
	arch := parts[1]
	if arch == "arm64" && p.Arch == "arm64" {
		return true
	}
	return arch == p.ArchName()
}

// Path returns the slash separated path relative to the libraries directory.
// Legacy natives without a main jar point to their platform specific classifier jar
func (l *Library) Path(p Platform) string {
	c, err := l.Coordinate()
	if err != nil {
		if l.Downloads.Artifact != nil {
			return l.Downloads.Artifact.Path
		}
		return ""
	}
	if l.Shape() == ShapeLegacyNatives && !l.HasArtifact() {
		if artifact, ok := l.nativesArtifact(p); ok && artifact.Path != "" {
			return artifact.Path
		}
		return c.PathWithClassifier("natives-" + p.OSName())
	}
	return c.Path()
}

// DownloadURL returns the download url for this library (the main jar if there is one).
// An explicit url wins, an override ending with "/" is a repository base
// the path gets appended to. Without override the mojang repository is used
func (l *Library) DownloadURL(p Platform) string {
	if l.Shape() == ShapeLegacyNatives && !l.HasArtifact() {
		return l.NativesURL(p)
	}

	override := l.URL
	if l.Downloads.Artifact != nil && l.Downloads.Artifact.URL != "" {
		override = l.Downloads.Artifact.URL
	}
	libPath := l.Path(p)
	switch {
	case override == "":
		return DefaultLibraryBase + libPath
	case strings.HasSuffix(override, "/"):
		return override + libPath
	default:
		return override
	}
}

// NativesClassifier returns the classifier key of the legacy natives jar for p
func (l *Library) NativesClassifier(p Platform) string {
	classifier, ok := l.Natives[p.OSName()]
	if !ok {
		return ""
	}
	return strings.ReplaceAll(classifier, "${arch}", p.bitness())
}

// NativesURL returns the url of the legacy natives jar for p. Empty if there is none
func (l *Library) NativesURL(p Platform) string {
	if l.NativesClassifier(p) == "" {
		return ""
	}
	artifact, _ := l.nativesArtifact(p)
	return artifact.URL
}

func (l *Library) nativesArtifact(p Platform) (Artifact, bool) {
	candidates := []string{
		l.NativesClassifier(p),
		"natives-" + p.OSName(),
		"natives-" + p.OSName() + "-64",
	}
	for _, key := range candidates {
		if key == "" {
			continue
		}
		if artifact, ok := l.Downloads.Classifiers[key]; ok && artifact.URL != "" {
			return artifact, true
		}
	}
	return Artifact{}, false
}
