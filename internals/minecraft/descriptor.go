package minecraft

import (
	"encoding/json"
	"fmt"

	"github.com/minepkg/minelander/internals/merrors"
)

// VersionDescriptor is a version.json document that is used to launch minecraft.
// Overlays (like fabric profiles) only carry a subset of the fields and point to
// their base with InheritsFrom
type VersionDescriptor struct {
	ID           string `json:"id"`
	InheritsFrom string `json:"inheritsFrom,omitempty"`
	// Type is "release", "snapshot", "old_beta" …
	Type      string `json:"type"`
	MainClass string `json:"mainClass"`
	// MinecraftArguments are used before 1.13
	MinecraftArguments string `json:"minecraftArguments,omitempty"`
	// Arguments is the new (complicated) system
	Arguments *Arguments `json:"arguments,omitempty"`
	Downloads struct {
		Client Artifact `json:"client"`
	} `json:"downloads"`
	Assets      string        `json:"assets"`
	AssetIndex  AssetIndexRef `json:"assetIndex"`
	JavaVersion *JavaVersion  `json:"javaVersion,omitempty"`
	Libraries   Libraries     `json:"libraries"`
}

// Arguments are the argument templates of modern descriptors
type Arguments struct {
	Game []Argument `json:"game"`
	JVM  []Argument `json:"jvm"`
}

// Argument is one argument template entry. In json it is either a plain string
// or an object with rules and one or more values
type Argument struct {
	Value stringSlice `json:"value"`
	Rules Rules       `json:"rules,omitempty"`
}

// UnmarshalJSON accepts both forms of an argument
func (a *Argument) UnmarshalJSON(data []byte) error {
	if len(data) != 0 && data[0] == '"' {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		*a = Argument{Value: stringSlice{single}}
		return nil
	}

	type plainArgument Argument
	var arg plainArgument
	if err := json.Unmarshal(data, &arg); err != nil {
		return err
	}
	*a = Argument(arg)
	return nil
}

// ArgumentValues returns the values of all arguments whose rules allow them on p
func ArgumentValues(args []Argument, p Platform) []string {
	values := make([]string, 0, len(args))
	for _, arg := range args {
		if !arg.Rules.Allowed(p) {
			continue
		}
		values = append(values, arg.Value...)
	}
	return values
}

// ParseDescriptor decodes a version descriptor. Any malformed or
// incomplete document results in a merrors.KindParse error
func ParseDescriptor(data []byte) (*VersionDescriptor, error) {
	desc := &VersionDescriptor{}
	if err := json.Unmarshal(data, desc); err != nil {
		return nil, merrors.Parse("decode version descriptor", err)
	}
	if desc.ID == "" {
		return nil, merrors.Parse("decode version descriptor", fmt.Errorf("document has no id"))
	}
	for i := range desc.Libraries {
		if _, err := desc.Libraries[i].Coordinate(); err != nil && desc.Libraries[i].Downloads.Artifact == nil {
			return nil, merrors.Parse("decode version descriptor "+desc.ID, err)
		}
	}
	return desc, nil
}

// HasJVMArguments returns true if the descriptor carries jvm argument templates
func (d *VersionDescriptor) HasJVMArguments() bool {
	return d.Arguments != nil && d.Arguments.JVM != nil
}

// JVMArguments returns the raw jvm argument templates
func (d *VersionDescriptor) JVMArguments() []Argument {
	if d.Arguments == nil {
		return nil
	}
	return d.Arguments.JVM
}

// GameArguments returns the raw modern game argument templates
func (d *VersionDescriptor) GameArguments() []Argument {
	if d.Arguments == nil {
		return nil
	}
	return d.Arguments.Game
}

// RequiredJava returns the java major version this descriptor wants. 0 if unset
func (d *VersionDescriptor) RequiredJava() int {
	if d.JavaVersion == nil {
		return 0
	}
	return d.JavaVersion.MajorVersion
}

// AssetIndexID returns the id of the asset index (falling back to the legacy "assets" field)
func (d *VersionDescriptor) AssetIndexID() string {
	if d.AssetIndex.ID != "" {
		return d.AssetIndex.ID
	}
	return d.Assets
}

// Merge returns a new descriptor that combines an overlay with the base it inherits from.
// Neither input is modified.
//
// The base supplies the asset index, the client download and its jvm and game templates.
// Jvm templates of the overlay are appended, so are its modern game templates.
// A legacy argument string of the overlay replaces the one of the base.
// Libraries of the base come first.
func Merge(base, overlay *VersionDescriptor) *VersionDescriptor {
	merged := *overlay
	merged.InheritsFrom = ""
	merged.Type = base.Type
	merged.Assets = base.Assets
	merged.AssetIndex = base.AssetIndex
	merged.Downloads = base.Downloads

	if merged.MainClass == "" {
		merged.MainClass = base.MainClass
	}
	if merged.JavaVersion == nil && base.JavaVersion != nil {
		javaVersion := *base.JavaVersion
		merged.JavaVersion = &javaVersion
	}
	if merged.MinecraftArguments == "" {
		merged.MinecraftArguments = base.MinecraftArguments
	}

	if base.Arguments != nil || overlay.Arguments != nil {
		args := &Arguments{}
		if base.Arguments != nil {
			args.Game = append(args.Game, base.Arguments.Game...)
			args.JVM = append(args.JVM, base.Arguments.JVM...)
		}
		if overlay.Arguments != nil {
			args.Game = append(args.Game, overlay.Arguments.Game...)
			args.JVM = append(args.JVM, overlay.Arguments.JVM...)
		}
		merged.Arguments = args
	}

	merged.Libraries = make(Libraries, 0, len(base.Libraries)+len(overlay.Libraries))
	merged.Libraries = append(merged.Libraries, base.Libraries...)
	merged.Libraries = append(merged.Libraries, overlay.Libraries...)

	return &merged
}
