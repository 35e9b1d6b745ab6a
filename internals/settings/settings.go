package settings

import (
	"fmt"
	"math"
	"strings"

	"github.com/minepkg/minelander/internals/java"
	"github.com/minepkg/minelander/internals/merrors"
	"github.com/pbnjay/memory"
)

// Names of the entries in the settings blob
const (
	KeyUsername        = "username"
	KeyCurrentVersion  = "current_version"
	KeyGameRAM         = "game_ram"
	KeyCurrentJavaName = "current_java_name"
	KeyJVMs            = "JVMs"
	KeyCurrentInstance = "current_game_instance"
	KeyWrapperCommands = "game_wrapper_commands"
	// the misspelling is part of the file format
	KeyEnvironment     = "game_enviroment_variables"
	KeyShowAllVersions = "show_all_versions"
	KeyUpdateChannel   = "update_channel"
)

// Java names that are not custom runtimes
const (
	AutomaticJavaName = "Automatic"
	SystemJavaName    = "System Java"
)

// defaults are applied for every key missing in the blob
var defaults = map[string]interface{}{
	KeyUsername:        "player",
	KeyCurrentVersion:  "",
	KeyGameRAM:         2.5,
	KeyCurrentJavaName: AutomaticJavaName,
	KeyJVMs:            []interface{}{},
	KeyCurrentInstance: "Default",
	KeyWrapperCommands: "",
	KeyEnvironment:     "",
	KeyShowAllVersions: false,
	KeyUpdateChannel:   "stable",
}

// JVM is a user supplied java runtime
type JVM struct {
	Name  string `mapstructure:"name" json:"name"`
	Path  string `mapstructure:"path" json:"path"`
	Flags string `mapstructure:"flags" json:"flags"`
}

// Settings is the decoded settings blob
type Settings struct {
	Username            string  `mapstructure:"username"`
	CurrentVersion      string  `mapstructure:"current_version"`
	GameRAM             float64 `mapstructure:"game_ram"`
	CurrentJavaName     string  `mapstructure:"current_java_name"`
	JVMs                []JVM   `mapstructure:"jvms"`
	CurrentGameInstance string  `mapstructure:"current_game_instance"`
	WrapperCommands     string  `mapstructure:"game_wrapper_commands"`
	Environment         string  `mapstructure:"game_enviroment_variables"`
	ShowAllVersions     bool    `mapstructure:"show_all_versions"`
	UpdateChannel       string  `mapstructure:"update_channel"`
}

// GameSettings is everything a single launch needs from the user settings
type GameSettings struct {
	Username string
	// Version is the id of the version to launch
	Version string
	// RAMMiB is passed as -Xmx
	RAMMiB   int
	Java     java.Choice
	Instance string
	// Wrapper is prepended to the java command (eg. gamemoderun)
	Wrapper []string
	// Env contains KEY=VALUE pairs added to the game environment
	Env []string
}

// JavaChoice maps the current java name to a runtime choice
func (s *Settings) JavaChoice() (java.Choice, error) {
	switch s.CurrentJavaName {
	case AutomaticJavaName, "":
		return java.Choice{Kind: java.Automatic}, nil
	case SystemJavaName:
		return java.Choice{Kind: java.System}, nil
	}
	for _, r := range java.Runtimes {
		if s.CurrentJavaName == r.DisplayName() || s.CurrentJavaName == r.Name() {
			return java.Choice{Kind: java.Bundled, Runtime: r}, nil
		}
	}
	for _, jvm := range s.JVMs {
		if jvm.Name == s.CurrentJavaName {
			return java.Choice{
				Kind:  java.Custom,
				Name:  jvm.Name,
				Path:  jvm.Path,
				Flags: strings.Fields(jvm.Flags),
			}, nil
		}
	}
	return java.Choice{}, merrors.NotFound(
		"select java",
		fmt.Errorf("no java runtime named %q is configured", s.CurrentJavaName),
	)
}

// JavaNames lists every selectable java name
func (s *Settings) JavaNames() []string {
	names := []string{AutomaticJavaName, SystemJavaName}
	for _, r := range java.Runtimes {
		names = append(names, r.DisplayName())
	}
	for _, jvm := range s.JVMs {
		names = append(names, jvm.Name)
	}
	return names
}

// Game returns the settings of a single launch
func (s *Settings) Game() (*GameSettings, error) {
	choice, err := s.JavaChoice()
	if err != nil {
		return nil, err
	}

	ram := int(s.GameRAM * 1024)
	if ram <= 0 {
		ram = AutomaticRAM(memory.TotalMemory())
	}

	return &GameSettings{
		Username: s.Username,
		Version:  s.CurrentVersion,
		RAMMiB:   ram,
		Java:     choice,
		Instance: s.CurrentGameInstance,
		Wrapper:  strings.Fields(s.WrapperCommands),
		Env:      ParseEnvironment(s.Environment),
	}, nil
}

// AutomaticRAM returns the MiB to use if the user did not set anything.
// It is a quarter of the system memory but at least 2 GiB (if there is that much)
func AutomaticRAM(totalBytes uint64) int {
	sysMemMiB := float64(totalBytes) / 1024 / 1024

	ramMiB := math.Max(2048, sysMemMiB/4)
	// not more than 85% of the memory
	if sysMemMiB > 0 {
		ramMiB = math.Min(ramMiB, sysMemMiB*0.85)
	}
	return int(ramMiB)
}

// ParseEnvironment parses space separated KEY=VALUE pairs. Words without a "=" are ignored
func ParseEnvironment(raw string) []string {
	var env []string
	for _, pair := range strings.Fields(raw) {
		key, _, found := strings.Cut(pair, "=")
		if !found || key == "" {
			continue
		}
		env = append(env, pair)
	}
	return env
}
