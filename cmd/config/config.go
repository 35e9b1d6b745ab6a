// Package config implements the commands that read and change the settings blob
package config

import (
	"github.com/minepkg/minelander/internals/settings"
	"github.com/spf13/cobra"
)

const (
	configKindString = iota
	configKindBool
	configKindFloat
)

type configEntry struct {
	key  string
	kind int
	help string
}

var config = map[string]configEntry{
	"username":      {settings.KeyUsername, configKindString, "Player name used for offline play"},
	"version":       {settings.KeyCurrentVersion, configKindString, "Version launched by default"},
	"ram":           {settings.KeyGameRAM, configKindFloat, "GiB of RAM for the game. 0 picks a value from the system memory"},
	"java":          {settings.KeyCurrentJavaName, configKindString, "Java runtime name (Automatic, System Java, a bundled or custom runtime)"},
	"instance":      {settings.KeyCurrentInstance, configKindString, "Game instance launched by default"},
	"wrapper":       {settings.KeyWrapperCommands, configKindString, "Commands put in front of java (eg. gamemoderun)"},
	"env":           {settings.KeyEnvironment, configKindString, "Space separated KEY=VALUE pairs for the game"},
	"showall":       {settings.KeyShowAllVersions, configKindBool, "List snapshots and old versions by default"},
	"updatechannel": {settings.KeyUpdateChannel, configKindString, "Update channel used by selfupdate"},
}

// OpenStore opens the settings of the current installation root
var OpenStore func() (*settings.Store, error)

var SubCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the launcher settings",
}
