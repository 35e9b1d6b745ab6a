package cmd

import (
	"fmt"
	"os"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/minelander/cmd/config"
	"github.com/minepkg/minelander/internals/cmdlog"
	"github.com/minepkg/minelander/internals/commands"
	"github.com/minepkg/minelander/internals/credentials"
	"github.com/minepkg/minelander/internals/instances"
	"github.com/minepkg/minelander/internals/launcher"
	"github.com/minepkg/minelander/internals/settings"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// set by main
var (
	Version = "0.0.0-dev"
	Commit  string
)

// UpdateRepo is the github repository releases are fetched from
const UpdateRepo = "jafkc2/minelander"

var logger = cmdlog.New()

var (
	disableColors  bool
	verbose        bool
	nonInteractive bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "minelander",
	Short: "A small Minecraft launcher",
	Long:  "Installs and launches vanilla and fabric Minecraft versions",

	Example: `
  minelander install 1.20.1
  minelander install 1.20.1 --fabric
  minelander launch 1.20.1-fabric --ram 4096`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = Version
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("root", "", "installation root (default is the .minecraft directory)")
	rootCmd.PersistentFlags().BoolVar(&disableColors, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "never show spinners")
	viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))

	config.OpenStore = openSettings
	rootCmd.AddCommand(config.SubCmd)
}

// initConfig reads in ENV variables if set.
func initConfig() {
	viper.SetEnvPrefix(settings.EnvPrefix)
	viper.AutomaticEnv() // MINELANDER_ROOT

	if disableColors || os.Getenv("CI") != "" {
		gchalk.SetLevel(gchalk.LevelNone)
		commands.EmojiEnabled = false
	}
	logger.Verbose = verbose
}

// layout returns the prepared installation root
func layout() (*instances.Layout, error) {
	l, err := instances.FromRoot(viper.GetString("root"))
	if err != nil {
		return nil, err
	}
	for _, warning := range l.Prepare() {
		logger.Warn(warning.Error())
	}
	return l, nil
}

func openSettings() (*settings.Store, error) {
	l, err := layout()
	if err != nil {
		return nil, err
	}
	return settings.Open(l.SettingsPath())
}

// env bundles everything most commands need
type env struct {
	layout   *instances.Layout
	settings *settings.Store
	launcher *launcher.Launcher
}

func newEnv() (*env, error) {
	l, err := layout()
	if err != nil {
		return nil, err
	}
	store, err := settings.Open(l.SettingsPath())
	if err != nil {
		return nil, err
	}
	launch := launcher.New(l, logger, Version)
	launch.NonInteractive = nonInteractive
	return &env{layout: l, settings: store, launcher: launch}, nil
}

func (e *env) credentials() (*credentials.Store, error) {
	store, err := credentials.New(e.layout.GlobalDir)
	if err != nil {
		return nil, err
	}
	if store.NoKeyRingMode {
		logger.Debug("no keyring available, credentials are stored in a file")
	}
	return store, nil
}
