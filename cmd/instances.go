package cmd

import (
	"fmt"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/minelander/internals/commands"
	"github.com/minepkg/minelander/internals/settings"
	"github.com/spf13/cobra"
)

func init() {
	list := commands.New(&cobra.Command{
		Use:   "instances",
		Short: "Lists the game instances",
		Long:  "Every instance is a separate game directory with its own saves, mods and options",
		Args:  cobra.NoArgs,
	}, &instancesRunner{})

	create := &instancesCreateRunner{}
	createCmd := commands.New(&cobra.Command{
		Use:   "create <name>",
		Short: "Creates a new game instance",
		Args:  cobra.ExactArgs(1),
	}, create)
	createCmd.Flags().BoolVar(&create.use, "use", false, "Launch this instance by default")

	list.AddCommand(createCmd.Command)
	rootCmd.AddCommand(list.Command)
}

type instancesRunner struct{}

func (i *instancesRunner) RunE(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	names, err := e.layout.Instances()
	if err != nil {
		return err
	}
	s, err := e.settings.Settings()
	if err != nil {
		return err
	}
	for _, name := range names {
		if name == s.CurrentGameInstance {
			fmt.Println(gchalk.Green("* "+name) + gchalk.Gray(" "+e.layout.GameDir(name)))
			continue
		}
		fmt.Println("  " + name)
	}
	return nil
}

type instancesCreateRunner struct {
	use bool
}

func (i *instancesCreateRunner) RunE(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	name, err := e.layout.CreateInstance(args[0])
	if err != nil {
		return err
	}
	logger.Info("Created instance " + name + " in " + e.layout.GameDir(name))

	if !i.use {
		return nil
	}
	e.settings.Set(settings.KeyCurrentInstance, name)
	return e.settings.Save()
}
