package cmd

import (
	"fmt"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/minelander/internals/commands"
	"github.com/minepkg/minelander/internals/utils"
	"github.com/spf13/cobra"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:     "installed",
		Short:   "Lists the installed versions",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
	}, &installedRunner{})

	rootCmd.AddCommand(cmd.Command)
}

type installedRunner struct{}

func (i *installedRunner) RunE(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	ids, err := e.layout.InstalledVersions()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		logger.Info("No versions installed yet. Try `minelander install 1.20.1`")
		return nil
	}

	s, err := e.settings.Settings()
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == s.CurrentVersion {
			fmt.Println(gchalk.Green("* " + id))
			continue
		}
		fmt.Println("  " + utils.PrettyVersion(id))
	}
	return nil
}
