package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/minepkg/minelander/internals/commands"
	"github.com/minepkg/minelander/internals/launcher"
	"github.com/spf13/cobra"
)

func init() {
	runner := &launchRunner{}
	cmd := commands.New(&cobra.Command{
		Use:     "launch [version]",
		Short:   "Launches Minecraft",
		Long:    "Launches the given or the current version. Missing files, base versions and java runtimes are downloaded first",
		Aliases: []string{"run", "start", "play"},
		Args:    cobra.MaximumNArgs(1),

		ValidArgsFunction: completeInstalled,
	}, runner)

	runner.overwrites = launcher.CmdOverwriteFlags(cmd.Command)

	rootCmd.AddCommand(cmd.Command)
}

type launchRunner struct {
	overwrites *launcher.OverwriteFlags
}

func (l *launchRunner) RunE(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	s, err := e.settings.Settings()
	if err != nil {
		return err
	}
	gs, err := s.Game()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		gs.Version = args[0]
	}
	if gs.Version == "" {
		return &commands.CliError{
			Text: "No version selected",
			Code: "no-version",
			Help: "Install one with `minelander install <version>` or pass it to launch",
		}
	}
	if err := l.overwrites.ApplyOverWrites(gs, s); err != nil {
		return err
	}

	creds, err := e.credentials()
	if err != nil {
		return err
	}
	identity := creds.Identity(gs.Username)

	if l.overwrites.PrintCommand {
		return e.launcher.PrintCommand(os.Stdout, gs, identity)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	_, err = e.launcher.Launch(ctx, gs, identity)
	return err
}
