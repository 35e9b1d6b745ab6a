package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/minepkg/minelander/internals/commands"
	"github.com/minepkg/minelander/internals/java"
	"github.com/spf13/cobra"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:       "java <8|17|21>",
		Short:     "Installs a bundled java runtime",
		Long:      "Versions asking for java 8 or older get java 8, up to 17 java 17 and anything newer java 21. Launching installs the needed runtime automatically",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"8", "17", "21"},
	}, &javaRunner{})

	rootCmd.AddCommand(cmd.Command)
}

type javaRunner struct{}

func (j *javaRunner) RunE(cmd *cobra.Command, args []string) error {
	r, err := java.ParseRuntime(args[0])
	if err != nil {
		return err
	}
	e, err := newEnv()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if r.Installed(e.layout.RuntimeDir(), e.launcher.Planner.Platform.OS) {
		logger.Log(r.DisplayName() + " is already installed, reinstalling")
	}
	if err := e.launcher.InstallRuntime(ctx, r); err != nil {
		return err
	}
	logger.Info(commands.Emoji("☕ ") + r.DisplayName() + " is installed")
	return nil
}
