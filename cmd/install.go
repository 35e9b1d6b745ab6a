package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/minepkg/minelander/internals/commands"
	"github.com/minepkg/minelander/internals/mojang"
	"github.com/minepkg/minelander/internals/settings"
	"github.com/spf13/cobra"
)

func init() {
	runner := &installRunner{}
	cmd := commands.New(&cobra.Command{
		Use:     "install <version>",
		Short:   "Installs a Minecraft version",
		Example: "  minelander install 1.20.1 --fabric",
		Aliases: []string{"isntall", "i"},
		Args:    cobra.ExactArgs(1),

		ValidArgsFunction: completeInstallable,
	}, runner)

	cmd.Flags().BoolVar(&runner.fabric, "fabric", false, "Install the latest fabric loader for this version")
	cmd.Flags().BoolVar(&runner.keepCurrent, "keep-current", false, "Do not make this the version that is launched by default")

	rootCmd.AddCommand(cmd.Command)
}

type installRunner struct {
	fabric      bool
	keepCurrent bool
}

func (i *installRunner) RunE(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	id, kind := args[0], mojang.KindBase
	installedID := id
	if i.fabric {
		kind = mojang.KindOverlay
		installedID = mojang.OverlayID(id)
	}

	logger.Headline("Installing " + installedID)
	if err := e.launcher.Install(ctx, id, kind); err != nil {
		return err
	}
	logger.Info(commands.Emoji("✅ ") + installedID + " is installed")

	if i.keepCurrent {
		return nil
	}
	e.settings.Set(settings.KeyCurrentVersion, installedID)
	return e.settings.Save()
}
