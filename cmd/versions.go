package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/minelander/internals/commands"
	"github.com/minepkg/minelander/internals/mojang"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func init() {
	runner := &versionsRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "versions",
		Short: "Lists the Minecraft versions that can be installed",
		Args:  cobra.NoArgs,
	}, runner)

	cmd.Flags().BoolVar(&runner.all, "all", false, "Also list snapshots and old versions")
	cmd.Flags().BoolVar(&runner.yaml, "yaml", false, "Print the list as yaml")

	rootCmd.AddCommand(cmd.Command)
}

type versionsRunner struct {
	all  bool
	yaml bool
}

func (v *versionsRunner) RunE(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	all := v.all
	if s, err := e.settings.Settings(); err == nil && s.ShowAllVersions {
		all = true
	}

	spin := e.launcher.Spinner("Fetching version lists")
	spin.Start()
	versions, err := mojang.New(e.layout).ListInstallableVersions(context.Background(), all)
	spin.Stop()
	if err != nil {
		return err
	}

	if v.yaml {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(versions)
	}

	fmt.Println(gchalk.Bold("Vanilla"))
	for _, id := range versions.Base {
		fmt.Println("  " + id)
	}
	fmt.Println(gchalk.Bold("Fabric") + gchalk.Gray(" (install with --fabric)"))
	for _, id := range versions.Overlay {
		fmt.Println("  " + id)
	}
	return nil
}
