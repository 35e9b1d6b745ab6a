package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/minelander/internals/commands"
	"github.com/spf13/cobra"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:   "get [name]",
		Short: "Prints one or all settings",
		Args:  cobra.MaximumNArgs(1),
	}, &getRunner{})

	SubCmd.AddCommand(cmd.Command)
}

type getRunner struct{}

func (i *getRunner) RunE(cmd *cobra.Command, args []string) error {
	store, err := OpenStore()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		name := strings.ToLower(args[0])
		entry, ok := config[name]
		if !ok {
			return unknownName(name)
		}
		fmt.Printf("  %s: %v\n", name, store.Get(entry.key))
		return nil
	}

	names := make([]string, 0, len(config))
	for name := range config {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("Settings from " + store.Path())
	for _, name := range names {
		entry := config[name]
		fmt.Printf("  %s: %v %s\n", name, store.Get(entry.key), gchalk.Gray("# "+entry.help))
	}
	return nil
}

func unknownName(name string) error {
	return &commands.CliError{
		Text: fmt.Sprintf("setting \"%s\" does not exist", name),
		Code: "unknown-setting",
		Help: "Run `minelander config get` to see all settings",
	}
}
