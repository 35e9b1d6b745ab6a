package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/minelander/internals/commands"
	"github.com/spf13/cobra"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:   "set <name> <value>",
		Short: "Changes a setting",
		Args:  cobra.ExactArgs(2),
	}, &setRunner{})

	SubCmd.AddCommand(cmd.Command)
}

type setRunner struct{}

func (i *setRunner) RunE(cmd *cobra.Command, args []string) error {
	name := strings.ToLower(args[0])
	entry, ok := config[name]
	if !ok {
		return unknownName(name)
	}

	newValue, err := parseValue(entry.kind, args[1])
	if err != nil {
		return err
	}

	store, err := OpenStore()
	if err != nil {
		return err
	}
	previousValue := store.Get(entry.key)
	previousStringValue := fmt.Sprintf("%v", previousValue)
	if previousValue == nil {
		previousStringValue = "(unset)"
	}
	store.Set(entry.key, newValue)

	fmt.Printf(
		"Changing setting:\n  %s: %s → %v\n",
		name,
		gchalk.Strikethrough(previousStringValue),
		gchalk.Bold(fmt.Sprintf("%v", newValue)),
	)

	return store.Save()
}

func parseValue(kind int, value string) (interface{}, error) {
	switch kind {
	case configKindBool:
		return parseBool(value)
	case configKindFloat:
		num, err := strconv.ParseFloat(value, 64)
		if err != nil || num < 0 {
			return nil, fmt.Errorf("invalid number %q", value)
		}
		return num, nil
	default:
		return value, nil
	}
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value. Use \"true\" or \"false\"")
	}
}
