package launcher

import (
	"strings"

	"github.com/minepkg/minelander/internals/java"
	"github.com/minepkg/minelander/internals/settings"
	"github.com/spf13/cobra"
)

// OverwriteFlags are cli flags used to overwrite launch behavior
type OverwriteFlags struct {
	Java         string
	Ram          int
	Instance     string
	PrintCommand bool
}

// CmdOverwriteFlags registers the overwrite flags on cmd
func CmdOverwriteFlags(cmd *cobra.Command) *OverwriteFlags {
	flags := OverwriteFlags{}
	cmd.Flags().IntVar(&flags.Ram, "ram", 0, "Overwrite the amount of RAM in MiB to use")
	cmd.Flags().StringVar(&flags.Java, "java", "", "Overwrite the Java runtime. Examples: 17, system, auto or the name of a custom java")
	cmd.Flags().StringVar(&flags.Instance, "instance", "", "Overwrite the game instance (directory) to use")
	cmd.Flags().BoolVar(&flags.PrintCommand, "print-command", false, "Only print the command that would start Minecraft")

	return &flags
}

// ApplyOverWrites changes gs according to the set flags. Custom java names are
// looked up in s
func (o *OverwriteFlags) ApplyOverWrites(gs *settings.GameSettings, s *settings.Settings) error {
	if o.Ram > 0 {
		gs.RAMMiB = o.Ram
	}
	if o.Instance != "" {
		gs.Instance = o.Instance
	}
	if o.Java == "" {
		return nil
	}

	switch strings.ToLower(o.Java) {
	case "system":
		gs.Java = java.Choice{Kind: java.System}
		return nil
	case "auto", "automatic":
		gs.Java = java.Choice{Kind: java.Automatic}
		return nil
	}
	if r, err := java.ParseRuntime(o.Java); err == nil {
		gs.Java = java.Choice{Kind: java.Bundled, Runtime: r}
		return nil
	}

	lookup := *s
	lookup.CurrentJavaName = o.Java
	choice, err := lookup.JavaChoice()
	if err != nil {
		return err
	}
	gs.Java = choice
	return nil
}
