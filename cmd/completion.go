package cmd

import (
	"os"
	"path/filepath"

	"github.com/minepkg/minelander/internals/autocomplete"
	"github.com/minepkg/minelander/internals/mojang"
	"github.com/spf13/cobra"
)

func versionCompleter() (*autocomplete.AutoCompleter, error) {
	l, err := layout()
	if err != nil {
		return nil, err
	}
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}
	return &autocomplete.AutoCompleter{
		Source:   mojang.New(l),
		CacheDir: filepath.Join(cacheDir, "minelander"),
	}, nil
}

// completeInstallable completes versions for install
func completeInstallable(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	completer, err := versionCompleter()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	fabric, _ := cmd.Flags().GetBool("fabric")
	return completer.Complete(toComplete, fabric)
}

// completeInstalled completes versions for launch
func completeInstalled(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	l, err := layout()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ids, err := l.InstalledVersions()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return autocomplete.CompleteInstalled(ids, toComplete)
}
