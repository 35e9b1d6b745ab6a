package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/minepkg/minelander/internals/commands"
	"github.com/minepkg/minelander/internals/github"
	"github.com/minepkg/minelander/internals/merrors"
	"github.com/spf13/cobra"
)

var styleWarnBox = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#b37400")).
	Foreground(lipgloss.Color("orange")).
	Padding(0, 1)

func init() {
	runner := &selfupdateRunner{}

	cmd := commands.New(&cobra.Command{
		Use:     "selfupdate",
		Aliases: []string{"self-update"},
		Short:   "Updates minelander to the latest version",
		Args:    cobra.ExactArgs(0),
	}, runner)

	cmd.Flags().BoolVar(&runner.force, "force", false, "Install the latest release even if it is not newer")

	rootCmd.AddCommand(cmd.Command)
	rootCmd.AddCommand(selftestCmd)
}

type selfupdateRunner struct {
	force bool
}

func (s *selfupdateRunner) RunE(cmd *cobra.Command, args []string) error {
	toUpdate, err := os.Executable()
	if err != nil {
		return merrors.Io("find executable", err)
	}
	toUpdate, err = filepath.EvalSymlinks(toUpdate)
	if err != nil {
		return merrors.Io("find executable", err)
	}

	e, err := newEnv()
	if err != nil {
		return err
	}
	if st, err := e.settings.Settings(); err == nil && st.UpdateChannel != "stable" {
		logger.Warn(fmt.Sprintf("Unsupported update channel %q. Falling back to stable", st.UpdateChannel))
	}

	ctx := context.Background()
	fmt.Println("Checking for new version")
	asset, version, err := s.findUpdate(ctx)
	if err != nil {
		return err
	}
	if asset == nil {
		fmt.Println("Already up to date! :)")
		return nil
	}
	if runtime.GOOS == "windows" {
		fmt.Println(styleWarnBox.Render("The old version is kept as " + filepath.Base(toUpdate) + ".old"))
	}

	if err := e.launcher.SelfUpdate(ctx, asset.BrowserDownloadURL, toUpdate, selftest); err != nil {
		return err
	}
	fmt.Println("minelander was updated to " + version)
	return nil
}

// findUpdate returns nil if there is nothing to update
func (s *selfupdateRunner) findUpdate(ctx context.Context) (*github.Asset, string, error) {
	client := github.New()
	if !s.force {
		update, err := client.CheckUpdate(ctx, UpdateRepo, Version, runtime.GOOS)
		if err != nil || update == nil {
			return nil, "", err
		}
		return update.Asset, update.Version.String(), nil
	}

	release, err := client.GetLatestRelease(ctx, UpdateRepo)
	if err != nil {
		return nil, "", err
	}
	asset, ok := release.AssetFor(runtime.GOOS)
	if !ok {
		return nil, "", merrors.UnsupportedPlatform("find update for "+release.TagName, runtime.GOOS)
	}
	return asset, release.TagName, nil
}

// selftest runs the downloaded executable before it replaces the current one
func selftest(next string) error {
	out, err := exec.Command(next, "selftest").Output()
	if err != nil {
		return &commands.CliError{
			Text: "Update aborted. Self test of new update failed: " + err.Error(),
			Code: "selftest-failed",
		}
	}
	if string(out) != "Selftest OK\n" {
		return &commands.CliError{
			Text: "Update aborted. Self test of new update failed: invalid output",
			Code: "selftest-failed",
			Help: "Please open a bug report",
		}
	}
	return nil
}

var selftestCmd = &cobra.Command{
	Use:    "selftest",
	Short:  "checks if this binary works",
	Hidden: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Selftest OK")
	},
}
