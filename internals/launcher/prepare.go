package launcher

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/jwalton/gchalk"
	"github.com/minepkg/minelander/internals/downloadmgr"
	"github.com/minepkg/minelander/internals/minecraft"
	"github.com/minepkg/minelander/internals/mojang"
	"github.com/minepkg/minelander/internals/settings"
	"github.com/minepkg/minelander/internals/supervisor"
	"github.com/minepkg/minelander/internals/utils"
)

// Install downloads version id and everything it needs
func (l *Launcher) Install(ctx context.Context, id string, kind mojang.Kind) error {
	return l.fetch(ctx, fmt.Sprintf("Installing %s (%s)", id, kind), downloadmgr.ListingVersion{Version: id, Kind: kind})
}

// Remediate fetches what a failed check reported as missing
func (l *Launcher) Remediate(ctx context.Context, m *supervisor.Missing) error {
	var title string
	switch m.Reason {
	case supervisor.MissingFiles:
		title = fmt.Sprintf("Downloading %s missing files", utils.HumanInteger(len(m.Tasks)))
	case supervisor.MissingBaseDescriptor:
		title = "Installing base version " + m.BaseID
	case supervisor.MissingRuntime:
		title = "Installing " + m.Runtime.DisplayName()
	}
	fmt.Fprintln(l.out(), pipeText.Render(gchalk.Gray(m.Error())))
	return l.fetch(ctx, title, RemediationState(m))
}

// RemediationState returns the fetch engine state that resolves m
func RemediationState(m *supervisor.Missing) downloadmgr.State {
	switch m.Reason {
	case supervisor.MissingFiles:
		return downloadmgr.DownloadingMissing{Queue: m.Tasks, Total: len(m.Tasks)}
	case supervisor.MissingBaseDescriptor:
		return downloadmgr.ListingVersion{Version: m.BaseID, Kind: mojang.KindBase}
	case supervisor.MissingRuntime:
		return downloadmgr.PreparingRuntimeDownload{Runtime: m.Runtime}
	}
	return downloadmgr.Idle{}
}

// fetch drives a new engine from state and shows its progress
func (l *Launcher) fetch(ctx context.Context, title string, state downloadmgr.State) error {
	spin := l.Spinner(title)
	spin.Start()
	defer spin.Stop()

	return l.engine().Drive(ctx, state, func(ev downloadmgr.Event) {
		switch ev.Kind {
		case downloadmgr.EventProgress:
			spin.Update(progressText(ev, spin.Spin))
		case downloadmgr.EventFinished:
			l.logger().Debug(ev.Message)
		}
	})
}

// progressText describes ev. Without detail only the stage is returned
// so non interactive output prints one line per stage
func progressText(ev downloadmgr.Event, detail bool) string {
	if !detail {
		return ev.Stage
	}
	switch {
	case ev.Total > 0:
		return fmt.Sprintf("%s [%d / %d]", ev.Stage, ev.Total-ev.Remaining, ev.Total)
	case ev.Message != "":
		return ev.Stage + ": " + ev.Message
	}
	return ev.Stage
}

var pipeText = lipgloss.NewStyle().
	Border(lipgloss.Border{Left: "│"}, false).
	BorderLeft(true).
	Padding(0, 1)

func (l *Launcher) printIntro(gs *settings.GameSettings, identity minecraft.LaunchAuthData) {
	title := lipgloss.NewStyle().
		Border(lipgloss.Border{Left: "┃"}, false).
		BorderLeft(true).
		Background(lipgloss.Color("#FFF")).
		Foreground(lipgloss.Color("#000")).
		Padding(0, 1).
		Render("Minecraft " + gs.Version)

	account := "offline"
	if identity.GetAccessToken() != "" {
		account = "online"
	}

	out := l.out()
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, "│")
	fmt.Fprintln(out, "│ Instance: "+l.Layout.GameDir(gs.Instance))
	fmt.Fprintf(out, "│ Player: %s %s\n", identity.GetPlayerName(), gchalk.Gray("("+account+")"))
	fmt.Fprintf(out, "│ RAM: %d MiB\n", gs.RAMMiB)
	fmt.Fprintln(out, "│ minelander "+l.Version)
}
