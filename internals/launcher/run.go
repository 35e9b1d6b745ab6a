package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/jwalton/gchalk"
	"github.com/minepkg/minelander/internals/commands"
	"github.com/minepkg/minelander/internals/composer"
	"github.com/minepkg/minelander/internals/merrors"
	"github.com/minepkg/minelander/internals/minecraft"
	"github.com/minepkg/minelander/internals/settings"
	"github.com/minepkg/minelander/internals/supervisor"
	"github.com/minepkg/minelander/pkg/logparser"
	"gopkg.in/yaml.v3"
)

// MaxRemediations limits how often a launch fetches missing things before giving up
const MaxRemediations = 4

// Launch checks gs, fetches whatever is missing and runs the game until it exits.
// It returns the exit code of the game
func (l *Launcher) Launch(ctx context.Context, gs *settings.GameSettings, identity minecraft.LaunchAuthData) (int, error) {
	l.printIntro(gs, identity)

	for attempt := 0; ; attempt++ {
		code, err := l.run(ctx, gs, identity)

		var missing *supervisor.Missing
		if !errors.As(err, &missing) {
			return code, err
		}
		if attempt >= MaxRemediations {
			return 0, err
		}
		if err := l.Remediate(ctx, missing); err != nil {
			return 0, err
		}
	}
}

// run drives one supervisor from the check to the exit of the game
func (l *Launcher) run(ctx context.Context, gs *settings.GameSettings, identity minecraft.LaunchAuthData) (int, error) {
	out := l.out()
	code := 0
	err := l.supervisor(identity).Drive(ctx, supervisor.Checking{Settings: gs}, func(ev supervisor.Event) {
		switch ev.Kind {
		case supervisor.EventStarted:
			fmt.Fprintln(out, "│")
			fmt.Fprintln(out,
				lipgloss.JoinHorizontal(
					0.5,
					gchalk.Hex("#7a563b")("│"+"\n"+"┕"),
					commands.StyleGrass.Render(commands.Emoji("⛏  ")+"Launching Minecraft"),
				),
			)
		case supervisor.EventLog:
			fmt.Fprintln(out, FormatLogLine(ev.Line, ev.Stderr))
		case supervisor.EventFinished:
			code = ev.ExitCode
		}
	})
	if err != nil {
		return 0, err
	}

	// minecraft servers return 130 when stopped with ctrl-c
	if code == 0 || code == 130 {
		fmt.Fprintf(out, "\nMinecraft was stopped normally (exit code %d).\n", code)
		return code, nil
	}
	return code, &merrors.CliError{
		Err:  fmt.Sprintf("Minecraft crashed (exit code %d)", code),
		Code: "game-crashed",
		Help: "Scroll up to find the cause in the game log. Lowering --ram or picking another --java runtime sometimes helps",
	}
}

// FormatLogLine colors a game log line by its level
func FormatLogLine(line *logparser.LogLine, stderr bool) string {
	if line == nil {
		return ""
	}
	text := line.String()
	switch {
	case line.Level == logparser.LevelError || line.Level == logparser.LevelFatal:
		return gchalk.Red(text)
	case line.Level == logparser.LevelWarn:
		return gchalk.Yellow(text)
	case line.Level == logparser.LevelDebug:
		return gchalk.Gray(text)
	case stderr:
		return gchalk.Dim(text)
	}
	return text
}

// PrintCommand writes the composed invocation of gs as yaml without starting the game
func (l *Launcher) PrintCommand(w io.Writer, gs *settings.GameSettings, identity minecraft.LaunchAuthData) error {
	inv, err := l.Composer.ComposeVersion(gs.Version, gs, identity)
	if err != nil {
		return err
	}
	if leftovers := composer.Leftovers(inv.Args); len(leftovers) != 0 {
		l.logger().Debug(fmt.Sprintf("unresolved template variables: %v", leftovers))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(inv); err != nil {
		return merrors.Io("print command", err)
	}
	return enc.Close()
}
