package commands

import (
	"errors"

	"github.com/charmbracelet/lipgloss"
	"github.com/minepkg/minelander/internals/merrors"
)

// CliError is an error that might get displayed to the user
type CliError struct {
	Text        string
	Code        string
	Suggestions []string
	Help        string
}

func (e *CliError) Error() string {
	return e.Text
}

func (e *CliError) RichError() string {
	rendered := ErrorBox(e.Text, e.Help)
	if len(e.Suggestions) != 0 {
		suggestionText := "Suggestion:\n"
		if len(e.Suggestions) > 1 {
			suggestionText = "Suggestions:\n"
		}
		suggestionText = Emoji("📎 ") + suggestionText
		for _, s := range e.Suggestions {
			suggestionText += " ⦁ " + s + "\n"
		}
		rendered = lipgloss.JoinVertical(lipgloss.Left, rendered, styleHelpBox.Render(suggestionText))
	}
	return rendered
}

// ToCliError turns any error into a *CliError. Errors carrying a merrors.Kind
// get suggestions matching their kind
func ToCliError(err error) *CliError {
	var asCliErr *CliError
	if errors.As(err, &asCliErr) {
		return asCliErr
	}
	var asMerr *merrors.CliError
	if errors.As(err, &asMerr) {
		return &CliError{Text: asMerr.Err, Code: asMerr.Code, Help: asMerr.Help}
	}

	cliErr := &CliError{Text: err.Error(), Code: merrors.KindOf(err).String()}
	switch merrors.KindOf(err) {
	case merrors.KindNetwork:
		cliErr.Suggestions = []string{"Check your internet connection and try again"}
	case merrors.KindParse:
		cliErr.Suggestions = []string{"A downloaded file seems to be corrupt. Try reinstalling the version"}
	case merrors.KindNotFound:
		cliErr.Suggestions = []string{"Run `minelander versions --all` to see every available version"}
	case merrors.KindUnsupportedPlatform:
		cliErr.Help = "Only windows and linux are supported for downloading java. Set a custom java path instead"
	case merrors.KindMissingDependency:
		cliErr.Suggestions = []string{"Try reinstalling the version with `minelander install <version>`"}
	}
	return cliErr
}
