package cmd

import (
	"fmt"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/minelander/internals/commands"
	"github.com/minepkg/minelander/internals/credentials"
	"github.com/minepkg/minelander/internals/settings"
	"github.com/spf13/cobra"
)

func init() {
	runner := &accountRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "account",
		Short: "Shows or changes the account Minecraft is launched with",
		Long: `Without flags the current account is printed.
Passing only --username switches to offline play with that name`,
		Args: cobra.NoArgs,
	}, runner)

	cmd.Flags().StringVar(&runner.account.PlayerName, "username", "", "Player name")
	cmd.Flags().StringVar(&runner.account.AccessToken, "token", "", "Access token of an online account")
	cmd.Flags().StringVar(&runner.account.UUID, "uuid", "", "UUID of an online account")
	cmd.Flags().StringVar(&runner.account.UserType, "user-type", "", "User type (eg. msa)")
	cmd.Flags().StringVar(&runner.account.XUID, "xuid", "", "Xbox user id")
	cmd.Flags().BoolVar(&runner.clear, "clear", false, "Remove the stored account")

	rootCmd.AddCommand(cmd.Command)
}

type accountRunner struct {
	account credentials.Account
	clear   bool
}

func (a *accountRunner) RunE(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	store, err := e.credentials()
	if err != nil {
		return err
	}

	switch {
	case a.clear:
		if err := store.Clear(); err != nil {
			return err
		}
		logger.Info("Account removed. Minecraft is launched in offline mode now")
		return nil
	case a.account.AccessToken != "":
		if a.account.PlayerName == "" || a.account.UUID == "" {
			return &commands.CliError{
				Text: "An online account needs a username, token and uuid",
				Code: "incomplete-account",
			}
		}
		account := a.account
		if err := store.Set(&account); err != nil {
			return err
		}
		logger.Info("Stored online account " + account.PlayerName)
		return nil
	case a.account.PlayerName != "":
		// offline play only needs the name
		e.settings.Set(settings.KeyUsername, a.account.PlayerName)
		if err := e.settings.Save(); err != nil {
			return err
		}
		logger.Info("Playing offline as " + a.account.PlayerName)
		return nil
	}

	s, err := e.settings.Settings()
	if err != nil {
		return err
	}
	current := store.Identity(s.Username)
	mode := "offline"
	if !current.IsOffline() {
		mode = "online"
	}
	fmt.Printf("%s %s\n", gchalk.Bold(current.PlayerName), gchalk.Gray("("+mode+")"))
	if current.UUID != "" {
		fmt.Println("  uuid: " + current.UUID)
	}
	if store.NoKeyRingMode {
		fmt.Println(gchalk.Gray("  stored in a file, no keyring available"))
	}
	return nil
}
