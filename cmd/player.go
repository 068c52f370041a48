package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/arcadia/internal/ledger"
	"github.com/zjrosen/arcadia/internal/registry/command"
)

var playerCmd = &cobra.Command{
	Use:   "player",
	Short: "Manage player records",
}

var (
	playerUser        string
	playerUsername    string
	playerMetaURI     string
	playerFunder      string
	playerAddr        string
	playerLeaderboard string
)

var playerCreateCmd = &cobra.Command{
	Use:   "create <address>",
	Short: "Create a player profile",
	Long: `Create a player record owned by a user account.

Example:
  arcadia player create alice-profile --user alice \
    --username "Alice" --funder treasury`,
	Args: cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		rt, err := openRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		cmd := command.NewCreatePlayerCommand(command.SourceCLI,
			ledger.Address(args[0]), ledger.Address(playerUser), ledger.Address(playerFunder),
			playerUsername, playerMetaURI)
		if _, err := rt.submit(cmd); err != nil {
			return err
		}

		fmt.Printf("player %s created\n", args[0])
		return nil
	},
}

var playerRegisterCmd = &cobra.Command{
	Use:   "register <score-book-address>",
	Short: "Register a player on a leaderboard",
	Long: `Create an empty score book linking a player to a leaderboard. Both
must already exist; the funder pays the book's rent deposit.

Example:
  arcadia player register alice-raid-book \
    --player alice-profile --leaderboard raid-highscores --funder treasury`,
	Args: cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		rt, err := openRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		cmd := command.NewRegisterPlayerCommand(command.SourceCLI,
			ledger.Address(args[0]), ledger.Address(playerAddr),
			ledger.Address(playerLeaderboard), ledger.Address(playerFunder))
		if _, err := rt.submit(cmd); err != nil {
			return err
		}

		fmt.Printf("score book %s created\n", args[0])
		return nil
	},
}

var playerShowCmd = &cobra.Command{
	Use:   "show <address>",
	Short: "Show a player record",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		rt, err := openRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		player, err := rt.query.Player(ledger.Address(args[0]))
		if err != nil {
			return err
		}

		fmt.Printf("user:     %s\n", player.User())
		fmt.Printf("username: %s\n", player.Username())
		if player.MetaURI() != "" {
			fmt.Printf("meta:     %s\n", player.MetaURI())
		}
		return nil
	},
}

func init() {
	playerCreateCmd.Flags().StringVar(&playerUser, "user", "", "User account that owns the profile")
	playerCreateCmd.Flags().StringVar(&playerUsername, "username", "", "Display name")
	playerCreateCmd.Flags().StringVar(&playerMetaURI, "meta-uri", "", "Off-ledger metadata URI")
	playerCreateCmd.Flags().StringVar(&playerFunder, "funder", "", "Funder account paying the rent deposit")
	_ = playerCreateCmd.MarkFlagRequired("user")
	_ = playerCreateCmd.MarkFlagRequired("username")
	_ = playerCreateCmd.MarkFlagRequired("funder")

	playerRegisterCmd.Flags().StringVar(&playerAddr, "player", "", "Player record address")
	playerRegisterCmd.Flags().StringVar(&playerLeaderboard, "leaderboard", "", "Leaderboard record address")
	playerRegisterCmd.Flags().StringVar(&playerFunder, "funder", "", "Funder account paying the rent deposit")
	_ = playerRegisterCmd.MarkFlagRequired("player")
	_ = playerRegisterCmd.MarkFlagRequired("leaderboard")
	_ = playerRegisterCmd.MarkFlagRequired("funder")

	playerCmd.AddCommand(playerCreateCmd)
	playerCmd.AddCommand(playerRegisterCmd)
	playerCmd.AddCommand(playerShowCmd)
	rootCmd.AddCommand(playerCmd)
}
