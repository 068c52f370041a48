package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/arcadia/internal/ledger"
	"github.com/zjrosen/arcadia/internal/registry/command"
)

var gameCmd = &cobra.Command{
	Use:   "game",
	Short: "Manage game records",
}

var (
	gameTitle       string
	gameDescription string
	gameGenre       string
	gameAuthorities []string
	gameAuthority   string
	gameFunder      string
)

var gameCreateCmd = &cobra.Command{
	Use:   "create <address>",
	Short: "Register a new game",
	Long: `Create a game record. The funder pays the rent deposit for the
record's initial size; the first authority owns the record.

Example:
  arcadia game create space-raid \
    --title "Space Raid" --genre shmup \
    --authority studio-key --funder treasury`,
	Args: cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		rt, err := openRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		cmd := command.NewCreateGameCommand(command.SourceCLI,
			ledger.Address(args[0]), ledger.Address(gameFunder),
			gameTitle, gameDescription, gameGenre, toAddresses(gameAuthorities))
		if _, err := rt.submit(cmd); err != nil {
			return err
		}

		fmt.Printf("game %s created\n", args[0])
		return nil
	},
}

var gameUpdateCmd = &cobra.Command{
	Use:   "update <address>",
	Short: "Update a game's metadata or authorities",
	Long: `Update a game record. Empty fields keep their current value; passing
--new-authority replaces the whole authority set. Only a current authority
may update, and the funder covers any growth of the record.

Example:
  arcadia game update space-raid --title "Space Raid II" \
    --authority studio-key --funder treasury`,
	Args: cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		rt, err := openRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		cmd := command.NewUpdateGameCommand(command.SourceCLI,
			ledger.Address(args[0]), ledger.Address(gameAuthority), ledger.Address(gameFunder),
			gameTitle, gameDescription, gameGenre, toAddresses(gameAuthorities))
		if _, err := rt.submit(cmd); err != nil {
			return err
		}

		fmt.Printf("game %s updated\n", args[0])
		return nil
	},
}

var gameShowCmd = &cobra.Command{
	Use:   "show <address>",
	Short: "Show a game record",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		rt, err := openRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		game, err := rt.query.Game(ledger.Address(args[0]))
		if err != nil {
			return err
		}

		fmt.Printf("title:        %s\n", game.Title())
		fmt.Printf("description:  %s\n", game.Description())
		fmt.Printf("genre:        %s\n", game.Genre())
		fmt.Printf("authorities:  %v\n", game.Authorities())
		fmt.Printf("leaderboards: %d\n", game.LeaderboardCount())
		fmt.Printf("achievements: %d\n", game.AchievementCount())
		return nil
	},
}

// toAddresses converts flag values into ledger addresses.
func toAddresses(values []string) []ledger.Address {
	addrs := make([]ledger.Address, 0, len(values))
	for _, v := range values {
		addrs = append(addrs, ledger.Address(v))
	}
	return addrs
}

func init() {
	gameCreateCmd.Flags().StringVar(&gameTitle, "title", "", "Game title")
	gameCreateCmd.Flags().StringVar(&gameDescription, "description", "", "Game description")
	gameCreateCmd.Flags().StringVar(&gameGenre, "genre", "", "Game genre")
	gameCreateCmd.Flags().StringArrayVar(&gameAuthorities, "authority", nil, "Game authority (repeatable)")
	gameCreateCmd.Flags().StringVar(&gameFunder, "funder", "", "Funder account paying the rent deposit")
	_ = gameCreateCmd.MarkFlagRequired("title")
	_ = gameCreateCmd.MarkFlagRequired("authority")
	_ = gameCreateCmd.MarkFlagRequired("funder")

	gameUpdateCmd.Flags().StringVar(&gameTitle, "title", "", "New title (empty keeps current)")
	gameUpdateCmd.Flags().StringVar(&gameDescription, "description", "", "New description (empty keeps current)")
	gameUpdateCmd.Flags().StringVar(&gameGenre, "genre", "", "New genre (empty keeps current)")
	gameUpdateCmd.Flags().StringArrayVar(&gameAuthorities, "new-authority", nil, "Replacement authority set (repeatable)")
	gameUpdateCmd.Flags().StringVar(&gameAuthority, "authority", "", "Acting authority")
	gameUpdateCmd.Flags().StringVar(&gameFunder, "funder", "", "Funder account paying for growth")
	_ = gameUpdateCmd.MarkFlagRequired("authority")
	_ = gameUpdateCmd.MarkFlagRequired("funder")

	gameCmd.AddCommand(gameCreateCmd)
	gameCmd.AddCommand(gameUpdateCmd)
	gameCmd.AddCommand(gameShowCmd)
	rootCmd.AddCommand(gameCmd)
}
