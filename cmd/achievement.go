package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/arcadia/internal/ledger"
	"github.com/zjrosen/arcadia/internal/registry/command"
)

var achievementCmd = &cobra.Command{
	Use:   "achievement",
	Short: "Manage achievements",
}

var (
	achGame        string
	achAuthority   string
	achFunder      string
	achTitle       string
	achDescription string
	achMetaURI     string
)

var achievementAddCmd = &cobra.Command{
	Use:   "add <address>",
	Short: "Add an achievement to a game",
	Long: `Create an achievement record attached to a game. Only a game authority
may add one; the game record grows to account for its new achievement
counter.

Example:
  arcadia achievement add raid-first-clear --game space-raid \
    --title "First Clear" --authority studio-key --funder treasury`,
	Args: cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		rt, err := openRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		cmd := command.NewAddAchievementCommand(command.SourceCLI,
			ledger.Address(args[0]), ledger.Address(achGame),
			ledger.Address(achAuthority), ledger.Address(achFunder),
			achTitle, achDescription, achMetaURI)
		if _, err := rt.submit(cmd); err != nil {
			return err
		}

		fmt.Printf("achievement %s added to %s\n", args[0], achGame)
		return nil
	},
}

var achievementUpdateCmd = &cobra.Command{
	Use:   "update <address>",
	Short: "Update an achievement",
	Long: `Update an achievement's title, description, or metadata URI. Empty
fields keep their current value; at least one must be set.

Example:
  arcadia achievement update raid-first-clear \
    --description "Clear wave one" --authority studio-key --funder treasury`,
	Args: cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		rt, err := openRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		cmd := command.NewUpdateAchievementCommand(command.SourceCLI,
			ledger.Address(args[0]), ledger.Address(achAuthority), ledger.Address(achFunder),
			achTitle, achDescription, achMetaURI)
		if _, err := rt.submit(cmd); err != nil {
			return err
		}

		fmt.Printf("achievement %s updated\n", args[0])
		return nil
	},
}

func init() {
	achievementAddCmd.Flags().StringVar(&achGame, "game", "", "Game the achievement belongs to")
	achievementAddCmd.Flags().StringVar(&achTitle, "title", "", "Achievement title")
	achievementAddCmd.Flags().StringVar(&achDescription, "description", "", "Achievement description")
	achievementAddCmd.Flags().StringVar(&achMetaURI, "meta-uri", "", "Off-ledger metadata URI")
	achievementAddCmd.Flags().StringVar(&achAuthority, "authority", "", "Acting game authority")
	achievementAddCmd.Flags().StringVar(&achFunder, "funder", "", "Funder account paying the rent deposit")
	_ = achievementAddCmd.MarkFlagRequired("game")
	_ = achievementAddCmd.MarkFlagRequired("title")
	_ = achievementAddCmd.MarkFlagRequired("authority")
	_ = achievementAddCmd.MarkFlagRequired("funder")

	achievementUpdateCmd.Flags().StringVar(&achTitle, "title", "", "New title (empty keeps current)")
	achievementUpdateCmd.Flags().StringVar(&achDescription, "description", "", "New description (empty keeps current)")
	achievementUpdateCmd.Flags().StringVar(&achMetaURI, "meta-uri", "", "New metadata URI (empty keeps current)")
	achievementUpdateCmd.Flags().StringVar(&achAuthority, "authority", "", "Acting game authority")
	achievementUpdateCmd.Flags().StringVar(&achFunder, "funder", "", "Funder account paying for growth")
	_ = achievementUpdateCmd.MarkFlagRequired("authority")
	_ = achievementUpdateCmd.MarkFlagRequired("funder")

	achievementCmd.AddCommand(achievementAddCmd)
	achievementCmd.AddCommand(achievementUpdateCmd)
	rootCmd.AddCommand(achievementCmd)
}
