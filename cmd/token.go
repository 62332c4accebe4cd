// Package cmd implements the command-line interface for marquee.
package cmd

import (
	"errors"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/marquee-cli/marquee/color"
	"github.com/marquee-cli/marquee/icon"
	"github.com/marquee-cli/marquee/key"
	"github.com/marquee-cli/marquee/style"
	"github.com/marquee-cli/marquee/tmdb"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(tokenCmd)
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the API token kept in the system keyring",
}

func init() {
	tokenCmd.AddCommand(tokenSetCmd)
	tokenSetCmd.Flags().StringP("value", "v", "", "The token, prompted for when omitted")
	tokenSetCmd.SetOut(os.Stdout)
}

var tokenSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store the API read access token in the system keyring",
	Run: func(cmd *cobra.Command, args []string) {
		token := lo.Must(cmd.Flags().GetString("value"))

		if token == "" {
			handleErr(survey.AskOne(&survey.Password{
				Message: "API read access token:",
			}, &token, survey.WithValidator(survey.Required)))
		}

		token = strings.TrimSpace(token)
		if token == "" {
			handleErr(errors.New("token is empty"))
		}

		handleErr(tmdb.SetToken(token))
		cmd.Printf("%s token stored in the keyring\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

func init() {
	tokenCmd.AddCommand(tokenDeleteCmd)
	tokenDeleteCmd.SetOut(os.Stdout)
}

var tokenDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Remove the API token from the system keyring",
	Aliases: []string{"remove"},
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(tmdb.DeleteToken())
		cmd.Printf("%s token removed from the keyring\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

func init() {
	tokenCmd.AddCommand(tokenStatusCmd)
	tokenStatusCmd.SetOut(os.Stdout)
}

var tokenStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the API token comes from",
	Run: func(cmd *cobra.Command, args []string) {
		stored, _ := tmdb.GetToken()

		switch {
		case viper.GetString(key.TMDBToken) != "":
			cmd.Println(style.Fg(color.Green)("set in the config (" + key.TMDBToken + ")"))
		case stored != "":
			cmd.Println(style.Fg(color.Green)("stored in the keyring"))
		default:
			cmd.Println(style.Fg(color.Red)("missing"))
		}
	},
}
