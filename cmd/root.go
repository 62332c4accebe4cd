// Package cmd implements the command-line interface for marquee.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/marquee-cli/marquee/browse"
	"github.com/marquee-cli/marquee/color"
	"github.com/marquee-cli/marquee/constant"
	"github.com/marquee-cli/marquee/icon"
	"github.com/marquee-cli/marquee/key"
	"github.com/marquee-cli/marquee/log"
	"github.com/marquee-cli/marquee/style"
	"github.com/marquee-cli/marquee/tui"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("language", "L", "", "Catalog language, e.g. en-US or de-DE")
	lo.Must0(viper.BindPFlag(key.TMDBLanguage, rootCmd.PersistentFlags().Lookup("language")))

	rootCmd.Flags().StringP("listing", "l", "", "Open a listing right away instead of the listing menu")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("listing", completionListings))
}

// rootCmd defines the entry point for the marquee application.
var rootCmd = &cobra.Command{
	Use:   constant.Marquee,
	Short: "Browse movies and TV shows from the terminal",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Browse movies and TV shows from the terminal"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		a := mustApp()
		defer a.Close()
		CheckCredential(a.settings.Token)

		options := tui.Options{
			Browser:    a.browser,
			WatchLater: a.watchLater,
			Artwork:    a.artwork,
			Opener:     a.opener(),
			PlayerBase: a.settings.PlayerBase,
			Listing:    mo.None[browse.Listing](),
		}

		if name := lo.Must(cmd.Flags().GetString("listing")); name != "" {
			listing, err := browse.ParseListing(name)
			handleErr(err)
			options.Listing = mo.Some(listing)
		}

		ctx, cancel := signalContext()
		defer cancel()

		handleErr(tui.Run(ctx, &options))
	},
}

func completionListings(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return browse.ListingNames(), cobra.ShellCompDirectiveNoFileComp
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
