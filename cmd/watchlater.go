// Package cmd implements the command-line interface for marquee.
package cmd

import (
	"fmt"
	"os"

	"github.com/marquee-cli/marquee/browse"
	"github.com/marquee-cli/marquee/color"
	"github.com/marquee-cli/marquee/icon"
	"github.com/marquee-cli/marquee/style"
	"github.com/marquee-cli/marquee/watchlater"
	"github.com/marquee-cli/marquee/where"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(watchLaterCmd)
}

var watchLaterCmd = &cobra.Command{
	Use:     "watchlater",
	Short:   "Manage the titles saved for later",
	Aliases: []string{"wl"},
}

func init() {
	watchLaterCmd.AddCommand(watchLaterAddCmd)
	watchLaterAddCmd.Flags().BoolP("tv", "t", false, "The id is a TV show")
	watchLaterAddCmd.SetOut(os.Stdout)
}

var watchLaterAddCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Save a title for later",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, kind := titleArgs(cmd, args)

		a := mustApp()
		defer a.Close()
		CheckCredential(a.settings.Token)

		ctx, cancel := signalContext()
		defer cancel()

		// unknown ids are rejected by the catalog before anything is saved
		details, err := a.client.Details(ctx, kind, id)
		handleErr(err)

		added, err := a.watchLater.Add(watchlater.Entry{ID: id, Kind: kind})
		handleErr(err)

		if !added {
			cmd.Printf("%s %s is already saved\n", icon.Get(icon.WatchLater), style.Fg(color.Purple)(details.DisplayTitle()))
			return
		}

		cmd.Printf("%s saved %s for later\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Fg(color.Purple)(details.DisplayTitle()))
	},
}

func init() {
	watchLaterCmd.AddCommand(watchLaterRemoveCmd)
	watchLaterRemoveCmd.Flags().BoolP("tv", "t", false, "The id is a TV show")
	watchLaterRemoveCmd.SetOut(os.Stdout)
}

var watchLaterRemoveCmd = &cobra.Command{
	Use:     "remove <id>",
	Short:   "Remove a saved title",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, kind := titleArgs(cmd, args)

		store, err := watchlater.Open(watchlater.NewFilePersister(where.WatchLater()))
		handleErr(err)

		removed, err := store.Remove(watchlater.Entry{ID: id, Kind: kind})
		handleErr(err)

		if !removed {
			handleErr(fmt.Errorf("%s %d is not saved", kind, id))
		}

		cmd.Printf("%s removed %s %d\n", style.Fg(color.Green)(icon.Get(icon.Success)), kind, id)
	},
}

func init() {
	watchLaterCmd.AddCommand(watchLaterListCmd)
	addOutputFlags(watchLaterListCmd)
}

var watchLaterListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Print a page of the saved titles with their details",
	Aliases: []string{"ls"},
	Run: func(cmd *cobra.Command, args []string) {
		runInline(cmd, browse.WatchLater, mo.None[browse.SearchQuery]())
	},
}
