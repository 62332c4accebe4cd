// Package cmd implements the command-line interface for marquee.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/marquee-cli/marquee/artwork"
	"github.com/marquee-cli/marquee/color"
	"github.com/marquee-cli/marquee/detail"
	"github.com/marquee-cli/marquee/icon"
	"github.com/marquee-cli/marquee/playback"
	"github.com/marquee-cli/marquee/style"
	"github.com/marquee-cli/marquee/tmdb"
	"github.com/muesli/reflow/wrap"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// titleArgs parses the id argument and the --tv flag.
func titleArgs(cmd *cobra.Command, args []string) (int, tmdb.Kind) {
	id, err := strconv.Atoi(args[0])
	if err != nil || id < 1 {
		handleErr(fmt.Errorf("invalid id: %s", args[0]))
	}

	kind := tmdb.Movie
	if lo.Must(cmd.Flags().GetBool("tv")) {
		kind = tmdb.TV
	}
	return id, kind
}

func fetchRecord(ctx context.Context, a *app, id int, kind tmdb.Kind) *detail.Record {
	record, err := a.aggregator.Fetch(ctx, id, kind)
	handleErr(err)
	return record
}

func init() {
	rootCmd.AddCommand(detailCmd)
	detailCmd.Flags().BoolP("tv", "t", false, "The id is a TV show")
	detailCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	detailCmd.SetOut(os.Stdout)
}

var detailCmd = &cobra.Command{
	Use:     "detail <id>",
	Short:   "Print everything known about a title",
	Args:    cobra.ExactArgs(1),
	Example: "  marquee detail 603\n  marquee detail 1396 --tv --json",
	Run: func(cmd *cobra.Command, args []string) {
		id, kind := titleArgs(cmd, args)

		a := mustApp()
		defer a.Close()
		CheckCredential(a.settings.Token)

		ctx, cancel := signalContext()
		defer cancel()

		record := fetchRecord(ctx, a, id, kind)
		links := playback.LinksOf(a.settings.PlayerBase, record)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(struct {
				Record *detail.Record `json:"record"`
				Links  playback.Links `json:"links"`
			}{record, links}))
			return
		}

		var (
			label = style.Fg(color.Purple)
			width = 80
		)

		cmd.Println(style.Bold(record.DisplayTitle()) + " " + style.Faint(record.Year()))
		if record.Tagline != "" {
			cmd.Println(style.Italic(record.Tagline))
		}
		if record.Overview != "" {
			cmd.Println()
			cmd.Println(wrap.String(record.Overview, width))
		}
		cmd.Println()

		field := func(name, value string) {
			if value != "" {
				cmd.Println(wrap.String(label(name+": ")+value, width))
			}
		}

		if minutes := record.Minutes(); minutes > 0 {
			field("Runtime", fmt.Sprintf("%d min", minutes))
		}
		if record.VoteAverage > 0 {
			field("Rating", fmt.Sprintf("%s %.1f (%d votes)", icon.Get(icon.Star), record.VoteAverage, record.VoteCount))
		}
		field("Genres", record.GenreNames())
		field("Cast", record.CastNames())
		field("Languages", record.LanguageNames())
		field("Studios", record.CompanyNames())

		if path := record.PosterPath; path != "" {
			if image, ok := a.artwork.Resolve(ctx, path, artwork.Large).Get(); ok {
				field("Poster", fmt.Sprintf("%dx%d %s %s", image.Width, image.Height, image.Format, style.Faint(a.artwork.URL(path, artwork.Large))))
			}
		}

		if len(record.Degraded) > 0 {
			cmd.Println(style.Fg(color.Yellow)("Partially loaded, missing " + strings.Join(record.Degraded, ", ")))
		}

		cmd.Println()
		field("Play", links.Embed)
		field("TMDB", links.TMDB)
		field("IMDb", links.IMDb)
		field("Trailer", links.Trailer)
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().BoolP("tv", "t", false, "The id is a TV show")
	playCmd.Flags().BoolP("trailer", "T", false, "Open the trailer instead of the player")
	playCmd.Flags().Bool("print", false, "Print the URL instead of opening it")
	playCmd.SetOut(os.Stdout)
}

var playCmd = &cobra.Command{
	Use:     "play <id>",
	Short:   "Open a title in the embedded player",
	Args:    cobra.ExactArgs(1),
	Example: "  marquee play 603\n  marquee play 1396 --tv --trailer",
	Run: func(cmd *cobra.Command, args []string) {
		id, kind := titleArgs(cmd, args)

		a := mustApp()
		defer a.Close()

		url := playback.EmbedURL(a.settings.PlayerBase, kind, id)

		if lo.Must(cmd.Flags().GetBool("trailer")) {
			CheckCredential(a.settings.Token)

			ctx, cancel := signalContext()
			defer cancel()

			trailer, ok := fetchRecord(ctx, a, id, kind).Trailer.Get()
			if !ok {
				handleErr(fmt.Errorf("no trailer for %s %d", kind, id))
			}
			url = trailer.URL
		}

		if lo.Must(cmd.Flags().GetBool("print")) {
			cmd.Println(url)
			return
		}

		handleErr(playback.Launch(a.opener(), url))
		cmd.Printf("%s opened %s\n", style.Fg(color.Green)(icon.Get(icon.Play)), url)
	},
}
