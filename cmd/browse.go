// Package cmd implements the command-line interface for marquee.
package cmd

import (
	"errors"
	"strings"

	"github.com/marquee-cli/marquee/browse"
	"github.com/marquee-cli/marquee/log"
	"github.com/marquee-cli/marquee/query"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(browseCmd)
	addOutputFlags(browseCmd)
}

var browseCmd = &cobra.Command{
	Use:       "browse <listing>",
	Short:     "Print a page of a listing",
	Args:      cobra.ExactArgs(1),
	ValidArgs: browse.ListingNames(),
	Example:   "  marquee browse now_playing\n  marquee browse tv_popular --page 3 --json",
	Run: func(cmd *cobra.Command, args []string) {
		listing, err := browse.ParseListing(args[0])
		handleErr(err)

		if listing == browse.Search {
			handleErr(errors.New("use the search command to search"))
		}

		runInline(cmd, listing, mo.None[browse.SearchQuery]())
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	addOutputFlags(searchCmd)
	addSearchFlags(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:               "search <query>",
	Short:             "Search movies or TV shows",
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completionQueries,
	Example:           "  marquee search blade runner --year 1982\n  marquee search --tv severance",
	Run: func(cmd *cobra.Command, args []string) {
		text := strings.Join(args, " ")
		rememberQuery(text)
		runInline(cmd, browse.Search, mo.Some(searchQueryFrom(cmd, text)))
	},
}

func rememberQuery(text string) {
	if err := query.Remember(text, 1); err != nil {
		log.Warn(err)
	}
}
