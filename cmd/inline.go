// Package cmd implements the command-line interface for marquee.
package cmd

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/marquee-cli/marquee/browse"
	"github.com/marquee-cli/marquee/filesystem"
	"github.com/marquee-cli/marquee/inline"
	"github.com/marquee-cli/marquee/query"
	"github.com/marquee-cli/marquee/tmdb"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

// addOutputFlags registers the flags shared by every command that prints a listing page.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("page", "p", 1, "The page to load")
	cmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	cmd.Flags().StringP("pick", "P", "all", "Narrow the results: all, first, last, index:<n> or exact:<title>")
	cmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")
}

// addSearchFlags registers the search refinements.
func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("tv", "t", false, "Search TV shows instead of movies")
	cmd.Flags().IntP("year", "y", 0, "Only titles released in this year")
	cmd.Flags().IntP("genre", "g", 0, "Only titles with this genre id")
}

func searchQueryFrom(cmd *cobra.Command, text string) browse.SearchQuery {
	q := browse.SearchQuery{
		Text:  text,
		Kind:  tmdb.Movie,
		Year:  lo.Must(cmd.Flags().GetInt("year")),
		Genre: lo.Must(cmd.Flags().GetInt("genre")),
	}
	if lo.Must(cmd.Flags().GetBool("tv")) {
		q.Kind = tmdb.TV
	}
	return q
}

func completionQueries(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
}

// runInline loads a page of listing and writes it according to the output flags.
func runInline(cmd *cobra.Command, listing browse.Listing, q mo.Option[browse.SearchQuery]) {
	a := mustApp()
	defer a.Close()
	CheckCredential(a.settings.Token)

	pickKind, pickValue, _ := strings.Cut(lo.Must(cmd.Flags().GetString("pick")), ":")
	picker, err := inline.ParsePicker(pickKind, pickValue)
	handleErr(err)

	var writer io.Writer = os.Stdout
	if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
		file, err := filesystem.API().Create(output)
		handleErr(err)
		defer file.Close()
		writer = file
	}

	ctx, cancel := signalContext()
	defer cancel()

	handleErr(inline.Run(ctx, &inline.Options{
		Out:        writer,
		Browser:    a.browser,
		Listing:    listing,
		Query:      q,
		Page:       lo.Must(cmd.Flags().GetInt("page")),
		Json:       lo.Must(cmd.Flags().GetBool("json")),
		PlayerBase: a.settings.PlayerBase,
		Picker:     mo.Some(picker),
	}))
}

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("listing", "l", browse.NowPlaying.String(), "The listing to load")
	inlineCmd.Flags().StringP("query", "q", "", "The search query, implies the search listing")
	addOutputFlags(inlineCmd)
	addSearchFlags(inlineCmd)

	lo.Must0(inlineCmd.RegisterFlagCompletionFunc("listing", completionListings))
	lo.Must0(inlineCmd.RegisterFlagCompletionFunc("query", completionQueries))
}

// inlineCmd executes the application in non-interactive, scriptable inline mode.
var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Execute the application in non-interactive, scriptable inline mode",
	Long: `Load one page of a listing, together with the details of every entry, and print it.

Pickers:
  all - every entry of the page
  first - first entry of the page
  last - last entry of the page
  index:[number] - entry by index (starting from 0)
  exact:[title] - entries whose title matches, ignoring case`,
	Example: "  marquee inline --listing top_rated --page 2 --json\n  marquee inline --query dune --pick first --json",
	Run: func(cmd *cobra.Command, args []string) {
		text := lo.Must(cmd.Flags().GetString("query"))
		if text != "" {
			rememberQuery(text)
			runInline(cmd, browse.Search, mo.Some(searchQueryFrom(cmd, text)))
			return
		}

		listing, err := browse.ParseListing(lo.Must(cmd.Flags().GetString("listing")))
		handleErr(err)
		runInline(cmd, listing, mo.None[browse.SearchQuery]())
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)
}

// inlineSchemaCmd generates the JSON schema of the inline output.
var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema of the structured inline output",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "output", "entry", "record", "links", "details", "trailer":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(reflector.Reflect(&inline.Output{})))
	},
}
