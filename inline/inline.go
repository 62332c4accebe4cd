package inline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/marquee-cli/marquee/browse"
	"github.com/marquee-cli/marquee/log"
	"github.com/marquee-cli/marquee/playback"
	"github.com/samber/lo"
)

var errNoQuery = errors.New("search listing requires a query")

// Run loads one page of a listing with all of its details and writes it to options.Out.
func Run(ctx context.Context, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	var (
		controller *browse.Controller
		query      string
	)

	if options.Listing == browse.Search {
		q, ok := options.Query.Get()
		if !ok || q.Text == "" {
			return errNoQuery
		}
		controller = options.Browser.Search(q)
		query = q.Text
	} else {
		controller = options.Browser.Controller(options.Listing)
	}

	page := max(options.Page, 1)
	log.Infof("loading %s page %d", options.Listing, page)

	if err := controller.Load(ctx, page); err != nil {
		return fmt.Errorf("%s: %w", options.Listing.Title(), err)
	}

	slots := controller.Slots()
	if picker, ok := options.Picker.Get(); ok {
		slots = picker(slots)
	}

	if options.Json {
		cursor := controller.Cursor()
		return writeJson(options.Out, &Output{
			Listing:    options.Listing,
			Query:      query,
			Page:       cursor.Page,
			TotalPages: cursor.TotalPages,
			Results: lo.Map(slots, func(s browse.Slot, _ int) *Entry {
				return newEntry(s, options.PlayerBase)
			}),
		})
	}

	return writePlain(options.Out, slots, options.PlayerBase)
}

func writePlain(out io.Writer, slots []browse.Slot, playerBase string) error {
	for _, slot := range slots {
		var err error
		switch {
		case slot.Record != nil:
			r := slot.Record
			_, err = fmt.Fprintf(out, "%d\t%s\t%s\t%s\n", r.ID, r.DisplayTitle(), r.Year(), playback.EmbedURL(playerBase, r.Kind, r.ID))
		case slot.Err != nil:
			log.Warnf("no details for %d: %v", slot.Summary.ID, slot.Err)
			_, err = fmt.Fprintf(out, "%d\t%s\t\t\n", slot.Summary.ID, slot.Summary.DisplayTitle())
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func writeJson(out io.Writer, output *Output) error {
	data, err := asJson(output)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
