package browse

import (
	"context"
	"errors"

	"github.com/marquee-cli/marquee/detail"
	"github.com/marquee-cli/marquee/log"
	"github.com/marquee-cli/marquee/tmdb"
	"github.com/marquee-cli/marquee/worker"
	"github.com/sirupsen/logrus"
)

var (
	// ErrBusy is returned while a page request is in flight; the request is dropped, not queued.
	ErrBusy = errors.New("a page is already loading")

	// ErrNotIdle is returned by navigation outside the idle state.
	ErrNotIdle = errors.New("listing is not idle")

	// ErrPageOutOfRange is returned for pages outside 1..total pages.
	ErrPageOutOfRange = errors.New("page out of range")
)

type State int

const (
	StateIdle State = iota
	StateLoading
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

// Cursor is the pagination position.
// Page is the page on display, Requested the page of the latest request.
type Cursor struct {
	Page       int
	Requested  int
	TotalPages int
	InFlight   bool
}

// Slot is one displayed entry. Record stays nil until its detail fetch succeeds.
type Slot struct {
	Summary tmdb.Summary
	Kind    tmdb.Kind
	Record  *detail.Record
	Err     error
}

// Pending reports whether the detail fetch has not completed yet.
func (s Slot) Pending() bool {
	return s.Record == nil && s.Err == nil
}

// Fetcher materialises a summary into a detail record.
type Fetcher interface {
	Fetch(ctx context.Context, id int, kind tmdb.Kind) (*detail.Record, error)
}

// PageResult is the outcome of a page request.
type PageResult struct {
	Listing    Listing
	Generation uint64
	Page       int
	Result     *tmdb.Page
	Err        error
}

// DetailResult is the outcome of a single detail fetch.
type DetailResult struct {
	Listing    Listing
	Generation uint64
	Index      int
	ID         int
	Record     *detail.Record
	Err        error
}

// PendingPage is an in-flight page request.
type PendingPage struct {
	Listing    Listing
	Generation uint64
	Page       int
	future     *worker.Future[*tmdb.Page]
}

func (p *PendingPage) Done() <-chan struct{} {
	return p.future.Done()
}

// Await blocks until the page arrives or ctx ends.
func (p *PendingPage) Await(ctx context.Context) PageResult {
	page, err := p.future.Await(ctx)
	return PageResult{
		Listing:    p.Listing,
		Generation: p.Generation,
		Page:       p.Page,
		Result:     page,
		Err:        err,
	}
}

// PendingDetail is an in-flight detail fetch for one slot.
type PendingDetail struct {
	Listing    Listing
	Generation uint64
	Index      int
	ID         int
	future     *worker.Future[*detail.Record]
}

func (p *PendingDetail) Done() <-chan struct{} {
	return p.future.Done()
}

// Await blocks until the record arrives or ctx ends.
func (p *PendingDetail) Await(ctx context.Context) DetailResult {
	record, err := p.future.Await(ctx)
	return DetailResult{
		Listing:    p.Listing,
		Generation: p.Generation,
		Index:      p.Index,
		ID:         p.ID,
		Record:     record,
		Err:        err,
	}
}

type Options struct {
	ResultsPerPage int
}

// Controller owns the pagination state of one listing.
//
// A Controller is not safe for concurrent use: every method must be called
// from the goroutine that owns it. Network work happens on the worker, and
// its results are handed back through ApplyPage and ApplyDetail.
type Controller struct {
	listing Listing
	kind    tmdb.Kind
	loader  Loader
	fetcher Fetcher
	worker  *worker.Worker
	perPage int

	state      State
	cursor     Cursor
	err        error
	generation uint64
	shown      uint64
	slots      []Slot
	overshot   bool
}

// NewController returns an idle controller with nothing loaded.
func NewController(listing Listing, kind tmdb.Kind, loader Loader, fetcher Fetcher, w *worker.Worker, options Options) *Controller {
	perPage := options.ResultsPerPage
	if perPage < 1 {
		perPage = 10
	}

	return &Controller{
		listing: listing,
		kind:    kind,
		loader:  loader,
		fetcher: fetcher,
		worker:  w,
		perPage: perPage,
	}
}

func (c *Controller) Listing() Listing { return c.listing }
func (c *Controller) State() State     { return c.state }
func (c *Controller) Cursor() Cursor   { return c.cursor }

// Err is the failure that moved the controller into StateError.
func (c *Controller) Err() error { return c.err }

// Overshot reports whether the last page landed past the end of a listing
// that shrank. The cursor was clamped to the new last page, which should be reloaded.
func (c *Controller) Overshot() bool { return c.overshot }

// Slots returns a copy of the displayed entries.
func (c *Controller) Slots() []Slot {
	return append([]Slot(nil), c.slots...)
}

func (c *Controller) entry() *logrus.Entry {
	return log.WithFields(logrus.Fields{
		"listing": c.listing.String(),
		"page":    c.cursor.Page,
	})
}

// RequestPage starts loading page. While another request is in flight it does
// nothing and returns ErrBusy.
func (c *Controller) RequestPage(page int) (*PendingPage, error) {
	if c.state == StateLoading {
		c.entry().Debug("page request dropped, one is already in flight")
		return nil, ErrBusy
	}

	if page < 1 || (c.cursor.TotalPages > 0 && page > c.cursor.TotalPages) {
		return nil, ErrPageOutOfRange
	}

	c.generation++
	c.state = StateLoading
	c.err = nil
	c.overshot = false
	c.cursor.InFlight = true
	c.cursor.Requested = page

	loader := c.loader
	return &PendingPage{
		Listing:    c.listing,
		Generation: c.generation,
		Page:       page,
		future: worker.Submit(c.worker, func(ctx context.Context) (*tmdb.Page, error) {
			return loader.Load(ctx, page)
		}),
	}, nil
}

// NextPage requests the page after the displayed one.
func (c *Controller) NextPage() (*PendingPage, error) {
	if c.state != StateIdle {
		return nil, ErrNotIdle
	}
	if c.cursor.Page >= c.cursor.TotalPages {
		return nil, ErrPageOutOfRange
	}
	return c.RequestPage(c.cursor.Page + 1)
}

// PrevPage requests the page before the displayed one.
func (c *Controller) PrevPage() (*PendingPage, error) {
	if c.state != StateIdle {
		return nil, ErrNotIdle
	}
	if c.cursor.Page <= 1 {
		return nil, ErrPageOutOfRange
	}
	return c.RequestPage(c.cursor.Page - 1)
}

// Reload requests the displayed page again, or the first page when nothing is displayed.
func (c *Controller) Reload() (*PendingPage, error) {
	page := max(c.cursor.Page, 1)
	if c.cursor.TotalPages > 0 {
		page = min(page, c.cursor.TotalPages)
	}
	return c.RequestPage(page)
}

// Acknowledge clears a failure and returns to idle. It does nothing in other states.
func (c *Controller) Acknowledge() {
	if c.state != StateError {
		return
	}
	c.state = StateIdle
	c.err = nil
}

// Retry acknowledges a failure and requests the failed page again.
func (c *Controller) Retry() (*PendingPage, error) {
	if c.state != StateError {
		return nil, ErrNotIdle
	}
	c.Acknowledge()
	return c.RequestPage(max(c.cursor.Requested, 1))
}

// ApplyPage installs a page result. On success the displayed entries are
// replaced by at most ResultsPerPage summaries and one detail fetch is
// started per entry. Results of superseded requests are ignored.
func (c *Controller) ApplyPage(result PageResult) []*PendingDetail {
	if result.Generation != c.generation || c.state != StateLoading {
		c.entry().WithField("generation", result.Generation).Debug("stale page result discarded")
		return nil
	}

	c.cursor.InFlight = false

	if result.Err != nil {
		c.state = StateError
		c.err = result.Err
		c.entry().WithError(result.Err).Warn("page failed")
		return nil
	}

	c.state = StateIdle
	c.shown = result.Generation
	c.cursor.Page = result.Page
	c.cursor.TotalPages = 1

	var summaries []tmdb.Summary
	if result.Result != nil {
		summaries = result.Result.Results
		c.cursor.TotalPages = max(result.Result.TotalPages, 1)
	}

	if c.cursor.Page > c.cursor.TotalPages {
		c.entry().WithField("total_pages", c.cursor.TotalPages).Debug("listing shrank below the requested page")
		c.cursor.Page = c.cursor.TotalPages
		c.overshot = true
	}

	if len(summaries) > c.perPage {
		summaries = summaries[:c.perPage]
	}

	c.slots = make([]Slot, len(summaries))
	pending := make([]*PendingDetail, len(summaries))

	for i, summary := range summaries {
		kind := c.kindOf(summary)
		c.slots[i] = Slot{Summary: summary, Kind: kind}

		id, fetcher := summary.ID, c.fetcher
		pending[i] = &PendingDetail{
			Listing:    c.listing,
			Generation: result.Generation,
			Index:      i,
			ID:         id,
			future: worker.Submit(c.worker, func(ctx context.Context) (*detail.Record, error) {
				return fetcher.Fetch(ctx, id, kind)
			}),
		}
	}

	return pending
}

// ApplyDetail places a detail result into the slot holding the same id and
// reports whether it was used. Results for entries no longer displayed are ignored.
func (c *Controller) ApplyDetail(result DetailResult) bool {
	if result.Generation != c.shown {
		c.entry().WithField("id", result.ID).Debug("stale detail result discarded")
		return false
	}

	index := result.Index
	if index < 0 || index >= len(c.slots) || c.slots[index].Summary.ID != result.ID {
		index = -1
		for i, slot := range c.slots {
			if slot.Summary.ID == result.ID && slot.Pending() {
				index = i
				break
			}
		}
		if index < 0 {
			return false
		}
	}

	slot := &c.slots[index]
	if result.Err != nil {
		slot.Err = result.Err
		c.entry().WithField("id", result.ID).WithError(result.Err).Warn("detail unavailable")
	} else {
		slot.Record = result.Record
		slot.Err = nil
	}
	return true
}

// Load requests page and waits for it and all of its details on the calling goroutine.
func (c *Controller) Load(ctx context.Context, page int) error {
	pending, err := c.RequestPage(page)
	if err != nil {
		return err
	}

	result := pending.Await(ctx)
	details := c.ApplyPage(result)
	if result.Err != nil {
		return result.Err
	}

	for _, d := range details {
		c.ApplyDetail(d.Await(ctx))
	}

	if c.overshot {
		return c.Load(ctx, c.cursor.Page)
	}

	return ctx.Err()
}

func (c *Controller) kindOf(summary tmdb.Summary) tmdb.Kind {
	if summary.MediaType != "" {
		if kind, err := tmdb.ParseKind(summary.MediaType); err == nil {
			return kind
		}
	}
	return c.kind
}
