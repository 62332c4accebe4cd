package tmdb

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

func get[T any](ctx context.Context, c *Client, endpoint string, params url.Values) (*T, error) {
	body, err := c.Request(ctx, http.MethodGet, endpoint, params)
	if err != nil {
		return nil, err
	}

	var out T
	if err := body.Decode(&out); err != nil {
		return nil, &Error{Method: http.MethodGet, Endpoint: endpoint, Status: http.StatusOK, Err: err}
	}
	return &out, nil
}

func titlePath(kind Kind, id int, suffix string) string {
	p := fmt.Sprintf("%s/%d", kind.Segment(), id)
	if suffix != "" {
		p += "/" + suffix
	}
	return p
}

// Details fetches the base record of a title.
func (c *Client) Details(ctx context.Context, kind Kind, id int) (*Details, error) {
	return get[Details](ctx, c, titlePath(kind, id, ""), nil)
}

// Credits fetches the cast of a title.
func (c *Client) Credits(ctx context.Context, kind Kind, id int) (*Credits, error) {
	return get[Credits](ctx, c, titlePath(kind, id, "credits"), nil)
}

// ExternalIDs fetches identifiers of a title in other databases.
func (c *Client) ExternalIDs(ctx context.Context, kind Kind, id int) (*ExternalIDs, error) {
	return get[ExternalIDs](ctx, c, titlePath(kind, id, "external_ids"), nil)
}

// Videos fetches trailers, teasers and clips of a title.
func (c *Client) Videos(ctx context.Context, kind Kind, id int) (*Videos, error) {
	return get[Videos](ctx, c, titlePath(kind, id, "videos"), nil)
}

// List fetches one page of a paginated endpoint.
func (c *Client) List(ctx context.Context, endpoint string, page int, params url.Values) (*Page, error) {
	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("page", strconv.Itoa(page))

	return get[Page](ctx, c, endpoint, query)
}

// Account fetches the account owning the token.
func (c *Client) Account(ctx context.Context) (*Account, error) {
	return get[Account](ctx, c, "account", nil)
}
