// Package tmdb is the transport to the movie catalog API.
//
// Every request is authenticated with a bearer token, carries the configured
// language and goes through the client's proxy, if any.
package tmdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/marquee-cli/marquee/constant"
	"github.com/marquee-cli/marquee/log"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// Options configure a Client.
type Options struct {
	BaseURL    string
	Token      string
	Language   string
	HTTPClient *http.Client
}

// Client sends requests to the catalog API. It is safe for concurrent use.
type Client struct {
	base     *url.URL
	token    string
	language string
	http     *http.Client
}

// New validates options and returns a client.
// A missing token is not an error here; requests fail with ErrMissingCredential instead.
func New(options Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(options.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", options.BaseURL)
	}

	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		base:     base,
		token:    options.Token,
		language: options.Language,
		http:     httpClient,
	}, nil
}

// Body is a JSON response body.
type Body json.RawMessage

// Decode unmarshals the body into v.
func (b Body) Decode(v any) error {
	return json.Unmarshal(b, v)
}

// Request sends a single request to endpoint, a path relative to the base url.
// GET params are encoded in the query string, POST params as a JSON object.
// The configured language is added unless params already carry one.
func (c *Client) Request(ctx context.Context, method, endpoint string, params url.Values) (Body, error) {
	if method != http.MethodGet && method != http.MethodPost {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}

	if c.token == "" {
		return nil, ErrMissingCredential
	}

	endpoint = strings.TrimLeft(endpoint, "/")
	fail := func(status int, err error) *Error {
		return &Error{Method: method, Endpoint: endpoint, Status: status, Err: err}
	}

	query := url.Values{}
	if c.language != "" {
		query.Set("language", c.language)
	}

	var payload io.Reader
	if method == http.MethodGet {
		for k, v := range params {
			query[k] = v
		}
	} else if len(params) > 0 {
		object := lo.MapValues(params, func(v []string, _ string) string {
			return v[0]
		})
		data, err := json.Marshal(object)
		if err != nil {
			return nil, fail(0, err)
		}
		payload = bytes.NewReader(data)
	}

	u := c.base.JoinPath(endpoint)
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, method, u.String(), payload)
	if err != nil {
		return nil, fail(0, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", constant.UserAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json;charset=utf-8")
	}

	started := time.Now()
	entry := log.WithFields(logrus.Fields{
		"method":   method,
		"endpoint": endpoint,
	})

	resp, err := c.http.Do(req)
	if err != nil {
		entry.WithError(err).Warn("catalog request failed")
		return nil, fail(0, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fail(resp.StatusCode, err)
	}

	entry = entry.WithFields(logrus.Fields{
		"status":  resp.StatusCode,
		"elapsed": time.Since(started),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e := fail(resp.StatusCode, nil)
		e.Message = statusMessage(data)
		entry.Warn("catalog request rejected")
		return nil, e
	}

	if !json.Valid(data) {
		entry.Warn("catalog response is not json")
		return nil, fail(resp.StatusCode, fmt.Errorf("malformed response body"))
	}

	entry.Debug("catalog request")
	return Body(data), nil
}

// statusMessage extracts the API's own error description, if the body has one.
func statusMessage(data []byte) string {
	var body struct {
		StatusMessage string `json:"status_message"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return body.StatusMessage
}
