// Package network builds the tuned HTTP clients shared by the catalog transport and the image resolver.
package network

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/proxy"
)

// Options configure a client.
type Options struct {
	// Timeout bounds a whole request, zero means one minute.
	Timeout time.Duration

	// Proxy, when set, routes every request through a forward proxy.
	// http and https proxies are used with CONNECT, socks5 ones are dialed directly.
	Proxy *url.URL
}

// New returns a client with pooled connections and the requested proxy applied.
func New(options Options) (*http.Client, error) {
	t := newTransport()

	if options.Proxy != nil {
		switch options.Proxy.Scheme {
		case "http", "https":
			t.Proxy = http.ProxyURL(options.Proxy)
		case "socks5", "socks5h":
			dialer, err := proxy.FromURL(options.Proxy, proxy.Direct)
			if err != nil {
				return nil, fmt.Errorf("proxy %s: %w", options.Proxy.Redacted(), err)
			}

			t.Proxy = nil
			t.DialContext = dialContext(dialer)
		default:
			return nil, fmt.Errorf("unsupported proxy scheme %q", options.Proxy.Scheme)
		}
	}

	timeout := options.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: t,
	}, nil
}

func dialContext(dialer proxy.Dialer) func(ctx context.Context, network, addr string) (net.Conn, error) {
	if cd, ok := dialer.(proxy.ContextDialer); ok {
		return cd.DialContext
	}

	return func(_ context.Context, network, addr string) (net.Conn, error) {
		return dialer.Dial(network, addr)
	}
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}
