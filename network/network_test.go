package network

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("Given no proxy", t, func() {
		client, err := New(Options{})

		Convey("The client uses the default timeout and tuned pool", func() {
			So(err, ShouldBeNil)
			So(client.Timeout, ShouldEqual, time.Minute)

			transport := client.Transport.(*http.Transport)
			So(transport.MaxIdleConnsPerHost, ShouldEqual, 100)
			So(transport.MaxConnsPerHost, ShouldEqual, 200)
		})
	})

	Convey("Given an http proxy", t, func() {
		u, _ := url.Parse("http://10.0.0.1:3128")
		client, err := New(Options{Proxy: u, Timeout: 5 * time.Second})

		Convey("Requests are routed through it", func() {
			So(err, ShouldBeNil)
			So(client.Timeout, ShouldEqual, 5*time.Second)

			req, _ := http.NewRequest(http.MethodGet, "https://api.themoviedb.org/3/movie/1", nil)
			proxyURL, err := client.Transport.(*http.Transport).Proxy(req)
			So(err, ShouldBeNil)
			So(proxyURL.String(), ShouldEqual, "http://10.0.0.1:3128")
		})
	})

	Convey("Given a socks5 proxy", t, func() {
		u, _ := url.Parse("socks5://127.0.0.1:1080")
		client, err := New(Options{Proxy: u})

		Convey("The dialer is replaced", func() {
			So(err, ShouldBeNil)
			transport := client.Transport.(*http.Transport)
			So(transport.Proxy, ShouldBeNil)
			So(transport.DialContext, ShouldNotBeNil)
		})
	})

	Convey("Given an unknown proxy scheme", t, func() {
		u, _ := url.Parse("ftp://127.0.0.1:21")
		_, err := New(Options{Proxy: u})
		So(err, ShouldNotBeNil)
	})
}
