package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/marquee-cli/marquee/key"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// ValidationError reports a setting whose value cannot be used.
type ValidationError struct {
	Key    string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Key, e.Reason)
}

// Proxy describes the forward proxy every outbound request goes through.
type Proxy struct {
	Enabled bool
	Scheme  string
	Host    string
	Port    int
}

// URL returns the proxy address, or nil when the proxy is disabled.
func (p Proxy) URL() *url.URL {
	if !p.Enabled {
		return nil
	}

	return &url.URL{
		Scheme: p.Scheme,
		Host:   p.Host + ":" + strconv.Itoa(p.Port),
	}
}

// Settings is an immutable snapshot of the configuration,
// built once at startup and handed to every component that needs it.
type Settings struct {
	Token          string
	Language       string
	BaseURL        string
	ImageBaseURL   string
	Timeout        time.Duration
	ResultsPerPage int
	CastLimit      int
	Workers        int
	Proxy          Proxy
	ImageCacheSize int
	ImageTTL       time.Duration
	PlayerBase     string
	Browser        string
}

// Load reads the current viper state into a Settings value.
func Load() *Settings {
	return &Settings{
		Token:          viper.GetString(key.TMDBToken),
		Language:       viper.GetString(key.TMDBLanguage),
		BaseURL:        viper.GetString(key.TMDBBaseURL),
		ImageBaseURL:   viper.GetString(key.TMDBImageBaseURL),
		Timeout:        time.Duration(viper.GetInt(key.TMDBTimeout)) * time.Second,
		ResultsPerPage: viper.GetInt(key.BrowseResultsPerPage),
		CastLimit:      viper.GetInt(key.BrowseCastLimit),
		Workers:        viper.GetInt(key.BrowseWorkers),
		Proxy: Proxy{
			Enabled: viper.GetBool(key.ProxyEnabled),
			Scheme:  viper.GetString(key.ProxyScheme),
			Host:    viper.GetString(key.ProxyHost),
			Port:    viper.GetInt(key.ProxyPort),
		},
		ImageCacheSize: viper.GetInt(key.ImagesCacheSize),
		ImageTTL:       time.Duration(viper.GetInt(key.ImagesTTL)) * time.Minute,
		PlayerBase:     viper.GetString(key.PlaybackPlayerBase),
		Browser:        viper.GetString(key.PlaybackBrowser),
	}
}

// Validate reports every unusable value joined into a single error.
func (s *Settings) Validate() error {
	var errs []error

	invalid := func(k, reason string) {
		errs = append(errs, &ValidationError{Key: k, Reason: reason})
	}

	if _, err := url.ParseRequestURI(s.BaseURL); err != nil {
		invalid(key.TMDBBaseURL, "not an absolute URL")
	}

	if _, err := url.ParseRequestURI(s.ImageBaseURL); err != nil {
		invalid(key.TMDBImageBaseURL, "not an absolute URL")
	}

	if s.ResultsPerPage < 1 {
		invalid(key.BrowseResultsPerPage, "must be at least 1")
	}

	if s.CastLimit < 1 {
		invalid(key.BrowseCastLimit, "must be at least 1")
	}

	if s.Workers < 1 {
		invalid(key.BrowseWorkers, "must be at least 1")
	}

	if s.ImageCacheSize < 1 {
		invalid(key.ImagesCacheSize, "must be at least 1")
	}

	if s.Proxy.Enabled {
		if !lo.Contains([]string{"http", "https", "socks5"}, s.Proxy.Scheme) {
			invalid(key.ProxyScheme, "expected http, https or socks5")
		}

		if s.Proxy.Host == "" {
			invalid(key.ProxyHost, "required when the proxy is enabled")
		}

		if s.Proxy.Port < 1 || s.Proxy.Port > 65535 {
			invalid(key.ProxyPort, "must be between 1 and 65535")
		}
	}

	return errors.Join(errs...)
}
