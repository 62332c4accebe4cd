// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/marquee-cli/marquee/color"
	"github.com/marquee-cli/marquee/constant"
	"github.com/marquee-cli/marquee/key"
	"github.com/marquee-cli/marquee/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string

	// Secret fields are only ever shown as set or unset.
	Secret bool
}

// Display returns v as it may be shown to the user.
func (f *Field) Display(v any) any {
	if !f.Secret {
		return v
	}

	if s, ok := v.(string); ok && s != "" {
		return "set"
	}
	return "unset"
}

// Current returns the value in effect, redacted for secret fields.
func (f *Field) Current() any {
	return f.Display(viper.Get(f.Key))
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Marquee + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       f.Current(),
		Default:     f.Display(f.Value),
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	// register validates and adds a new configuration field to the global registry.
	add := func(f Field) {
		if _, exists := Default[f.Key]; exists {
			panic("Duplicate config key: " + f.Key)
		}
		Default[f.Key] = f
		EnvExposed = append(EnvExposed, f.Key)
	}

	register := func(k string, v any, desc string) {
		add(Field{Key: k, Value: v, Description: desc})
	}

	add(Field{
		Key:         key.TMDBToken,
		Value:       "",
		Description: "Bearer token for the catalog API.\nWhen empty the token stored by \"marquee token set\" is used",
		Secret:      true,
	})
	register(key.TMDBLanguage, "en-US", "Language sent with every catalog request")
	register(key.TMDBBaseURL, constant.TMDBBaseURL, "Base address of the catalog API")
	register(key.TMDBImageBaseURL, constant.TMDBImageBaseURL, "Base address of the image CDN")
	register(key.TMDBTimeout, 30, "Request timeout in seconds")
	register(key.BrowseResultsPerPage, 10, "Maximum number of entries shown per page")
	register(key.BrowseCastLimit, 10, "Maximum number of cast members kept per title")
	register(key.BrowseWorkers, 8, "Maximum number of concurrent background fetches")
	register(key.ProxyEnabled, false, "Route all requests through a forward proxy")
	register(key.ProxyScheme, "http", "Proxy scheme.\nAvailable options are: http, socks5")
	register(key.ProxyHost, "", "Proxy host name or address")
	register(key.ProxyPort, 0, "Proxy port")
	register(key.ImagesCacheSize, 256, "Maximum number of decoded images kept in memory")
	register(key.ImagesTTL, 30, "Minutes a cached image stays valid")
	register(key.PlaybackPlayerBase, constant.PlayerBaseURL, "Base address of the embedded player")
	register(key.PlaybackBrowser, "", "Application used to open links.\nThe system default is used when empty")
	register(key.SearchShowQuerySuggestions, true, "Show query suggestions when searching")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.TUIItemSpacing, 1, "Spacing between items in the TUI")
	register(key.TUISearchPromptString, "> ", "Search prompt string to use")
	register(key.TUIShowURLs, true, "Show TMDB page links under list items")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl .Current }}
{{ blue "Default:" }} {{ hl (.Display .Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
