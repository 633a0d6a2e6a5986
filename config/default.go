// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/goccy/go-json"
	"github.com/samber/lo"
	"github.com/soramod/soramod/color"
	"github.com/soramod/soramod/constant"
	"github.com/soramod/soramod/key"
	"github.com/soramod/soramod/style"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
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
	prefix := strings.ToUpper(constant.App + "_")
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
		Value:       viper.Get(f.Key),
		Default:     f.Value,
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
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	register(key.DefaultModule, "gojo", "Module used when --module is not given.\nType \"soramod sources list\" to show available modules")
	register(key.HTTPTimeout, 30, "Timeout in seconds for a single upstream request")
	register(key.HTTPRateLimit, 10, "Maximum requests per second sent to a single host.\n0 disables the limit")
	register(key.HTTPUserAgent, constant.UserAgent, "User-Agent header sent to upstream providers")
	register(key.TokenSkew, 300, "Seconds before expiry at which a cached access token is considered stale")
	register(key.FanoutConcurrency, 4, "Maximum number of providers queried at once while resolving a stream")
	register(key.FanoutAttemptTimeout, 15, "Timeout in seconds for a single provider attempt while resolving a stream")
	register(key.SubtitlesLanguages, []string{"English"}, "Preferred subtitle languages, most preferred first.\nThe first available track is used when none matches")
	register(key.AnimeOnsenClientID, "", "AnimeOnsen OAuth client id.\nFalls back to the keyring entry written by \"soramod auth set animeonsen\"")
	register(key.AnimeOnsenClientSecret, "", "AnimeOnsen OAuth client secret.\nFalls back to the keyring entry written by \"soramod auth set animeonsen\"")
	register(key.GojoFormat, "SUB", "Audio format requested from Gojo.\nAvailable options are: SUB, DUB")
	register(key.AnilistCacheTTL, 10, "Minutes an Anilist lookup stays in the in-memory cache")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
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
	"value":    func(k string) any { return viper.Get(k) },
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
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
