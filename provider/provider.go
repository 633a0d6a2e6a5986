// Package provider is the catalogue of built-in source modules.
package provider

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/samber/lo"
	"github.com/soramod/soramod/anilist"
	"github.com/soramod/soramod/auth"
	"github.com/soramod/soramod/credential"
	"github.com/soramod/soramod/key"
	"github.com/soramod/soramod/log"
	"github.com/soramod/soramod/network"
	"github.com/soramod/soramod/provider/animeonsen"
	"github.com/soramod/soramod/provider/gojo"
	"github.com/soramod/soramod/source"
	"github.com/spf13/viper"
)

// Env carries the shared dependencies modules are built with.
type Env struct {
	HTTPClient *http.Client
	// Tokens is the token cache owned by the caller. One cache serves one module.
	Tokens  *credential.Cache
	Anilist *anilist.Client
}

// NewEnv builds an Env from the configuration.
func NewEnv() Env {
	client := network.New(network.Options{
		Timeout:           time.Duration(viper.GetInt(key.HTTPTimeout)) * time.Second,
		RequestsPerSecond: viper.GetFloat64(key.HTTPRateLimit),
		UserAgent:         viper.GetString(key.HTTPUserAgent),
	})

	return Env{
		HTTPClient: client,
		Tokens:     credential.NewCache(credential.WithSkew(time.Duration(viper.GetInt(key.TokenSkew)) * time.Second)),
		Anilist: anilist.New(
			anilist.WithHTTPClient(client),
			anilist.WithTTL(time.Duration(viper.GetInt(key.AnilistCacheTTL))*time.Minute),
		),
	}
}

// Provider describes a module that can be constructed.
type Provider struct {
	ID   string
	Name string
	// RequiresAuth is set for modules that exchange client credentials for a token.
	RequiresAuth bool
	Create       func(Env) (source.Module, error)
}

func (p *Provider) String() string {
	return p.Name
}

var builtins = []*Provider{
	{
		ID:   gojo.ID,
		Name: gojo.Name,
		Create: func(env Env) (source.Module, error) {
			return gojo.New(gojo.Config{
				Format:         viper.GetString(key.GojoFormat),
				Languages:      viper.GetStringSlice(key.SubtitlesLanguages),
				Limit:          viper.GetInt(key.FanoutConcurrency),
				AttemptTimeout: time.Duration(viper.GetInt(key.FanoutAttemptTimeout)) * time.Second,
				HTTPClient:     env.HTTPClient,
				Anilist:        env.Anilist,
			}), nil
		},
	},
	{
		ID:           animeonsen.ID,
		Name:         animeonsen.Name,
		RequiresAuth: true,
		Create: func(env Env) (source.Module, error) {
			credentials := Credentials(animeonsen.ID)
			if !credentials.Complete() {
				log.Warnf("no client credentials configured for %s", animeonsen.ID)
			}

			return animeonsen.New(animeonsen.Config{
				ClientID:     credentials.ClientID,
				ClientSecret: credentials.ClientSecret,
				HTTPClient:   env.HTTPClient,
			}, env.Tokens), nil
		},
	},
}

// Builtins returns every built-in provider.
func Builtins() []*Provider {
	return builtins
}

// Get finds a provider by id.
func Get(id string) (*Provider, bool) {
	return lo.Find(builtins, func(p *Provider) bool {
		return p.ID == id
	})
}

// Create builds the module with the given id.
func Create(id string, env Env) (source.Module, error) {
	p, ok := Get(id)
	if !ok {
		return nil, &source.NotFoundError{What: fmt.Sprintf("module %q", id)}
	}

	return p.Create(env)
}

// Credentials returns the client credentials for module id. Configuration
// takes precedence over the keyring.
func Credentials(id string) auth.Credentials {
	var configured auth.Credentials
	if id == animeonsen.ID {
		configured = auth.Credentials{
			ClientID:     viper.GetString(key.AnimeOnsenClientID),
			ClientSecret: viper.GetString(key.AnimeOnsenClientSecret),
		}
	}

	if configured.Complete() {
		return configured
	}

	stored, err := auth.Get(id)
	if err != nil {
		if !errors.Is(err, auth.ErrNotFound) {
			log.Warnf("keyring lookup for %s failed: %v", id, err)
		}
		return configured
	}

	return stored
}
