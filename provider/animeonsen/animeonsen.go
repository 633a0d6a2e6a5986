// Package animeonsen implements the AnimeOnsen module. Every API call carries
// a bearer token obtained with the client-credentials grant.
package animeonsen

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"
	"github.com/soramod/soramod/credential"
	"github.com/soramod/soramod/log"
	"github.com/soramod/soramod/network"
	"github.com/soramod/soramod/source"
	"github.com/soramod/soramod/util"
)

const (
	ID   = "animeonsen"
	Name = "AnimeOnsen"
)

// Public endpoints.
const (
	TokenURL = "https://auth.animeonsen.xyz/oauth/token"
	APIURL   = "https://api.animeonsen.xyz/v4"
	CDNURL   = "https://cdn.animeonsen.xyz/video/mp4-dash"
)

// SubtitleFormat is the container of AnimeOnsen subtitle tracks.
const SubtitleFormat = "ass"

// Config holds endpoints and credentials. Empty endpoints default to the public ones.
type Config struct {
	TokenURL     string
	APIURL       string
	CDNURL       string
	ClientID     string
	ClientSecret string
	HTTPClient   *http.Client
}

// Module is the AnimeOnsen source module.
type Module struct {
	api      string
	cdn      string
	http     *http.Client
	tokens   *credential.Cache
	exchange credential.ClientCredentials
}

// New returns a module that keeps its access token in tokens.
func New(config Config, tokens *credential.Cache) *Module {
	if config.TokenURL == "" {
		config.TokenURL = TokenURL
	}
	if config.APIURL == "" {
		config.APIURL = APIURL
	}
	if config.CDNURL == "" {
		config.CDNURL = CDNURL
	}
	if config.HTTPClient == nil {
		config.HTTPClient = network.Client
	}
	if tokens == nil {
		tokens = credential.NewCache()
	}

	return &Module{
		api:    config.APIURL,
		cdn:    config.CDNURL,
		http:   config.HTTPClient,
		tokens: tokens,
		exchange: credential.ClientCredentials{
			TokenURL:     config.TokenURL,
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Client:       config.HTTPClient,
		},
	}
}

func (m *Module) ID() string {
	return ID
}

func (m *Module) Name() string {
	return Name
}

// Ping checks that a token can be obtained.
func (m *Module) Ping(ctx context.Context) error {
	_, err := m.tokens.Token(ctx, m.exchange.Fetch)
	return err
}

func (m *Module) token(ctx context.Context) (string, error) {
	return m.tokens.Token(ctx, m.exchange.Fetch)
}

// get issues an authorised GET. The caller closes the body.
func (m *Module) get(ctx context.Context, endpoint string) (*http.Response, error) {
	token, err := m.token(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	log.Debugf("GET %s", endpoint)
	resp, err := m.http.Do(req)
	if err != nil {
		return nil, &source.UpstreamError{URL: endpoint, Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		util.Ignore(resp.Body.Close)
		m.tokens.Invalidate()
		return nil, &source.AuthError{Err: fmt.Errorf("%s rejected the access token", endpoint)}
	}

	return resp, nil
}

func (m *Module) getJSON(ctx context.Context, endpoint, what string, target any) error {
	resp, err := m.get(ctx, endpoint)
	if err != nil {
		return err
	}

	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return &source.UpstreamError{URL: endpoint, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return &source.ParseError{What: what, Err: err}
	}

	return nil
}

func (m *Module) poster(id string) string {
	return fmt.Sprintf("%s/image/210x300/%s", m.api, url.PathEscape(id))
}

func (m *Module) banner(id string) string {
	return fmt.Sprintf("%s/image/banner/1900x400/%s", m.api, url.PathEscape(id))
}

func (m *Module) thumbnail(id, episode string) string {
	return fmt.Sprintf("%s/image/episode/1920x1080/%s/%s", m.api, url.PathEscape(id), url.PathEscape(episode))
}

func (m *Module) manifest(id, episode string) string {
	return fmt.Sprintf("%s/%s/%s/manifest.mpd", m.cdn, url.PathEscape(id), url.PathEscape(episode))
}

func (m *Module) subtitles(id, episode string) string {
	return fmt.Sprintf("%s/subtitles/%s/en-US/%s", m.api, url.PathEscape(id), url.PathEscape(episode))
}

func (m *Module) details(id string) string {
	return fmt.Sprintf("%s/content/%s", m.api, url.PathEscape(id))
}

func (m *Module) episodeList(id string) string {
	return fmt.Sprintf("%s/content/%s/episodes", m.api, url.PathEscape(id))
}
