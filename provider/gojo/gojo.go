// Package gojo implements the Gojo module: Anilist metadata and episodes
// aggregated from several upstream providers of the animetsu backend.
package gojo

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/soramod/soramod/anilist"
	"github.com/soramod/soramod/log"
	"github.com/soramod/soramod/network"
	"github.com/soramod/soramod/source"
	"github.com/soramod/soramod/util"
)

const (
	ID   = "gojo"
	Name = "Gojo"
)

// Public endpoints.
const (
	SiteURL = "https://animetsu.cc"
	APIURL  = "https://backend.animetsu.cc/api/anime"
)

// SubtitleFormat is the container of Gojo subtitle tracks.
const SubtitleFormat = "vtt"

// Audio formats.
const (
	FormatSub = "SUB"
	FormatDub = "DUB"
)

// Config holds endpoints and resolution settings. Zero values fall back to defaults.
type Config struct {
	SiteURL string
	APIURL  string
	// Format is FormatSub or FormatDub.
	Format string
	// Languages orders subtitle preference.
	Languages []string
	// Limit bounds concurrent provider attempts.
	Limit int
	// AttemptTimeout bounds a single provider attempt.
	AttemptTimeout time.Duration
	HTTPClient     *http.Client
	Anilist        *anilist.Client
}

// Module is the Gojo source module.
type Module struct {
	site      string
	api       string
	subType   string
	languages []string
	limit     int
	timeout   time.Duration
	http      *http.Client
	anilist   *anilist.Client
	// hosts are checked by Ping.
	hosts []string
}

// New returns a module for config.
func New(config Config) *Module {
	if config.SiteURL == "" {
		config.SiteURL = SiteURL
	}
	if config.APIURL == "" {
		config.APIURL = APIURL
	}
	if len(config.Languages) == 0 {
		config.Languages = []string{"English"}
	}
	if config.HTTPClient == nil {
		config.HTTPClient = network.Client
	}
	if config.Anilist == nil {
		config.Anilist = anilist.New(anilist.WithHTTPClient(config.HTTPClient))
	}

	subType := "sub"
	if strings.EqualFold(config.Format, FormatDub) {
		subType = "dub"
	}

	return &Module{
		site:      strings.TrimSuffix(config.SiteURL, "/"),
		api:       strings.TrimSuffix(config.APIURL, "/"),
		subType:   subType,
		languages: config.Languages,
		limit:     config.Limit,
		timeout:   config.AttemptTimeout,
		http:      config.HTTPClient,
		anilist:   config.Anilist,
		hosts:     []string{config.SiteURL, origin(config.APIURL), anilist.Endpoint},
	}
}

// WithHosts replaces the hosts checked by Ping.
func (m *Module) WithHosts(hosts ...string) *Module {
	m.hosts = hosts
	return m
}

func (m *Module) ID() string {
	return ID
}

func (m *Module) Name() string {
	return Name
}

// Headers returns the headers the backend and its CDNs expect.
func (m *Module) Headers() map[string]string {
	return map[string]string{
		"Origin":  m.site,
		"Referer": m.site + "/",
	}
}

func origin(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Scheme + "://" + u.Host
}

func (m *Module) getJSON(ctx context.Context, endpoint, what string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	for k, v := range m.Headers() {
		req.Header.Set(k, v)
	}
	req.Header.Set("Accept", "application/json")

	log.Debugf("GET %s", endpoint)
	resp, err := m.http.Do(req)
	if err != nil {
		return &source.UpstreamError{URL: endpoint, Err: err}
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
