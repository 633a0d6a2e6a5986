package anilist

import (
	"net/http"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/soramod/soramod/network"
)

// Endpoint is the public Anilist GraphQL endpoint.
const Endpoint = "https://graphql.anilist.co"

// DefaultPerPage is how many results a name search returns.
const DefaultPerPage = 20

// Client queries Anilist and keeps results in memory for TTL.
type Client struct {
	endpoint string
	http     *http.Client
	perPage  int
	cache    *cache.Cache
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides Endpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithHTTPClient overrides network.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.http = client
	}
}

// WithPerPage overrides DefaultPerPage.
func WithPerPage(n int) Option {
	return func(c *Client) {
		c.perPage = n
	}
}

// WithTTL sets how long lookups stay cached. Zero disables caching.
func WithTTL(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl <= 0 {
			c.cache = nil
			return
		}
		c.cache = cache.New(ttl, 2*ttl)
	}
}

// New returns a client with a ten minute cache.
func New(options ...Option) *Client {
	c := &Client{
		endpoint: Endpoint,
		http:     network.Client,
		perPage:  DefaultPerPage,
		cache:    cache.New(10*time.Minute, 20*time.Minute),
	}

	for _, option := range options {
		option(c)
	}

	return c
}
