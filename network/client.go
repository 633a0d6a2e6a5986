// Package network builds the HTTP client shared by every module.
package network

import (
	"net/http"
	"time"

	"github.com/soramod/soramod/constant"
)

// Options tune New.
type Options struct {
	// Timeout bounds a whole request. Zero means one minute.
	Timeout time.Duration
	// RequestsPerSecond limits each upstream host. Zero disables the limit.
	RequestsPerSecond float64
	// UserAgent is set on requests that don't carry one.
	UserAgent string
}

// Client is a ready-to-use client with default options.
var Client = New(Options{})

// New returns a client with a tuned transport, an optional per-host rate limit
// and a default User-Agent.
func New(options Options) *http.Client {
	if options.Timeout == 0 {
		options.Timeout = time.Minute
	}

	if options.UserAgent == "" {
		options.UserAgent = constant.UserAgent
	}

	var transport http.RoundTripper = newTransport()
	if options.RequestsPerSecond > 0 {
		transport = newLimited(transport, options.RequestsPerSecond)
	}

	return &http.Client{
		Timeout: options.Timeout,
		Transport: &userAgent{
			next:  transport,
			value: options.UserAgent,
		},
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

type userAgent struct {
	next  http.RoundTripper
	value string
}

func (u *userAgent) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return u.next.RoundTrip(req)
	}

	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", u.value)
	return u.next.RoundTrip(clone)
}
