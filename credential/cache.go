// Package credential caches short-lived access tokens and refreshes them ahead of expiry.
package credential

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/samber/mo"
	"github.com/soramod/soramod/log"
	"github.com/soramod/soramod/source"
)

// DefaultSkew is how long before expiry a token stops being handed out.
const DefaultSkew = 300 * time.Second

// Credential is an access token and the moment it expires.
type Credential struct {
	Token string
	// ExpiresAt is in epoch seconds.
	ExpiresAt int64
}

// ValidAt reports whether the token may still be used at now given skew.
func (c Credential) ValidAt(now time.Time, skew time.Duration) bool {
	return c.Token != "" && now.Unix() < c.ExpiresAt-int64(skew/time.Second)
}

// FetchFunc exchanges client credentials for a new access token.
type FetchFunc func(ctx context.Context) (Credential, error)

// Cache holds at most one credential.
//
// Concurrent callers that observe an expired credential may each call fetch;
// the last successful exchange wins. A cache is owned by whoever creates it
// and is usually shared by a single module instance.
type Cache struct {
	slot atomic.Pointer[Credential]
	skew time.Duration
	now  func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithSkew overrides DefaultSkew.
func WithSkew(skew time.Duration) Option {
	return func(c *Cache) {
		c.skew = skew
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// NewCache returns an empty cache.
func NewCache(options ...Option) *Cache {
	c := &Cache{
		skew: DefaultSkew,
		now:  time.Now,
	}

	for _, option := range options {
		option(c)
	}

	return c
}

// Token returns the cached token while it is valid, otherwise calls fetch
// once and stores its result. Fetch failures are returned as *source.AuthError.
func (c *Cache) Token(ctx context.Context, fetch FetchFunc) (string, error) {
	if cached := c.slot.Load(); cached != nil && cached.ValidAt(c.now(), c.skew) {
		return cached.Token, nil
	}

	log.Debug("access token missing or stale, exchanging credentials")
	fresh, err := fetch(ctx)
	if err != nil {
		var authErr *source.AuthError
		if !errors.As(err, &authErr) {
			err = &source.AuthError{Err: err}
		}
		log.Warn(err)
		return "", err
	}

	if fresh.Token == "" {
		err := &source.AuthError{Err: errors.New("token endpoint returned an empty access token")}
		log.Warn(err)
		return "", err
	}

	c.slot.Store(&fresh)
	return fresh.Token, nil
}

// Peek returns the stored credential, valid or not.
func (c *Cache) Peek() mo.Option[Credential] {
	if cached := c.slot.Load(); cached != nil {
		return mo.Some(*cached)
	}
	return mo.None[Credential]()
}

// Invalidate drops the stored credential so the next Token call exchanges again.
func (c *Cache) Invalidate() {
	c.slot.Store(nil)
}
