package credential

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/soramod/soramod/source"
)

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time {
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func countingFetch(calls *int32, lifetime time.Duration, clk *clock) FetchFunc {
	return func(context.Context) (Credential, error) {
		n := atomic.AddInt32(calls, 1)
		return Credential{
			Token:     fmt.Sprintf("token-%d", n),
			ExpiresAt: clk.Now().Add(lifetime).Unix(),
		}, nil
	}
}

func TestCredential(t *testing.T) {
	Convey("ValidAt", t, func() {
		now := time.Unix(1_000_000, 0)
		c := Credential{Token: "t", ExpiresAt: now.Unix() + 600}

		So(c.ValidAt(now, DefaultSkew), ShouldBeTrue)
		So(c.ValidAt(now.Add(299*time.Second), DefaultSkew), ShouldBeTrue)
		So(c.ValidAt(now.Add(300*time.Second), DefaultSkew), ShouldBeFalse)

		Convey("Lifetime shorter than skew is invalid immediately", func() {
			short := Credential{Token: "t", ExpiresAt: now.Unix() + 100}
			So(short.ValidAt(now, DefaultSkew), ShouldBeFalse)
		})

		Convey("Empty token is never valid", func() {
			So(Credential{ExpiresAt: now.Unix() + 3600}.ValidAt(now, 0), ShouldBeFalse)
		})
	})
}

func TestCache(t *testing.T) {
	Convey("Given an empty cache", t, func() {
		clk := &clock{now: time.Unix(1_700_000_000, 0)}
		cache := NewCache(WithClock(clk.Now))
		var calls int32
		fetch := countingFetch(&calls, time.Hour, clk)
		ctx := context.Background()

		So(cache.Peek().IsAbsent(), ShouldBeTrue)

		Convey("The first call exchanges once", func() {
			token, err := cache.Token(ctx, fetch)
			So(err, ShouldBeNil)
			So(token, ShouldEqual, "token-1")
			So(atomic.LoadInt32(&calls), ShouldEqual, 1)

			Convey("Calls within expires_in minus skew reuse the token", func() {
				clk.Advance(time.Hour - DefaultSkew - time.Second)
				token, err := cache.Token(ctx, fetch)
				So(err, ShouldBeNil)
				So(token, ShouldEqual, "token-1")
				So(atomic.LoadInt32(&calls), ShouldEqual, 1)
			})

			Convey("A call inside the skew window exchanges exactly once", func() {
				clk.Advance(time.Hour - DefaultSkew)
				token, err := cache.Token(ctx, fetch)
				So(err, ShouldBeNil)
				So(token, ShouldEqual, "token-2")
				So(atomic.LoadInt32(&calls), ShouldEqual, 2)

				token, err = cache.Token(ctx, fetch)
				So(err, ShouldBeNil)
				So(token, ShouldEqual, "token-2")
				So(atomic.LoadInt32(&calls), ShouldEqual, 2)
			})

			Convey("Invalidate forces a new exchange", func() {
				cache.Invalidate()
				token, err := cache.Token(ctx, fetch)
				So(err, ShouldBeNil)
				So(token, ShouldEqual, "token-2")
			})
		})

		Convey("A token living shorter than the skew is exchanged on every call", func() {
			shortFetch := countingFetch(&calls, time.Minute, clk)
			_, _ = cache.Token(ctx, shortFetch)
			_, _ = cache.Token(ctx, shortFetch)
			So(atomic.LoadInt32(&calls), ShouldEqual, 2)
		})

		Convey("Fetch failures surface as AuthError and leave the slot empty", func() {
			_, err := cache.Token(ctx, func(context.Context) (Credential, error) {
				return Credential{}, errors.New("connection refused")
			})

			var authErr *source.AuthError
			So(errors.As(err, &authErr), ShouldBeTrue)
			So(cache.Peek().IsAbsent(), ShouldBeTrue)
		})

		Convey("An empty access token is rejected", func() {
			_, err := cache.Token(ctx, func(context.Context) (Credential, error) {
				return Credential{ExpiresAt: clk.Now().Add(time.Hour).Unix()}, nil
			})

			var authErr *source.AuthError
			So(errors.As(err, &authErr), ShouldBeTrue)
		})
	})
}

func TestClientCredentials(t *testing.T) {
	Convey("Given a token endpoint", t, func() {
		var (
			status = http.StatusOK
			body   = `{"access_token":"abc","token_type":"Bearer","expires_in":3600}`
			form   = make(chan map[string]string, 1)
		)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = r.ParseForm()
			form <- map[string]string{
				"client_id":     r.PostForm.Get("client_id"),
				"client_secret": r.PostForm.Get("client_secret"),
				"grant_type":    r.PostForm.Get("grant_type"),
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
		}))
		defer server.Close()

		exchange := ClientCredentials{
			TokenURL:     server.URL,
			ClientID:     "id",
			ClientSecret: "secret",
			Client:       server.Client(),
		}

		Convey("It posts the credentials as form fields", func() {
			before := time.Now()
			cred, err := exchange.Fetch(context.Background())
			So(err, ShouldBeNil)
			So(cred.Token, ShouldEqual, "abc")
			So(cred.ExpiresAt, ShouldBeGreaterThanOrEqualTo, before.Add(time.Hour).Unix()-1)

			sent := <-form
			So(sent["client_id"], ShouldEqual, "id")
			So(sent["client_secret"], ShouldEqual, "secret")
			So(sent["grant_type"], ShouldEqual, "client_credentials")
		})

		Convey("A missing expires_in yields an already expired credential", func() {
			body = `{"access_token":"abc","token_type":"Bearer"}`
			fixed := time.Unix(1_700_000_000, 0)
			exchange.Now = func() time.Time { return fixed }

			cred, err := exchange.Fetch(context.Background())
			So(err, ShouldBeNil)
			So(cred.ExpiresAt, ShouldEqual, fixed.Unix())
			So(cred.ValidAt(fixed, DefaultSkew), ShouldBeFalse)
		})

		Convey("A non-2xx status is an AuthError", func() {
			status = http.StatusUnauthorized
			body = `{"error":"invalid_client"}`

			_, err := exchange.Fetch(context.Background())
			var authErr *source.AuthError
			So(errors.As(err, &authErr), ShouldBeTrue)
		})

		Convey("Missing credentials fail without a request", func() {
			exchange.ClientSecret = ""
			_, err := exchange.Fetch(context.Background())
			var authErr *source.AuthError
			So(errors.As(err, &authErr), ShouldBeTrue)
			So(len(form), ShouldEqual, 0)
		})
	})
}
