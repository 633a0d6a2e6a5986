package animeonsen

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/soramod/soramod/credential"
	"github.com/soramod/soramod/source"
)

type stub struct {
	server        *httptest.Server
	tokenRequests int32
	subtitleCode  int
	rejectToken   bool
}

func newStub() *stub {
	s := &stub{subtitleCode: http.StatusOK}
	mux := http.NewServeMux()

	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&s.tokenRequests, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"Bearer","expires_in":3600}`))
	})

	authorised := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if s.rejectToken || r.Header.Get("Authorization") != "Bearer tok" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			next(w, r)
		}
	}

	mux.HandleFunc("/v4/search/", authorised(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/nothing") {
			_, _ = w.Write([]byte(`{"result":[]}`))
			return
		}
		_, _ = w.Write([]byte(`{"result":[
			{"content_id":"abc","content_title":"Sousou no Frieren","content_title_en":"Frieren"},
			{"content_id":"def","content_title":"Mushishi"}
		]}`))
	}))

	mux.HandleFunc("/v4/content/abc", authorised(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content_id":"abc","content_title":"Sousou no Frieren","content_title_en":"Frieren",
			"content_description":"An <b>elf</b> mage."}`))
	}))

	mux.HandleFunc("/v4/content/abc/episodes", authorised(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"10":{"contentTitle_episode_en":"Ten"},"2":{"contentTitle_episode_en":"Two"},"1":{}}`))
	}))

	mux.HandleFunc("/v4/content/empty", authorised(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content_id":"empty","content_title":"Kusuriya no Hitorigoto Season 3"}`))
	}))

	mux.HandleFunc("/v4/content/empty/episodes", authorised(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))

	mux.HandleFunc("/v4/content/odd/episodes", authorised(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"b":{},"1":{},"a":{}}`))
	}))

	mux.HandleFunc("/v4/subtitles/", authorised(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(s.subtitleCode)
	}))

	s.server = httptest.NewServer(mux)
	return s
}

func (s *stub) module(tokens *credential.Cache) *Module {
	return New(Config{
		TokenURL:     s.server.URL + "/oauth/token",
		APIURL:       s.server.URL + "/v4",
		CDNURL:       "https://cdn.example/video/mp4-dash",
		ClientID:     "id",
		ClientSecret: "secret",
		HTTPClient:   s.server.Client(),
	}, tokens)
}

func TestModule(t *testing.T) {
	Convey("Given a stubbed AnimeOnsen API", t, func() {
		s := newStub()
		defer s.server.Close()

		tokens := credential.NewCache()
		m := s.module(tokens)
		ctx := context.Background()

		Convey("Search maps results and prefers English titles", func() {
			results, err := m.Search(ctx, "  frieren ")
			So(err, ShouldBeNil)
			So(results, ShouldHaveLength, 2)
			So(results[0].ID, ShouldEqual, "abc")
			So(results[0].Title, ShouldEqual, "Frieren")
			So(results[0].Poster, ShouldEqual, s.server.URL+"/v4/image/210x300/abc")
			So(results[1].Title, ShouldEqual, "Mushishi")
			So(results[1].Type, ShouldEqual, source.TypeAnime)

			Convey("The token is reused across calls", func() {
				_, err := m.Search(ctx, "frieren")
				So(err, ShouldBeNil)
				So(atomic.LoadInt32(&s.tokenRequests), ShouldEqual, 1)
			})
		})

		Convey("An empty search is a NotFoundError", func() {
			_, err := m.Search(ctx, "nothing")
			var notFound *source.NotFoundError
			So(errors.As(err, &notFound), ShouldBeTrue)
		})

		Convey("Info merges details and sorted episodes", func() {
			info, err := m.Info(ctx, "abc")
			So(err, ShouldBeNil)
			So(info.Title, ShouldEqual, "Frieren")
			So(info.Description, ShouldEqual, "An elf mage.")
			So(info.Banner, ShouldEqual, s.server.URL+"/v4/image/banner/1900x400/abc")
			So(info.Episodes, ShouldHaveLength, 3)
			So(info.Episodes[0].Number, ShouldEqual, 1)
			So(info.Episodes[0].Title, ShouldEqual, "Episode 1")
			So(info.Episodes[1].Title, ShouldEqual, "Two")
			So(info.Episodes[2].Number, ShouldEqual, 10)
			So(info.Episodes[2].Thumbnail, ShouldEqual, s.server.URL+"/v4/image/episode/1920x1080/abc/10")
		})

		Convey("Info exchanges a single token on a cold cache", func() {
			_, err := m.Info(ctx, "abc")
			So(err, ShouldBeNil)
			So(atomic.LoadInt32(&s.tokenRequests), ShouldEqual, 1)
		})

		Convey("Info keeps the details of a title without episodes", func() {
			info, err := m.Info(ctx, "empty")
			So(err, ShouldBeNil)
			So(info.Title, ShouldEqual, "Kusuriya no Hitorigoto Season 3")
			So(info.Episodes, ShouldNotBeNil)
			So(info.Episodes, ShouldBeEmpty)
		})

		Convey("Info still fails when the details are missing", func() {
			_, err := m.Info(ctx, "missing")
			var upstream *source.UpstreamError
			So(errors.As(err, &upstream), ShouldBeTrue)
		})

		Convey("Episodes with equal numbers are ordered by key", func() {
			for range 5 {
				episodes, err := m.Episodes(ctx, "odd")
				So(err, ShouldBeNil)
				So(episodes, ShouldHaveLength, 3)
				So(episodes[0].Title, ShouldEqual, "Episode a")
				So(episodes[1].Title, ShouldEqual, "Episode b")
				So(episodes[2].Title, ShouldEqual, "Episode 1")
			}
		})

		Convey("Ids are escaped inside request paths", func() {
			resolution, err := m.Resolve(ctx, EpisodeRef{ContentID: "a/b?c", Episode: "1#2"}.String())
			So(err, ShouldBeNil)
			So(resolution.MustGet().URL, ShouldEqual, "https://cdn.example/video/mp4-dash/a%2Fb%3Fc/1%232/manifest.mpd")
			So(m.poster("a/b"), ShouldEqual, s.server.URL+"/v4/image/210x300/a%2Fb")
		})

		Convey("A title without episodes is a NotFoundError", func() {
			_, err := m.Episodes(ctx, "empty")
			var notFound *source.NotFoundError
			So(errors.As(err, &notFound), ShouldBeTrue)
		})

		Convey("Resolve returns the manifest with the subtitle when it exists", func() {
			episodes, err := m.Episodes(ctx, "abc")
			So(err, ShouldBeNil)

			resolution, err := m.Resolve(ctx, episodes[1].ID)
			So(err, ShouldBeNil)
			r := resolution.MustGet()
			So(r.URL, ShouldEqual, "https://cdn.example/video/mp4-dash/abc/2/manifest.mpd")
			So(r.Type, ShouldEqual, "dash")
			So(r.Headers["Authorization"], ShouldEqual, "Bearer tok")
			So(r.Subtitles, ShouldResemble, []source.Subtitle{{
				URL:      s.server.URL + "/v4/subtitles/abc/en-US/2",
				Language: "English",
				Format:   SubtitleFormat,
			}})
		})

		Convey("Resolve omits the subtitle when the probe fails", func() {
			s.subtitleCode = http.StatusNotFound
			resolution, err := m.Resolve(ctx, EpisodeRef{ContentID: "abc", Episode: "1"}.String())
			So(err, ShouldBeNil)
			So(resolution.MustGet().Subtitles, ShouldBeEmpty)
		})

		Convey("Resolve rejects malformed episode ids", func() {
			_, err := m.Resolve(ctx, "abc|1")
			var parseErr *source.ParseError
			So(errors.As(err, &parseErr), ShouldBeTrue)
		})

		Convey("A rejected token is an AuthError and is dropped from the cache", func() {
			_, err := m.Search(ctx, "frieren")
			So(err, ShouldBeNil)
			So(tokens.Peek().IsPresent(), ShouldBeTrue)

			s.rejectToken = true
			_, err = m.Search(ctx, "frieren")
			var authErr *source.AuthError
			So(errors.As(err, &authErr), ShouldBeTrue)
			So(tokens.Peek().IsAbsent(), ShouldBeTrue)
		})

		Convey("Missing credentials surface as an AuthError", func() {
			bare := New(Config{TokenURL: s.server.URL + "/oauth/token", APIURL: s.server.URL + "/v4", HTTPClient: s.server.Client()}, nil)
			_, err := bare.Search(ctx, "frieren")
			var authErr *source.AuthError
			So(errors.As(err, &authErr), ShouldBeTrue)
			So(atomic.LoadInt32(&s.tokenRequests), ShouldEqual, 0)
		})
	})
}

func TestEpisodeRef(t *testing.T) {
	Convey("EpisodeRef round-trips values containing separators", t, func() {
		ref := EpisodeRef{ContentID: "a|b+c:d", Episode: "12.5"}
		parsed, err := ParseEpisodeRef(ref.String())
		So(err, ShouldBeNil)
		So(parsed, ShouldResemble, ref)
	})

	Convey("ParseEpisodeRef requires both parts", t, func() {
		_, err := ParseEpisodeRef("content=abc")
		So(err, ShouldNotBeNil)
		_, err = ParseEpisodeRef("%zz")
		So(err, ShouldNotBeNil)
	})
}
