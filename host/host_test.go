package host

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/soramod/soramod/source"
)

type fake struct {
	id       string
	results  []*source.SearchResult
	info     *source.Info
	episodes []*source.Episode
	resolved mo.Option[source.Resolution]
	err      error
	panics   bool
}

func (f *fake) ID() string   { return f.id }
func (f *fake) Name() string { return f.id }

func (f *fake) maybePanic() {
	if f.panics {
		panic("boom")
	}
}

func (f *fake) Search(context.Context, string) ([]*source.SearchResult, error) {
	f.maybePanic()
	return f.results, f.err
}

func (f *fake) Info(context.Context, string) (*source.Info, error) {
	f.maybePanic()
	return f.info, f.err
}

func (f *fake) Episodes(context.Context, string) ([]*source.Episode, error) {
	f.maybePanic()
	return f.episodes, f.err
}

func (f *fake) Resolve(context.Context, string) (mo.Option[source.Resolution], error) {
	f.maybePanic()
	return f.resolved, f.err
}

func TestHost(t *testing.T) {
	ctx := context.Background()

	Convey("Given a host with a working module", t, func() {
		ok := &fake{
			id:       "ok",
			results:  []*source.SearchResult{{ID: "1", Title: "Frieren"}},
			info:     &source.Info{ID: "1", Title: "Frieren"},
			episodes: []*source.Episode{{ID: "e1", Number: 1}},
			resolved: mo.Some(source.Resolution{
				URL:       "https://cdn.example/master.m3u8",
				Quality:   "multi-quality",
				Subtitles: []source.Subtitle{{URL: "https://cdn.example/en.vtt", Language: "English", Format: "vtt"}},
				Headers:   map[string]string{"Referer": "https://example.com/"},
			}),
		}
		h := New(ok, &fake{id: "bare", resolved: mo.Some(source.Resolution{URL: "https://cdn.example/a.mp4"})})

		Convey("Modules are listed by id", func() {
			So(h.Modules(), ShouldHaveLength, 2)
			So(h.Modules()[0].ID(), ShouldEqual, "bare")
		})

		Convey("Search passes results through", func() {
			So(h.Search(ctx, "ok", "frieren"), ShouldResemble, ok.results)
		})

		Convey("Info and Episodes carry no error", func() {
			info := h.Info(ctx, "ok", "1")
			So(info.Error, ShouldBeEmpty)
			So(info.Title, ShouldEqual, "Frieren")

			episodes := h.Episodes(ctx, "ok", "1")
			So(episodes.Error, ShouldBeEmpty)
			So(episodes.Episodes, ShouldHaveLength, 1)
		})

		Convey("Streams converts the resolution", func() {
			streams := h.Streams(ctx, "ok", "e1")
			So(streams.Error, ShouldBeEmpty)
			So(streams.Sources, ShouldHaveLength, 1)
			So(streams.Sources[0].Quality, ShouldEqual, "multi-quality")
			So(streams.Subtitles[0].Format, ShouldEqual, "vtt")
			So(streams.Headers["Referer"], ShouldEqual, "https://example.com/")
		})

		Convey("Resolve marshals to the object shape when subtitles exist", func() {
			data, err := json.Marshal(h.Resolve(ctx, "ok", "e1"))
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, `"url":"https://cdn.example/master.m3u8"`)
			So(string(data), ShouldContainSubstring, `"subtitles":[`)
		})

		Convey("Resolve marshals to a bare URL without subtitles", func() {
			data, err := json.Marshal(h.Resolve(ctx, "bare", "e1"))
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, `"https://cdn.example/a.mp4"`)
		})

		Convey("An unknown module is an error value", func() {
			So(h.Search(ctx, "missing", "x"), ShouldBeEmpty)
			So(h.Info(ctx, "missing", "1").Error, ShouldContainSubstring, "not found")
		})
	})

	Convey("Given a host with failing modules", t, func() {
		auth := &fake{id: "auth", err: &source.AuthError{Err: errors.New("invalid_client")}}
		none := &fake{id: "none", resolved: mo.None[source.Resolution]()}
		panicky := &fake{id: "panicky", panics: true}
		h := New(auth, none, panicky)

		Convey("An AuthError becomes an error field", func() {
			So(h.Search(ctx, "auth", "x"), ShouldNotBeNil)
			So(h.Search(ctx, "auth", "x"), ShouldBeEmpty)

			info := h.Info(ctx, "auth", "1")
			So(info.Info, ShouldBeNil)
			So(info.Error, ShouldStartWith, "authentication failed")

			streams := h.Streams(ctx, "auth", "e")
			So(streams.Sources, ShouldBeEmpty)
			So(streams.Error, ShouldStartWith, "authentication failed")
		})

		Convey("No resolution is reported as no stream", func() {
			So(h.Streams(ctx, "none", "e").Error, ShouldEqual, source.ErrNoStream.Error())

			data, err := json.Marshal(h.Resolve(ctx, "none", "e"))
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, `{"error":"no playable stream found"}`)
		})

		Convey("Panics never cross the boundary", func() {
			So(func() {
				h.Search(ctx, "panicky", "x")
				h.Info(ctx, "panicky", "1")
				h.Episodes(ctx, "panicky", "1")
				h.Streams(ctx, "panicky", "e")
				h.Resolve(ctx, "panicky", "e")
			}, ShouldNotPanic)

			So(h.Episodes(ctx, "panicky", "1").Error, ShouldContainSubstring, "panicked")
			So(h.Episodes(ctx, "panicky", "1").Episodes, ShouldBeEmpty)
		})
	})
}
