package gojo

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/soramod/soramod/fanout"
	"github.com/soramod/soramod/log"
	"github.com/soramod/soramod/selector"
	"github.com/soramod/soramod/source"
)

type streamSource struct {
	URL     string `json:"url"`
	Quality string `json:"quality"`
}

type streamSubtitle struct {
	URL  string `json:"url"`
	Lang string `json:"lang"`
}

type streamsResponse struct {
	Sources   []streamSource   `json:"sources"`
	Subtitles []streamSubtitle `json:"subtitles"`
}

// Resolve asks every provider carrying the episode for its sources, waits
// for all of them and returns the best one. Failing providers are skipped;
// when all fail the result is none.
func (m *Module) Resolve(ctx context.Context, episodeID string) (mo.Option[source.Resolution], error) {
	ref, err := ParseEpisodeRef(episodeID)
	if err != nil {
		return mo.None[source.Resolution](), err
	}

	attempts := lo.Map(ref.Watch, func(w WatchRef, _ int) fanout.Attempt[selector.Candidate] {
		return fanout.Attempt[selector.Candidate]{
			Name: w.ProviderID,
			Run: func(ctx context.Context) (selector.Candidate, error) {
				return m.candidate(ctx, ref, w)
			},
		}
	})

	outcomes := fanout.Settle(ctx, attempts, fanout.WithLimit(m.limit), fanout.WithTimeout(m.timeout))
	candidates := fanout.Values(outcomes)
	log.Infof("episode %s of %s: %d of %d providers answered", ref.Number, ref.AnilistID, len(candidates), len(attempts))

	best, ok := selector.Best(candidates).Get()
	if !ok {
		return mo.None[source.Resolution](), nil
	}

	return mo.Some(selector.Shape(best, SubtitleFormat)), nil
}

func (m *Module) candidate(ctx context.Context, ref EpisodeRef, w WatchRef) (selector.Candidate, error) {
	query := url.Values{
		"provider": {w.ProviderID},
		"id":       {ref.AnilistID},
		"num":      {ref.Number},
		"subType":  {m.subType},
		"watchId":  {w.WatchID},
		"dub_id":   {"null"},
	}
	endpoint := fmt.Sprintf("%s/tiddies?%s", m.api, query.Encode())

	var response streamsResponse
	if err := m.getJSON(ctx, endpoint, "stream list", &response); err != nil {
		return selector.Candidate{}, err
	}

	streams := lo.Map(response.Sources, func(s streamSource, _ int) source.Stream {
		return source.Stream{
			URL:      s.URL,
			Quality:  strings.TrimSpace(s.Quality),
			Type:     streamType(s.URL),
			Provider: w.ProviderID,
		}
	})

	best, ok := selector.BestStream(streams).Get()
	if !ok {
		return selector.Candidate{}, &source.NotFoundError{What: fmt.Sprintf("sources from %s", w.ProviderID)}
	}

	tracks := lo.Map(response.Subtitles, func(s streamSubtitle, _ int) source.Subtitle {
		return source.Subtitle{URL: s.URL, Language: s.Lang}
	})

	return selector.Candidate{
		Stream:   best,
		Subtitle: selector.PickSubtitle(tracks, m.languages),
		Headers:  m.Headers(),
	}, nil
}

func streamType(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	switch strings.ToLower(path.Ext(u.Path)) {
	case ".m3u8":
		return "hls"
	case ".mpd":
		return "dash"
	case ".mp4":
		return "mp4"
	default:
		return ""
	}
}
