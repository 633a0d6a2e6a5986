package gojo

import (
	"errors"
	"net/url"

	"github.com/samber/lo"
	"github.com/soramod/soramod/source"
)

// WatchRef is one upstream provider's copy of an episode.
type WatchRef struct {
	WatchID    string
	ProviderID string
}

// EpisodeRef identifies an episode and every provider that carries it.
type EpisodeRef struct {
	AnilistID string
	Number    string
	Watch     []WatchRef
}

// String encodes the reference for the host.
func (r EpisodeRef) String() string {
	return url.Values{
		"anilist":  {r.AnilistID},
		"num":      {r.Number},
		"watch":    lo.Map(r.Watch, func(w WatchRef, _ int) string { return w.WatchID }),
		"provider": lo.Map(r.Watch, func(w WatchRef, _ int) string { return w.ProviderID }),
	}.Encode()
}

// ParseEpisodeRef decodes a reference produced by EpisodeRef.String.
func ParseEpisodeRef(raw string) (EpisodeRef, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return EpisodeRef{}, &source.ParseError{What: "episode id", Err: err}
	}

	ref := EpisodeRef{
		AnilistID: values.Get("anilist"),
		Number:    values.Get("num"),
	}

	if ref.AnilistID == "" || ref.Number == "" {
		return EpisodeRef{}, &source.ParseError{What: "episode id", Err: errors.New("anilist id and episode number are required")}
	}

	watch, providers := values["watch"], values["provider"]
	if len(watch) == 0 || len(watch) != len(providers) {
		return EpisodeRef{}, &source.ParseError{What: "episode id", Err: errors.New("every watch id needs exactly one provider")}
	}

	ref.Watch = lo.Map(watch, func(id string, i int) WatchRef {
		return WatchRef{WatchID: id, ProviderID: providers[i]}
	})

	return ref, nil
}
