package gojo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/samber/lo"
	"github.com/soramod/soramod/log"
	"github.com/soramod/soramod/source"
	"github.com/soramod/soramod/util"
)

// Info returns Anilist details. Episodes are attached when the backend has them.
func (m *Module) Info(ctx context.Context, id string) (*source.Info, error) {
	if message, ok := unavailableMessage(id); ok {
		return &source.Info{
			ID:          id,
			Title:       Name,
			Poster:      HostDownPoster,
			Description: message + " Please try again later.",
			Airdate:     "Aired: Unknown",
			Type:        source.TypeAnime,
			Episodes:    []*source.Episode{},
		}, nil
	}

	anilistID, err := strconv.Atoi(id)
	if err != nil {
		return nil, &source.ParseError{What: "anilist id", Err: err}
	}

	anime, err := m.anilist.GetByID(ctx, anilistID)
	if err != nil {
		return nil, fmt.Errorf("info %s: %w", id, err)
	}

	episodes, err := m.Episodes(ctx, id)
	if err != nil {
		log.Warnf("no episodes for %s: %v", id, err)
		episodes = []*source.Episode{}
	}

	return &source.Info{
		ID:          id,
		Title:       anime.Name(),
		Poster:      anime.Cover(),
		Banner:      anime.BannerImage,
		Description: util.StripHTML(anime.Description),
		Aliases:     anime.Aliases(),
		Airdate:     anime.Airdate(),
		Type:        source.TypeAnime,
		Episodes:    episodes,
	}, nil
}

// flexID accepts ids sent either as strings or numbers.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

type providerEpisodes struct {
	ProviderID string `json:"providerId"`
	HasDub     bool   `json:"hasDub"`
	Episodes   []struct {
		ID     flexID  `json:"id"`
		Number float64 `json:"number"`
		Title  string  `json:"title"`
		Image  string  `json:"image"`
	} `json:"episodes"`
}

// Episodes merges the episode lists of every provider by episode number.
// Title and image come from the first provider listing the episode.
func (m *Module) Episodes(ctx context.Context, id string) ([]*source.Episode, error) {
	if message, ok := unavailableMessage(id); ok {
		return nil, &source.UpstreamError{URL: m.site, Err: errors.New(message)}
	}

	var providers []providerEpisodes
	endpoint := fmt.Sprintf("%s/episodes/%s", m.api, url.PathEscape(id))
	if err := m.getJSON(ctx, endpoint, "episode list", &providers); err != nil {
		return nil, err
	}

	type merged struct {
		episode *source.Episode
		ref     EpisodeRef
	}

	var (
		order   []float64
		byValue = make(map[float64]*merged)
	)

	for _, p := range providers {
		for _, e := range p.Episodes {
			entry, ok := byValue[e.Number]
			if !ok {
				number := strconv.FormatFloat(e.Number, 'f', -1, 64)
				entry = &merged{
					episode: &source.Episode{
						Number:    e.Number,
						Title:     lo.CoalesceOrEmpty(e.Title, "Episode "+number),
						Thumbnail: e.Image,
					},
					ref: EpisodeRef{AnilistID: id, Number: number},
				}
				byValue[e.Number] = entry
				order = append(order, e.Number)
			}

			entry.ref.Watch = append(entry.ref.Watch, WatchRef{WatchID: string(e.ID), ProviderID: p.ProviderID})
		}
	}

	if len(order) == 0 {
		return nil, &source.NotFoundError{What: fmt.Sprintf("episodes of %s", id)}
	}

	slices.Sort(order)
	return lo.Map(order, func(n float64, _ int) *source.Episode {
		entry := byValue[n]
		entry.episode.ID = entry.ref.String()
		return entry.episode
	}), nil
}
