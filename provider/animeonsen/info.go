package animeonsen

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/samber/lo"
	"github.com/soramod/soramod/log"
	"github.com/soramod/soramod/source"
	"github.com/soramod/soramod/util"
	"golang.org/x/sync/errgroup"
)

type episodeEntry struct {
	TitleEN string `json:"contentTitle_episode_en"`
	TitleJP string `json:"contentTitle_episode_jp"`
}

// Info fetches details and episodes concurrently. Details are required; a
// title with no episodes yet is returned with an empty list.
func (m *Module) Info(ctx context.Context, id string) (*source.Info, error) {
	var (
		details  content
		episodes []*source.Episode
	)

	// One exchange serves both requests.
	if _, err := m.token(ctx); err != nil {
		return nil, fmt.Errorf("info %s: %w", id, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return m.getJSON(gctx, m.details(id), "content details", &details)
	})
	g.Go(func() (err error) {
		episodes, err = m.Episodes(gctx, id)

		var notFound *source.NotFoundError
		if errors.As(err, &notFound) {
			log.Infof("%s has no episodes yet", id)
			episodes = []*source.Episode{}
			return nil
		}

		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("info %s: %w", id, err)
	}

	description := lo.CoalesceOrEmpty(details.ContentDescriptionEN, details.ContentDescription)

	return &source.Info{
		ID:          id,
		Title:       details.title(),
		Poster:      m.poster(id),
		Banner:      m.banner(id),
		Description: util.StripHTML(description),
		Aliases:     lo.Uniq(lo.Compact([]string{details.ContentTitleEN, details.ContentTitle})),
		Type:        source.TypeAnime,
		Episodes:    episodes,
	}, nil
}

// Episodes lists the episodes of a title ordered by number.
func (m *Module) Episodes(ctx context.Context, id string) ([]*source.Episode, error) {
	var entries map[string]episodeEntry
	if err := m.getJSON(ctx, m.episodeList(id), "episode list", &entries); err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, &source.NotFoundError{What: fmt.Sprintf("episodes of %s", id)}
	}

	episodes := lo.MapToSlice(entries, func(number string, entry episodeEntry) *source.Episode {
		n, err := strconv.ParseFloat(number, 64)
		if err != nil {
			log.Warnf("episode key %q of %s is not a number", number, id)
		}

		return &source.Episode{
			ID:        EpisodeRef{ContentID: id, Episode: number}.String(),
			Number:    n,
			Title:     lo.CoalesceOrEmpty(entry.TitleEN, "Episode "+number),
			Thumbnail: m.thumbnail(id, number),
		}
	})

	// Keys parsing to the same number keep a stable order by key.
	slices.SortFunc(episodes, func(a, b *source.Episode) int {
		return cmp.Or(cmp.Compare(a.Number, b.Number), cmp.Compare(a.ID, b.ID))
	})

	return episodes, nil
}
