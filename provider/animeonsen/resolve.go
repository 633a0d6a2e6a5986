package animeonsen

import (
	"context"
	"fmt"
	"net/http"

	"github.com/samber/mo"
	"github.com/soramod/soramod/log"
	"github.com/soramod/soramod/selector"
	"github.com/soramod/soramod/source"
	"github.com/soramod/soramod/util"
)

// Resolve returns the DASH manifest of an episode. The English subtitle is
// attached only when its endpoint answers with a 2xx status.
func (m *Module) Resolve(ctx context.Context, episodeID string) (mo.Option[source.Resolution], error) {
	ref, err := ParseEpisodeRef(episodeID)
	if err != nil {
		return mo.None[source.Resolution](), err
	}

	token, err := m.token(ctx)
	if err != nil {
		return mo.None[source.Resolution](), fmt.Errorf("resolve %s: %w", episodeID, err)
	}

	candidate := selector.Candidate{
		Stream: source.Stream{
			URL:      m.manifest(ref.ContentID, ref.Episode),
			Quality:  "auto",
			Type:     "dash",
			Provider: ID,
		},
		Headers: map[string]string{"Authorization": "Bearer " + token},
	}

	if track, ok := m.probeSubtitle(ctx, ref); ok {
		candidate.Subtitle = mo.Some(track)
	}

	best, ok := selector.Best([]selector.Candidate{candidate}).Get()
	if !ok {
		return mo.None[source.Resolution](), nil
	}

	return mo.Some(selector.Shape(best, SubtitleFormat)), nil
}

func (m *Module) probeSubtitle(ctx context.Context, ref EpisodeRef) (source.Subtitle, bool) {
	endpoint := m.subtitles(ref.ContentID, ref.Episode)

	resp, err := m.get(ctx, endpoint)
	if err != nil {
		log.Warnf("subtitle probe for %s failed: %v", ref, err)
		return source.Subtitle{}, false
	}

	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Infof("no subtitle for %s: status %d", ref, resp.StatusCode)
		return source.Subtitle{}, false
	}

	return source.Subtitle{URL: endpoint, Language: selector.English, Format: SubtitleFormat}, true
}
