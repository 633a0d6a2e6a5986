package animeonsen

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/samber/lo"
	"github.com/soramod/soramod/log"
	"github.com/soramod/soramod/source"
)

type content struct {
	ContentID            string `json:"content_id"`
	ContentTitle         string `json:"content_title"`
	ContentTitleEN       string `json:"content_title_en"`
	ContentDescription   string `json:"content_description"`
	ContentDescriptionEN string `json:"content_description_en"`
}

func (c content) title() string {
	return lo.CoalesceOrEmpty(c.ContentTitleEN, c.ContentTitle)
}

type searchResponse struct {
	Result []content `json:"result"`
}

// Search queries the title index.
func (m *Module) Search(ctx context.Context, query string) ([]*source.SearchResult, error) {
	query = strings.TrimSpace(query)
	log.Infof("searching %s for %q", Name, query)

	var response searchResponse
	endpoint := fmt.Sprintf("%s/search/%s", m.api, url.PathEscape(query))
	if err := m.getJSON(ctx, endpoint, "search response", &response); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	if len(response.Result) == 0 {
		return nil, &source.NotFoundError{What: fmt.Sprintf("titles matching %q", query)}
	}

	return lo.Map(response.Result, func(c content, _ int) *source.SearchResult {
		return &source.SearchResult{
			ID:     c.ContentID,
			Title:  c.title(),
			Poster: m.poster(c.ContentID),
			Type:   source.TypeAnime,
		}
	}), nil
}
