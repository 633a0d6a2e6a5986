package gojo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/soramod/soramod/anilist"
	"github.com/soramod/soramod/log"
	"github.com/soramod/soramod/source"
)

// HostDownPoster is shown on the placeholder result returned while a required host is down.
const HostDownPoster = "https://raw.githubusercontent.com/bmob222/Sora-Modules/main/sora_host_down.png"

// unavailablePrefix marks placeholder ids that carry an error message instead of an Anilist id.
const unavailablePrefix = "#"

func unavailableID(message string) string {
	return unavailablePrefix + url.QueryEscape(message)
}

func unavailableMessage(id string) (string, bool) {
	if !strings.HasPrefix(id, unavailablePrefix) {
		return "", false
	}

	message, err := url.QueryUnescape(strings.TrimPrefix(id, unavailablePrefix))
	if err != nil {
		message = strings.TrimPrefix(id, unavailablePrefix)
	}
	return message, true
}

// Search looks the query up on Anilist. When a required host is down the
// result is a single placeholder whose id carries the reason.
func (m *Module) Search(ctx context.Context, query string) ([]*source.SearchResult, error) {
	if err := m.Ping(ctx); err != nil {
		log.Warnf("%s is unavailable: %v", Name, err)
		host := failedHost(err)
		return []*source.SearchResult{{
			ID:     unavailableID(fmt.Sprintf("Required source %s is currently down.", host)),
			Title:  fmt.Sprintf("Error cannot access %s, server down. Please try again later.", host),
			Poster: HostDownPoster,
			Type:   source.TypeAnime,
		}}, nil
	}

	animes, err := m.anilist.SearchByName(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	if len(animes) == 0 {
		return nil, &source.NotFoundError{What: fmt.Sprintf("titles matching %q", query)}
	}

	return lo.Map(animes, func(a *anilist.Anime, _ int) *source.SearchResult {
		return &source.SearchResult{
			ID:     strconv.Itoa(a.ID),
			Title:  a.Name(),
			Poster: a.Cover(),
			Type:   source.TypeAnime,
		}
	}), nil
}

func failedHost(err error) string {
	var upstream *source.UpstreamError
	if errors.As(err, &upstream) {
		return upstream.URL
	}
	return "one or more servers"
}
