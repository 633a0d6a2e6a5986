package inline

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/soramod/soramod/host"
	"github.com/soramod/soramod/source"
)

type (
	AnimePicker    func([]*source.SearchResult) *source.SearchResult
	EpisodesFilter func([]*source.Episode) ([]*source.Episode, error)
)

type Options struct {
	Context context.Context
	Out     io.Writer
	Host    *host.Host
	Module  string
	Query   string
	Json    bool
	// Resolve fetches a stream for every selected episode.
	Resolve        bool
	AnimePicker    mo.Option[AnimePicker]
	EpisodesFilter mo.Option[EpisodesFilter]
}

// ParseAnimePicker builds a picker. Value is used by "exact" and "closest" as
// the title to match and by "index" as the position.
func ParseAnimePicker(kind, value string) (AnimePicker, error) {
	switch kind {
	case "first":
		return func(animes []*source.SearchResult) *source.SearchResult {
			if len(animes) == 0 {
				return nil
			}
			return animes[0]
		}, nil
	case "last":
		return func(animes []*source.SearchResult) *source.SearchResult {
			if len(animes) == 0 {
				return nil
			}
			return animes[len(animes)-1]
		}, nil
	case "exact":
		return func(animes []*source.SearchResult) *source.SearchResult {
			anime, _ := lo.Find(animes, func(a *source.SearchResult) bool {
				return strings.EqualFold(a.Title, value)
			})
			return anime
		}, nil
	case "closest":
		return func(animes []*source.SearchResult) *source.SearchResult {
			if len(animes) == 0 {
				return nil
			}
			target := strings.ToLower(value)
			return lo.MinBy(animes, func(a, b *source.SearchResult) bool {
				return levenshtein.Distance(target, strings.ToLower(a.Title)) <
					levenshtein.Distance(target, strings.ToLower(b.Title))
			})
		}, nil
	case "index":
		idx, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid index: %s", value)
		}
		return func(animes []*source.SearchResult) *source.SearchResult {
			if len(animes) == 0 {
				return nil
			}
			return animes[min(idx, uint64(len(animes)-1))]
		}, nil
	default:
		return nil, fmt.Errorf("unknown picker type: %s", kind)
	}
}

// ParseEpisodesFilter parses a filter description.
// Format: "first", "last", "all", "5", "1-5", "@title@"
func ParseEpisodesFilter(description string) (EpisodesFilter, error) {
	switch description {
	case "first":
		return func(episodes []*source.Episode) ([]*source.Episode, error) {
			if len(episodes) == 0 {
				return episodes, nil
			}
			return episodes[:1], nil
		}, nil
	case "last":
		return func(episodes []*source.Episode) ([]*source.Episode, error) {
			if len(episodes) == 0 {
				return episodes, nil
			}
			return episodes[len(episodes)-1:], nil
		}, nil
	case "all":
		return func(episodes []*source.Episode) ([]*source.Episode, error) {
			return episodes, nil
		}, nil
	}

	// Range: "1-5", both ends inclusive
	if from, to, ok := strings.Cut(description, "-"); ok {
		start, err1 := strconv.ParseUint(from, 10, 16)
		end, err2 := strconv.ParseUint(to, 10, 16)
		if err1 == nil && err2 == nil {
			return func(episodes []*source.Episode) ([]*source.Episode, error) {
				n := uint64(len(episodes))
				start, end := min(start, n), min(end+1, n)
				if start > end {
					return []*source.Episode{}, nil
				}
				return episodes[start:end], nil
			}, nil
		}
	}

	// Fuzzy title match: "@text@"
	if len(description) > 1 && strings.HasPrefix(description, "@") && strings.HasSuffix(description, "@") {
		sub := description[1 : len(description)-1]
		return func(episodes []*source.Episode) ([]*source.Episode, error) {
			return lo.Filter(episodes, func(e *source.Episode, _ int) bool {
				return fuzzy.MatchNormalizedFold(sub, e.Title)
			}), nil
		}, nil
	}

	// Single index: "5"
	if idx, err := strconv.ParseUint(description, 10, 16); err == nil {
		return func(episodes []*source.Episode) ([]*source.Episode, error) {
			if uint64(len(episodes)) <= idx {
				return []*source.Episode{}, nil
			}
			return []*source.Episode{episodes[idx]}, nil
		}, nil
	}

	return nil, fmt.Errorf("invalid episode filter: %s", description)
}
