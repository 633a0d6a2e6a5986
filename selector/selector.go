// Package selector ranks candidate streams and shapes the winner for the host.
package selector

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/soramod/soramod/source"
)

// Master is the quality label of a multi-quality playlist.
const Master = "master"

// MultiQuality is the quality reported for a master playlist.
const MultiQuality = "multi-quality"

// Candidate is one provider's best offer for an episode.
type Candidate struct {
	Stream   source.Stream
	Subtitle mo.Option[source.Subtitle]
	Headers  map[string]string
}

// IsMaster reports whether label is the multi-quality sentinel.
func IsMaster(label string) bool {
	return strings.EqualFold(strings.TrimSpace(label), Master)
}

// Rank returns the numeric quality of label, ignoring every non-digit.
// Labels without digits, or too long to parse, rank 0.
func Rank(label string) int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, label)

	rank, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return rank
}

// Usable reports whether raw is an absolute http or https URL.
func Usable(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// BestStream picks a provider's preferred stream: the first master playlist,
// otherwise the highest rank with ties kept in input order.
func BestStream(streams []source.Stream) mo.Option[source.Stream] {
	usable := lo.Filter(streams, func(s source.Stream, _ int) bool {
		return Usable(s.URL)
	})
	if len(usable) == 0 {
		return mo.None[source.Stream]()
	}

	if master, ok := lo.Find(usable, func(s source.Stream) bool { return IsMaster(s.Quality) }); ok {
		return mo.Some(master)
	}

	return mo.Some(highest(usable, func(s source.Stream) string { return s.Quality }))
}

// Best picks the winning candidate:
//  1. master with a subtitle
//  2. master
//  3. highest numeric rank
//
// Ties keep input order. Candidates without a usable URL are ignored.
func Best(candidates []Candidate) mo.Option[Candidate] {
	usable := lo.Filter(candidates, func(c Candidate, _ int) bool {
		return Usable(c.Stream.URL)
	})
	if len(usable) == 0 {
		return mo.None[Candidate]()
	}

	if c, ok := lo.Find(usable, func(c Candidate) bool {
		return IsMaster(c.Stream.Quality) && c.Subtitle.IsPresent()
	}); ok {
		return mo.Some(c)
	}

	if c, ok := lo.Find(usable, func(c Candidate) bool { return IsMaster(c.Stream.Quality) }); ok {
		return mo.Some(c)
	}

	return mo.Some(highest(usable, func(c Candidate) string { return c.Stream.Quality }))
}

func highest[T any](items []T, quality func(T) string) T {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return Rank(quality(b)) - Rank(quality(a))
	})
	return sorted[0]
}
