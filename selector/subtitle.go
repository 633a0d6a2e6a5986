package selector

import (
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/soramod/soramod/source"
)

// English is the label given to every English subtitle track.
const English = "English"

var englishSynonyms = []string{"en", "eng", "en-us", "en-gb", "english"}

// NormalizeLanguage maps recognised English codes and unlabelled tracks to
// English and leaves other labels untouched.
func NormalizeLanguage(label string) string {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" || lo.Contains(englishSynonyms, strings.ToLower(trimmed)) {
		return English
	}
	return trimmed
}

// PickSubtitle returns the first track matching the earliest preferred language,
// falling back to the first track.
func PickSubtitle(tracks []source.Subtitle, preferred []string) mo.Option[source.Subtitle] {
	tracks = lo.Filter(tracks, func(t source.Subtitle, _ int) bool {
		return Usable(t.URL)
	})
	if len(tracks) == 0 {
		return mo.None[source.Subtitle]()
	}

	for _, language := range preferred {
		want := NormalizeLanguage(language)
		if track, ok := lo.Find(tracks, func(t source.Subtitle) bool {
			return strings.EqualFold(NormalizeLanguage(t.Language), want)
		}); ok {
			return mo.Some(track)
		}
	}

	return mo.Some(tracks[0])
}
