package selector

import (
	"github.com/soramod/soramod/source"
)

// Shape turns the winning candidate into a resolution. The subtitle is
// relabelled and its format forced to the container the module serves.
func Shape(c Candidate, subtitleFormat string) source.Resolution {
	quality := c.Stream.Quality
	if IsMaster(quality) {
		quality = MultiQuality
	}

	r := source.Resolution{
		URL:      c.Stream.URL,
		Quality:  quality,
		Type:     c.Stream.Type,
		Provider: c.Stream.Provider,
		Headers:  c.Headers,
	}

	if subtitle, ok := c.Subtitle.Get(); ok {
		r.Subtitles = []source.Subtitle{{
			URL:      subtitle.URL,
			Language: NormalizeLanguage(subtitle.Language),
			Format:   subtitleFormat,
		}}
	}

	return r
}
