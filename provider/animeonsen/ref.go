package animeonsen

import (
	"errors"
	"net/url"

	"github.com/soramod/soramod/source"
)

// EpisodeRef identifies an episode of a title.
type EpisodeRef struct {
	ContentID string
	Episode   string
}

// String encodes the reference for the host.
func (r EpisodeRef) String() string {
	return url.Values{
		"content": {r.ContentID},
		"episode": {r.Episode},
	}.Encode()
}

// ParseEpisodeRef decodes a reference produced by EpisodeRef.String.
func ParseEpisodeRef(raw string) (EpisodeRef, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return EpisodeRef{}, &source.ParseError{What: "episode id", Err: err}
	}

	ref := EpisodeRef{
		ContentID: values.Get("content"),
		Episode:   values.Get("episode"),
	}

	if ref.ContentID == "" || ref.Episode == "" {
		return EpisodeRef{}, &source.ParseError{What: "episode id", Err: errors.New("content and episode are required")}
	}

	return ref, nil
}
