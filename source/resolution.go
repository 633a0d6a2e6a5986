package source

import (
	"encoding/json"
)

// Resolution is the stream chosen for an episode.
//
// It marshals to the bare URL string when no subtitle is attached and to an
// object with url, subtitles and headers otherwise.
type Resolution struct {
	URL       string
	Quality   string
	Type      string
	Provider  string
	Subtitles []Subtitle
	Headers   map[string]string
}

type resolutionObject struct {
	URL       string            `json:"url"`
	Subtitles []Subtitle        `json:"subtitles"`
	Headers   map[string]string `json:"headers,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (r Resolution) MarshalJSON() ([]byte, error) {
	if len(r.Subtitles) == 0 {
		return json.Marshal(r.URL)
	}

	return json.Marshal(resolutionObject{
		URL:       r.URL,
		Subtitles: r.Subtitles,
		Headers:   r.Headers,
	})
}

// UnmarshalJSON accepts both shapes produced by MarshalJSON.
func (r *Resolution) UnmarshalJSON(data []byte) error {
	var bare string
	if err := json.Unmarshal(data, &bare); err == nil {
		*r = Resolution{URL: bare}
		return nil
	}

	var obj resolutionObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	*r = Resolution{URL: obj.URL, Subtitles: obj.Subtitles, Headers: obj.Headers}
	return nil
}

// Streams converts the resolution into the host stream shape.
func (r Resolution) Streams() *Streams {
	subtitles := r.Subtitles
	if subtitles == nil {
		subtitles = []Subtitle{}
	}

	return &Streams{
		Sources: []Stream{{
			URL:      r.URL,
			Quality:  r.Quality,
			Type:     r.Type,
			Provider: r.Provider,
		}},
		Subtitles: subtitles,
		Headers:   r.Headers,
	}
}
