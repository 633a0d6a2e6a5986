package host

import (
	"encoding/json"

	"github.com/soramod/soramod/source"
)

// InfoReply is the details of a title or the reason they are missing.
type InfoReply struct {
	*source.Info
	Error string `json:"error,omitempty"`
}

// EpisodesReply is an episode list or the reason it is missing.
type EpisodesReply struct {
	Episodes []*source.Episode `json:"episodes"`
	Error    string            `json:"error,omitempty"`
}

// StreamsReply is the host stream shape. Sources is empty when Error is set.
type StreamsReply struct {
	Sources   []source.Stream   `json:"sources"`
	Subtitles []source.Subtitle `json:"subtitles"`
	Headers   map[string]string `json:"headers,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// ResolveReply holds either a resolution or an error message.
type ResolveReply struct {
	Resolution *source.Resolution
	Error      string
}

// MarshalJSON renders the resolution in its own shape, or {"error": ...}.
func (r ResolveReply) MarshalJSON() ([]byte, error) {
	if r.Resolution == nil {
		return json.Marshal(struct {
			Error string `json:"error"`
		}{r.Error})
	}
	return json.Marshal(r.Resolution)
}
