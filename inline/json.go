package inline

import (
	"github.com/goccy/go-json"
	"github.com/soramod/soramod/source"
)

type Episode struct {
	Episode *source.Episode `json:"episode"`
	// Stream is the bare URL, or an object when subtitles are attached.
	Stream *source.Resolution `json:"stream,omitempty" jsonschema:"oneof_type=string;object"`
}

type Anime struct {
	// Anime is the search result the pipeline picked.
	Anime    *source.SearchResult `json:"anime"`
	Info     *source.Info         `json:"info,omitempty"`
	Episodes []*Episode           `json:"episodes"`
}

type Output struct {
	Query  string   `json:"query"`
	Module string   `json:"module"`
	Result []*Anime `json:"result"`
}

func asJson(result []*Anime, options *Options) ([]byte, error) {
	if result == nil {
		result = []*Anime{}
	}

	return json.Marshal(&Output{
		Query:  options.Query,
		Module: options.Module,
		Result: result,
	})
}
