package source

// Media type reported for every title.
const TypeAnime = "anime"

// SearchResult is one entry of a search response.
type SearchResult struct {
	ID     string `json:"id" jsonschema:"description=Module-specific identifier of the title."`
	Title  string `json:"title"`
	Poster string `json:"poster"`
	Type   string `json:"type" jsonschema:"enum=anime"`
}

// Info describes a title.
type Info struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Poster      string     `json:"poster"`
	Banner      string     `json:"banner,omitempty"`
	Description string     `json:"description"`
	Aliases     []string   `json:"aliases,omitempty"`
	Airdate     string     `json:"airdate,omitempty"`
	Type        string     `json:"type"`
	Episodes    []*Episode `json:"episodes"`
}

// Episode is one playable unit of a title.
type Episode struct {
	// ID is an opaque reference produced by the module; pass it back to Resolve unchanged.
	ID        string  `json:"id"`
	Number    float64 `json:"number"`
	Title     string  `json:"title"`
	Thumbnail string  `json:"thumbnail,omitempty"`
}

// Stream is a playable source offered by a provider.
type Stream struct {
	URL string `json:"url"`
	// Quality is free-form: "1080p", "720", "auto" or the multi-quality sentinel "master".
	Quality  string `json:"quality"`
	Type     string `json:"type,omitempty" jsonschema:"enum=hls,enum=dash,enum=mp4"`
	Provider string `json:"provider,omitempty"`
}

// Subtitle is a subtitle track.
type Subtitle struct {
	URL      string `json:"url"`
	Language string `json:"language"`
	Format   string `json:"format"`
}

// Streams is the host shape of a stream lookup.
type Streams struct {
	Sources   []Stream          `json:"sources"`
	Subtitles []Subtitle        `json:"subtitles"`
	Headers   map[string]string `json:"headers,omitempty"`
}
