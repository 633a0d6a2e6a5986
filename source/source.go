// Package source defines the host-facing data model and the contract every module implements.
package source

import (
	"context"

	"github.com/samber/mo"
)

// Module is a single content provider exposed to the host.
type Module interface {
	// ID returns the stable identifier used on the command line and in configuration.
	ID() string

	// Name returns the display name.
	Name() string

	// Search returns the titles matching query. An empty slice is not an error.
	Search(ctx context.Context, query string) ([]*SearchResult, error)

	// Info returns the details of a title, episodes included.
	Info(ctx context.Context, id string) (*Info, error)

	// Episodes returns the episode list of a title ordered by number.
	Episodes(ctx context.Context, id string) ([]*Episode, error)

	// Resolve turns an episode identifier into a playable stream.
	// None means no provider produced a usable source.
	Resolve(ctx context.Context, episodeID string) (mo.Option[Resolution], error)
}

// Pinger is implemented by modules that can check upstream availability.
type Pinger interface {
	Ping(ctx context.Context) error
}
