// Package host is the boundary between modules and their caller. Every
// operation returns a value: failures become an error field and panics are
// recovered.
package host

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/soramod/soramod/log"
	"github.com/soramod/soramod/source"
)

// Host dispatches calls to registered modules.
type Host struct {
	modules map[string]source.Module
}

// New returns a host serving modules. Later modules replace earlier ones with the same id.
func New(modules ...source.Module) *Host {
	h := &Host{modules: make(map[string]source.Module, len(modules))}
	for _, m := range modules {
		h.modules[m.ID()] = m
	}
	return h
}

// Module returns the module registered under id.
func (h *Host) Module(id string) (source.Module, error) {
	m, ok := h.modules[id]
	if !ok {
		return nil, &source.NotFoundError{What: fmt.Sprintf("module %q", id)}
	}
	return m, nil
}

// Modules returns every registered module sorted by id.
func (h *Host) Modules() []source.Module {
	modules := lo.Values(h.modules)
	slices.SortFunc(modules, func(a, b source.Module) int {
		return strings.Compare(a.ID(), b.ID())
	})
	return modules
}

// call runs fn against module, tagging log lines with a call id and turning a panic into an error.
func call[T any](ctx context.Context, h *Host, op, module string, fn func(context.Context, source.Module) (T, error)) (value T, err error) {
	entry := log.WithFields(log.Fields{
		"call":   uuid.NewString(),
		"op":     op,
		"module": module,
	})

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s panicked: %v", op, r)
			entry.Errorf("recovered: %v", r)
		}
	}()

	m, err := h.Module(module)
	if err != nil {
		entry.Warn(err)
		return value, err
	}

	start := time.Now()
	value, err = fn(ctx, m)
	if err != nil {
		entry.WithError(err).Warn("failed")
		return value, err
	}

	entry.WithField("took", time.Since(start).String()).Debug("done")
	return value, nil
}

// Search returns the titles matching query. Failures yield an empty list.
func (h *Host) Search(ctx context.Context, module, query string) []*source.SearchResult {
	results, err := call(ctx, h, "search", module, func(ctx context.Context, m source.Module) ([]*source.SearchResult, error) {
		return m.Search(ctx, query)
	})
	if err != nil || results == nil {
		return []*source.SearchResult{}
	}
	return results
}

// Info returns the details of a title.
func (h *Host) Info(ctx context.Context, module, id string) InfoReply {
	info, err := call(ctx, h, "info", module, func(ctx context.Context, m source.Module) (*source.Info, error) {
		return m.Info(ctx, id)
	})
	if err != nil {
		return InfoReply{Error: source.Describe(err)}
	}
	return InfoReply{Info: info}
}

// Episodes returns the episode list of a title.
func (h *Host) Episodes(ctx context.Context, module, id string) EpisodesReply {
	episodes, err := call(ctx, h, "episodes", module, func(ctx context.Context, m source.Module) ([]*source.Episode, error) {
		return m.Episodes(ctx, id)
	})
	if err != nil {
		return EpisodesReply{Episodes: []*source.Episode{}, Error: source.Describe(err)}
	}
	return EpisodesReply{Episodes: lo.Ternary(episodes == nil, []*source.Episode{}, episodes)}
}

// Resolve returns the chosen stream of an episode in its bare-or-object shape.
func (h *Host) Resolve(ctx context.Context, module, episodeID string) ResolveReply {
	resolution, err := h.resolve(ctx, module, episodeID)
	if err != nil {
		return ResolveReply{Error: source.Describe(err)}
	}
	return ResolveReply{Resolution: &resolution}
}

// Streams returns the chosen stream of an episode in the sources/subtitles shape.
func (h *Host) Streams(ctx context.Context, module, episodeID string) StreamsReply {
	resolution, err := h.resolve(ctx, module, episodeID)
	if err != nil {
		return StreamsReply{
			Sources:   []source.Stream{},
			Subtitles: []source.Subtitle{},
			Error:     source.Describe(err),
		}
	}

	streams := resolution.Streams()
	return StreamsReply{
		Sources:   streams.Sources,
		Subtitles: streams.Subtitles,
		Headers:   streams.Headers,
	}
}

func (h *Host) resolve(ctx context.Context, module, episodeID string) (source.Resolution, error) {
	resolution, err := call(ctx, h, "resolve", module, func(ctx context.Context, m source.Module) (mo.Option[source.Resolution], error) {
		return m.Resolve(ctx, episodeID)
	})
	if err != nil {
		return source.Resolution{}, err
	}

	r, ok := resolution.Get()
	if !ok {
		return source.Resolution{}, source.ErrNoStream
	}
	return r, nil
}
