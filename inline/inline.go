// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/soramod/soramod/log"
	"github.com/soramod/soramod/source"
)

func Run(options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}
	if options.Context == nil {
		options.Context = context.Background()
	}
	if options.Host == nil {
		return errors.New("no host to run against")
	}

	ctx := options.Context

	// Step 1: search the module.
	animes := options.Host.Search(ctx, options.Module, options.Query)

	// Step 2: pick one result if a picker is set.
	selected := animes
	if picker, ok := options.AnimePicker.Get(); ok {
		selected = nil
		if choice := picker(animes); choice != nil {
			selected = []*source.SearchResult{choice}
		}
	}

	// Step 3: attach details and episodes.
	result := make([]*Anime, 0, len(selected))
	for _, anime := range selected {
		prepared, err := prepareAnime(ctx, anime.ID, options)
		if err != nil {
			return err
		}
		prepared.Anime = anime
		result = append(result, prepared)
	}

	if options.Json {
		return writeJson(options.Out, result, options)
	}

	for _, anime := range result {
		for _, ep := range anime.Episodes {
			if ep.Stream != nil {
				fmt.Fprintln(options.Out, ep.Stream.URL)
			} else {
				fmt.Fprintln(options.Out, ep.Episode.ID)
			}
		}
	}

	return nil
}

func prepareAnime(ctx context.Context, id string, options *Options) (*Anime, error) {
	info := options.Host.Info(ctx, options.Module, id)
	if info.Error != "" {
		return nil, fmt.Errorf("info for %s: %s", id, info.Error)
	}

	episodes := info.Episodes
	if len(episodes) == 0 {
		reply := options.Host.Episodes(ctx, options.Module, id)
		if reply.Error != "" {
			return nil, fmt.Errorf("episodes for %s: %s", id, reply.Error)
		}
		episodes = reply.Episodes
	}

	if filter, ok := options.EpisodesFilter.Get(); ok {
		filtered, err := filter(episodes)
		if err != nil {
			return nil, err
		}
		episodes = filtered
	}

	anime := &Anime{Info: info.Info, Episodes: make([]*Episode, 0, len(episodes))}
	for _, ep := range episodes {
		entry := &Episode{Episode: ep}

		if options.Resolve {
			reply := options.Host.Resolve(ctx, options.Module, ep.ID)
			if reply.Error != "" {
				log.Warnf("no stream for episode %v of %s: %s", ep.Number, id, reply.Error)
				continue
			}
			entry.Stream = reply.Resolution
		}

		anime.Episodes = append(anime.Episodes, entry)
	}

	return anime, nil
}

func writeJson(out io.Writer, result []*Anime, options *Options) error {
	data, err := asJson(result, options)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
