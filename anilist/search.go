package anilist

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/soramod/soramod/log"
	"github.com/soramod/soramod/source"
	"github.com/soramod/soramod/util"
)

type graphqlError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type searchByNameResponse struct {
	Data struct {
		Page struct {
			Media []*Anime `json:"media"`
		} `json:"Page"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

type searchByIDResponse struct {
	Data struct {
		Media *Anime `json:"Media"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

func normalizedName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// GetByID returns the anime with the given Anilist id.
func (c *Client) GetByID(ctx context.Context, id int) (*Anime, error) {
	cacheKey := "id:" + strconv.Itoa(id)
	if cached, ok := c.cached(cacheKey); ok {
		return cached.(*Anime), nil
	}

	log.Infof("Searching anilist for anime with id: %d", id)

	var response searchByIDResponse
	if err := c.query(ctx, searchByIDQuery, map[string]any{"id": id}, &response); err != nil {
		return nil, err
	}

	if len(response.Errors) > 0 {
		if response.Errors[0].Status == http.StatusNotFound {
			return nil, &source.NotFoundError{What: fmt.Sprintf("anilist anime %d", id)}
		}
		return nil, &source.UpstreamError{URL: c.endpoint, Status: response.Errors[0].Status, Err: errors.New(response.Errors[0].Message)}
	}

	anime := response.Data.Media
	if anime == nil {
		return nil, &source.NotFoundError{What: fmt.Sprintf("anilist anime %d", id)}
	}

	log.Infof("Got response from Anilist, found anime with id %d", anime.ID)
	c.store(cacheKey, anime)
	return anime, nil
}

// SearchByName returns the animes matching name, best match first.
func (c *Client) SearchByName(ctx context.Context, name string) ([]*Anime, error) {
	name = normalizedName(name)
	cacheKey := "name:" + name
	if cached, ok := c.cached(cacheKey); ok {
		return cached.([]*Anime), nil
	}

	log.Infof("Searching anilist for anime %s", name)

	var response searchByNameResponse
	err := c.query(ctx, searchByNameQuery, map[string]any{"query": name, "perPage": c.perPage}, &response)
	if err != nil {
		return nil, err
	}

	if len(response.Errors) > 0 {
		return nil, &source.UpstreamError{URL: c.endpoint, Status: response.Errors[0].Status, Err: errors.New(response.Errors[0].Message)}
	}

	animes := response.Data.Page.Media
	log.Infof("Got response from Anilist, found %d results", len(animes))

	c.store(cacheKey, animes)
	for _, anime := range animes {
		c.store("id:"+strconv.Itoa(anime.ID), anime)
	}

	return animes, nil
}

func (c *Client) query(ctx context.Context, query string, variables map[string]any, target any) error {
	body, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	log.Info("Sending request to Anilist")
	resp, err := c.http.Do(req)
	if err != nil {
		log.Error(err)
		return &source.UpstreamError{URL: c.endpoint, Err: err}
	}

	defer util.Ignore(resp.Body.Close)

	// GraphQL errors come back with 4xx codes and a JSON body.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		log.Error("Anilist returned status code " + strconv.Itoa(resp.StatusCode))
		return &source.UpstreamError{URL: c.endpoint, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		log.Error(err)
		return &source.ParseError{What: "anilist response", Err: err}
	}

	return nil
}

func (c *Client) cached(key string) (any, bool) {
	if c.cache == nil {
		return nil, false
	}
	return c.cache.Get(key)
}

func (c *Client) store(key string, value any) {
	if c.cache != nil {
		c.cache.SetDefault(key, value)
	}
}
