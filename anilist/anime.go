// Package anilist provides a client for the Anilist GraphQL API.
package anilist

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Date is a possibly partial calendar date. Unknown parts are zero.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// IsZero reports whether the year is unknown.
func (d Date) IsZero() bool {
	return d.Year == 0
}

// Format renders Y-M-D, substituting month and day when they are unknown.
func (d Date) Format(month, day int) string {
	return fmt.Sprintf("%d-%d-%d", d.Year, lo.CoalesceOrEmpty(d.Month, month), lo.CoalesceOrEmpty(d.Day, day))
}

type Anime struct {
	// ID is the unique identifier for the anime on Anilist.
	ID int `json:"id" jsonschema:"description=ID of the anime on Anilist."`
	// IDMal is the id of the anime on MyAnimeList.
	IDMal int `json:"idMal" jsonschema:"description=ID of the anime on MyAnimeList."`
	Title struct {
		Romaji  string `json:"romaji" jsonschema:"description=Romanized title of the anime."`
		English string `json:"english" jsonschema:"description=English title of the anime."`
		Native  string `json:"native" jsonschema:"description=Native title of the anime. Usually in kanji."`
	} `json:"title"`
	// Description is in HTML.
	Description string `json:"description" jsonschema:"description=Description of the anime in html format."`
	CoverImage  struct {
		ExtraLarge string `json:"extraLarge"`
		Large      string `json:"large"`
		Medium     string `json:"medium"`
	} `json:"coverImage"`
	BannerImage  string   `json:"bannerImage"`
	Genres       []string `json:"genres"`
	StartDate    Date     `json:"startDate" jsonschema:"description=Date the anime started airing."`
	EndDate      Date     `json:"endDate" jsonschema:"description=Date the anime finished airing."`
	Synonyms     []string `json:"synonyms" jsonschema:"description=Alternative titles."`
	Status       string   `json:"status" jsonschema:"enum=FINISHED,enum=RELEASING,enum=NOT_YET_RELEASED,enum=CANCELLED,enum=HIATUS"`
	Episodes     int      `json:"episodes"`
	AverageScore int      `json:"averageScore"`
	SiteURL      string   `json:"siteUrl"`
}

// Name prefers the English title and falls back to Romaji, then Native.
func (a *Anime) Name() string {
	return lo.Ternary(a.Title.English != "", a.Title.English,
		lo.Ternary(a.Title.Romaji != "", a.Title.Romaji, a.Title.Native))
}

// Cover returns the largest cover image available.
func (a *Anime) Cover() string {
	return lo.Ternary(a.CoverImage.ExtraLarge != "", a.CoverImage.ExtraLarge,
		lo.Ternary(a.CoverImage.Large != "", a.CoverImage.Large, a.CoverImage.Medium))
}

// Aliases lists every known title once, in English, Romaji, Native, synonyms order.
func (a *Anime) Aliases() []string {
	titles := append([]string{a.Title.English, a.Title.Romaji, a.Title.Native}, a.Synonyms...)
	return lo.Uniq(lo.Compact(lo.Map(titles, func(s string, _ int) string {
		return strings.TrimSpace(s)
	})))
}

// Airdate describes the airing period, e.g. "Aired: 2023-4-1 to Ongoing".
func (a *Anime) Airdate() string {
	if a.StartDate.IsZero() {
		return "Aired: Unknown"
	}

	end := "Ongoing"
	if !a.EndDate.IsZero() {
		end = a.EndDate.Format(12, 31)
	}

	return fmt.Sprintf("Aired: %s to %s", a.StartDate.Format(1, 1), end)
}
