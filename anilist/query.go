package anilist

import "fmt"

var animeSubquery = `
id
idMal
title {
	romaji
	english
	native
}
description(asHtml: false)
coverImage {
	extraLarge
	large
	medium
}
bannerImage
genres
startDate {
	year
	month
	day
}
endDate {
	year
	month
	day
}
synonyms
status
episodes
averageScore
siteUrl
`

var searchByNameQuery = fmt.Sprintf(`
query ($query: String, $perPage: Int) {
	Page (page: 1, perPage: $perPage) {
		media (search: $query, type: ANIME) {
			%s
		}
	}
}
`, animeSubquery)

var searchByIDQuery = fmt.Sprintf(`
query ($id: Int) {
	Media (id: $id, type: ANIME) {
		%s
	}
}`, animeSubquery)
