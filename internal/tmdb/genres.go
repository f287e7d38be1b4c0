package tmdb

import "strings"

// genreNames maps TMDB movie genre IDs to display names.
var genreNames = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
}

// genreIDs is the reverse mapping, keyed by lowercased name.
var genreIDs = func() map[string]int {
	m := make(map[string]int, len(genreNames))
	for id, name := range genreNames {
		m[strings.ToLower(name)] = id
	}
	return m
}()

// GenreName returns the display name for a TMDB genre ID.
func GenreName(id int) (string, bool) {
	name, ok := genreNames[id]
	return name, ok
}

// GenreID returns the TMDB genre ID for a display name. The lookup is case-insensitive.
func GenreID(name string) (int, bool) {
	id, ok := genreIDs[strings.ToLower(name)]
	return id, ok
}

// GenreNames converts genre IDs to display names, dropping unknown IDs.
func GenreNames(ids []int) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := genreNames[id]; ok {
			names = append(names, name)
		}
	}
	return names
}
