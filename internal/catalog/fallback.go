package catalog

import "github.com/mollywood/stremio-catalog/internal/tmdb"

// fallbackMovies is the built-in placeholder set served when every strategy
// fails and the fallback flag is on. Kept deliberately tiny; it exists so a
// demo deployment shows something rather than a bare error.
func fallbackMovies() []tmdb.Movie {
	return []tmdb.Movie{
		{
			ID:               1010581,
			Title:            "Manjummel Boys",
			OriginalLanguage: tmdb.TargetLanguage,
			Overview:         "A group of friends from Manjummel get caught in a life-or-death situation inside the Guna Caves.",
			ReleaseDate:      "2024-02-22",
			GenreIDs:         []int{53, 18},
			VoteAverage:      7.5,
			VoteCount:        215,
		},
		{
			ID:               926393,
			Title:            "2018",
			OriginalLanguage: tmdb.TargetLanguage,
			Overview:         "Ordinary people across Kerala unite to survive the devastating floods of 2018.",
			ReleaseDate:      "2023-05-05",
			GenreIDs:         []int{18, 53},
			VoteAverage:      7.2,
			VoteCount:        180,
		},
		{
			ID:               762444,
			Title:            "Drishyam 2",
			OriginalLanguage: tmdb.TargetLanguage,
			Overview:         "Georgekutty's family faces the ghosts of their past as the police reopen a closed case.",
			ReleaseDate:      "2021-02-19",
			GenreIDs:         []int{18, 80, 53},
			VoteAverage:      7.8,
			VoteCount:        420,
		},
	}
}
