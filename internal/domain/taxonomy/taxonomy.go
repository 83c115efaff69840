// Package taxonomy maps raw content-genre ids (TMDB numbering) to the small set
// of human categories the engine reasons about.
package taxonomy

import (
	"sort"
	"strings"
)

// Other is the category of every id missing from the table.
const Other = "Other"

// Category names.
const (
	Action       = "Action"
	Comedy       = "Comedy"
	Drama        = "Drama"
	Romance      = "Romance"
	Horror       = "Horror"
	Thriller     = "Thriller"
	Crime        = "Crime"
	SciFiFantasy = "Sci-Fi & Fantasy"
	Animation    = "Animation"
	Family       = "Family"
	Documentary  = "Documentary"
	RealityTalk  = "Reality & Talk"
	Music        = "Music"
)

// Tables are never written after package init, so concurrent reads are safe.
var (
	categoryIDs = map[string][]int{ //nolint:gochecknoglobals // static lookup table
		Action:       {28, 12, 10759, 10752, 37, 10768},
		Comedy:       {35},
		Drama:        {18, 10766, 36},
		Romance:      {10749},
		Horror:       {27},
		Thriller:     {53, 9648},
		Crime:        {80},
		SciFiFantasy: {878, 14, 10765},
		Animation:    {16},
		Family:       {10751, 10762},
		Documentary:  {99, 10763},
		RealityTalk:  {10764, 10767},
		Music:        {10402},
	}

	tvOnly = map[int]struct{}{ //nolint:gochecknoglobals // static lookup table
		10759: {}, 10762: {}, 10763: {}, 10764: {}, 10765: {}, 10766: {}, 10767: {}, 10768: {},
	}

	genreNames = map[int]string{ //nolint:gochecknoglobals // static lookup table
		28: "Action", 12: "Adventure", 16: "Animation", 35: "Comedy", 80: "Crime",
		99: "Documentary", 18: "Drama", 10751: "Family", 14: "Fantasy", 36: "History",
		27: "Horror", 10402: "Music", 9648: "Mystery", 10749: "Romance",
		878: "Science Fiction", 10770: "TV Movie", 53: "Thriller", 10752: "War", 37: "Western",
		10759: "Action & Adventure", 10762: "Kids", 10763: "News", 10764: "Reality",
		10765: "Sci-Fi & Fantasy", 10766: "Soap", 10767: "Talk", 10768: "War & Politics",
	}

	byID       = invertCategories() //nolint:gochecknoglobals // derived lookup table
	byName     = invertNames()      //nolint:gochecknoglobals // derived lookup table
	categories = sortedCategories() //nolint:gochecknoglobals // derived lookup table
)

func invertCategories() map[int]string {
	out := make(map[int]string)
	for cat, ids := range categoryIDs {
		for _, id := range ids {
			out[id] = cat
		}
	}
	return out
}

func invertNames() map[string]int {
	out := make(map[string]int, len(genreNames))
	for id, name := range genreNames {
		out[normalizeName(name)] = id
	}
	// Common aliases seen in client payloads.
	out["sci-fi"] = 878
	out["scifi"] = 878
	out["science-fiction"] = 878
	return out
}

func sortedCategories() []string {
	out := make([]string, 0, len(categoryIDs))
	for cat := range categoryIDs {
		out = append(out, cat)
	}
	sort.Strings(out)
	return out
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Categorize returns the category of a raw genre id, or Other.
func Categorize(genreID int) string {
	if cat, ok := byID[genreID]; ok {
		return cat
	}
	return Other
}

// IsTVGenre reports whether the id only occurs on TV shows.
func IsTVGenre(genreID int) bool {
	_, ok := tvOnly[genreID]
	return ok
}

// Categories returns every known category in name order. Other is not included.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

// GenreName returns the display name of a raw id.
func GenreName(genreID int) (string, bool) {
	name, ok := genreNames[genreID]
	return name, ok
}

// LookupName finds the raw id for a genre name, case-insensitively.
func LookupName(name string) (int, bool) {
	id, ok := byName[normalizeName(name)]
	return id, ok
}

// GenresOf returns the raw ids mapped to category in ascending order, or nil
// for an unknown category.
func GenresOf(category string) []int {
	ids, ok := categoryIDs[category]
	if !ok {
		return nil
	}
	out := append([]int(nil), ids...)
	sort.Ints(out)
	return out
}
