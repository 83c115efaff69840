package api

import (
	"net/http"
	"sort"

	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/model"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/taxonomy"
)

type genreEntry struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
	TV   bool   `json:"tv"`
}

type categoryEntry struct {
	Name   string       `json:"name"`
	Genres []genreEntry `json:"genres"`
}

type genresResponse struct {
	Categories []categoryEntry `json:"categories"`
}

// analyzeResponse is SwipeStatistics plus display names for the raw ids in
// genreCounts.
type analyzeResponse struct {
	model.SwipeStatistics
	GenreNames map[int]string `json:"genreNames"`
}

// handleGenres handles GET /v1/genres.
func (s *Server) handleGenres(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, genresResponse{Categories: genreCatalog()})
}

func genreCatalog() []categoryEntry {
	cats := taxonomy.Categories()
	out := make([]categoryEntry, 0, len(cats))
	for _, cat := range cats {
		ids := taxonomy.GenresOf(cat)
		entry := categoryEntry{Name: cat, Genres: make([]genreEntry, 0, len(ids))}
		for _, id := range ids {
			name, _ := taxonomy.GenreName(id)
			entry.Genres = append(entry.Genres, genreEntry{ID: id, Name: name, TV: taxonomy.IsTVGenre(id)})
		}
		out = append(out, entry)
	}
	return out
}

func genreNames(counts map[int]int) map[int]string {
	ids := make([]int, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make(map[int]string, len(ids))
	for _, id := range ids {
		if name, ok := taxonomy.GenreName(id); ok {
			out[id] = name
		}
	}
	return out
}
