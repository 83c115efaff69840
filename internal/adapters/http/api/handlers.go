package api

import (
	"net/http"

	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/matching"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/model"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/types"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/pkg/logger"
)

// matchesResponse is the body of POST /v1/matches.
type matchesResponse struct {
	Matches   []types.Match           `json:"matches"`
	Requester model.Classification    `json:"requester"`
	Stats     matching.SelectionStats `json:"stats"`
}

// handleAnalyzeSwipes handles POST /v1/swipes/analyze.
func (s *Server) handleAnalyzeSwipes(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	events, err := toEvents(req.Events)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	stats, err := s.deps.AnalyzeSwipes(r.Context(), events)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analyzeResponse{SwipeStatistics: stats, GenreNames: genreNames(stats.GenreCounts)})
}

// handleClassify handles POST /v1/archetypes/classify.
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	events, err := toEvents(req.Events)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	cls, err := s.deps.Classify(r.Context(), req.Scores, events)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cls)
}

// handleCompatibility handles POST /v1/compatibility.
func (s *Server) handleCompatibility(w http.ResponseWriter, r *http.Request) {
	var req compatibilityRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	a, err := req.A.toModel()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	b, err := req.B.toModel()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := s.deps.Compatibility(r.Context(), a, b)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleMatches handles POST /v1/matches. Filters come from the query
// string; the requester and the candidate population from the body.
func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	filters, limit, err := ParseMatchQuery(r.URL.Query(), s.maxLimit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req matchRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	requester, err := req.Requester.toModel()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	population, rejected := s.candidates(r, req.Candidates)

	ev, err := s.deps.FindMatches(r.Context(), matching.Request{
		Requester:  requester,
		Population: population,
		Filters:    filters,
		Limit:      limit,
		Rejected:   rejected,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, matchesResponse{
		Matches:   ev.Matches,
		Requester: ev.Requester,
		Stats:     ev.Stats,
	})
}

// candidates converts the population, dropping records that fail validation
// or genre/action resolution. It returns the survivors and the drop count.
func (s *Server) candidates(r *http.Request, in []userRequest) ([]model.User, int) {
	out := make([]model.User, 0, len(in))
	rejected := 0
	for i := range in {
		u, err := in[i].toCandidate()
		if err != nil {
			rejected++
			s.logger.Warn(r.Context(), "dropping malformed candidate",
				logger.Int("position", i),
				logger.String("candidate_id", in[i].ID),
				logger.Error(err),
			)
			continue
		}
		out = append(out, u)
	}
	return out, rejected
}
