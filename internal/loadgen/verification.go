package loadgen

import (
	"fmt"

	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/types"
)

// VerifyRanking checks one returned ranking: ranks run 1..n, order is score
// descending then id ascending, ids are unique, never the requester, and
// all come from the population.
func VerifyRanking(matches []types.Match, requesterID string, population map[string]struct{}) error {
	seen := make(map[string]struct{}, len(matches))
	for i, m := range matches {
		if m.Rank != i+1 {
			return fmt.Errorf("%w: position %d has rank %d", ErrInvalidRanking, i, m.Rank)
		}
		if m.MatchedUserID == requesterID {
			return fmt.Errorf("%w: requester %s matched itself", ErrInvalidRanking, requesterID)
		}
		if _, ok := population[m.MatchedUserID]; !ok {
			return fmt.Errorf("%w: %s is not in the population", ErrInvalidRanking, m.MatchedUserID)
		}
		if _, dup := seen[m.MatchedUserID]; dup {
			return fmt.Errorf("%w: %s returned twice", ErrInvalidRanking, m.MatchedUserID)
		}
		seen[m.MatchedUserID] = struct{}{}

		if m.OverallScore < 0 || m.OverallScore > 100 {
			return fmt.Errorf("%w: %s scored %d", ErrInvalidRanking, m.MatchedUserID, m.OverallScore)
		}
		if i == 0 {
			continue
		}
		prev := matches[i-1]
		if prev.OverallScore < m.OverallScore ||
			(prev.OverallScore == m.OverallScore && prev.MatchedUserID > m.MatchedUserID) {
			return fmt.Errorf("%w: %s ranked before %s", ErrInvalidRanking, prev.MatchedUserID, m.MatchedUserID)
		}
	}
	return nil
}

// SameRanking reports whether two rankings list the same candidates with the
// same scores in the same order.
func SameRanking(a, b []types.Match) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].MatchedUserID != b[i].MatchedUserID ||
			a[i].OverallScore != b[i].OverallScore ||
			a[i].SubScores != b[i].SubScores {
			return false
		}
	}
	return true
}
