// Package types contains the output records shared by the selector and its callers.
package types

import "github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/model"

// Match is one ranked candidate returned by a selection.
type Match struct {
	MatchedUserID string                  `json:"matchedUserId"`
	Rank          int                     `json:"rank"`
	OverallScore  int                     `json:"overallScore"`
	SubScores     model.SubScores         `json:"subScores"`
	Description   string                  `json:"description"`
	Archetypes    []model.ArchetypeResult `json:"archetypes,omitempty"`
}
