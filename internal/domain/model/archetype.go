package model

// CategoryScores maps a behavioral category (viewing_habits, engagement, ...)
// to a score in [0,100].
type CategoryScores map[string]int

// Behavioral categories shared by the quiz, the swipe-derived scores and the
// archetype weight table.
const (
	CategoryViewingHabits       = "viewing_habits"
	CategoryBingeTendency       = "binge_tendency"
	CategoryGenreDiversity      = "genre_diversity"
	CategorySocialViewing       = "social_viewing"
	CategoryCriticalAnalysis    = "critical_analysis"
	CategoryEmotionalEngagement = "emotional_engagement"
	CategoryRewatching          = "rewatching"
	CategoryDiscovery           = "discovery"
	CategoryCollecting          = "collecting"
	CategoryEngagement          = "engagement"
)

// ArchetypeResult is one qualifying archetype for a user.
type ArchetypeResult struct {
	Type        string  `json:"type"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Strength    int     `json:"strength"`
	Confidence  float64 `json:"confidence"`
}

// ConfidenceLevel is the discrete bucket of ConfidenceSummary.Overall.
type ConfidenceLevel string

const (
	ConfidenceNone     ConfidenceLevel = "none"
	ConfidenceLow      ConfidenceLevel = "low"
	ConfidenceModerate ConfidenceLevel = "moderate"
	ConfidenceHigh     ConfidenceLevel = "high"
	ConfidenceVeryHigh ConfidenceLevel = "very_high"
)

// ConfidenceFactors exposes the inputs folded into ConfidenceSummary.Overall.
type ConfidenceFactors struct {
	TopStrength    int     `json:"topStrength"`
	TopConfidence  float64 `json:"topConfidence"`
	Consistency    float64 `json:"consistency"`
	ArchetypeCount int     `json:"archetypeCount"`
	CountFactor    float64 `json:"countFactor"`
}

// ConfidenceSummary describes how reliable a whole classification run is.
type ConfidenceSummary struct {
	Overall float64           `json:"overall"`
	Level   ConfidenceLevel   `json:"level"`
	Factors ConfidenceFactors `json:"factors"`
}

// Classification is the output of one classifier run.
type Classification struct {
	Archetypes []ArchetypeResult `json:"archetypes"`
	Confidence ConfidenceSummary `json:"confidence"`
}

// HasArchetype reports whether key is among the qualifying archetypes.
func (c Classification) HasArchetype(key string) bool {
	for _, a := range c.Archetypes {
		if a.Type == key {
			return true
		}
	}
	return false
}
