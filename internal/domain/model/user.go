package model

import "context"

// Location is either a coordinate pair, a region label, or both.
type Location struct {
	Latitude  *float64 `json:"latitude,omitempty" yaml:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty" yaml:"longitude,omitempty"`
	Region    string   `json:"region,omitempty" yaml:"region,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are present.
func (l *Location) HasCoordinates() bool {
	return l != nil && l.Latitude != nil && l.Longitude != nil
}

// Known reports whether the location carries any usable data.
func (l *Location) Known() bool {
	return l.HasCoordinates() || (l != nil && l.Region != "")
}

// Preferences are what a user declared they are looking for.
type Preferences struct {
	MinAge                      int      `json:"minAge,omitempty" yaml:"minAge,omitempty"`
	MaxAge                      int      `json:"maxAge,omitempty" yaml:"maxAge,omitempty"`
	LocationRadius              int      `json:"locationRadius,omitempty" yaml:"locationRadius,omitempty"`
	GenderPreference            []string `json:"genderPreference,omitempty" yaml:"genderPreference,omitempty"`
	SexualOrientationPreference []string `json:"sexualOrientationPreference,omitempty" yaml:"sexualOrientationPreference,omitempty"`
	ArchetypePreference         []string `json:"archetypePreference,omitempty" yaml:"archetypePreference,omitempty"`
}

// User is the input record supplied by the storage collaborators.
type User struct {
	ID                string         `json:"id" yaml:"id"`
	Age               int            `json:"age,omitempty" yaml:"age,omitempty"`
	Gender            string         `json:"gender,omitempty" yaml:"gender,omitempty"`
	SexualOrientation string         `json:"sexualOrientation,omitempty" yaml:"sexualOrientation,omitempty"`
	Location          *Location      `json:"location,omitempty" yaml:"location,omitempty"`
	Preferences       Preferences    `json:"preferences" yaml:"preferences"`
	QuizScores        CategoryScores `json:"quizScores,omitempty" yaml:"quizScores,omitempty"`
	Swipes            []SwipeEvent   `json:"swipes,omitempty" yaml:"swipes,omitempty"`
	StreamingServices []string       `json:"streamingServices,omitempty" yaml:"streamingServices,omitempty"`
	BingeCount        int            `json:"bingeCount,omitempty" yaml:"bingeCount,omitempty"`
	Mood              string         `json:"mood,omitempty" yaml:"mood,omitempty"`
	FavoriteGenres    []int          `json:"favoriteGenres,omitempty" yaml:"favoriteGenres,omitempty"`
}

// ScoringJob is one candidate handed to the scoring workers.
type ScoringJob struct {
	Index     int
	Candidate User
}

// ScoringOutcome is what a worker produced for a ScoringJob. Exactly one of
// Err, Filtered or Result is meaningful.
type ScoringOutcome struct {
	Index       int
	CandidateID string
	Result      CompatibilityResult
	Archetypes  []ArchetypeResult
	Filtered    string
	Err         error
}

// ScoringFunc turns one ScoringJob into its outcome. Implementations must be
// safe for concurrent use.
type ScoringFunc func(ctx context.Context, job ScoringJob) ScoringOutcome
