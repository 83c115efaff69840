package model

// SubScores holds each capped component of a pair's compatibility.
type SubScores struct {
	Quiz            float64 `json:"quiz"`
	SwipeGenre      float64 `json:"swipeGenre"`
	Binge           float64 `json:"binge"`
	ContentType     float64 `json:"contentType"`
	EmotionalTone   float64 `json:"emotionalTone"`
	Streaming       float64 `json:"streaming"`
	GenrePreference float64 `json:"genrePreference"`
}

// Total sums every component.
func (s SubScores) Total() float64 {
	return s.Quiz + s.SwipeGenre + s.Binge + s.ContentType + s.EmotionalTone + s.Streaming + s.GenrePreference
}

// CompatibilityResult is the scored relationship between two users.
type CompatibilityResult struct {
	OverallScore int       `json:"overallScore"`
	SubScores    SubScores `json:"subScores"`
	Description  string    `json:"description"`
}
