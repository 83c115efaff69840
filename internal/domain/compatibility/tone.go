package compatibility

import (
	"math"
	"strings"

	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/taxonomy"
)

// tone is a distribution over light, intense and thoughtful storytelling.
type tone [3]float64

const (
	light = iota
	intense
	thoughtful
)

var moodTones = map[string]tone{ //nolint:gochecknoglobals // static lookup table
	"light":       {1, 0, 0},
	"happy":       {1, 0, 0},
	"funny":       {1, 0, 0},
	"cozy":        {1, 0, 0},
	"relaxed":     {0.8, 0, 0.2},
	"romantic":    {0.5, 0, 0.5},
	"adventurous": {0.3, 0.7, 0},
	"intense":     {0, 1, 0},
	"thrilling":   {0, 1, 0},
	"dark":        {0, 0.6, 0.4},
	"thoughtful":  {0, 0, 1},
	"reflective":  {0, 0, 1},
	"curious":     {0.2, 0, 0.8},
	"emotional":   {0, 0.2, 0.8},
}

var categoryTones = map[string]int{ //nolint:gochecknoglobals // static lookup table
	taxonomy.Comedy:       light,
	taxonomy.Animation:    light,
	taxonomy.Family:       light,
	taxonomy.Romance:      light,
	taxonomy.Music:        light,
	taxonomy.RealityTalk:  light,
	taxonomy.Action:       intense,
	taxonomy.Horror:       intense,
	taxonomy.Thriller:     intense,
	taxonomy.Crime:        intense,
	taxonomy.SciFiFantasy: intense,
	taxonomy.Drama:        thoughtful,
	taxonomy.Documentary:  thoughtful,
}

// toneOf prefers the declared mood and falls back to liked categories.
func toneOf(p Profile) (tone, bool) {
	if t, ok := moodTones[strings.ToLower(strings.TrimSpace(p.Mood))]; ok {
		return t, true
	}
	if !p.Swipes.HasLikes() {
		return tone{}, false
	}

	var t tone
	var total float64
	for _, g := range p.Swipes.TopGenres {
		idx, ok := categoryTones[g.Genre]
		if !ok {
			continue
		}
		t[idx] += float64(g.Count)
		total += float64(g.Count)
	}
	if total == 0 {
		return tone{}, false
	}
	for i := range t {
		t[i] /= total
	}
	return t, true
}

// distance is the total variation distance, in [0,1].
func (t tone) distance(o tone) float64 {
	var d float64
	for i := range t {
		d += math.Abs(t[i] - o[i])
	}
	return d / 2
}
