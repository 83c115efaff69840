// Package archetype classifies users into viewing personality archetypes from
// weighted behavioral category scores.
package archetype

import (
	"fmt"
	"sort"

	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/model"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/validation"
)

// Weight bounds accepted in a table.
const (
	MinWeight = 0.5
	MaxWeight = 2.0
)

// Definition describes one archetype and how much each category counts toward it.
type Definition struct {
	Name        string             `koanf:"name" yaml:"name" json:"name" validate:"required"`
	Description string             `koanf:"description" yaml:"description" json:"description"`
	Weights     map[string]float64 `koanf:"weights" yaml:"weights" json:"weights" validate:"required,min=1,dive,keys,required,endkeys,gte=0.5,lte=2"`
}

// Table maps an archetype key to its definition. It is read-only once a
// Classifier has been built from it.
type Table struct {
	Archetypes map[string]Definition `koanf:"archetypes" yaml:"archetypes" json:"archetypes" validate:"required,min=1,dive,keys,required,endkeys"`
}

// Validate checks every definition and weight bound.
func (t Table) Validate() error {
	if err := validation.Struct(t); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidWeightTable, err)
	}
	return nil
}

// Keys returns the archetype keys in sorted order.
func (t Table) Keys() []string {
	keys := make([]string, 0, len(t.Archetypes))
	for k := range t.Archetypes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy so callers cannot mutate a classifier's table.
func (t Table) Clone() Table {
	out := Table{Archetypes: make(map[string]Definition, len(t.Archetypes))}
	for k, d := range t.Archetypes {
		w := make(map[string]float64, len(d.Weights))
		for c, v := range d.Weights {
			w[c] = v
		}
		d.Weights = w
		out.Archetypes[k] = d
	}
	return out
}

// Archetype keys of the default table.
const (
	BingeWatcher     = "binge_watcher"
	FilmBuff         = "film_buff"
	SocialStreamer   = "social_streamer"
	GenreExplorer    = "genre_explorer"
	ComfortRewatcher = "comfort_rewatcher"
	Completionist    = "completionist"
	EmotionalViewer  = "emotional_viewer"
)

// DefaultTable is the built-in weight table used when no file is configured.
func DefaultTable() Table {
	return Table{Archetypes: map[string]Definition{
		BingeWatcher: {
			Name:        "The Binge Watcher",
			Description: "Lives for the next episode and clears whole seasons in a weekend.",
			Weights: map[string]float64{
				model.CategoryBingeTendency: 2.0,
				model.CategoryViewingHabits: 1.5,
				model.CategoryEngagement:    1.2,
				model.CategoryRewatching:    0.8,
			},
		},
		FilmBuff: {
			Name:        "The Film Buff",
			Description: "Watches closely, reads the credits and has opinions about cinematography.",
			Weights: map[string]float64{
				model.CategoryCriticalAnalysis: 2.0,
				model.CategoryCollecting:       1.3,
				model.CategoryDiscovery:        1.2,
				model.CategoryGenreDiversity:   1.0,
			},
		},
		SocialStreamer: {
			Name:        "The Social Streamer",
			Description: "Movie night is a group event and the group chat is the second screen.",
			Weights: map[string]float64{
				model.CategorySocialViewing:       2.0,
				model.CategoryEngagement:          1.3,
				model.CategoryEmotionalEngagement: 1.0,
			},
		},
		GenreExplorer: {
			Name:        "The Genre Explorer",
			Description: "Hops from horror to documentaries to anime without blinking.",
			Weights: map[string]float64{
				model.CategoryGenreDiversity:   2.0,
				model.CategoryDiscovery:        1.8,
				model.CategoryCriticalAnalysis: 0.7,
			},
		},
		ComfortRewatcher: {
			Name:        "The Comfort Rewatcher",
			Description: "Knows every line of a favourite show and returns to it like an old friend.",
			Weights: map[string]float64{
				model.CategoryRewatching:          2.0,
				model.CategoryEmotionalEngagement: 1.4,
				model.CategoryBingeTendency:       0.8,
			},
		},
		Completionist: {
			Name:        "The Completionist",
			Description: "Finishes every series started and keeps a meticulous watchlist.",
			Weights: map[string]float64{
				model.CategoryCollecting:    2.0,
				model.CategoryBingeTendency: 1.3,
				model.CategoryEngagement:    1.2,
				model.CategoryViewingHabits: 1.0,
			},
		},
		EmotionalViewer: {
			Name:        "The Emotional Viewer",
			Description: "Feels every plot twist and keeps tissues within reach.",
			Weights: map[string]float64{
				model.CategoryEmotionalEngagement: 2.0,
				model.CategorySocialViewing:       1.0,
				model.CategoryRewatching:          0.9,
			},
		},
	}}
}
