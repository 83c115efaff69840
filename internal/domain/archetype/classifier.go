package archetype

import (
	"fmt"
	"math"
	"sort"

	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/model"
)

const (
	qualifyingAverage  = 60.0
	highScore          = 70
	consistencySpread  = 30.0
	neutralConsistency = 0.5
	maxArchetypes      = 3

	minScore = 0
	maxScore = 100
)

// Confidence blend weights.
const (
	confHighShare   = 0.4
	confAverage     = 0.4
	confConsistency = 0.2

	sumTopStrength   = 0.3
	sumTopConfidence = 0.4
	sumConsistency   = 0.2
	sumCount         = 0.1
)

// Classifier is safe for concurrent use; it never mutates its table.
type Classifier struct {
	table Table
	keys  []string
}

// NewClassifier validates table and builds a classifier over a private copy.
func NewClassifier(table Table) (*Classifier, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	t := table.Clone()
	return &Classifier{table: t, keys: t.Keys()}, nil
}

// Table returns a copy of the table in use.
func (c *Classifier) Table() Table { return c.table.Clone() }

// Classify ranks the qualifying archetypes for scores. Categories and
// archetypes are visited in sorted order so repeated calls are bit-identical.
func (c *Classifier) Classify(scores model.CategoryScores) (model.Classification, error) {
	cats := sortedCategories(scores)
	for _, cat := range cats {
		if v := scores[cat]; v < minScore || v > maxScore {
			return model.Classification{}, fmt.Errorf("%w: %s=%d", ErrScoreOutOfRange, cat, v)
		}
	}

	results := make([]model.ArchetypeResult, 0, len(c.keys))
	relevant := make([]float64, 0, len(cats))
	for _, key := range c.keys {
		def := c.table.Archetypes[key]

		var weighted, weights float64
		high := 0
		relevant = relevant[:0]
		for _, cat := range cats {
			w, ok := def.Weights[cat]
			if !ok {
				continue
			}
			s := float64(scores[cat])
			weighted += s * w
			weights += w
			relevant = append(relevant, s)
			if scores[cat] >= highScore {
				high++
			}
		}
		if len(relevant) == 0 {
			continue
		}
		avg := weighted / weights
		if avg < qualifyingAverage {
			continue
		}

		conf := confHighShare*float64(high)/float64(len(relevant)) +
			confAverage*avg/maxScore +
			confConsistency*consistency(relevant)
		results = append(results, model.ArchetypeResult{
			Type:        key,
			Name:        def.Name,
			Description: def.Description,
			Strength:    int(math.Round(avg)),
			Confidence:  round3(clamp01(conf)),
		})
	}

	qualifying := len(results)
	sort.SliceStable(results, func(i, j int) bool {
		ri := float64(results[i].Strength) * results[i].Confidence
		rj := float64(results[j].Strength) * results[j].Confidence
		if ri != rj {
			return ri > rj
		}
		return results[i].Type < results[j].Type
	})
	if len(results) > maxArchetypes {
		results = results[:maxArchetypes]
	}

	all := make([]float64, len(cats))
	for i, cat := range cats {
		all[i] = float64(scores[cat])
	}
	return model.Classification{
		Archetypes: results,
		Confidence: summarize(results, qualifying, consistency(all)),
	}, nil
}

func summarize(results []model.ArchetypeResult, qualifying int, overallConsistency float64) model.ConfidenceSummary {
	f := model.ConfidenceFactors{
		Consistency:    round3(overallConsistency),
		ArchetypeCount: qualifying,
		CountFactor:    countFactor(qualifying),
	}
	if len(results) > 0 {
		f.TopStrength = results[0].Strength
		f.TopConfidence = results[0].Confidence
	}

	overall := sumTopStrength*float64(f.TopStrength)/maxScore +
		sumTopConfidence*f.TopConfidence +
		sumConsistency*overallConsistency +
		sumCount*f.CountFactor
	overall = round3(clamp01(overall))

	return model.ConfidenceSummary{
		Overall: overall,
		Level:   level(overall, qualifying),
		Factors: f,
	}
}

func countFactor(n int) float64 {
	switch {
	case n >= 2:
		return 0.9
	case n == 1:
		return 0.7
	default:
		return 0.5
	}
}

func level(overall float64, qualifying int) model.ConfidenceLevel {
	switch {
	case qualifying == 0:
		return model.ConfidenceNone
	case overall >= 0.8:
		return model.ConfidenceVeryHigh
	case overall >= 0.6:
		return model.ConfidenceHigh
	case overall >= 0.4:
		return model.ConfidenceModerate
	default:
		return model.ConfidenceLow
	}
}

// consistency is 1 for identical scores, falling to 0 at a stddev of 30.
// Fewer than two scores give the neutral 0.5.
func consistency(values []float64) float64 {
	if len(values) < 2 {
		return neutralConsistency
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	stddev := math.Sqrt(sq / float64(len(values)))
	return math.Max(0, 1-stddev/consistencySpread)
}

func sortedCategories(scores model.CategoryScores) []string {
	out := make([]string, 0, len(scores))
	for k := range scores {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
