package matching

import (
	"fmt"

	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/model"
)

// Filter reasons reported in SelectionStats.Filtered.
const (
	ReasonAge         = "age"
	ReasonDistance    = "distance"
	ReasonGender      = "gender"
	ReasonOrientation = "orientation"
	ReasonArchetype   = "archetype"
	ReasonMinScore    = "min_score"
)

// Skip reasons reported in SelectionStats.Skipped.
const (
	SkipMissingID    = "missing_id"
	SkipDuplicateID  = "duplicate_id"
	SkipScoringError = "scoring_error"
	SkipMalformed    = "malformed_record"
)

// Filters are the hard constraints of a selection. Zero values and empty
// sets disable the corresponding filter. All active filters must pass.
type Filters struct {
	MinAge                      int      `json:"minAge,omitempty"`
	MaxAge                      int      `json:"maxAge,omitempty"`
	LocationRadius              int      `json:"locationRadius,omitempty"`
	GenderPreference            []string `json:"genderPreference,omitempty"`
	SexualOrientationPreference []string `json:"sexualOrientationPreference,omitempty"`
	ArchetypePreference         []string `json:"archetypePreference,omitempty"`
	MinMatchScore               int      `json:"minMatchScore,omitempty"`
}

// FiltersFromPreferences builds the filters a user's declared preferences imply.
func FiltersFromPreferences(p model.Preferences) Filters {
	return Filters{
		MinAge:                      p.MinAge,
		MaxAge:                      p.MaxAge,
		LocationRadius:              p.LocationRadius,
		GenderPreference:            append([]string(nil), p.GenderPreference...),
		SexualOrientationPreference: append([]string(nil), p.SexualOrientationPreference...),
		ArchetypePreference:         append([]string(nil), p.ArchetypePreference...),
	}
}

// Or returns f with every unset field taken from fallback. The age bounds
// are one range: fallback supplies them only when f sets neither.
func (f Filters) Or(fallback Filters) Filters {
	out := f
	if out.MinAge == 0 && out.MaxAge == 0 {
		out.MinAge, out.MaxAge = fallback.MinAge, fallback.MaxAge
	}
	if out.LocationRadius == 0 {
		out.LocationRadius = fallback.LocationRadius
	}
	if len(out.GenderPreference) == 0 {
		out.GenderPreference = fallback.GenderPreference
	}
	if len(out.SexualOrientationPreference) == 0 {
		out.SexualOrientationPreference = fallback.SexualOrientationPreference
	}
	if len(out.ArchetypePreference) == 0 {
		out.ArchetypePreference = fallback.ArchetypePreference
	}
	if out.MinMatchScore == 0 {
		out.MinMatchScore = fallback.MinMatchScore
	}
	return out
}

// Validate rejects filters that can never be satisfied or are out of range.
func (f Filters) Validate() error {
	switch {
	case f.MinAge < 0 || f.MaxAge < 0:
		return fmt.Errorf("%w: age bounds must not be negative", ErrInvalidFilter)
	case f.MaxAge > 0 && f.MinAge > f.MaxAge:
		return fmt.Errorf("%w: minAge %d exceeds maxAge %d", ErrInvalidFilter, f.MinAge, f.MaxAge)
	case f.LocationRadius < 0:
		return fmt.Errorf("%w: locationRadius must not be negative", ErrInvalidFilter)
	case f.MinMatchScore < 0 || f.MinMatchScore > 100:
		return fmt.Errorf("%w: minMatchScore %d outside [0,100]", ErrInvalidFilter, f.MinMatchScore)
	}
	return nil
}

// compiled is Filters prepared for repeated per-candidate checks.
type compiled struct {
	Filters
	origin      *model.Location
	genders     map[string]struct{}
	orientation map[string]struct{}
	archetypes  map[string]struct{}
}

func compile(f Filters, requester model.User) compiled {
	c := compiled{
		Filters:     f,
		genders:     set(f.GenderPreference),
		orientation: set(f.SexualOrientationPreference),
		archetypes:  set(f.ArchetypePreference),
	}
	if requester.Location.Known() {
		c.origin = requester.Location
	}
	return c
}

func set(values []string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v = normalize(v); v != "" {
			out[v] = struct{}{}
		}
	}
	return out
}

// admit runs the demographic filters in order and returns the first failing
// reason, or "" when the candidate passes.
func (c compiled) admit(u model.User) string {
	if c.MinAge > 0 || c.MaxAge > 0 {
		if u.Age <= 0 || u.Age < c.MinAge || (c.MaxAge > 0 && u.Age > c.MaxAge) {
			return ReasonAge
		}
	}
	if c.LocationRadius > 0 && c.origin != nil {
		if !withinRadius(c.origin, u.Location, c.LocationRadius) {
			return ReasonDistance
		}
	}
	if len(c.genders) > 0 {
		if _, ok := c.genders[normalize(u.Gender)]; !ok {
			return ReasonGender
		}
	}
	if len(c.orientation) > 0 {
		if _, ok := c.orientation[normalize(u.SexualOrientation)]; !ok {
			return ReasonOrientation
		}
	}
	return ""
}

// admitArchetypes reports whether any qualifying archetype is preferred.
func (c compiled) admitArchetypes(cls model.Classification) bool {
	if len(c.archetypes) == 0 {
		return true
	}
	for _, a := range cls.Archetypes {
		if _, ok := c.archetypes[normalize(a.Type)]; ok {
			return true
		}
	}
	return false
}
