package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/matching"
)

// Query parameter names accepted by POST /v1/matches.
const (
	paramLimit          = "limit"
	paramMinAge         = "minAge"
	paramMaxAge         = "maxAge"
	paramLocationRadius = "locationRadius"
	paramGender         = "genderPreference"
	paramOrientation    = "sexualOrientationPreference"
	paramArchetype      = "archetypePreference"
	paramMinMatchScore  = "minMatchScore"
)

const listSeparator = ","

// ParseMatchQuery turns selection query parameters into filters and a limit.
// A missing limit yields 0, which the selector treats as its default. A
// given limit must be in [1, maxLimit].
func ParseMatchQuery(q url.Values, maxLimit int) (matching.Filters, int, error) {
	var f matching.Filters

	limit, err := intParam(q, paramLimit)
	if err != nil {
		return f, 0, err
	}
	if q.Has(paramLimit) && (limit < 1 || limit > maxLimit) {
		return f, 0, fmt.Errorf("%w: %s=%d must be between 1 and %d", matching.ErrInvalidLimit, paramLimit, limit, maxLimit)
	}

	if f.MinAge, err = intParam(q, paramMinAge); err != nil {
		return f, 0, err
	}
	if f.MaxAge, err = intParam(q, paramMaxAge); err != nil {
		return f, 0, err
	}
	if f.LocationRadius, err = intParam(q, paramLocationRadius); err != nil {
		return f, 0, err
	}
	if f.MinMatchScore, err = intParam(q, paramMinMatchScore); err != nil {
		return f, 0, err
	}
	f.GenderPreference = listParam(q, paramGender)
	f.SexualOrientationPreference = listParam(q, paramOrientation)
	f.ArchetypePreference = listParam(q, paramArchetype)

	if err := f.Validate(); err != nil {
		return f, 0, err
	}
	return f, limit, nil
}

func intParam(q url.Values, name string) (int, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidQuery, name, raw)
	}
	return n, nil
}

// listParam accepts both repeated parameters and comma separated values.
func listParam(q url.Values, name string) []string {
	var out []string
	for _, raw := range q[name] {
		for _, part := range strings.Split(raw, listSeparator) {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
