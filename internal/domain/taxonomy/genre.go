package taxonomy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// GenreRef is the canonical form of a genre at the engine boundary. Clients
// send genres as a bare number, a numeric string, a name, or an {id, name}
// object; all of them decode into a GenreRef.
type GenreRef struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// UnmarshalJSON accepts every shape clients are known to send.
func (g *GenreRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return fmt.Errorf("%w: empty genre", ErrUnknownGenre)
	}

	switch b[0] {
	case '{':
		var obj struct {
			ID   json.RawMessage `json:"id"`
			Name string          `json:"name"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		ref := GenreRef{Name: strings.TrimSpace(obj.Name)}
		if len(obj.ID) > 0 && !bytes.Equal(obj.ID, []byte("null")) {
			var inner GenreRef
			if err := inner.UnmarshalJSON(obj.ID); err != nil {
				return err
			}
			ref.ID = inner.ID
		}
		*g = ref
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if n, err := strconv.Atoi(s); err == nil {
			*g = GenreRef{ID: n}
		} else {
			*g = GenreRef{Name: s}
		}
	default:
		var n int
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("%w: %s", ErrUnknownGenre, string(b))
		}
		*g = GenreRef{ID: n}
	}
	return nil
}

// Resolve returns the raw id the reference points at. An explicit id wins
// over the name.
func Resolve(ref GenreRef) (int, error) {
	if ref.ID != 0 {
		return ref.ID, nil
	}
	if id, ok := LookupName(ref.Name); ok {
		return id, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownGenre, ref.Name)
}

// ResolveAll resolves a list of references, failing on the first unknown one.
func ResolveAll(refs []GenreRef) ([]int, error) {
	out := make([]int, 0, len(refs))
	for _, r := range refs {
		id, err := Resolve(r)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
