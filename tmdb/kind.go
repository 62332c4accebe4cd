package tmdb

import "fmt"

// Kind tells movies and TV shows apart. It selects the endpoint family of every per-title call.
type Kind int

const (
	Movie Kind = iota
	TV
)

// Kinds lists every known kind.
var Kinds = []Kind{Movie, TV}

// Segment is the path segment used by the catalog API for this kind.
func (k Kind) Segment() string {
	if k == TV {
		return "tv"
	}
	return "movie"
}

func (k Kind) String() string {
	return k.Segment()
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.Segment()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind accepts "movie" or "tv".
func ParseKind(s string) (Kind, error) {
	switch s {
	case "movie":
		return Movie, nil
	case "tv":
		return TV, nil
	default:
		return Movie, fmt.Errorf("unknown kind %q", s)
	}
}
