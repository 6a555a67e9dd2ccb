package domain

import (
	"encoding"
	"fmt"
)

// Rating represents the user's assessment of recall quality.
type Rating int

const (
	Hard Rating = iota + 1 // Recalled with difficulty, or not at all.
	Good                   // Recalled with some effort.
	Easy                   // Recalled effortlessly.
)

var (
	ratingNames = [...]string{Hard: "hard", Good: "good", Easy: "easy"}

	ratingByName = map[string]Rating{
		"hard": Hard,
		"good": Good,
		"easy": Easy,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Rating(0)
	_ encoding.TextMarshaler   = Rating(0)
	_ encoding.TextUnmarshaler = (*Rating)(nil)
)

// Ratings lists all valid ratings in ascending order.
func Ratings() [3]Rating {
	return [3]Rating{Hard, Good, Easy}
}

// IsValid reports whether r is a valid rating.
func (r Rating) IsValid() bool {
	return r >= Hard && r <= Easy
}

// String returns the lowercase name of the rating.
// For invalid values it returns "Rating(n)".
func (r Rating) String() string {
	if r.IsValid() {
		return ratingNames[r]
	}
	return fmt.Sprintf("Rating(%d)", int(r))
}

// ParseRating maps a lowercase rating name to its value.
func ParseRating(s string) (Rating, error) {
	v, ok := ratingByName[s]
	if !ok {
		return 0, fmt.Errorf("invalid rating: %q", s)
	}
	return v, nil
}

// MarshalText implements encoding.TextMarshaler.
func (r Rating) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("invalid rating: %d", int(r))
	}
	return []byte(ratingNames[r]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rating) UnmarshalText(text []byte) error {
	v, err := ParseRating(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
