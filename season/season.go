// Package season implements the two-state seasonal timer that drives the
// summer/winter shader switch.
package season

// Season is one of the two mutually exclusive timer states.
type Season int

const (
	Summer Season = iota
	Winter
)

// DefaultLength is the season length used when none is configured.
const DefaultLength = 5.0

func (s Season) String() string {
	if s == Winter {
		return "winter"
	}
	return "summer"
}

// Value is the shader value for s: 1 for summer, 0 for winter.
func (s Season) Value() float32 {
	if s == Winter {
		return 0
	}
	return 1
}

// Next returns the opposite season.
func (s Season) Next() Season {
	if s == Winter {
		return Summer
	}
	return Winter
}

// Parse maps a season name back to a Season.
func Parse(name string) (Season, bool) {
	switch name {
	case "summer":
		return Summer, true
	case "winter":
		return Winter, true
	}
	return Summer, false
}
