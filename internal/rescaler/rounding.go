package rescaler

import (
	"fmt"
	"math"
	"strings"
)

// Rounding selects how a rescaled value at an exact .5 boundary is rounded
type Rounding string

const (
	// RoundHalfAwayFromZero rounds 49.5 to 50 and -49.5 to -50.
	RoundHalfAwayFromZero Rounding = "half-away-from-zero"
	// RoundHalfUp rounds toward positive infinity at .5: 49.5 to 50, -49.5 to -49.
	RoundHalfUp Rounding = "half-up"
)

// Roundings lists the supported modes
var Roundings = []Rounding{RoundHalfAwayFromZero, RoundHalfUp}

// ParseRounding converts a config string into a Rounding
func ParseRounding(s string) (Rounding, error) {
	switch Rounding(strings.ToLower(strings.TrimSpace(s))) {
	case "", RoundHalfAwayFromZero:
		return RoundHalfAwayFromZero, nil
	case RoundHalfUp:
		return RoundHalfUp, nil
	}
	return "", fmt.Errorf("unknown rounding mode %q (must be %s or %s)", s, RoundHalfAwayFromZero, RoundHalfUp)
}

// Apply rounds v to an integral value
func (r Rounding) Apply(v float64) float64 {
	if r == RoundHalfUp {
		return math.Floor(v + 0.5)
	}
	return math.Round(v)
}

// Rescale multiplies v by Factor and rounds the product
func (r Rounding) Rescale(v float64) float64 {
	return r.Apply(v * Factor)
}
