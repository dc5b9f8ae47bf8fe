// Package utils contains scalar helpers shared by the orientation packages.
package utils

import "math"

const (
	// TwoPi is a full turn in radians.
	TwoPi = 2 * math.Pi
	// HalfPi is a quarter turn in radians.
	HalfPi = math.Pi / 2
	// OneOverTwoPi converts radians to turns.
	OneOverTwoPi = 1 / TwoPi
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// WrapToPi maps an angle in radians into (-pi, pi] by removing whole turns of TwoPi.
// Angles already in range are returned unchanged. The remainder is exact, so the result stays
// in range for any finite input.
func WrapToPi(angle float64) float64 {
	if angle > -math.Pi && angle <= math.Pi {
		return angle
	}
	// math.Remainder lands in [-pi, pi]
	wrapped := math.Remainder(angle, TwoPi)
	if wrapped <= -math.Pi {
		wrapped += TwoPi
	}
	return wrapped
}

// SafeAcos is math.Acos with its argument clamped to [-1, 1], so that a cosine pushed
// just outside the domain by round-off yields 0 or pi instead of NaN.
func SafeAcos(x float64) float64 {
	if x <= -1 {
		return math.Pi
	}
	if x >= 1 {
		return 0
	}
	return math.Acos(x)
}

// SafeAsin is the arcsine counterpart of SafeAcos.
func SafeAsin(x float64) float64 {
	if x <= -1 {
		return -HalfPi
	}
	if x >= 1 {
		return HalfPi
	}
	return math.Asin(x)
}

// Float64AlmostEqual reports whether a and b are within epsilon of each other.
func Float64AlmostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

// Square returns n*n.
func Square(n float64) float64 {
	return n * n
}
