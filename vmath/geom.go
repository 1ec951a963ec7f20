package vmath

import (
	"math"
)

// Distance returns the Euclidean distance between two points
func Distance(ax, ay, bx, by float64) float64 {
	dx := ax - bx
	dy := ay - by
	return math.Sqrt(dx*dx + dy*dy)
}

// Approach moves current toward target by rate of the remaining gap
// Exponential decay: never overshoots for rate in (0, 1]
func Approach(current, target, rate float64) float64 {
	return current + (target-current)*rate
}

// Clamp01 limits v to [0, 1]
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NormalizeAngle wraps an angle in radians into [0, 2π)
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// AngleInSweep reports whether angle a lies on the clockwise (y-down) sweep from start to end
// A sweep of 2π or more covers the full circle
func AngleInSweep(a, start, end float64) bool {
	sweep := end - start
	if sweep >= 2*math.Pi || sweep <= -2*math.Pi {
		return true
	}
	s := NormalizeAngle(start)
	e := NormalizeAngle(end)
	a = NormalizeAngle(a)
	if s == e {
		return false
	}
	if s < e {
		return a >= s && a <= e
	}
	return a >= s || a <= e
}
