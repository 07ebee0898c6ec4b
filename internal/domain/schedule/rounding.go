package schedule

import "math"

// RoundHalfUp rounds x to an integer: a fractional part of 0.5 or more goes
// up (towards +Inf), anything less goes down. Every monetary value in a
// schedule passes through here exactly once, at the point it is computed.
func RoundHalfUp(x float64) int64 {
	f := math.Floor(x)
	if x-f >= 0.5 {
		return int64(math.Ceil(x))
	}
	return int64(f)
}
