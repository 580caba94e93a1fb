package loop

import "time"

// Policy maps the level reported by the world to a tick rate in frames per
// second. Implementations must be deterministic and return a strictly
// positive rate for every level the world can reach.
type Policy interface {
	Rate(level int) float64
}

// LinearPolicy computes Base*(level*Scale) + Offset.
type LinearPolicy struct {
	Base   float64
	Scale  float64
	Offset float64
}

// ReferencePolicy returns the tuned defaults: level 0 ticks at 0.75 fps and
// each level adds 1.5 fps.
func ReferencePolicy() LinearPolicy {
	return LinearPolicy{Base: 6, Scale: 0.25, Offset: 0.75}
}

// Rate implements Policy. Negative levels are not rejected.
func (p LinearPolicy) Rate(level int) float64 {
	return p.Base*(float64(level)*p.Scale) + p.Offset
}

// FixedPolicy ticks at the same rate regardless of level.
type FixedPolicy struct {
	FPS float64
}

// Rate implements Policy.
func (p FixedPolicy) Rate(int) float64 {
	return p.FPS
}

// Interval converts a tick rate into the delay before the next tick
// (1000/rate milliseconds).
func Interval(rate float64) time.Duration {
	return time.Duration(float64(time.Second) / rate)
}
