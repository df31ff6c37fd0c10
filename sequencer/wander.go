package sequencer

import "math/rand"

// Cooldown thresholds, in wander steps. An external edit freezes the walk
// for touchFreeze-touchSettle steps; movement resumes below touchSettle with
// a stronger momentum decay until the countdown fully elapses.
const (
	touchFreeze = 200
	touchSettle = 100
)

// WanderingParameter drifts a bounded Parameter with a momentum random walk,
// like an idle hand resting on a knob. It is stepped on a fixed wall-clock
// cadence, independent of the musical clock.
//
// The wanderer always defers to other writers: when it sees a value it did
// not produce, it zeroes its momentum and goes quiet for a cooldown window
// before drifting again.
type WanderingParameter struct {
	param *Parameter
	scale float64
	rng   *rand.Rand

	diff           float64 // momentum
	touchCountdown int
	previous       float64 // last value this wanderer observed
}

// NewWanderingParameter wraps param. scale sets the drift rate as a fraction
// of the parameter's range per step; DefaultWanderScale suits a 10Hz cadence.
func NewWanderingParameter(param *Parameter, scale float64, rng *rand.Rand) *WanderingParameter {
	return &WanderingParameter{
		param:    param,
		scale:    scale,
		rng:      rng,
		previous: param.Value(),
	}
}

// DefaultWanderScale is the drift rate used for every synth knob.
const DefaultWanderScale = 1.0 / 400

// Step advances the walk by one tick.
func (w *WanderingParameter) Step() {
	span := w.param.Range()
	value := w.param.Value()

	if value != w.previous {
		// Someone else moved the knob: drop momentum and back off.
		w.diff = 0
		w.touchCountdown = touchFreeze
		w.previous = value
		return
	}

	if w.touchCountdown > 0 {
		w.touchCountdown--
	}
	if w.touchCountdown >= touchSettle {
		return
	}

	if w.touchCountdown > 0 {
		w.diff *= 0.8 // still settling after an edit
	} else {
		w.diff *= 0.98
	}
	w.diff += (w.rng.Float64() - 0.5) * w.scale * span
	value += w.diff
	w.param.SetValue(value)

	// Soft boundary: inside the top or bottom fifth of the range, push the
	// momentum back toward center. The value may poke past briefly but
	// cannot sit at a rail.
	if value > w.param.Max-0.2*span {
		w.diff -= w.rng.Float64() * 2 * w.scale * span
	} else if value < w.param.Min+0.2*span {
		w.diff += w.rng.Float64() * 2 * w.scale * span
	}

	w.previous = w.param.Value()
}
