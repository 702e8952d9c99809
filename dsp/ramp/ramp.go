package ramp

import "math"

// Mode selects how a [Ramp] moves toward its target.
type Mode int

const (
	// Linear reaches the target in a fixed number of samples with a
	// constant additive step.
	Linear Mode = iota
	// Multiplicative reaches the target in a fixed number of samples with a
	// constant multiplicative step. Current and target must share a sign
	// and be non-zero.
	Multiplicative
	// FixedLinear moves by a constant amount per sample, independent of the
	// distance to the target, and stops exactly at the target.
	FixedLinear
	// FixedMultiplicative moves by a constant ratio per sample (one doubling
	// per ramp length) and stops exactly at the target.
	FixedMultiplicative
)

const settleThreshold = 1e-10

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Linear:
		return "linear"
	case Multiplicative:
		return "multiplicative"
	case FixedLinear:
		return "fixed-linear"
	case FixedMultiplicative:
		return "fixed-multiplicative"
	default:
		return "unknown"
	}
}

// Ramp produces a sample-accurate parameter trajectory.
//
// A Ramp is owned by the audio thread. Control-thread values reach it
// through the owning processor's dirty flags.
type Ramp struct {
	mode Mode

	current float64
	target  float64
	inc     float64

	upInc   float64
	downInc float64
	rising  bool

	maxCount int
	count    int
}

// New returns a ramp resting at initial.
func New(mode Mode, initial float64) *Ramp {
	r := &Ramp{mode: mode, maxCount: 1}
	r.SetCurrentAndTarget(initial)
	return r
}

// Mode returns the interpolation mode.
func (r *Ramp) Mode() Mode { return r.mode }

// Current returns the most recent value.
func (r *Ramp) Current() float64 { return r.current }

// Target returns the value the ramp is heading to.
func (r *Ramp) Target() float64 { return r.target }

// IsSmoothing reports whether a ramp is in progress.
func (r *Ramp) IsSmoothing() bool { return r.count > 0 }

// Prepare configures the ramp for sampleRate. For the free-running modes
// rampSeconds is the time any ramp takes. For the fixed-rate modes it is the
// time needed to move by one unit (linear) or one doubling (multiplicative).
// Any ramp in progress is completed immediately.
func (r *Ramp) Prepare(sampleRate, rampSeconds float64) {
	steps := sampleRate * rampSeconds

	switch r.mode {
	case Linear, Multiplicative:
		r.maxCount = max(int(steps), 1)
	case FixedLinear:
		r.upInc = 1 / math.Max(steps, 1)
		r.downInc = -r.upInc
	case FixedMultiplicative:
		r.upInc = math.Pow(2, 1/math.Max(steps, 1))
		r.downInc = 1 / r.upInc
	}

	r.SetCurrentAndTarget(r.target)
}

// SetTarget starts a ramp from the current value toward v. It does nothing
// when the ramp already sits within 1e-10 of v.
func (r *Ramp) SetTarget(v float64) {
	r.target = v
	if math.Abs(r.current-v) < settleThreshold {
		r.count = 0
		return
	}

	switch r.mode {
	case Linear:
		r.inc = (v - r.current) / float64(r.maxCount)
		r.count = r.maxCount
	case Multiplicative:
		r.inc = math.Exp(math.Log(v/r.current) / float64(r.maxCount))
		r.count = r.maxCount
	case FixedLinear, FixedMultiplicative:
		r.rising = v > r.current
		r.count = 1
	}
}

// SetCurrentAndTarget jumps to v without ramping.
func (r *Ramp) SetCurrentAndTarget(v float64) {
	r.current = v
	r.target = v
	r.count = 0
}

// Next advances one sample and returns the new current value.
func (r *Ramp) Next() float64 {
	if r.count == 0 {
		return r.current
	}

	switch r.mode {
	case Linear:
		r.current += r.inc
		r.countDown()
	case Multiplicative:
		r.current *= r.inc
		r.countDown()
	case FixedLinear:
		if r.rising {
			r.current += r.upInc
		} else {
			r.current += r.downInc
		}
		r.clampToTarget()
	case FixedMultiplicative:
		if r.rising {
			r.current *= r.upInc
		} else {
			r.current *= r.downInc
		}
		r.clampToTarget()
	}

	return r.current
}

// Skip advances n samples and returns the resulting value.
func (r *Ramp) Skip(n int) float64 {
	if n <= 0 || r.count == 0 {
		return r.current
	}

	switch r.mode {
	case Linear:
		if n >= r.count {
			r.SetCurrentAndTarget(r.target)
			return r.current
		}
		r.current += r.inc * float64(n)
		r.count -= n
	case Multiplicative:
		if n >= r.count {
			r.SetCurrentAndTarget(r.target)
			return r.current
		}
		r.current *= math.Pow(r.inc, float64(n))
		r.count -= n
	default:
		for i := 0; i < n && r.count > 0; i++ {
			r.Next()
		}
	}

	return r.current
}

func (r *Ramp) countDown() {
	r.count--
	if r.count == 0 {
		r.current = r.target
	}
}

func (r *Ramp) clampToTarget() {
	if (r.rising && r.current >= r.target) || (!r.rising && r.current <= r.target) {
		r.current = r.target
		r.count = 0
	}
}
