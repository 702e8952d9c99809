package splitter

import (
	"github.com/cwbudde/algo-split/dsp/core"
	"github.com/cwbudde/algo-split/dsp/ramp"
)

const (
	mixRampSeconds = 0.1
	mixThreshold   = 1e-6
)

// mixer holds a mix parameter and its audio-thread ramp.
type mixer struct {
	param core.Param
	ramp  *ramp.Ramp
}

func newMixer(initial float64) mixer {
	return mixer{ramp: ramp.New(ramp.Linear, initial)}
}

func (m *mixer) prepare(sampleRate float64) {
	m.ramp.Prepare(sampleRate, mixRampSeconds)
}

func (m *mixer) set(v float64) {
	m.param.Set(v)
}

// update moves a pending mix value into the ramp.
func (m *mixer) update(target func(float64) float64) {
	if v, ok := m.param.Take(); ok {
		m.ramp.SetTarget(target(v))
	}
}

func (m *mixer) settle() {
	m.ramp.SetCurrentAndTarget(m.ramp.Target())
}

func identity(v float64) float64 { return v }

// crossfade pulls low and high towards each other:
// low += mix*(high-low), high -= mix*(high-low). Their sum is unchanged.
func (m *mixer) crossfade(low, high core.Stereo, n int) {
	if m.ramp.IsSmoothing() {
		for i := 0; i < n; i++ {
			mix := m.ramp.Next()
			for ch := range low {
				l, h := low[ch][i], high[ch][i]
				diff := h - l
				low[ch][i] = l + mix*diff
				high[ch][i] = h - mix*diff
			}
		}

		return
	}

	mix := m.ramp.Current()
	if mix <= mixThreshold {
		return
	}

	for ch := range low {
		lo, hi := low[ch][:n], high[ch][:n]
		for i := range lo {
			diff := hi[i] - lo[i]
			lo[i] += mix * diff
			hi[i] -= mix * diff
		}
	}
}
