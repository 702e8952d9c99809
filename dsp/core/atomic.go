package core

import (
	"math"
	"sync/atomic"
)

// AtomicFloat64 is a float64 that can be loaded and stored concurrently.
// The zero value holds 0.
type AtomicFloat64 struct {
	bits atomic.Uint64
}

// NewAtomicFloat64 returns an AtomicFloat64 holding v.
func NewAtomicFloat64(v float64) *AtomicFloat64 {
	a := &AtomicFloat64{}
	a.Store(v)
	return a
}

// Load returns the current value.
func (a *AtomicFloat64) Load() float64 {
	return math.Float64frombits(a.bits.Load())
}

// Store sets the value.
func (a *AtomicFloat64) Store(v float64) {
	a.bits.Store(math.Float64bits(v))
}

// Param is a control-thread parameter paired with a dirty flag. Set may be
// called from any goroutine; the audio thread calls Take once per block.
type Param struct {
	value AtomicFloat64
	dirty atomic.Bool
}

// Set stores v and raises the dirty flag.
func (p *Param) Set(v float64) {
	p.value.Store(v)
	p.dirty.Store(true)
}

// Load returns the stored value without touching the flag.
func (p *Param) Load() float64 {
	return p.value.Load()
}

// Take clears the dirty flag and reports whether it was set, together with
// the stored value.
func (p *Param) Take() (float64, bool) {
	if !p.dirty.Swap(false) {
		return 0, false
	}

	return p.value.Load(), true
}
