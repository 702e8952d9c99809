package splitter

import (
	"fmt"
	"sync/atomic"

	"github.com/cwbudde/algo-split/dsp/core"
	"github.com/cwbudde/algo-split/dsp/ring"
)

const (
	peakWindowSeconds   = 0.01
	steadyWindowSeconds = 1.0
	minSmooth           = 0.01
)

// squareWindow keeps the running sum of the last size squared samples.
type squareWindow struct {
	fifo *ring.FIFO
	buf  []float64
	sum  float64
	size int
}

func newSquareWindow(capacity int) (*squareWindow, error) {
	capacity = max(capacity, 1)

	fifo, err := ring.NewFIFO(capacity + 1)
	if err != nil {
		return nil, err
	}

	return &squareWindow{
		fifo: fifo,
		buf:  make([]float64, capacity+1),
		size: capacity,
	}, nil
}

func (w *squareWindow) capacity() int { return len(w.buf) - 1 }

func (w *squareWindow) setSize(size int) {
	w.size = max(1, min(size, w.capacity()))
}

func (w *squareWindow) push(v float64) {
	for w.fifo.NumReady() >= w.size {
		r := w.fifo.PrepareToRead(1)
		w.sum -= w.buf[r.Start1]
		w.fifo.FinishRead(1)
	}

	r := w.fifo.PrepareToWrite(1)
	w.buf[r.Start1] = v
	w.fifo.FinishWrite(1)

	w.sum = max(w.sum+v, 0)
}

func (w *squareWindow) mean() float64 {
	return w.sum / float64(w.size)
}

func (w *squareWindow) reset() {
	w.fifo.Reset()
	w.sum = 0
}

// PS separates short peaks from the steady part of a mono signal. The
// short-term energy over a 10 ms window is compared with the long-term
// energy over a one second window. While the short-term energy exceeds the
// long-term energy scaled by the balance, a gain mask attacks towards 1;
// otherwise it releases towards 0. The peak output is the masked input and
// the steady output is the rest, so both always sum to the input.
//
// All four parameters are normalized to [0, 1] and default to 0.5.
type PS struct {
	sampleRate float64

	balanceParam core.AtomicFloat64
	attackParam  core.AtomicFloat64
	holdParam    core.AtomicFloat64
	smoothParam  core.AtomicFloat64
	dirty        atomic.Bool

	balance float64
	attack  float64
	release float64

	peak   *squareWindow
	steady *squareWindow
	mask   float64
}

// NewPS returns a peak/steady splitter with all parameters at 0.5. It must
// be prepared before use.
func NewPS() *PS {
	s := &PS{}
	s.balanceParam.Store(0.5)
	s.attackParam.Store(0.5)
	s.holdParam.Store(0.5)
	s.smoothParam.Store(0.5)
	s.dirty.Store(true)

	return s
}

// Prepare allocates the energy windows for sampleRate.
func (s *PS) Prepare(sampleRate float64) error {
	if sampleRate <= 0 {
		return fmt.Errorf("splitter: sample rate must be > 0: %f", sampleRate)
	}

	peak, err := newSquareWindow(int(sampleRate * peakWindowSeconds))
	if err != nil {
		return fmt.Errorf("splitter: peak window: %w", err)
	}
	steady, err := newSquareWindow(int(sampleRate * steadyWindowSeconds))
	if err != nil {
		return fmt.Errorf("splitter: steady window: %w", err)
	}

	s.sampleRate = sampleRate
	s.peak = peak
	s.steady = steady
	s.mask = 0
	s.dirty.Store(true)
	s.PrepareBuffer()

	return nil
}

// SetBalance sets the threshold between peak and steady energy.
func (s *PS) SetBalance(v float64) {
	s.balanceParam.Store(core.Clamp(v, 0, 1))
	s.dirty.Store(true)
}

// SetAttack sets how fast the mask opens. Higher is faster.
func (s *PS) SetAttack(v float64) {
	s.attackParam.Store(core.Clamp(v, 0, 1))
	s.dirty.Store(true)
}

// SetHold sets how slowly the mask closes. Higher is slower.
func (s *PS) SetHold(v float64) {
	s.holdParam.Store(core.Clamp(v, 0, 1))
	s.dirty.Store(true)
}

// SetSmooth scales both energy windows.
func (s *PS) SetSmooth(v float64) {
	s.smoothParam.Store(core.Clamp(v, 0, 1))
	s.dirty.Store(true)
}

// Latency is always 0.
func (s *PS) Latency() int { return 0 }

// PrepareBuffer recomputes the coefficients when a parameter changed.
func (s *PS) PrepareBuffer() {
	if s.peak == nil || !s.dirty.Swap(false) {
		return
	}

	b := 1 - s.balanceParam.Load()
	s.balance = mathPow(10, 2*b)

	h := s.holdParam.Load()
	s.release = mathPow(0.9*h*h*h+0.05, 10/s.sampleRate)

	a := s.attackParam.Load()
	s.attack = mathPow(1e-4, (500-450*a)/s.sampleRate)

	smooth := max(s.smoothParam.Load(), minSmooth)
	peakSize := max(int(smooth*float64(s.peak.capacity())), 1)
	s.peak.setSize(peakSize)
	s.steady.setSize(max(int(smooth*float64(s.steady.capacity())), peakSize))
}

// Reset clears the energy windows and closes the mask.
func (s *PS) Reset() {
	if s.peak == nil {
		return
	}
	s.peak.reset()
	s.steady.reset()
	s.mask = 0
}

// Process splits in into peak and steady. Both outputs must hold len(in)
// samples. Either output may alias in.
func (s *PS) Process(in, peak, steady []float64) {
	if len(in) == 0 {
		return
	}
	if s.peak == nil {
		copy(steady, in)
		core.Zero(peak[:len(in)])
		return
	}

	_ = peak[len(in)-1]
	_ = steady[len(in)-1]

	mask := s.mask
	for i, x := range in {
		sq := x * x
		s.peak.push(sq)
		s.steady.push(sq)

		if s.peak.mean() > s.steady.mean()*s.balance {
			mask = mask*s.attack + (1 - s.attack)
		} else {
			mask *= s.release
		}

		p := x * mask
		peak[i] = p
		steady[i] = x - p
	}
	s.mask = mask
}
