package analyzer

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-split/dsp/core"
	"github.com/cwbudde/algo-split/dsp/ring"
)

// ErrInvalidLayout is returned for a non-positive branch or channel count.
var ErrInvalidLayout = errors.New("analyzer: branches and channels must be > 0")

// Sender is the audio-thread side of the analyzer feed.
type Sender struct {
	branches int
	channels int

	mu      sync.RWMutex
	fifo    *ring.FIFO
	buf     [][][]float64
	enabled []atomic.Bool

	dropped atomic.Int64
}

// NewSender returns a sender for branches x channels signals with room for
// capacity-1 samples per signal.
func NewSender(branches, channels, capacity int) (*Sender, error) {
	if branches <= 0 || channels <= 0 {
		return nil, fmt.Errorf("%w: %d x %d", ErrInvalidLayout, branches, channels)
	}

	s := &Sender{
		branches: branches,
		channels: channels,
		enabled:  make([]atomic.Bool, branches),
	}
	for i := range s.enabled {
		s.enabled[i].Store(true)
	}
	if err := s.Prepare(capacity); err != nil {
		return nil, err
	}

	return s, nil
}

// Branches returns the number of branches.
func (s *Sender) Branches() int { return s.branches }

// Channels returns the number of channels per branch.
func (s *Sender) Channels() int { return s.channels }

// Prepare resizes the ring and discards its contents. It waits for any
// Send or Transfer.Pump in progress.
func (s *Sender) Prepare(capacity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fifo == nil {
		fifo, err := ring.NewFIFO(capacity)
		if err != nil {
			return fmt.Errorf("analyzer: %w", err)
		}
		s.fifo = fifo
	} else if err := s.fifo.SetCapacity(capacity); err != nil {
		return fmt.Errorf("analyzer: %w", err)
	}

	s.buf = make([][][]float64, s.branches)
	for b := range s.buf {
		s.buf[b] = make([][]float64, s.channels)
		for ch := range s.buf[b] {
			s.buf[b][ch] = make([]float64, capacity)
		}
	}
	s.dropped.Store(0)

	return nil
}

// Capacity returns the ring size.
func (s *Sender) Capacity() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.fifo.Capacity()
}

// SetEnabled switches a branch on or off. Nothing is copied for a disabled
// branch; the shared cursor still advances, so its ring slots hold stale
// data that consumers should ignore.
func (s *Sender) SetEnabled(branch int, on bool) {
	if branch >= 0 && branch < s.branches {
		s.enabled[branch].Store(on)
	}
}

// Enabled reports whether branch is sent.
func (s *Sender) Enabled(branch int) bool {
	return branch >= 0 && branch < s.branches && s.enabled[branch].Load()
}

// Dropped returns how many samples per signal were discarded because the
// ring was full or busy.
func (s *Sender) Dropped() int64 { return s.dropped.Load() }

// Send copies the first n samples of every signal into the ring. Only as
// many samples as are free are written. If Prepare holds the lock the
// whole block is skipped. Send never blocks or allocates. Disabled
// or missing branches are skipped. Missing channels of an enabled branch are sent as
// silence.
func (s *Sender) Send(buffers [][][]float64, n int) int {
	if n <= 0 {
		return 0
	}
	if !s.mu.TryRLock() {
		s.dropped.Add(int64(n))
		return 0
	}
	defer s.mu.RUnlock()

	r := s.fifo.PrepareToWrite(n)
	k := r.Total()
	for b := range s.branches {
		if !s.enabled[b].Load() || b >= len(buffers) {
			continue
		}
		for ch := range s.channels {
			dst := s.buf[b][ch]
			if ch >= len(buffers[b]) {
				core.Zero(dst[r.Start1 : r.Start1+r.Len1])
				core.Zero(dst[r.Start2 : r.Start2+r.Len2])
				continue
			}
			r.Scatter(dst, buffers[b][ch][:k])
		}
	}
	s.fifo.FinishWrite(k)

	if k < n {
		s.dropped.Add(int64(n - k))
	}

	return k
}

// NumReady returns how many samples per signal wait to be transferred.
func (s *Sender) NumReady() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.fifo.NumReady()
}
