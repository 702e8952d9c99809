package analyzer

import (
	"fmt"

	"github.com/cwbudde/algo-split/dsp/ring"
)

// Transfer moves data from a [Sender] into a multicast ring that several
// consumers can read independently. Pump and the consumer methods run on
// non-audio goroutines.
type Transfer struct {
	sender  *Sender
	mc      *ring.Multicast
	buf     [][][]float64
	scratch []float64
}

// NewTransfer returns a transfer stage with a multicast ring of capacity
// samples per signal and up to maxConsumers readers.
func NewTransfer(sender *Sender, capacity, maxConsumers int) (*Transfer, error) {
	mc, err := ring.NewMulticast(capacity, maxConsumers)
	if err != nil {
		return nil, fmt.Errorf("analyzer: %w", err)
	}

	t := &Transfer{
		sender:  sender,
		mc:      mc,
		buf:     make([][][]float64, sender.Branches()),
		scratch: make([]float64, capacity),
	}
	for b := range t.buf {
		t.buf[b] = make([][]float64, sender.Channels())
		for ch := range t.buf[b] {
			t.buf[b][ch] = make([]float64, capacity)
		}
	}

	return t, nil
}

// Pump moves as many ready samples as the slowest consumer allows and
// returns the count. It skips the round while the sender is being
// prepared.
func (t *Transfer) Pump() int {
	s := t.sender
	if !s.mu.TryRLock() {
		return 0
	}
	defer s.mu.RUnlock()

	k := min(s.fifo.NumReady(), t.mc.NumFree())
	if k == 0 {
		return 0
	}
	src := s.fifo.PrepareToRead(k)
	dst := t.mc.PrepareToWrite(k)

	for b := range t.buf {
		if !s.enabled[b].Load() {
			continue
		}
		for ch := range t.buf[b] {
			src.Gather(t.scratch[:k], s.buf[b][ch])
			dst.Scatter(t.buf[b][ch], t.scratch[:k])
		}
	}

	s.fifo.FinishRead(k)
	t.mc.FinishWrite(k)

	return k
}

// AddConsumer registers a reader that sees data pumped from now on.
func (t *Transfer) AddConsumer() (int, error) {
	id, err := t.mc.AddConsumer()
	if err != nil {
		return -1, fmt.Errorf("analyzer: %w", err)
	}

	return id, nil
}

// RemoveConsumer releases a reader.
func (t *Transfer) RemoveConsumer(id int) {
	t.mc.RemoveConsumer(id)
}

// NumConsumers returns the number of registered readers.
func (t *Transfer) NumConsumers() int { return t.mc.NumConsumers() }

// ReadyRange describes where consumer id's unread samples sit in the
// multicast storage.
func (t *Transfer) ReadyRange(id int) ring.Range {
	return t.mc.PrepareToRead(id, t.mc.NumReady(id))
}

// Read copies up to len(dst[0][0]) unread samples per signal into dst
// without consuming them and returns the count. dst must be shaped
// [branches][channels][]float64. Call CommitRead to consume.
func (t *Transfer) Read(id int, dst [][][]float64) int {
	if len(dst) == 0 || len(dst[0]) == 0 {
		return 0
	}

	r := t.mc.PrepareToRead(id, len(dst[0][0]))
	k := r.Total()
	for b := range min(len(dst), len(t.buf)) {
		for ch := range min(len(dst[b]), len(t.buf[b])) {
			r.Gather(dst[b][ch][:k], t.buf[b][ch])
		}
	}

	return k
}

// CommitRead consumes n samples for consumer id.
func (t *Transfer) CommitRead(id, n int) error {
	if err := t.mc.FinishRead(id, n); err != nil {
		return fmt.Errorf("analyzer: %w", err)
	}

	return nil
}
