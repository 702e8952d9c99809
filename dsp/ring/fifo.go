package ring

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrInvalidCapacity is returned for a ring capacity below two.
var ErrInvalidCapacity = errors.New("ring: capacity must be >= 2")

// FIFO computes read and write ranges for a single-producer single-consumer
// ring. It stores only cursors; the caller owns the sample storage and moves
// data with [Range.Scatter] and [Range.Gather].
//
// One slot always stays empty, so NumFree()+NumReady() == Capacity()-1.
// The producer may call NumFree, PrepareToWrite and FinishWrite while the
// consumer concurrently calls NumReady, PrepareToRead and FinishRead.
type FIFO struct {
	capacity int
	head     atomic.Int64 // next read position
	tail     atomic.Int64 // next write position
}

// NewFIFO returns a FIFO with the given capacity.
func NewFIFO(capacity int) (*FIFO, error) {
	f := &FIFO{}
	if err := f.SetCapacity(capacity); err != nil {
		return nil, err
	}
	return f, nil
}

// SetCapacity changes the capacity and resets both cursors. It must not be
// called while a producer or consumer is active.
func (f *FIFO) SetCapacity(capacity int) error {
	if capacity < 2 {
		return fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	f.capacity = capacity
	f.Reset()
	return nil
}

// Capacity returns the ring size.
func (f *FIFO) Capacity() int { return f.capacity }

// Reset empties the ring.
func (f *FIFO) Reset() {
	f.head.Store(0)
	f.tail.Store(0)
}

// NumReady returns how many items can be read.
func (f *FIFO) NumReady() int {
	return distance(int(f.head.Load()), int(f.tail.Load()), f.capacity)
}

// NumFree returns how many items can be written.
func (f *FIFO) NumFree() int {
	return f.capacity - 1 - f.NumReady()
}

// PrepareToWrite returns where up to k items may be written. The request is
// truncated to NumFree().
func (f *FIFO) PrepareToWrite(k int) Range {
	k = min(k, f.NumFree())
	return split(int(f.tail.Load()), k, f.capacity)
}

// FinishWrite publishes k written items to the consumer.
func (f *FIFO) FinishWrite(k int) {
	if k <= 0 {
		return
	}
	f.tail.Store(int64(advance(int(f.tail.Load()), k, f.capacity)))
}

// PrepareToRead returns where up to k items may be read. The request is
// truncated to NumReady().
func (f *FIFO) PrepareToRead(k int) Range {
	k = min(k, f.NumReady())
	return split(int(f.head.Load()), k, f.capacity)
}

// FinishRead releases k read items back to the producer.
func (f *FIFO) FinishRead(k int) {
	if k <= 0 {
		return
	}
	f.head.Store(int64(advance(int(f.head.Load()), k, f.capacity)))
}
