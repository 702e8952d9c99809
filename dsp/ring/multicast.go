package ring

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// ErrNoConsumerSlot is returned when every consumer slot is taken.
var ErrNoConsumerSlot = errors.New("ring: no free consumer slot")

// ErrUnknownConsumer is returned for an id that is not registered.
var ErrUnknownConsumer = errors.New("ring: unknown consumer")

type reader struct {
	active atomic.Bool
	head   atomic.Int64
}

// Multicast computes ranges for one producer and several independent
// consumers. Each consumer owns a read cursor. Free space is limited by the
// slowest active consumer, so the producer never overwrites data that an
// active consumer has not read yet.
//
// Consumer slots are preallocated; registering and removing consumers never
// touches the producer path.
type Multicast struct {
	capacity int
	tail     atomic.Int64
	readers  []reader

	mu sync.Mutex // serializes AddConsumer / RemoveConsumer
}

// NewMulticast returns a multicast ring with room for maxConsumers readers.
func NewMulticast(capacity, maxConsumers int) (*Multicast, error) {
	if capacity < 2 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	if maxConsumers < 1 {
		return nil, fmt.Errorf("ring: maxConsumers must be >= 1: %d", maxConsumers)
	}
	return &Multicast{
		capacity: capacity,
		readers:  make([]reader, maxConsumers),
	}, nil
}

// Capacity returns the ring size.
func (m *Multicast) Capacity() int { return m.capacity }

// SetCapacity changes the capacity and rewinds all cursors. Registered
// consumers stay registered.
func (m *Multicast) SetCapacity(capacity int) error {
	if capacity < 2 {
		return fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.capacity = capacity
	m.tail.Store(0)
	for i := range m.readers {
		m.readers[i].head.Store(0)
	}
	return nil
}

// AddConsumer registers a reader and returns its id. The reader starts at
// the current write position and sees only data written afterwards.
func (m *Multicast) AddConsumer() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.readers {
		r := &m.readers[i]
		if !r.active.Load() {
			r.head.Store(m.tail.Load())
			r.active.Store(true)
			return i, nil
		}
	}
	return -1, ErrNoConsumerSlot
}

// RemoveConsumer releases a reader slot. Unknown ids are ignored.
func (m *Multicast) RemoveConsumer(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.valid(id) {
		m.readers[id].active.Store(false)
	}
}

// NumConsumers returns the number of active readers.
func (m *Multicast) NumConsumers() int {
	n := 0
	for i := range m.readers {
		if m.readers[i].active.Load() {
			n++
		}
	}
	return n
}

// NumFree returns how many items the producer can write without passing the
// slowest active reader.
func (m *Multicast) NumFree() int {
	tail := int(m.tail.Load())
	slowest := tail
	maxReady := -1
	for i := range m.readers {
		r := &m.readers[i]
		if !r.active.Load() {
			continue
		}
		h := int(r.head.Load())
		if ready := distance(h, tail, m.capacity); ready > maxReady {
			maxReady = ready
			slowest = h
		}
	}
	if slowest > tail {
		return slowest - tail - 1
	}
	return m.capacity - tail + slowest - 1
}

// PrepareToWrite returns where up to k items may be written, truncated to
// NumFree().
func (m *Multicast) PrepareToWrite(k int) Range {
	k = min(k, m.NumFree())
	return split(int(m.tail.Load()), k, m.capacity)
}

// FinishWrite publishes k items to every active reader.
func (m *Multicast) FinishWrite(k int) {
	if k <= 0 {
		return
	}
	m.tail.Store(int64(advance(int(m.tail.Load()), k, m.capacity)))
}

// NumReady returns how many unread items consumer id has. Unknown ids
// report 0.
func (m *Multicast) NumReady(id int) int {
	if !m.valid(id) {
		return 0
	}
	return distance(int(m.readers[id].head.Load()), int(m.tail.Load()), m.capacity)
}

// PrepareToRead returns where consumer id may read up to k items, truncated
// to NumReady(id).
func (m *Multicast) PrepareToRead(id, k int) Range {
	if !m.valid(id) {
		return Range{}
	}
	k = min(k, m.NumReady(id))
	return split(int(m.readers[id].head.Load()), k, m.capacity)
}

// FinishRead advances the cursor of consumer id by k items.
func (m *Multicast) FinishRead(id, k int) error {
	if !m.valid(id) {
		return fmt.Errorf("%w: %d", ErrUnknownConsumer, id)
	}
	if k <= 0 {
		return nil
	}
	r := &m.readers[id]
	r.head.Store(int64(advance(int(r.head.Load()), k, m.capacity)))
	return nil
}

func (m *Multicast) valid(id int) bool {
	return id >= 0 && id < len(m.readers) && m.readers[id].active.Load()
}
