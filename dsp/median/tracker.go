package median

import (
	"errors"
	"fmt"
)

// ErrInvalidSize is returned for a window size below one.
var ErrInvalidSize = errors.New("median: window size must be >= 1")

// Tracker keeps the running median of the last N inserted values.
//
// Values live in a circular buffer. Slot indices are arranged in one array
// that holds a max-heap below the center (negative offsets), the median at
// the center, and a min-heap above it (positive offsets). Every insert
// replaces the oldest value and restores heap order in O(log N).
type Tracker struct {
	n      int
	data   []float64
	pos    []int // heap offset of each slot
	heap   []int // slot index at each heap offset, shifted by center
	center int

	idx   int // next slot to overwrite
	minCt int
	maxCt int
	count int
}

// New returns a tracker with a window of n values.
func New(n int) (*Tracker, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}

	t := &Tracker{
		n:      n,
		data:   make([]float64, n),
		pos:    make([]int, n),
		heap:   make([]int, n),
		center: n / 2,
	}
	t.Reset()

	return t, nil
}

// Len returns the window size.
func (t *Tracker) Len() int { return t.n }

// Count returns how many values are currently inside the window.
func (t *Tracker) Count() int { return t.count }

// Reset empties the window.
func (t *Tracker) Reset() {
	t.idx = 0
	t.minCt = 0
	t.maxCt = 0
	t.count = 0

	for i := t.n - 1; i >= 0; i-- {
		p := (i + 1) / 2
		if i&1 != 0 {
			p = -p
		}
		t.pos[i] = p
		t.heap[t.center+p] = i
		t.data[i] = 0
	}
}

// Insert pushes v into the window, evicting the oldest value once the window
// is full.
func (t *Tracker) Insert(v float64) {
	p := t.pos[t.idx]
	old := t.data[t.idx]
	t.data[t.idx] = v
	t.idx++
	if t.idx == t.n {
		t.idx = 0
	}
	if t.count < t.n {
		t.count++
	}

	switch {
	case p > 0:
		if t.minCt < (t.n-1)/2 {
			t.minCt++
		} else if v > old {
			t.minSortDown(p)
			return
		}
		if t.minSortUp(p) && t.cmpExchange(0, -1) {
			t.maxSortDown(-1)
		}
	case p < 0:
		if t.maxCt < t.n/2 {
			t.maxCt++
		} else if v < old {
			t.maxSortDown(p)
			return
		}
		if t.maxSortUp(p) && t.minCt > 0 && t.cmpExchange(1, 0) {
			t.minSortDown(1)
		}
	default:
		if t.maxCt > 0 && t.maxSortUp(-1) {
			t.maxSortDown(-1)
		}
		if t.minCt > 0 && t.minSortUp(1) {
			t.minSortDown(1)
		}
	}
}

// Median returns the median of the values in the window. With an even
// number of values it is the mean of the two middle values. An empty
// tracker reports 0.
func (t *Tracker) Median() float64 {
	if t.minCt < t.maxCt {
		return (t.at(0) + t.at(-1)) / 2
	}
	return t.at(0)
}

func (t *Tracker) at(i int) float64 {
	return t.data[t.heap[t.center+i]]
}

func (t *Tracker) less(i, j int) bool {
	return t.at(i) < t.at(j)
}

func (t *Tracker) exchange(i, j int) {
	hi, hj := t.center+i, t.center+j
	t.heap[hi], t.heap[hj] = t.heap[hj], t.heap[hi]
	t.pos[t.heap[hi]] = i
	t.pos[t.heap[hj]] = j
}

// cmpExchange swaps heap offsets i and j when value(i) < value(j).
func (t *Tracker) cmpExchange(i, j int) bool {
	if !t.less(i, j) {
		return false
	}
	t.exchange(i, j)
	return true
}

func (t *Tracker) minSortDown(i int) {
	for i *= 2; i <= t.minCt; i *= 2 {
		if i < t.minCt && t.less(i+1, i) {
			i++
		}
		if !t.cmpExchange(i, i/2) {
			break
		}
	}
}

func (t *Tracker) maxSortDown(i int) {
	for i *= 2; i >= -t.maxCt; i *= 2 {
		if i > -t.maxCt && t.less(i, i-1) {
			i--
		}
		if !t.cmpExchange(i/2, i) {
			break
		}
	}
}

// minSortUp restores the min-heap above i and reports whether the median
// slot changed.
func (t *Tracker) minSortUp(i int) bool {
	for i > 0 && t.cmpExchange(i, i/2) {
		i /= 2
	}
	return i == 0
}

// maxSortUp restores the max-heap above i and reports whether the median
// slot changed.
func (t *Tracker) maxSortUp(i int) bool {
	for i < 0 && t.cmpExchange(i/2, i) {
		i /= 2
	}
	return i == 0
}
