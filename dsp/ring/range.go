package ring

// Range describes where a transfer lands inside a ring of fixed capacity.
// The first segment starts at Start1. When the transfer wraps around the end
// of the ring the remainder is described by the second segment, which always
// starts at index 0.
type Range struct {
	Start1, Len1 int
	Start2, Len2 int
}

// Total returns the number of items covered by both segments.
func (r Range) Total() int { return r.Len1 + r.Len2 }

// Empty reports whether the range covers nothing.
func (r Range) Empty() bool { return r.Len1+r.Len2 == 0 }

// Scatter copies src into buf at the positions described by r and returns
// the number of values copied. src must hold at least r.Total() values.
func (r Range) Scatter(buf, src []float64) int {
	copy(buf[r.Start1:r.Start1+r.Len1], src[:r.Len1])
	if r.Len2 > 0 {
		copy(buf[r.Start2:r.Start2+r.Len2], src[r.Len1:r.Len1+r.Len2])
	}
	return r.Len1 + r.Len2
}

// Gather copies the values described by r out of buf into dst and returns
// the number of values copied. dst must hold at least r.Total() values.
func (r Range) Gather(dst, buf []float64) int {
	copy(dst[:r.Len1], buf[r.Start1:r.Start1+r.Len1])
	if r.Len2 > 0 {
		copy(dst[r.Len1:r.Len1+r.Len2], buf[r.Start2:r.Start2+r.Len2])
	}
	return r.Len1 + r.Len2
}

// split builds the range for k items starting at start in a ring of size
// capacity. k must not exceed capacity.
func split(start, k, capacity int) Range {
	if k <= 0 {
		return Range{Start1: start}
	}
	first := min(k, capacity-start)
	return Range{
		Start1: start,
		Len1:   first,
		Start2: 0,
		Len2:   k - first,
	}
}

// distance returns how many items lie between head and tail.
func distance(head, tail, capacity int) int {
	if tail >= head {
		return tail - head
	}
	return capacity - head + tail
}

func advance(pos, k, capacity int) int {
	pos += k
	if pos >= capacity {
		pos -= capacity
	}
	return pos
}
