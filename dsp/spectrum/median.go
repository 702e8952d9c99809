package spectrum

// MedianSmoother computes a running median across neighbouring bins with
// edge padding. The window is 2*radius+1 bins wide.
type MedianSmoother struct {
	radius int
	win    []float64
}

// NewMedianSmoother returns a smoother over 2*radius+1 bins. Negative radii
// are treated as 0.
func NewMedianSmoother(radius int) *MedianSmoother {
	radius = max(radius, 0)
	return &MedianSmoother{radius: radius, win: make([]float64, 2*radius+1)}
}

// Width returns the window size in bins.
func (m *MedianSmoother) Width() int { return len(m.win) }

// Process writes the median of src[k-radius..k+radius] into dst[k]. Bins
// outside src repeat the nearest edge value. dst and src must not overlap.
// Zero-alloc.
func (m *MedianSmoother) Process(dst, src []float64) {
	n := len(src)
	if n == 0 {
		return
	}

	for k := range n {
		for j := range m.win {
			idx := min(max(k+j-m.radius, 0), n-1)
			m.win[j] = src[idx]
		}
		dst[k] = median(m.win)
	}
}

// median sorts w in place with insertion sort and returns its median.
func median(w []float64) float64 {
	for i := 1; i < len(w); i++ {
		v := w[i]
		j := i - 1
		for j >= 0 && w[j] > v {
			w[j+1] = w[j]
			j--
		}
		w[j+1] = v
	}

	return w[len(w)/2]
}
