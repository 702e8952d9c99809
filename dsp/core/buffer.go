package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// CopyInto copies src into dst and returns the number of copied elements.
func CopyInto(dst, src []float64) int {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	copy(dst[:n], src[:n])
	return n
}

// SubtractTo writes a - b into dst over the first n samples.
func SubtractTo(dst, a, b []float64, n int) {
	if n <= 0 {
		return
	}
	_ = dst[n-1]
	_ = a[n-1]
	_ = b[n-1]
	for i := 0; i < n; i++ {
		dst[i] = a[i] - b[i]
	}
}

// Stereo is a pair of channel slices. It is a view and does not own the
// underlying samples.
type Stereo [2][]float64

// NewStereo allocates a stereo buffer with n samples per channel.
func NewStereo(n int) Stereo {
	return Stereo{make([]float64, n), make([]float64, n)}
}

// Slice returns a view of the first n samples of both channels.
func (s Stereo) Slice(n int) Stereo {
	return Stereo{s[0][:n], s[1][:n]}
}
