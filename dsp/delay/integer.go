package delay

import "fmt"

// Integer delays a signal by a whole number of samples. The delay can be
// changed at run time up to the maximum given at construction without
// reallocating.
type Integer struct {
	line  *Line
	delay int
}

// NewInteger returns a delay that supports up to maxDelay samples.
func NewInteger(maxDelay int) (*Integer, error) {
	if maxDelay < 0 {
		return nil, fmt.Errorf("delay: max delay must be >= 0: %d", maxDelay)
	}
	line, err := New(maxDelay + 1)
	if err != nil {
		return nil, err
	}
	return &Integer{line: line}, nil
}

// MaxDelay returns the largest supported delay.
func (d *Integer) MaxDelay() int { return d.line.Len() - 1 }

// Delay returns the current delay in samples.
func (d *Integer) Delay() int { return d.delay }

// SetDelay changes the delay, clamped to [0, MaxDelay()]. The history is
// kept, so a shorter delay skips samples and a longer one repeats older
// ones once.
func (d *Integer) SetDelay(samples int) {
	d.delay = max(0, min(samples, d.MaxDelay()))
}

// ProcessSample delays one sample.
func (d *Integer) ProcessSample(x float64) float64 {
	d.line.Write(x)
	if d.delay == 0 {
		return x
	}
	return d.line.Read(d.delay + 1)
}

// ProcessBlock delays buf in place.
func (d *Integer) ProcessBlock(buf []float64) {
	if d.delay == 0 {
		for _, x := range buf {
			d.line.Write(x)
		}
		return
	}
	for i, x := range buf {
		d.line.Write(x)
		buf[i] = d.line.Read(d.delay + 1)
	}
}

// ProcessBlockTo writes the delayed src into dst.
func (d *Integer) ProcessBlockTo(dst, src []float64) {
	_ = dst[len(src)-1]
	for i, x := range src {
		dst[i] = d.ProcessSample(x)
	}
}

// Reset clears the history.
func (d *Integer) Reset() { d.line.Reset() }

// Multi is a bank of per-channel integer delays sharing one delay value.
type Multi struct {
	channels []*Integer
}

// NewMulti returns a bank of channels delays supporting up to maxDelay.
func NewMulti(channels, maxDelay int) (*Multi, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("delay: channel count must be > 0: %d", channels)
	}
	m := &Multi{channels: make([]*Integer, channels)}
	for i := range m.channels {
		d, err := NewInteger(maxDelay)
		if err != nil {
			return nil, err
		}
		m.channels[i] = d
	}
	return m, nil
}

// Channels returns the number of channels.
func (m *Multi) Channels() int { return len(m.channels) }

// Delay returns the shared delay in samples.
func (m *Multi) Delay() int { return m.channels[0].Delay() }

// MaxDelay returns the largest supported delay.
func (m *Multi) MaxDelay() int { return m.channels[0].MaxDelay() }

// SetDelay sets the delay of every channel.
func (m *Multi) SetDelay(samples int) {
	for _, d := range m.channels {
		d.SetDelay(samples)
	}
}

// ProcessBlock delays the first n samples of each buffer in place. Extra
// buffers beyond Channels() are left untouched.
func (m *Multi) ProcessBlock(bufs [][]float64, n int) {
	for ch, buf := range bufs {
		if ch >= len(m.channels) {
			return
		}
		m.channels[ch].ProcessBlock(buf[:n])
	}
}

// Reset clears every channel.
func (m *Multi) Reset() {
	for _, d := range m.channels {
		d.Reset()
	}
}
