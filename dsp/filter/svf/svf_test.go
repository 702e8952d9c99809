package svf

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-split/internal/testutil"
)

func steadyGain(process func(float64) float64, freq, sampleRate float64) float64 {
	in := testutil.DeterministicSine(freq, sampleRate, 1, 48000)
	out := make([]float64, len(in))
	for i, x := range in {
		out[i] = process(x)
	}

	// Skip the settling part.
	return testutil.RMS(out[len(out)/2:]) / testutil.RMS(in[len(in)/2:])
}

func TestTPTIdentity(t *testing.T) {
	for _, q := range []float64{0.5, 0.7071, 2, 8} {
		f := NewTPT(2000, 48000, q)
		for i, x := range testutil.DeterministicNoise(1, 1, 1024) {
			low, band, high := f.Process(x)
			if got := low + band/q + high; math.Abs(got-x) > 1e-12 {
				t.Fatalf("q=%v sample %d: low+band/q+high = %v, want %v", q, i, got, x)
			}
		}
	}
}

func TestTPTSingleOutputsMatchProcess(t *testing.T) {
	in := testutil.DeterministicNoise(7, 1, 512)
	ref := NewTPT(800, 44100, 1.3)
	lp := NewTPT(800, 44100, 1.3)
	hp := NewTPT(800, 44100, 1.3)

	for i, x := range in {
		low, _, high := ref.Process(x)
		if got := lp.ProcessLow(x); math.Abs(got-low) > 1e-12 {
			t.Fatalf("ProcessLow[%d] = %v, want %v", i, got, low)
		}
		if got := hp.ProcessHigh(x); math.Abs(got-high) > 1e-12 {
			t.Fatalf("ProcessHigh[%d] = %v, want %v", i, got, high)
		}
	}
}

func TestTPTCutoffGain(t *testing.T) {
	const sr = 48000.0

	lp := NewTPT(1000, sr, defaultQ)
	if got := steadyGain(lp.ProcessLow, 1000, sr); math.Abs(got-defaultQ) > 0.01 {
		t.Fatalf("lowpass gain at cutoff = %v, want %v", got, defaultQ)
	}

	lp.Reset()
	if got := steadyGain(lp.ProcessLow, 100, sr); math.Abs(got-1) > 0.01 {
		t.Fatalf("lowpass passband gain = %v, want 1", got)
	}

	hp := NewTPT(1000, sr, defaultQ)
	if got := steadyGain(hp.ProcessHigh, 10000, sr); math.Abs(got-1) > 0.02 {
		t.Fatalf("highpass passband gain = %v, want 1", got)
	}
}

func TestTPTModulationStable(t *testing.T) {
	f := NewTPT(1000, 48000, 4)
	in := testutil.DeterministicNoise(3, 1, 48000)
	out := make([]float64, len(in))

	for i, x := range in {
		freq := 20 * math.Pow(1000, 0.5+0.5*math.Sin(float64(i)*0.01))
		f.SetCutoff(freq, 48000)
		out[i] = f.ProcessLow(x)
	}

	testutil.RequireFinite(t, out)
	for i, v := range out {
		if math.Abs(v) > 50 {
			t.Fatalf("sample %d = %v, output blew up", i, v)
		}
	}
}

func TestTPTZeroValue(t *testing.T) {
	var f TPT
	if f.Cutoff() != defaultCutoff || f.Q() != defaultQ {
		t.Fatalf("zero value cutoff=%v q=%v", f.Cutoff(), f.Q())
	}

	f.ProcessLow(1)
	f.Reset()
	if got := f.ProcessLow(0); got != 0 {
		t.Fatalf("output after Reset = %v, want 0", got)
	}
}

func TestOnePole(t *testing.T) {
	const sr = 48000.0

	f := NewOnePole(500, sr)
	for i, x := range testutil.DeterministicNoise(5, 1, 256) {
		low, high := f.ProcessLowHigh(x)
		if math.Abs(low+high-x) > 1e-15 {
			t.Fatalf("sample %d: low+high = %v, want %v", i, low+high, x)
		}
	}

	a := NewOnePole(500, sr)
	b := NewOnePole(500, sr)
	for i, x := range testutil.DeterministicNoise(9, 1, 256) {
		low := a.ProcessLow(x)
		if got := b.ProcessHigh(x); math.Abs(got-(low-x)) > 1e-15 {
			t.Fatalf("ProcessHigh[%d] = %v, want %v", i, got, low-x)
		}
	}

	lp := NewOnePole(1000, sr)
	want := 1 / math.Sqrt2
	if got := steadyGain(lp.ProcessLow, 1000, sr); math.Abs(got-want) > 0.01 {
		t.Fatalf("one-pole gain at cutoff = %v, want %v", got, want)
	}
}

func TestOnePoleDC(t *testing.T) {
	f := NewOnePole(200, 44100)

	var low float64
	for range 44100 {
		low = f.ProcessLow(1)
	}
	if math.Abs(low-1) > 1e-9 {
		t.Fatalf("DC settles at %v, want 1", low)
	}
}

func BenchmarkTPTProcessLowHigh(b *testing.B) {
	f := NewTPT(1000, 48000, defaultQ)
	in := testutil.DeterministicNoise(1, 1, 512)

	b.ResetTimer()
	for range b.N {
		for _, x := range in {
			f.ProcessLowHigh(x)
		}
	}
}
