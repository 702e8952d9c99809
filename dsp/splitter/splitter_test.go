package splitter

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-split/dsp/core"
	"github.com/cwbudde/algo-split/internal/testutil"
)

const testRate = 48000.0

func stereoNoise(n int) core.Stereo {
	return core.Stereo{
		testutil.DeterministicNoise(11, 1, n),
		testutil.DeterministicNoise(12, 1, n),
	}
}

type stereoProcessor interface {
	PrepareBuffer()
	Process(in, out1, out2 core.Stereo, n int)
}

// runStereo feeds in through p in blocks and returns both output pairs.
func runStereo(p stereoProcessor, in core.Stereo, block int) (core.Stereo, core.Stereo) {
	n := len(in[0])
	out1, out2 := core.NewStereo(n), core.NewStereo(n)

	for start := 0; start < n; start += block {
		end := min(start+block, n)
		view := func(s core.Stereo) core.Stereo {
			return core.Stereo{s[0][start:end], s[1][start:end]}
		}
		p.PrepareBuffer()
		p.Process(view(in), view(out1), view(out2), end-start)
	}

	return out1, out2
}

func requireStereoSum(t *testing.T, out1, out2, want core.Stereo, eps float64) {
	t.Helper()
	for ch := range 2 {
		testutil.RequireSliceNearlyEqual(t, testutil.Sum(out1[ch], out2[ch]), want[ch], eps)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"lr", LeftRight},
		{"Left-Right", LeftRight},
		{"mid_side", MidSide},
		{"lh", LowHigh},
		{"low high", LowHigh},
		{"ts", TransientSteady},
		{"peak-steady", PeakSteady},
		{" none ", None},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if err != nil {
			t.Fatalf("ParseMode(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseMode("bogus"); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("ParseMode(bogus) error = %v, want ErrUnknownMode", err)
	}
}

func TestModeStringRoundTrip(t *testing.T) {
	for _, m := range Modes() {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Fatalf("ParseMode(%q) = %v, %v", m.String(), got, err)
		}
		if !m.Valid() {
			t.Fatalf("%v reported invalid", m)
		}
	}
	if Mode(42).Valid() {
		t.Fatal("Mode(42) reported valid")
	}
}

func TestModesReturnsCopy(t *testing.T) {
	first := Modes()
	first[0], first[5] = first[5], first[0]

	second := Modes()
	if second[0] != LeftRight || second[5] != None {
		t.Fatalf("Modes() = %v after caller reordered a previous result", second)
	}
}

func TestLRMixZero(t *testing.T) {
	s := NewLR()
	s.Prepare(testRate)

	in := stereoNoise(2048)
	out1, out2 := runStereo(s, in, 256)

	for i := range in[0] {
		if out1[0][i] != in[0][i] || out1[1][i] != 0 {
			t.Fatalf("out1[%d] = (%v, %v), want (%v, 0)", i, out1[0][i], out1[1][i], in[0][i])
		}
		if out2[0][i] != 0 || out2[1][i] != in[1][i] {
			t.Fatalf("out2[%d] = (%v, %v), want (0, %v)", i, out2[0][i], out2[1][i], in[1][i])
		}
	}
}

func TestLRMixRampKeepsSum(t *testing.T) {
	s := NewLR()
	s.Prepare(testRate)
	s.SetMix(0.3)

	in := stereoNoise(9600)
	out1, out2 := runStereo(s, in, 100)
	requireStereoSum(t, out1, out2, in, 1e-12)

	// After the 0.1 s ramp the left channel of out2 carries 30 %.
	last := len(in[0]) - 1
	if got, want := out2[0][last], 0.3*in[0][last]; math.Abs(got-want) > 1e-12 {
		t.Fatalf("settled out2.L = %v, want %v", got, want)
	}
}

func TestMSHalfMixSum(t *testing.T) {
	s := NewMS()
	s.Prepare(testRate)
	s.SetMix(0.5)

	in := stereoNoise(9600)
	mid, side := runStereo(s, in, 128)
	requireStereoSum(t, mid, side, in, 1e-12)
}

func TestMSMixZeroIsMidSide(t *testing.T) {
	s := NewMS()
	s.Prepare(testRate)

	in := stereoNoise(1024)
	mid, side := runStereo(s, in, 1024)

	for i := range in[0] {
		l, r := in[0][i], in[1][i]
		if math.Abs(mid[0][i]-0.5*(l+r)) > 1e-12 || math.Abs(mid[1][i]-0.5*(l+r)) > 1e-12 {
			t.Fatalf("mid[%d] = (%v, %v), want %v", i, mid[0][i], mid[1][i], 0.5*(l+r))
		}
		if math.Abs(side[0][i]-0.5*(l-r)) > 1e-12 || math.Abs(side[1][i]-0.5*(r-l)) > 1e-12 {
			t.Fatalf("side[%d] = (%v, %v)", i, side[0][i], side[1][i])
		}
	}
}

func BenchmarkLH(b *testing.B) {
	s := NewLH()
	s.Prepare(testRate)
	in := stereoNoise(512)
	low, high := core.NewStereo(512), core.NewStereo(512)

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		s.PrepareBuffer()
		s.Process(in, low, high, 512)
	}
}
