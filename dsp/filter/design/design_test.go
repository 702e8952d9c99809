package design

import (
	"math"
	"testing"
)

func TestLowpassHighpassGains(t *testing.T) {
	const sr = 48000.0

	tests := []struct {
		name     string
		lpDC     float64
		lpNyq    float64
		hpDC     float64
		hpNyq    float64
		lpCutoff float64
	}{
		{name: "q=0.707", lpDC: 0, lpNyq: -100, hpDC: -100, hpNyq: 0, lpCutoff: -3.0103},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lp := Lowpass(1000, QButterworth2, sr)
			hp := Highpass(1000, QButterworth2, sr)

			if got := lp.MagnitudeDB(1e-3, sr); math.Abs(got-tc.lpDC) > 1e-6 {
				t.Fatalf("lowpass DC = %v dB, want %v", got, tc.lpDC)
			}
			if got := lp.MagnitudeDB(23999, sr); got > tc.lpNyq {
				t.Fatalf("lowpass near Nyquist = %v dB, want < %v", got, tc.lpNyq)
			}
			if got := hp.MagnitudeDB(1, sr); got > tc.hpDC {
				t.Fatalf("highpass near DC = %v dB, want < %v", got, tc.hpDC)
			}
			if got := hp.MagnitudeDB(23999.99, sr); math.Abs(got-tc.hpNyq) > 1e-3 {
				t.Fatalf("highpass Nyquist = %v dB, want %v", got, tc.hpNyq)
			}
			if got := lp.MagnitudeDB(1000, sr); math.Abs(got-tc.lpCutoff) > 1e-3 {
				t.Fatalf("lowpass cutoff = %v dB, want %v", got, tc.lpCutoff)
			}
		})
	}
}

func TestFirstOrder(t *testing.T) {
	const sr = 44100.0

	lp := FirstOrderLowpass(500, sr)
	if !lp.IsFirstOrder() {
		t.Fatalf("FirstOrderLowpass not first order: %+v", lp)
	}
	if got := lp.MagnitudeDB(500, sr); math.Abs(got+3.0103) > 1e-3 {
		t.Fatalf("lowpass cutoff = %v dB, want -3.01", got)
	}

	hp := FirstOrderHighpass(500, sr)
	if got := hp.MagnitudeDB(500, sr); math.Abs(got+3.0103) > 1e-3 {
		t.Fatalf("highpass cutoff = %v dB, want -3.01", got)
	}
}

func TestButterworthQ(t *testing.T) {
	if got := ButterworthQ(2, 0); math.Abs(got-QButterworth2) > 1e-12 {
		t.Fatalf("ButterworthQ(2,0) = %v, want %v", got, QButterworth2)
	}
	if got := ButterworthQ(4, 0); math.Abs(got-QButterworth4b) > 1e-12 {
		t.Fatalf("ButterworthQ(4,0) = %v, want %v", got, QButterworth4b)
	}
	if got := ButterworthQ(4, 1); math.Abs(got-QButterworth4a) > 1e-12 {
		t.Fatalf("ButterworthQ(4,1) = %v, want %v", got, QButterworth4a)
	}

	if got := len(ButterworthLowpass(1000, 5, 48000)); got != 3 {
		t.Fatalf("ButterworthLowpass order 5 sections = %d, want 3", got)
	}
}

func TestInvalidParameters(t *testing.T) {
	for _, f := range []float64{0, -1, 24000, math.NaN()} {
		if c := Lowpass(f, 0.7, 48000); c.B0 != 0 || c.A1 != 0 {
			t.Fatalf("Lowpass(%v) = %+v, want zero", f, c)
		}
		if c := FirstOrderLowpass(f, 48000); c.B0 != 0 {
			t.Fatalf("FirstOrderLowpass(%v) = %+v, want zero", f, c)
		}
	}
}
