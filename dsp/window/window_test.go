package window

import (
	"math"
	"testing"
)

func TestGenerateHann(t *testing.T) {
	sym := Generate(TypeHann, 5)
	want := []float64{0, 0.5, 1, 0.5, 0}
	for i := range want {
		if math.Abs(sym[i]-want[i]) > 1e-12 {
			t.Fatalf("symmetric[%d] = %v, want %v", i, sym[i], want[i])
		}
	}

	per := Generate(TypeHann, 4, WithPeriodic())
	want = []float64{0, 0.5, 1, 0.5}
	for i := range want {
		if math.Abs(per[i]-want[i]) > 1e-12 {
			t.Fatalf("periodic[%d] = %v, want %v", i, per[i], want[i])
		}
	}
}

func TestGenerateTypes(t *testing.T) {
	tests := []struct {
		typ      Type
		name     string
		centerOK float64
	}{
		{TypeRectangular, "rectangular", 1},
		{TypeHann, "hann", 1},
		{TypeHamming, "hamming", 1},
		{TypeBlackman, "blackman", 1},
	}

	for _, tc := range tests {
		if tc.typ.String() != tc.name {
			t.Fatalf("String() = %q, want %q", tc.typ.String(), tc.name)
		}

		w := Generate(tc.typ, 9)
		if math.Abs(w[4]-tc.centerOK) > 1e-12 {
			t.Fatalf("%s center = %v, want %v", tc.name, w[4], tc.centerOK)
		}
	}

	if Generate(TypeHann, 0) != nil {
		t.Fatal("Generate(0) should return nil")
	}
	if _, err := Hann(0); err == nil {
		t.Fatal("Hann(0) should fail")
	}
}

func TestOverlapAddGainHann(t *testing.T) {
	w, err := Hann(1024, WithPeriodic())
	if err != nil {
		t.Fatal(err)
	}

	g, err := OverlapAddGain(w, 256)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(g-1.5) > 1e-12 {
		t.Fatalf("OverlapAddGain = %v, want 1.5", g)
	}

	// Every output sample sees the same squared-window sum.
	for n := range 256 {
		sum := 0.0
		for k := n; k < len(w); k += 256 {
			sum += w[k] * w[k]
		}
		if math.Abs(sum-1.5) > 1e-12 {
			t.Fatalf("sample %d: sum = %v, want 1.5", n, sum)
		}
	}

	if _, err := OverlapAddGain(w, 0); err == nil {
		t.Fatal("hop 0 should fail")
	}
}

func TestGains(t *testing.T) {
	w := Generate(TypeHann, 4096, WithPeriodic())

	cg, err := CoherentGain(w)
	if err != nil || math.Abs(cg-0.5) > 1e-9 {
		t.Fatalf("CoherentGain = %v, %v", cg, err)
	}

	enbw, err := EquivalentNoiseBandwidth(w)
	if err != nil || math.Abs(enbw-1.5) > 1e-3 {
		t.Fatalf("ENBW = %v, %v", enbw, err)
	}

	if _, err := EquivalentNoiseBandwidth(nil); err == nil {
		t.Fatal("expected error for empty window")
	}
}

func TestApplyCoefficients(t *testing.T) {
	samples := []float64{1, 2, 3}
	coeffs := []float64{0.5, 1, 2}

	out, err := ApplyCoefficients(samples, coeffs)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0.5, 2, 6}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}

	dst := make([]float64, 3)
	if err := ApplyCoefficientsTo(dst, samples, coeffs); err != nil {
		t.Fatal(err)
	}
	if err := ApplyCoefficientsInPlace(samples, coeffs); err != nil {
		t.Fatal(err)
	}
	for i := range want {
		if samples[i] != want[i] || dst[i] != want[i] {
			t.Fatalf("index %d: in-place %v, to %v, want %v", i, samples[i], dst[i], want[i])
		}
	}

	if err := ApplyCoefficientsInPlace(samples, coeffs[:2]); err == nil {
		t.Fatal("expected length mismatch error")
	}
}
