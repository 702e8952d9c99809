package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestChainMatchesSeriesSections(t *testing.T) {
	c1 := testCoeffs()
	c2 := Coefficients{B0: 0.5, B1: -0.5, A1: -0.3}

	chain := NewChain([]Coefficients{c1, c2})
	s1, s2 := NewSection(c1), NewSection(c2)

	buf := []float64{1, -0.5, 0.25, 0, 0.75, -1}
	want := make([]float64, len(buf))
	for i, x := range buf {
		want[i] = s2.ProcessSample(s1.ProcessSample(x))
	}

	chain.ProcessBlock(buf)
	for i := range buf {
		if math.Abs(buf[i]-want[i]) > eps {
			t.Fatalf("chain[%d] = %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestChainResetClearsEverySection(t *testing.T) {
	chain := NewChain([]Coefficients{testCoeffs(), testCoeffs()})
	if chain.Len() != 2 {
		t.Fatalf("Len = %d, want 2", chain.Len())
	}

	first := chain.ProcessSample(1)
	chain.ProcessSample(0.5)
	chain.Reset()

	if got := chain.ProcessSample(1); got != first {
		t.Fatalf("after Reset = %v, want %v", got, first)
	}
}

func TestResponseMatchesMagnitudeSquared(t *testing.T) {
	c := testCoeffs()
	for _, f := range []float64{0, 100, 1000, 5000, 12000, 23999} {
		h := c.Response(f, 48000)
		want := cmplx.Abs(h) * cmplx.Abs(h)
		if got := c.MagnitudeSquared(f, 48000); math.Abs(got-want) > 1e-9 {
			t.Fatalf("MagnitudeSquared(%v) = %v, want %v", f, got, want)
		}
	}

	chain := NewChain([]Coefficients{c, c})
	if got, want := chain.MagnitudeDB(1000, 48000), 2*c.MagnitudeDB(1000, 48000); math.Abs(got-want) > 1e-9 {
		t.Fatalf("chain MagnitudeDB = %v, want %v", got, want)
	}
}

func TestPoles(t *testing.T) {
	c := Coefficients{A1: -0.2, A2: 0.01}
	p := c.Poles()
	for _, z := range p {
		if z != 0.1 {
			t.Fatalf("pole %v, want 0.1", z)
		}
	}

	resonant := Coefficients{A1: -1.8, A2: 0.9}
	if !resonant.HasComplexPoles() {
		t.Fatal("expected complex poles")
	}
	if c.HasComplexPoles() {
		t.Fatal("double real pole reported as complex")
	}
}

func TestPolesNearDoubleRoot(t *testing.T) {
	tests := []struct {
		name string
		pole float64
	}{
		{name: "0.3", pole: 0.3},
		{name: "0.7", pole: 0.7},
		{name: "0.99", pole: 0.99},
		{name: "negative", pole: -0.45},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := Coefficients{A1: -2 * tc.pole, A2: tc.pole * tc.pole}
			if c.HasComplexPoles() {
				t.Fatal("double pole reported as complex")
			}
			p := c.Poles()
			if p[0] != p[1] {
				t.Fatalf("poles %v and %v differ", p[0], p[1])
			}
			if cmplx.Abs(p[0]-complex(tc.pole, 0)) > 1e-12 {
				t.Fatalf("pole %v, want %v", p[0], tc.pole)
			}
		})
	}
}
