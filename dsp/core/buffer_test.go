package core

import "testing"

func TestEnsureLenReuse(t *testing.T) {
	buf := make([]float64, 4, 8)

	out := EnsureLen(buf, 6)
	if len(out) != 6 {
		t.Fatalf("len = %d, want 6", len(out))
	}

	if cap(out) != cap(buf) {
		t.Fatalf("cap = %d, want %d", cap(out), cap(buf))
	}
}

func TestSubtractTo(t *testing.T) {
	a := []float64{1, 2, 3, 4}
	b := []float64{0.5, 0.5, 0.5, 0.5}
	dst := make([]float64, 4)

	SubtractTo(dst, a, b, 3)

	want := []float64{0.5, 1.5, 2.5, 0}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}
}

func TestStereoSlice(t *testing.T) {
	s := NewStereo(8)
	v := s.Slice(3)
	if len(v[0]) != 3 || len(v[1]) != 3 {
		t.Fatalf("slice lengths = %d/%d, want 3/3", len(v[0]), len(v[1]))
	}

	v[1][2] = 7
	if s[1][2] != 7 {
		t.Fatal("Slice must alias the parent buffer")
	}
}
