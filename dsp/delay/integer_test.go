package delay

import (
	"testing"

	"github.com/cwbudde/algo-split/internal/testutil"
)

func TestIntegerDelaysImpulse(t *testing.T) {
	for _, delay := range []int{0, 1, 5, 31} {
		d, err := NewInteger(32)
		if err != nil {
			t.Fatal(err)
		}
		d.SetDelay(delay)

		buf := testutil.Impulse(64, 3)
		d.ProcessBlock(buf)
		want := testutil.Impulse(64, 3+delay)
		testutil.RequireSliceNearlyEqual(t, buf, want, 0)
	}
}

func TestIntegerClampsDelay(t *testing.T) {
	d, _ := NewInteger(10)
	d.SetDelay(50)
	if d.Delay() != 10 {
		t.Fatalf("Delay() = %d, want 10", d.Delay())
	}
	d.SetDelay(-2)
	if d.Delay() != 0 {
		t.Fatalf("Delay() = %d, want 0", d.Delay())
	}
	if _, err := NewInteger(-1); err == nil {
		t.Fatal("expected error for negative max delay")
	}
}

func TestIntegerSampleAndBlockAgree(t *testing.T) {
	in := testutil.DeterministicNoise(4, 1, 300)

	a, _ := NewInteger(40)
	b, _ := NewInteger(40)
	a.SetDelay(17)
	b.SetDelay(17)

	viaSample := make([]float64, len(in))
	for i, x := range in {
		viaSample[i] = a.ProcessSample(x)
	}
	viaBlock := make([]float64, len(in))
	for start := 0; start < len(in); start += 64 {
		end := min(start+64, len(in))
		b.ProcessBlockTo(viaBlock[start:end], in[start:end])
	}

	testutil.RequireSliceNearlyEqual(t, viaBlock, viaSample, 0)
}

func TestIntegerKeepsHistoryWhenDelayChanges(t *testing.T) {
	d, _ := NewInteger(8)
	d.SetDelay(0)
	for i := 1; i <= 8; i++ {
		d.ProcessSample(float64(i))
	}
	d.SetDelay(4)
	if got := d.ProcessSample(9); got != 5 {
		t.Fatalf("ProcessSample after SetDelay(4) = %v, want 5", got)
	}
}

func TestMultiDelaysEveryChannel(t *testing.T) {
	m, err := NewMulti(2, 16)
	if err != nil {
		t.Fatal(err)
	}
	m.SetDelay(6)

	left := testutil.Impulse(32, 0)
	right := testutil.Impulse(32, 10)
	m.ProcessBlock([][]float64{left, right}, 32)

	testutil.RequireSliceNearlyEqual(t, left, testutil.Impulse(32, 6), 0)
	testutil.RequireSliceNearlyEqual(t, right, testutil.Impulse(32, 16), 0)

	if _, err := NewMulti(0, 4); err == nil {
		t.Fatal("expected error for zero channels")
	}
}
