package ring

import (
	"errors"
	"math/rand"
	"sync"
	"testing"
)

func checkRange(t *testing.T, r Range, capacity, want int) {
	t.Helper()
	if r.Total() != want {
		t.Fatalf("Total() = %d, want %d (%+v)", r.Total(), want, r)
	}
	if r.Len1 < 0 || r.Len2 < 0 {
		t.Fatalf("negative segment length: %+v", r)
	}
	if r.Start1+r.Len1 > capacity {
		t.Fatalf("first segment exceeds capacity %d: %+v", capacity, r)
	}
	if r.Len2 > 0 {
		if r.Start2 != 0 {
			t.Fatalf("second segment must start at 0: %+v", r)
		}
		if r.Start1+r.Len1 != capacity {
			t.Fatalf("first segment must end at capacity when wrapping: %+v", r)
		}
		if r.Len2 > r.Start1 {
			t.Fatalf("segments overlap: %+v", r)
		}
	}
}

func TestNewFIFORejectsSmallCapacity(t *testing.T) {
	for _, c := range []int{-1, 0, 1} {
		if _, err := NewFIFO(c); !errors.Is(err, ErrInvalidCapacity) {
			t.Fatalf("NewFIFO(%d) error = %v, want ErrInvalidCapacity", c, err)
		}
	}
}

func TestFIFOInvariantsRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for capacity := 2; capacity <= 67; capacity++ {
		f, err := NewFIFO(capacity)
		if err != nil {
			t.Fatal(err)
		}

		for step := 0; step < 400; step++ {
			if f.NumFree()+f.NumReady() != capacity-1 {
				t.Fatalf("cap %d step %d: free %d + ready %d != %d",
					capacity, step, f.NumFree(), f.NumReady(), capacity-1)
			}

			if rng.Intn(2) == 0 {
				free := f.NumFree()
				k := rng.Intn(free + 1)
				r := f.PrepareToWrite(k)
				checkRange(t, r, capacity, k)
				f.FinishWrite(k)
			} else {
				ready := f.NumReady()
				k := rng.Intn(ready + 1)
				r := f.PrepareToRead(k)
				checkRange(t, r, capacity, k)
				f.FinishRead(k)
			}
		}
	}
}

func TestFIFOTruncatesOverRequest(t *testing.T) {
	f, _ := NewFIFO(8)

	r := f.PrepareToWrite(100)
	if r.Total() != 7 {
		t.Fatalf("write range = %d, want 7", r.Total())
	}
	f.FinishWrite(r.Total())

	if f.NumFree() != 0 {
		t.Fatalf("NumFree() = %d, want 0", f.NumFree())
	}
	if got := f.PrepareToWrite(3); !got.Empty() {
		t.Fatalf("full ring returned %+v", got)
	}

	r = f.PrepareToRead(50)
	if r.Total() != 7 {
		t.Fatalf("read range = %d, want 7", r.Total())
	}
}

func TestFIFODataRoundTripAcrossWrap(t *testing.T) {
	const capacity = 5
	f, _ := NewFIFO(capacity)
	storage := make([]float64, capacity)

	next := 0.0
	expect := 0.0
	out := make([]float64, capacity)
	for round := 0; round < 50; round++ {
		src := []float64{next, next + 1, next + 2}
		r := f.PrepareToWrite(len(src))
		n := r.Scatter(storage, src)
		f.FinishWrite(n)
		next += float64(n)

		r = f.PrepareToRead(2)
		n = r.Gather(out, storage)
		f.FinishRead(n)
		for i := 0; i < n; i++ {
			if out[i] != expect {
				t.Fatalf("round %d: got %v, want %v", round, out[i], expect)
			}
			expect++
		}
	}
}

func TestFIFOConcurrentProducerConsumer(t *testing.T) {
	const (
		capacity = 64
		total    = 20000
	)
	f, _ := NewFIFO(capacity)
	storage := make([]float64, capacity)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		src := make([]float64, 7)
		v := 0.0
		for sent := 0; sent < total; {
			for i := range src {
				src[i] = v + float64(i)
			}
			r := f.PrepareToWrite(min(len(src), total-sent))
			n := r.Scatter(storage, src)
			f.FinishWrite(n)
			sent += n
			v += float64(n)
		}
	}()

	dst := make([]float64, 11)
	want := 0.0
	for got := 0; got < total; {
		r := f.PrepareToRead(len(dst))
		n := r.Gather(dst, storage)
		f.FinishRead(n)
		for i := 0; i < n; i++ {
			if dst[i] != want {
				t.Fatalf("sample %d = %v, want %v", got+i, dst[i], want)
			}
			want++
		}
		got += n
	}
	wg.Wait()
}
