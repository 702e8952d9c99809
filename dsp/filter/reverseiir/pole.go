package reverseiir

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-split/dsp/delay"
	"github.com/cwbudde/algo-split/dsp/filter/biquad"
)

// MaxStages bounds the stage count. Stage s holds a 2^s sample delay line.
const MaxStages = 20

// ErrInvalidStages is returned for stage counts outside [0, MaxStages].
var ErrInvalidStages = errors.New("reverseiir: invalid stage count")

func validateStages(n int) error {
	if n < 0 || n > MaxStages {
		return fmt.Errorf("%w: %d", ErrInvalidStages, n)
	}

	return nil
}

// newLines allocates delay lines of 1, 2, 4, ... 2^n samples.
func newLines(n int) []*delay.Line {
	lines := make([]*delay.Line, n+1)
	for s := range lines {
		// Size is always > 0, New cannot fail here.
		lines[s], _ = delay.New(1 << s)
	}

	return lines
}

func resetLines(lines []*delay.Line) {
	for _, l := range lines {
		l.Reset()
	}
}

// RealPole is the reversed truncated recursion 1/(1 - p z) for a real pole p.
type RealPole struct {
	stages int
	cs     []float64
	lines  []*delay.Line
}

// NewRealPole returns a reversed real pole with stages+1 delay stages.
func NewRealPole(stages int) (*RealPole, error) {
	r := &RealPole{}
	if err := r.SetStages(stages); err != nil {
		return nil, err
	}

	return r, nil
}

// SetStages reallocates the delay stages and clears the state. The pole is
// kept. Not for the audio path.
func (r *RealPole) SetStages(n int) error {
	if err := validateStages(n); err != nil {
		return err
	}

	var p float64
	if len(r.cs) > 0 {
		p = r.cs[0]
	}

	r.stages = n
	r.cs = make([]float64, n+1)
	r.lines = newLines(n)
	r.SetPole(p)

	return nil
}

// Stages returns the number of doubling stages N.
func (r *RealPole) Stages() int { return r.stages }

// SetPole sets the pole location. |p| must be below 1 for the truncation to
// converge.
func (r *RealPole) SetPole(p float64) {
	r.cs[0] = p
	for s := 1; s <= r.stages; s++ {
		r.cs[s] = r.cs[s-1] * r.cs[s-1]
	}
}

// Pole returns the current pole.
func (r *RealPole) Pole() float64 { return r.cs[0] }

// Latency returns the delay 2^(N+1)-1 introduced by the cascade.
func (r *RealPole) Latency() int { return 1<<(r.stages+1) - 1 }

// ProcessSample runs one sample through all stages.
func (r *RealPole) ProcessSample(x float64) float64 {
	for s, l := range r.lines {
		x = r.cs[s]*x + l.Push(x)
	}

	return x
}

// ProcessBlock filters buf in place.
func (r *RealPole) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = r.ProcessSample(x)
	}
}

// Reset clears the delay lines. Coefficients are kept.
func (r *RealPole) Reset() {
	resetLines(r.lines)
}

// ComplexPole is the reversed truncated recursion 1/(1 + a1 z + a2 z^2) for
// a conjugate pole pair. The pair is tracked as one complex value u + jv.
// When the denominator has real poles the filter passes the signal through
// unchanged.
type ComplexPole struct {
	stages    int
	a, b      []float64
	aB        float64
	isComplex bool

	uLines, vLines []*delay.Line
}

// NewComplexPole returns a reversed conjugate pole pair with stages+1
// delay stages.
func NewComplexPole(stages int) (*ComplexPole, error) {
	c := &ComplexPole{}
	if err := c.SetStages(stages); err != nil {
		return nil, err
	}

	return c, nil
}

// SetStages reallocates the delay stages and clears the state. The
// coefficients must be set again afterwards.
func (c *ComplexPole) SetStages(n int) error {
	if err := validateStages(n); err != nil {
		return err
	}

	c.stages = n
	c.a = make([]float64, n+1)
	c.b = make([]float64, n+1)
	c.uLines = newLines(n)
	c.vLines = newLines(n)
	c.isComplex = false

	return nil
}

// Stages returns the number of doubling stages N.
func (c *ComplexPole) Stages() int { return c.stages }

// IsComplex reports whether the current denominator has a conjugate pole
// pair. Only then the filter is active.
func (c *ComplexPole) IsComplex() bool { return c.isComplex }

// SetDenominator sets the normalized denominator 1 + a1 z^-1 + a2 z^-2 of
// the forward filter whose reversed poles are realized.
func (c *ComplexPole) SetDenominator(a1, a2 float64) {
	den := biquad.Coefficients{A1: a1, A2: a2}
	c.isComplex = den.HasComplexPoles()
	if !c.isComplex {
		return
	}

	p := den.Poles()[0]
	c.a[0] = real(p)
	c.b[0] = -math.Abs(imag(p))
	c.aB = c.a[0] / c.b[0]

	// The last stage keeps zero coefficients and acts as a pure delay.
	for s := 1; s < c.stages; s++ {
		a, b := c.a[s-1], c.b[s-1]
		c.a[s] = a*a - b*b
		c.b[s] = 2 * a * b
	}
	if c.stages > 0 {
		c.a[c.stages] = 0
		c.b[c.stages] = 0
	}
}

// Latency returns the delay 2^(N+1)-1 introduced by the cascade.
func (c *ComplexPole) Latency() int { return 1<<(c.stages+1) - 1 }

// ProcessSample runs one sample through all stages.
func (c *ComplexPole) ProcessSample(x float64) float64 {
	if !c.isComplex {
		return x
	}

	u := c.a[0]*x + c.uLines[0].Push(x)
	v := c.b[0] * x
	for s := 1; s <= c.stages; s++ {
		as, bs := c.a[s], c.b[s]
		u, v = as*u-bs*v+c.uLines[s].Push(u), bs*u+as*v+c.vLines[s].Push(v)
	}

	return u + c.aB*v
}

// ProcessBlock filters buf in place.
func (c *ComplexPole) ProcessBlock(buf []float64) {
	if !c.isComplex {
		return
	}

	for i, x := range buf {
		buf[i] = c.ProcessSample(x)
	}
}

// Reset clears the delay lines. Coefficients are kept.
func (c *ComplexPole) Reset() {
	resetLines(c.uLines)
	resetLines(c.vLines)
}
