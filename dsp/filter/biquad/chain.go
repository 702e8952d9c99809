package biquad

// Chain runs sections in series. The cascaded Butterworth designs used by the
// crossover inspector are built from it.
type Chain struct {
	sections []Section
}

// NewChain builds one section per coefficient set, all starting from zero
// state.
func NewChain(coeffs []Coefficients) *Chain {
	sections := make([]Section, len(coeffs))
	for i, c := range coeffs {
		sections[i].Coefficients = c
	}

	return &Chain{sections: sections}
}

// Len reports the number of sections.
func (c *Chain) Len() int { return len(c.sections) }

// ProcessSample runs x through every section.
func (c *Chain) ProcessSample(x float64) float64 {
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}

	return x
}

// ProcessBlock filters buf in place, one full pass per section.
func (c *Chain) ProcessBlock(buf []float64) {
	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// Reset zeroes every section.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}
