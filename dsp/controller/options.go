package controller

import (
	"github.com/cwbudde/algo-split/dsp/analyzer"
	"github.com/cwbudde/algo-split/dsp/core"
	"github.com/cwbudde/algo-split/dsp/splitter"
)

// Option configures a Controller at construction.
type Option func(*Controller)

// WithProcessorOptions sets the sample rate and block size used by
// PrepareDefault.
func WithProcessorOptions(opts ...core.ProcessorOption) Option {
	return func(c *Controller) {
		c.cfg = core.ApplyProcessorOptions(opts...)
	}
}

// WithAnalyzer attaches a sender that receives both output pairs after
// every block. The sender must have two branches of two channels.
func WithAnalyzer(s *analyzer.Sender) Option {
	return func(c *Controller) {
		c.analyzer = s
	}
}

// WithMode selects the initial splitting mode.
func WithMode(m splitter.Mode) Option {
	return func(c *Controller) {
		if m.Valid() {
			c.mode = m
		}
	}
}
