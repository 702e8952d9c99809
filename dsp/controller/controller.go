package controller

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/cwbudde/algo-split/dsp/analyzer"
	"github.com/cwbudde/algo-split/dsp/core"
	"github.com/cwbudde/algo-split/dsp/delay"
	"github.com/cwbudde/algo-split/dsp/splitter"
)

// MaxMix is the largest accepted mix value.
const MaxMix = 0.5

// Controller splits a stereo stream into two stereo pairs.
type Controller struct {
	cfg      core.ProcessorConfig
	prepared bool

	mode        splitter.Mode
	current     atomic.Int32
	linearPhase bool
	swap        bool
	latency     atomic.Int64

	modeParam   atomic.Int32
	modeDirty   atomic.Bool
	linearParam atomic.Bool
	linearDirty atomic.Bool
	swapParam   atomic.Bool
	mixParam    core.Param

	lr    *splitter.LR
	ms    *splitter.MS
	lh    *splitter.LH
	lhfir *splitter.LHFIR
	ts    [2]*splitter.TS
	ps    [2]*splitter.PS

	bypass   *delay.Multi
	analyzer *analyzer.Sender
	sendBufs [][][]float64
	notify   chan int
}

// New returns a controller in None mode with default parameters. Call
// Prepare before processing.
func New(opts ...Option) *Controller {
	c := &Controller{
		cfg:    core.DefaultProcessorConfig(),
		mode:   splitter.None,
		lr:     splitter.NewLR(),
		ms:     splitter.NewMS(),
		lh:     splitter.NewLH(),
		lhfir:  splitter.NewLHFIR(),
		ts:     [2]*splitter.TS{splitter.NewTS(), splitter.NewTS()},
		ps:     [2]*splitter.PS{splitter.NewPS(), splitter.NewPS()},
		notify: make(chan int, 1),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.modeParam.Store(int32(c.mode))
	c.current.Store(int32(c.mode))

	c.sendBufs = [][][]float64{make([][]float64, 2), make([][]float64, 2)}

	return c
}

// Config returns the processor configuration.
func (c *Controller) Config() core.ProcessorConfig { return c.cfg }

// PrepareDefault prepares with the configured sample rate and block size.
func (c *Controller) PrepareDefault() error {
	return c.Prepare(c.cfg.SampleRate, c.cfg.BlockSize)
}

// Prepare allocates every strategy for sampleRate and blocks of up to
// maxBlock samples. It must not run concurrently with Process.
func (c *Controller) Prepare(sampleRate float64, maxBlock int) error {
	cfg := core.ProcessorConfig{SampleRate: sampleRate, BlockSize: maxBlock}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("controller: %w", err)
	}

	c.lr.Prepare(sampleRate)
	c.ms.Prepare(sampleRate)
	c.lh.Prepare(sampleRate)
	if err := c.lhfir.Prepare(sampleRate); err != nil {
		return fmt.Errorf("controller: %w", err)
	}
	for ch := range 2 {
		if err := c.ts[ch].Prepare(sampleRate); err != nil {
			return fmt.Errorf("controller: %w", err)
		}
		if err := c.ps[ch].Prepare(sampleRate); err != nil {
			return fmt.Errorf("controller: %w", err)
		}
	}

	maxLatency := max(splitter.LHFIRLatency(4, sampleRate), splitter.TSLatency(sampleRate))
	bypass, err := delay.NewMulti(2, maxLatency)
	if err != nil {
		return fmt.Errorf("controller: %w", err)
	}

	c.cfg = cfg
	c.bypass = bypass
	c.prepared = true

	c.modeDirty.Store(true)
	c.linearDirty.Store(true)
	c.prepareBuffer()
	c.resetCurrent()

	return nil
}

// SetMode selects the splitting strategy.
func (c *Controller) SetMode(m splitter.Mode) {
	if !m.Valid() {
		return
	}
	c.modeParam.Store(int32(m))
	c.modeDirty.Store(true)
}

// Mode returns the strategy the audio thread used for its last block. It
// is safe to call from any goroutine.
func (c *Controller) Mode() splitter.Mode { return splitter.Mode(c.current.Load()) }

// SetMix sets the crossfade between the two pairs, clamped to [0, MaxMix].
func (c *Controller) SetMix(v float64) {
	c.mixParam.Set(core.Clamp(v, 0, MaxMix))
}

// SetSwapOutputs exchanges the two output pairs.
func (c *Controller) SetSwapOutputs(on bool) {
	c.swapParam.Store(on)
}

// SetLowHighFreq sets the crossover frequency of both low/high strategies.
func (c *Controller) SetLowHighFreq(hz float64) {
	c.lh.SetFrequency(hz)
	c.lhfir.SetFrequency(hz)
}

// SetLowHighOrder sets the crossover order (1, 2 or 4) of both low/high
// strategies.
func (c *Controller) SetLowHighOrder(order int) {
	c.lh.SetOrder(order)
	c.lhfir.SetOrder(order)
}

// SetLowHighLinearPhase selects the linear-phase low/high strategy.
func (c *Controller) SetLowHighLinearPhase(on bool) {
	c.linearParam.Store(on)
	c.linearDirty.Store(true)
}

// SetTransientBalance and the other transient setters take normalized
// values in [0, 1].
func (c *Controller) SetTransientBalance(v float64) {
	for _, s := range c.ts {
		s.SetBalance(v)
	}
}

func (c *Controller) SetTransientStrength(v float64) {
	for _, s := range c.ts {
		s.SetStrength(v)
	}
}

func (c *Controller) SetTransientHold(v float64) {
	for _, s := range c.ts {
		s.SetHold(v)
	}
}

func (c *Controller) SetTransientSmooth(v float64) {
	for _, s := range c.ts {
		s.SetSmooth(v)
	}
}

// SetPeakBalance and the other peak setters take normalized values in
// [0, 1].
func (c *Controller) SetPeakBalance(v float64) {
	for _, s := range c.ps {
		s.SetBalance(v)
	}
}

func (c *Controller) SetPeakAttack(v float64) {
	for _, s := range c.ps {
		s.SetAttack(v)
	}
}

func (c *Controller) SetPeakHold(v float64) {
	for _, s := range c.ps {
		s.SetHold(v)
	}
}

func (c *Controller) SetPeakSmooth(v float64) {
	for _, s := range c.ps {
		s.SetSmooth(v)
	}
}

// LatencySamples returns the latency published by the last block.
func (c *Controller) LatencySamples() int {
	return int(c.latency.Load())
}

// Run calls notify with every new latency until ctx is done. It returns
// ctx.Err().
func (c *Controller) Run(ctx context.Context, notify func(latency int)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l := <-c.notify:
			notify(l)
		}
	}
}

func (c *Controller) prepareBuffer() {
	if c.modeDirty.Swap(false) {
		if m := splitter.Mode(c.modeParam.Load()); m != c.mode {
			c.mode = m
			c.current.Store(int32(m))
			c.resetCurrent()
		}
	}

	if c.linearDirty.Swap(false) {
		if on := c.linearParam.Load(); on != c.linearPhase {
			c.linearPhase = on
			if c.mode == splitter.LowHigh {
				c.resetCurrent()
			}
		}
	}

	c.swap = c.swapParam.Load()

	if v, ok := c.mixParam.Take(); ok {
		c.lr.SetMix(v)
		c.ms.SetMix(v)
		c.lh.SetMix(v)
		c.lhfir.SetMix(v)
	}

	switch c.mode {
	case splitter.LeftRight:
		c.lr.PrepareBuffer()
	case splitter.MidSide:
		c.ms.PrepareBuffer()
	case splitter.LowHigh:
		if c.linearPhase {
			c.lhfir.PrepareBuffer()
		} else {
			c.lh.PrepareBuffer()
		}
	case splitter.TransientSteady:
		c.ts[0].PrepareBuffer()
		c.ts[1].PrepareBuffer()
	case splitter.PeakSteady:
		c.ps[0].PrepareBuffer()
		c.ps[1].PrepareBuffer()
	}

	c.publishLatency(c.currentLatency())
}

// resetCurrent clears the state of the selected strategy only.
func (c *Controller) resetCurrent() {
	switch c.mode {
	case splitter.LeftRight:
		c.lr.Reset()
	case splitter.MidSide:
		c.ms.Reset()
	case splitter.LowHigh:
		if c.linearPhase {
			c.lhfir.Reset()
		} else {
			c.lh.Reset()
		}
	case splitter.TransientSteady:
		c.ts[0].Reset()
		c.ts[1].Reset()
	case splitter.PeakSteady:
		c.ps[0].Reset()
		c.ps[1].Reset()
	}
}

func (c *Controller) currentLatency() int {
	switch c.mode {
	case splitter.LowHigh:
		if c.linearPhase {
			return c.lhfir.Latency()
		}
	case splitter.TransientSteady:
		return c.ts[0].Latency()
	}

	return 0
}

func (c *Controller) publishLatency(l int) {
	if int64(l) == c.latency.Load() {
		return
	}
	c.latency.Store(int64(l))

	// Keep only the newest value for the notifier.
	select {
	case c.notify <- l:
	default:
		select {
		case <-c.notify:
		default:
		}
		select {
		case c.notify <- l:
		default:
		}
	}
}
