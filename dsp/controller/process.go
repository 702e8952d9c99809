package controller

import (
	"github.com/cwbudde/algo-split/dsp/core"
	"github.com/cwbudde/algo-split/dsp/splitter"
)

// Process splits n samples of in into out. out is ordered pair1.L,
// pair1.R, pair2.L, pair2.R; with swapped outputs the pairs trade places.
// n must not exceed the prepared block size and out must not alias in.
// An unprepared controller passes in through pair1.
func (c *Controller) Process(in [2][]float64, out [4][]float64, n int) {
	if n <= 0 {
		return
	}

	if c.prepared {
		c.prepareBuffer()
	}

	p1 := core.Stereo{out[0], out[1]}
	p2 := core.Stereo{out[2], out[3]}
	if c.swap {
		p1, p2 = p2, p1
	}
	src := core.Stereo(in)

	mode := c.mode
	if !c.prepared {
		mode = splitter.None
	}

	switch mode {
	case splitter.LeftRight:
		c.lr.Process(src, p1, p2, n)
	case splitter.MidSide:
		c.ms.Process(src, p1, p2, n)
	case splitter.LowHigh:
		if c.linearPhase {
			c.lhfir.Process(src, p1, p2, n)
		} else {
			c.lh.Process(src, p1, p2, n)
		}
	case splitter.TransientSteady:
		for ch := range 2 {
			c.ts[ch].Process(src[ch][:n], p1[ch][:n], p2[ch][:n])
		}
	case splitter.PeakSteady:
		for ch := range 2 {
			c.ps[ch].Process(src[ch][:n], p1[ch][:n], p2[ch][:n])
		}
	default:
		for ch := range 2 {
			copy(p1[ch][:n], src[ch][:n])
			core.Zero(p2[ch][:n])
		}
	}

	if c.analyzer != nil {
		for ch := range 2 {
			c.sendBufs[0][ch] = out[ch][:n]
			c.sendBufs[1][ch] = out[2+ch][:n]
		}
		c.analyzer.Send(c.sendBufs, n)
	}
}

// ProcessBypass delays buf in place by the current latency so a dry
// reference stays aligned with Process output.
func (c *Controller) ProcessBypass(buf [2][]float64, n int) {
	if !c.prepared || n <= 0 {
		return
	}

	c.bypass.SetDelay(c.LatencySamples())
	c.bypass.ProcessBlock(buf[:], n)
}
